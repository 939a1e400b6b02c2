// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package goatm

import (
	"math"
)

// Numerical atmosphere after the International Standard Atmosphere:
// linear temperature lapse in the troposphere, isothermal above the
// tropopause. Stands in for an empirical model behind the Atmosphere
// contract; the facade treats it exactly like the CORSIKA parameterization.
type IsaAtm struct{}

func NewIsaAtm() *IsaAtm {
	return &IsaAtm{}
}

func (a *IsaAtm) CacheKey() (kind, location, season string) {
	return "IsaAtm", "", ""
}

// Density of air [g/cm^3] at height h [cm]
func (a *IsaAtm) Density(h float64) float64 {
	const TEMP0 = 15.0    // Sea level temperature [degC]
	const RAIR = 287.05   // Specific gas constant of dry air [J/(kg K)]
	const HTP = 11000.0   // Tropopause height [m]
	const HSCALE = 6341.6 // Isothermal scale height above the tropopause [m]

	hgt := h / 100.0 // [cm] -> [m]
	if hgt < 0.0 {
		hgt = 0.0
	}
	var pres, temp float64
	if hgt <= HTP {
		pres = 1013.25 * math.Pow(1.0-2.2557e-5*hgt, 5.2568)
		temp = TEMP0 - 6.5e-3*hgt + 273.16
	} else {
		temp = TEMP0 - 6.5e-3*HTP + 273.16
		pres = 1013.25 * math.Pow(1.0-2.2557e-5*HTP, 5.2568) * math.Exp(-(hgt-HTP)/HSCALE)
	}
	rho := pres * 100.0 / (RAIR * temp) // [kg/m^3]
	return rho * 1.0e-3                 // [kg/m^3] -> [g/cm^3]
}
