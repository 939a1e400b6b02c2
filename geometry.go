// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.14
//

package goatm

import (
	"math"
)

// Spherical-Earth geometry of a line of sight through the atmosphere.
// Path distances are measured from the observation level upward, so
// Height(0, thrad) is the observation level and Height(PathLength(thrad), thrad)
// is the top of the atmosphere.
type Geometry struct {
	RE   float64 // Earth's radius [cm]
	HAtm float64 // Top of the atmosphere above ground [cm]
	HObs float64 // Observation level above ground [cm]
}

func NewGeometry() *Geometry {
	return &Geometry{
		RE:   RE,
		HAtm: HATM,
		HObs: 0.0,
	}
}

// Total path length [cm] from the observation level to the top of the
// atmosphere for zenith angle thrad [rad]
func (g *Geometry) PathLength(thrad float64) float64 {
	r := g.RE + g.HObs
	return math.Sqrt(SQ(g.RE+g.HAtm)-SQ(r*math.Sin(thrad))) - r*math.Cos(thrad)
}

// Height above ground [cm] at path distance dist [cm] along the line of
// sight with zenith angle thrad [rad]
func (g *Geometry) Height(dist, thrad float64) float64 {
	r := g.RE + g.HObs
	return math.Sqrt(SQ(r)+SQ(dist)+2.0*r*dist*math.Cos(thrad)) - g.RE
}
