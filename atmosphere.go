// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.26
//

package goatm

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

// Atmosphere is the density contract every model has to satisfy.
// CorsikaAtm and IsaAtm implement it; any other implementation can be
// substituted transparently.
type Atmosphere interface {
	// Density returns the density of air in g/cm^3 at height h in cm.
	Density(h float64) float64
}

// Optionally implemented by models whose profiles may be shared through
// the persistent spline cache. Models without an identity are never
// cached, so unrelated custom models cannot collide in the store.
type CacheKeyer interface {
	CacheKey() (kind, location, season string)
}

// CascadeAtm drives an Atmosphere model for a cascade solver. SetTheta
// selects the zenith angle and prepares the slant depth to density
// mapping; X2Rho and RX2Rho query it. The derived optical quantities are
// computed from the height-domain density alone and work without a
// configured angle.
type CascadeAtm struct {
	atm   Atmosphere
	geom  *Geometry
	cache *SplineCache

	thetaDeg float64
	thrad    float64
	prof     *DensityProfile
}

// The cache may be nil, in which case every SetTheta call computes a
// fresh profile.
func NewCascadeAtm(atm Atmosphere, geom *Geometry, cache *SplineCache) (*CascadeAtm, error) {
	if atm == nil {
		return nil, fmt.Errorf("atmosphere model must be set")
	}
	if geom == nil {
		return nil, fmt.Errorf("geometry must be set")
	}
	return &CascadeAtm{
		atm:   atm,
		geom:  geom,
		cache: cache,
	}, nil
}

// Configure the zenith angle thetaDeg [deg] and make the depth queries
// available. When the cache serves a profile stored within TOLDEG of the
// request, the served angle replaces the requested one; check ThetaDeg
// after the call. Calling again with the angle already active is a no-op.
func (c *CascadeAtm) SetTheta(thetaDeg float64) error {
	if c.prof != nil && c.thetaDeg == thetaDeg {
		log.Debug("reusing active density spline", "theta", thetaDeg)
		return nil
	}

	var p *DensityProfile
	var err error
	if k, ok := c.atm.(CacheKeyer); ok && c.cache != nil {
		kind, location, season := k.CacheKey()
		p, err = c.cache.Get(kind, location, season, thetaDeg, func(th float64) (*DensityProfile, error) {
			return CalcDensityProfile(c.atm, c.geom, th, NSPLINE)
		})
	} else {
		p, err = CalcDensityProfile(c.atm, c.geom, thetaDeg, NSPLINE)
	}
	if err != nil {
		return fmt.Errorf("set theta %g: %w", thetaDeg, err)
	}

	c.prof = p
	c.thetaDeg = p.ThetaDeg
	c.thrad = ToRad(p.ThetaDeg)
	return nil
}

// Zenith angle of the active profile [deg]. After a cache hit this is the
// stored angle, not the requested one.
func (c *CascadeAtm) ThetaDeg() float64 { return c.thetaDeg }

// Zenith angle of the active profile [rad]
func (c *CascadeAtm) ThetaRad() float64 { return c.thrad }

// Total slant depth of the active profile [g/cm^2], 0 before SetTheta
func (c *CascadeAtm) XSurf() float64 {
	if c.prof == nil {
		return 0.0
	}
	return c.prof.XSurf
}

// Density of air [g/cm^3] at height h [cm], delegated to the model
func (c *CascadeAtm) Density(h float64) float64 {
	return c.atm.Density(h)
}

// Density [g/cm^3] at slant depth x [g/cm^2] along the active line of
// sight. Depths outside [0, XSurf] are clamped to the domain boundary.
// NaN before SetTheta.
func (c *CascadeAtm) X2Rho(x float64) float64 {
	if c.prof == nil {
		return math.NaN()
	}
	return c.prof.RhoAt(x)
}

// Reciprocal density [cm^3/g] at slant depth x [g/cm^2]
func (c *CascadeAtm) RX2Rho(x float64) float64 {
	return 1.0 / c.X2Rho(x)
}

// Moliere unit of air [cm] at height h [cm]
func (c *CascadeAtm) MoliereAir(h float64) float64 {
	return 9.3 / (c.atm.Density(h) * 100.0)
}

// Refractive index minus one of air at height h [cm], with the density
// parameterized as in CORSIKA
func (c *CascadeAtm) NrefRelAir(h float64) float64 {
	return 0.000283 * c.atm.Density(h) / c.atm.Density(0.0)
}

// Lorentz factor of the Cherenkov threshold in air at height h [cm]
func (c *CascadeAtm) GammaCherenkov(h float64) float64 {
	nrel := c.NrefRelAir(h)
	return (1.0 + nrel) / math.Sqrt(2.0*nrel+nrel*nrel)
}

// Cherenkov angle in air [deg] at height h [cm]
func (c *CascadeAtm) ThetaCherenkov(h float64) float64 {
	return ToDeg(math.Acos(1.0 / (1.0 + c.NrefRelAir(h))))
}
