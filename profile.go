// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package goatm

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

// Slant depth to density mapping for one zenith angle. X[i] is the slant
// depth [g/cm^2] accumulated along the line of sight up to the i-th path
// sample, Rho[i] the density [g/cm^3] there. The fitted spline covers
// exactly [0, XSurf] and is monotone between the knots.
type DensityProfile struct {
	ThetaDeg float64   // Zenith angle the profile was computed for [deg]
	XSurf    float64   // Total slant depth along the line of sight [g/cm^2]
	X        []float64 // Slant depth knots, strictly increasing, X[0]=0
	Rho      []float64 // Density knots, all positive

	spl interp.FritschButland
}

func newDensityProfile(thetaDeg float64, x, rho []float64) (*DensityProfile, error) {
	if len(x) < 2 || len(x) != len(rho) {
		return nil, fmt.Errorf("density profile needs matching x/rho vectors of length >= 2, got %d/%d", len(x), len(rho))
	}
	for i := range x {
		if i > 0 && !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("slant depth not strictly increasing at knot %d", i)
		}
		if !(rho[i] > 0.0) {
			return nil, fmt.Errorf("non-positive density %g at knot %d", rho[i], i)
		}
	}
	p := &DensityProfile{
		ThetaDeg: thetaDeg,
		XSurf:    x[len(x)-1],
		X:        x,
		Rho:      rho,
	}
	if err := p.spl.Fit(x, rho); err != nil {
		return nil, fmt.Errorf("fit density spline: %w", err)
	}
	return p, nil
}

// Density [g/cm^3] at slant depth x [g/cm^2]. Arguments outside
// [0, XSurf] are clamped to the domain boundary.
func (p *DensityProfile) RhoAt(x float64) float64 {
	if x < 0.0 {
		x = 0.0
	} else if x > p.XSurf {
		x = p.XSurf
	}
	return p.spl.Predict(x)
}

// Calculate a density profile for zenith angle thetaDeg [deg] by
// integrating the density of atm along the line of sight given by geom.
// nSteps path samples are taken; the depth integral for each sample is
// evaluated to the relative tolerance EPSQUAD. Pure function of its
// arguments, no caching.
func CalcDensityProfile(atm Atmosphere, geom *Geometry, thetaDeg float64, nSteps int) (*DensityProfile, error) {
	if atm == nil || geom == nil {
		return nil, fmt.Errorf("atmosphere model and geometry must be set")
	}
	if nSteps < 2 {
		return nil, fmt.Errorf("nSteps must be >= 2, got %d", nSteps)
	}
	log.Debug("calculating density spline", "theta", thetaDeg, "steps", nSteps)
	now := time.Now()

	thrad := ToRad(thetaDeg)
	pl := geom.PathLength(thrad)
	rhoL := func(dist float64) float64 {
		return atm.Density(geom.Height(dist, thrad))
	}
	dl := make([]float64, nSteps)
	floats.Span(dl, 0.0, pl)

	// The per-sample integrals are independent, only the prefix sum below
	// has to run in path order.
	seg := make([]float64, nSteps)
	rho := make([]float64, nSteps)
	rho[0] = rhoL(0.0)
	eg := new(errgroup.Group)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 1; i < nSteps; i++ {
		i := i
		eg.Go(func() error {
			seg[i] = adaptQuad(rhoL, dl[i-1], dl[i], EPSQUAD)
			rho[i] = rhoL(dl[i])
			return nil
		})
	}
	eg.Wait()

	x := make([]float64, nSteps)
	for i := 1; i < nSteps; i++ {
		x[i] = x[i-1] + seg[i]
	}

	p, err := newDensityProfile(thetaDeg, x, rho)
	if err != nil {
		return nil, err
	}

	// Spline residual over the knots, as a sanity figure
	ratio := make([]float64, nSteps)
	for i := range ratio {
		ratio[i] = rho[i] / p.spl.Predict(x[i])
	}
	log.Debug("density spline done",
		"theta", thetaDeg,
		"x_surf", p.XSurf,
		"spline_err", stat.StdDev(ratio, nil),
		"took", time.Since(now))
	return p, nil
}

// Check two profiles for bitwise equal knots. Used by the cache tests and
// handy when comparing a cached against a freshly built profile.
func (p *DensityProfile) Equal(q *DensityProfile) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.ThetaDeg != q.ThetaDeg || p.XSurf != q.XSurf || len(p.X) != len(q.X) {
		return false
	}
	return floats.Equal(p.X, q.X) && floats.Equal(p.Rho, q.Rho)
}
