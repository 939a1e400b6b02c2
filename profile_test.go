// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.27
//

package goatm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcDensityProfileVertical(t *testing.T) {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	p, err := CalcDensityProfile(atm, NewGeometry(), 0.0, NSPLINE)
	require.NoError(t, err)

	// Vertical column depth of the US standard atmosphere
	assert.InDelta(t, 1035.0, p.XSurf, 2.0)
	// Density at zero depth is the sea level density
	assert.InDelta(t, 1.225e-3, p.RhoAt(0.0), 1e-5)
	// Spline reproduces the analytic density at the surface knot
	assert.InEpsilon(t, atm.Density(0.0), p.RhoAt(0.0), 1e-9)
}

func TestCalcDensityProfileInclined(t *testing.T) {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	geom := NewGeometry()

	v, err := CalcDensityProfile(atm, geom, 0.0, 300)
	require.NoError(t, err)
	h, err := CalcDensityProfile(atm, geom, 90.0, 300)
	require.NoError(t, err)

	// The horizontal path is much longer than the vertical one
	assert.Greater(t, h.XSurf, v.XSurf)
	assert.Greater(t, h.XSurf, 10.0*v.XSurf)
}

func TestProfileMonotone(t *testing.T) {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	p, err := CalcDensityProfile(atm, NewGeometry(), 30.0, 300)
	require.NoError(t, err)

	// Density falls off with slant depth measured from the surface up.
	// Non-strict because the top layer of the parameterization has
	// constant density, so knots up there are exactly equal.
	for i := 1; i < len(p.X); i++ {
		assert.Greater(t, p.X[i], p.X[i-1], "knot %d", i)
		assert.LessOrEqual(t, p.Rho[i], p.Rho[i-1], "knot %d", i)
		assert.Greater(t, p.Rho[i], 0.0, "knot %d", i)
	}
	// And so does the interpolant between the knots
	prev := p.RhoAt(0.0)
	for i := 1; i <= 1000; i++ {
		r := p.RhoAt(float64(i) / 1000.0 * p.XSurf)
		assert.LessOrEqual(t, r, prev, "sample %d", i)
		prev = r
	}
}

func TestProfileDeterministic(t *testing.T) {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	geom := NewGeometry()
	p1, err := CalcDensityProfile(atm, geom, 45.0, 300)
	require.NoError(t, err)
	p2, err := CalcDensityProfile(atm, geom, 45.0, 300)
	require.NoError(t, err)
	assert.True(t, p1.Equal(p2), "profile build must be reproducible bit for bit")
}

func TestProfileClamp(t *testing.T) {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	p, err := CalcDensityProfile(atm, NewGeometry(), 0.0, 300)
	require.NoError(t, err)
	assert.Equal(t, p.RhoAt(0.0), p.RhoAt(-10.0))
	assert.Equal(t, p.RhoAt(p.XSurf), p.RhoAt(p.XSurf+100.0))
}

func TestCalcDensityProfileArgs(t *testing.T) {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	_, err = CalcDensityProfile(nil, NewGeometry(), 0.0, 100)
	assert.Error(t, err)
	_, err = CalcDensityProfile(atm, nil, 0.0, 100)
	assert.Error(t, err)
	_, err = CalcDensityProfile(atm, NewGeometry(), 0.0, 1)
	assert.Error(t, err)
}

func TestNewDensityProfileValidation(t *testing.T) {
	_, err := newDensityProfile(0.0, []float64{0.0}, []float64{1.0})
	assert.Error(t, err, "too few knots")
	_, err = newDensityProfile(0.0, []float64{0.0, 1.0}, []float64{1.0})
	assert.Error(t, err, "length mismatch")
	_, err = newDensityProfile(0.0, []float64{0.0, 1.0, 1.0}, []float64{3.0, 2.0, 1.0})
	assert.Error(t, err, "non-increasing depth")
	_, err = newDensityProfile(0.0, []float64{0.0, 1.0, 2.0}, []float64{3.0, 0.0, 1.0})
	assert.Error(t, err, "non-positive density")
}
