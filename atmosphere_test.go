// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package goatm

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Atmosphere = (*CorsikaAtm)(nil)
	_ Atmosphere = (*IsaAtm)(nil)
	_ CacheKeyer = (*CorsikaAtm)(nil)
	_ CacheKeyer = (*IsaAtm)(nil)
)

func usStdCascade(t *testing.T, cache *SplineCache) *CascadeAtm {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	c, err := NewCascadeAtm(atm, NewGeometry(), cache)
	require.NoError(t, err)
	return c
}

func TestNewCascadeAtmArgs(t *testing.T) {
	atm, err := NewCorsikaAtm("USStd", "")
	require.NoError(t, err)
	_, err = NewCascadeAtm(nil, NewGeometry(), nil)
	assert.Error(t, err)
	_, err = NewCascadeAtm(atm, nil, nil)
	assert.Error(t, err)
}

func TestSetThetaEndToEnd(t *testing.T) {
	c := usStdCascade(t, nil)
	require.NoError(t, c.SetTheta(0.0))

	assert.Equal(t, 0.0, c.ThetaDeg())
	assert.InDelta(t, 1035.0, c.XSurf(), 2.0)
	assert.InDelta(t, 1.225e-3, c.X2Rho(0.0), 1e-5)
	assert.InEpsilon(t, 1.0/c.X2Rho(100.0), c.RX2Rho(100.0), 1e-12)

	xV := c.XSurf()
	require.NoError(t, c.SetTheta(90.0))
	assert.Greater(t, c.XSurf(), xV, "horizontal path must accumulate more depth")
}

func TestSetThetaIdempotent(t *testing.T) {
	c := usStdCascade(t, nil)
	require.NoError(t, c.SetTheta(20.0))
	p := c.prof
	require.NoError(t, c.SetTheta(20.0))
	assert.Same(t, p, c.prof, "repeated SetTheta must not recompute")
}

func TestSetThetaServedAngleFromCache(t *testing.T) {
	cache := NewSplineCache(filepath.Join(t.TempDir(), "atm_cache.yaml"))

	c := usStdCascade(t, cache)
	require.NoError(t, c.SetTheta(30.0))
	xs := c.XSurf()

	// A second facade sharing the store gets the stored profile, and the
	// active angle is the stored one, not the requested one.
	c2 := usStdCascade(t, cache)
	require.NoError(t, c2.SetTheta(30.5))
	assert.Equal(t, 30.0, c2.ThetaDeg())
	assert.Equal(t, ToRad(30.0), c2.ThetaRad())
	assert.Equal(t, xs, c2.XSurf())
}

func TestQueriesBeforeSetTheta(t *testing.T) {
	c := usStdCascade(t, nil)
	assert.True(t, math.IsNaN(c.X2Rho(100.0)))
	assert.True(t, math.IsNaN(c.RX2Rho(100.0)))
	assert.Equal(t, 0.0, c.XSurf())
}

func TestX2RhoClampedToDomain(t *testing.T) {
	c := usStdCascade(t, nil)
	require.NoError(t, c.SetTheta(0.0))
	assert.Equal(t, c.X2Rho(0.0), c.X2Rho(-1.0))
	assert.Equal(t, c.X2Rho(c.XSurf()), c.X2Rho(c.XSurf()+500.0))
}

func TestOpticalQuantities(t *testing.T) {
	c := usStdCascade(t, nil)

	rho0 := c.Density(0.0)
	assert.InEpsilon(t, 9.3/(rho0*100.0), c.MoliereAir(0.0), 1e-12)
	assert.InDelta(t, 75.6, c.MoliereAir(0.0), 0.2, "Moliere unit at sea level [cm]")

	assert.InEpsilon(t, 0.000283, c.NrefRelAir(0.0), 1e-12, "normalized to sea level")
	assert.Less(t, c.NrefRelAir(1.0e6), c.NrefRelAir(0.0))

	assert.InDelta(t, 42.0, c.GammaCherenkov(0.0), 0.2)
	assert.InDelta(t, 1.36, c.ThetaCherenkov(0.0), 0.01, "Cherenkov angle at sea level [deg]")
	// Thinner air, smaller angle
	assert.Less(t, c.ThetaCherenkov(1.0e6), c.ThetaCherenkov(0.0))
}

// The facade must work with any density model, not only the CORSIKA one.
func TestCascadeWithIsaAtm(t *testing.T) {
	c, err := NewCascadeAtm(NewIsaAtm(), NewGeometry(), nil)
	require.NoError(t, err)
	require.NoError(t, c.SetTheta(0.0))

	// Hydrostatic column depth of the standard atmosphere, P0/g
	assert.InDelta(t, 1033.0, c.XSurf(), 10.0)
	assert.InDelta(t, 1.225e-3, c.X2Rho(0.0), 1e-5)
}
