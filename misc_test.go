// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package goatm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDegToRad(t *testing.T) {
	assert.InEpsilon(t, PI, ToRad(180.0), 1e-15)
	assert.InEpsilon(t, 90.0, ToDeg(PI/2.0), 1e-15)
	assert.Equal(t, 0.0, ToRad(0.0))
}

func TestClosest(t *testing.T) {
	_, ok := closest(1.0, nil)
	assert.False(t, ok)

	v, ok := closest(30.4, []float64{10.0, 30.0, 31.0})
	assert.True(t, ok)
	assert.Equal(t, 30.0, v)

	v, _ = closest(30.6, []float64{10.0, 30.0, 31.0})
	assert.Equal(t, 31.0, v)
}
