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

// ------------------------------------
// Mini functions
// ------------------------------------

func SQ(x float64) float64 {
	return x * x
}

func ToDeg(rad float64) float64 {
	return rad / PI * 180.0
}

func ToRad(deg float64) float64 {
	return deg / 180.0 * PI
}

// Return the element of vals closest to target.
// ok is false when vals is empty.
func closest(target float64, vals []float64) (v float64, ok bool) {
	if len(vals) == 0 {
		return 0, false
	}
	v = vals[0]
	for _, c := range vals[1:] {
		if math.Abs(c-target) < math.Abs(v-target) {
			v = c
		}
	}
	return v, true
}
