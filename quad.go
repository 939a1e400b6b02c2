// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

package goatm

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Integrate f over [a,b] to the given relative tolerance by doubling the
// number of Gauss-Legendre nodes until two successive estimates agree.
func adaptQuad(f func(float64) float64, a, b, epsrel float64) float64 {
	if a == b {
		return 0.0
	}
	const n0 = 8
	const nMax = 4096
	prev := quad.Fixed(f, a, b, n0, quad.Legendre{}, 0)
	for n := 2 * n0; n <= nMax; n *= 2 {
		cur := quad.Fixed(f, a, b, n, quad.Legendre{}, 0)
		if math.Abs(cur-prev) <= epsrel*math.Abs(cur) {
			return cur
		}
		prev = cur
	}
	return prev
}
