// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.12
//

package goatm

const (
	PI   = 3.1415926535897932 // Pi
	RE   = 6.391e8            // Earth's radius for shower geometry [cm]
	HATM = 1.128e7            // Top of the atmosphere [cm]
)

const (
	NLAYER  = 5    // Layers of the CORSIKA-style parameterization
	NSPLINE = 1000 // Path samples used when fitting a density spline
	EPSQUAD = 0.01 // Relative tolerance of the slant depth quadrature
	TOLDEG  = 1.0  // Zenith angle tolerance of the spline cache [deg]
)
