package coord

// Helmert holds the seven parameters of a Helmert similarity transform:
// translations in meters, rotations in seconds of arc and scale in ppm.
type Helmert struct {
	Name       string
	TX, TY, TZ float64
	RX, RY, RZ float64
	S          float64
}

// Helmert parameter sets.
var (
	// WGS84ToOSGB36 produces heights "similar to" ODN heights.
	// From "A guide to coordinate systems in Great Britain".
	WGS84ToOSGB36 = Helmert{
		Name: "WGS84 to OSGB36",
		TX:   -446.448,
		TY:   125.157,
		TZ:   -542.060,
		RX:   -0.1502,
		RY:   -0.2470,
		RZ:   -0.8421,
		S:    20.4894,
	}

	// WGS84ToED50 as published for UK offshore use.
	WGS84ToED50 = Helmert{
		Name: "WGS84 to ED50",
		TX:   89.5,
		TY:   93.8,
		TZ:   123.1,
		RX:   0.0,
		RY:   0.0,
		RZ:   0.156,
		S:    -1.2,
	}

	// ETRF89ToIRL1975 from the OSi/OSNI transformation booklet.
	ETRF89ToIRL1975 = Helmert{
		Name: "ETRF89 to IRL1975",
		TX:   -482.530,
		TY:   130.596,
		TZ:   -564.557,
		RX:   -1.042,
		RY:   -0.214,
		RZ:   -0.631,
		S:    -8.150,
	}
)

// Helmerts maps datum pairs to their transform parameters.
var Helmerts = map[string]Helmert{
	WGS84ToOSGB36.Name:   WGS84ToOSGB36,
	WGS84ToED50.Name:     WGS84ToED50,
	ETRF89ToIRL1975.Name: ETRF89ToIRL1975,
}

// Apply transforms c using the small-angle approximation of the rotation matrix.
func (h Helmert) Apply(c Cartesian) Cartesian {
	s := 1 + h.S*1e-6
	rx := h.RX * arcSecToRad
	ry := h.RY * arcSecToRad
	rz := h.RZ * arcSecToRad

	return Cartesian{
		X: h.TX + c.X*s - c.Y*rz + c.Z*ry,
		Y: h.TY + c.X*rz + c.Y*s - c.Z*rx,
		Z: h.TZ - c.X*ry + c.Y*rx + c.Z*s,
	}
}

// Inverse returns the reverse transform by negating every parameter.
// It is a first-order inverse, accurate to millimeters for datum shifts of this size.
func (h Helmert) Inverse() Helmert {
	return Helmert{
		Name: "inverse " + h.Name,
		TX:   -h.TX,
		TY:   -h.TY,
		TZ:   -h.TZ,
		RX:   -h.RX,
		RY:   -h.RY,
		RZ:   -h.RZ,
		S:    -h.S,
	}
}
