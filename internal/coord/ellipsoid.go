package coord

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence is returned when the latitude iteration in FromCartesian
// fails to settle. It indicates a programming error or non-finite input,
// never a user-facing condition.
var ErrNoConvergence = errors.New("latitude iteration did not converge")

const (
	// latitudeTolerance is the stopping criterion for the latitude iteration, in radians.
	latitudeTolerance = 1e-9
	// maxLatitudeIterations caps the fixed-point iteration. Real coordinates settle in 2-4 steps.
	maxLatitudeIterations = 100
)

// Ellipsoid is a reference ellipsoid given by its semi-major (A) and
// semi-minor (B) axes in meters.
type Ellipsoid struct {
	Name string
	A    float64
	B    float64
}

// Reference ellipsoids. Values from "A guide to coordinate systems in Great Britain".
var (
	WGS84             = Ellipsoid{Name: "WGS84", A: 6378137.000, B: 6356752.3141}
	Airy1830          = Ellipsoid{Name: "Airy 1830", A: 6377563.396, B: 6356256.910}
	Airy1830Modified  = Ellipsoid{Name: "Airy 1830 Modified", A: 6377340.189, B: 6356034.447}
	International1924 = Ellipsoid{Name: "International 1924", A: 6378388.000, B: 6356911.946}
)

// Ellipsoids maps ellipsoid names to their parameters.
var Ellipsoids = map[string]Ellipsoid{
	WGS84.Name:             WGS84,
	Airy1830.Name:          Airy1830,
	Airy1830Modified.Name:  Airy1830Modified,
	International1924.Name: International1924,
}

// EccentricitySquared returns e² = (a² - b²) / a².
func (el Ellipsoid) EccentricitySquared() float64 {
	return (el.A*el.A - el.B*el.B) / (el.A * el.A)
}

// primeVerticalRadius returns nu, the radius of curvature in the prime vertical at phi (radians).
func (el Ellipsoid) primeVerticalRadius(phi float64) float64 {
	s := math.Sin(phi)
	return el.A / math.Sqrt(1-el.EccentricitySquared()*s*s)
}

// Cartesian is an earth-centred, earth-fixed 3D position in meters.
type Cartesian struct {
	X, Y, Z float64
}

// ToCartesian converts geodetic latitude/longitude (degrees) and ellipsoidal
// height (meters) on the given ellipsoid to Cartesian coordinates.
func ToCartesian(lat, lon, height float64, el Ellipsoid) Cartesian {
	phi := lat * degToRad
	lambda := lon * degToRad
	e2 := el.EccentricitySquared()
	nu := el.primeVerticalRadius(phi)

	return Cartesian{
		X: (nu + height) * math.Cos(phi) * math.Cos(lambda),
		Y: (nu + height) * math.Cos(phi) * math.Sin(lambda),
		Z: ((1-e2)*nu + height) * math.Sin(phi),
	}
}

// FromCartesian converts Cartesian coordinates back to latitude/longitude
// (degrees) and ellipsoidal height (meters) on the given ellipsoid.
//
// Latitude is found by fixed-point iteration starting from
// atan2(z, p(1-e²)); it stops once successive estimates differ by less than
// 1e-9 rad.
func FromCartesian(c Cartesian, el Ellipsoid) (lat, lon, height float64, err error) {
	e2 := el.EccentricitySquared()
	p := math.Hypot(c.X, c.Y)

	phi := math.Atan2(c.Z, p*(1-e2))
	converged := false
	for i := 0; i < maxLatitudeIterations; i++ {
		nu := el.primeVerticalRadius(phi)
		next := math.Atan2(c.Z+e2*nu*math.Sin(phi), p)
		delta := math.Abs(next - phi)
		phi = next
		if delta < latitudeTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, 0, fmt.Errorf("from cartesian (%f, %f, %f) on %s: %w", c.X, c.Y, c.Z, el.Name, ErrNoConvergence)
	}

	nu := el.primeVerticalRadius(phi)
	height = p/math.Cos(phi) - nu

	return phi * radToDeg, math.Atan2(c.Y, c.X) * radToDeg, height, nil
}
