package coord

import "math"

const (
	degToRad    = math.Pi / 180.0
	radToDeg    = 180.0 / math.Pi
	arcSecToRad = degToRad / 3600.0

	// unprojectTolerance stops the inverse footpoint-latitude iteration (meters of arc).
	unprojectTolerance = 1e-5
)

// TransverseMercator describes a Transverse Mercator projection: false origin
// easting/northing (meters), central meridian scale factor, true origin
// latitude/longitude (degrees) and the ellipsoid it is defined on.
type TransverseMercator struct {
	Name       string
	E0, N0     float64
	F0         float64
	Lat0, Lon0 float64
	Ellipsoid  Ellipsoid
}

// Transverse Mercator projections. Values from "A guide to coordinate systems in Great Britain".
var (
	NationalGrid = TransverseMercator{
		Name:      "OS National Grid",
		E0:        400000.0,
		N0:        -100000.0,
		F0:        0.9996012717,
		Lat0:      49.0,
		Lon0:      -2.0,
		Ellipsoid: Airy1830,
	}

	IrishNationalGrid = TransverseMercator{
		Name:      "Irish National Grid",
		E0:        200000.0,
		N0:        250000.0,
		F0:        1.000035,
		Lat0:      53.5,
		Lon0:      -8.0,
		Ellipsoid: Airy1830Modified,
	}

	UTMZone29 = utmZone("UTM zone 29", -9.0)
	UTMZone30 = utmZone("UTM zone 30", -3.0)
	UTMZone31 = utmZone("UTM zone 31", 3.0)
)

// Projections maps projection names to their parameters.
var Projections = map[string]TransverseMercator{
	NationalGrid.Name:      NationalGrid,
	IrishNationalGrid.Name: IrishNationalGrid,
	UTMZone29.Name:         UTMZone29,
	UTMZone30.Name:         UTMZone30,
	UTMZone31.Name:         UTMZone31,
}

func utmZone(name string, lon0 float64) TransverseMercator {
	return TransverseMercator{
		Name:      name,
		E0:        500000.0,
		N0:        0.0,
		F0:        0.9996,
		Lat0:      0.0,
		Lon0:      lon0,
		Ellipsoid: International1924,
	}
}

// EastingNorthing is a projected position in meters, with the ellipsoidal
// height carried through unchanged.
type EastingNorthing struct {
	E, N, H float64
}

// Rounded returns the position rounded to the nearest meter.
func (en EastingNorthing) Rounded() EastingNorthing {
	return EastingNorthing{E: math.Round(en.E), N: math.Round(en.N), H: en.H}
}

// constants returns the scaled axes, e² and n for the projection's ellipsoid.
func (tm TransverseMercator) constants() (af0, bf0, e2, n float64) {
	af0 = tm.Ellipsoid.A * tm.F0
	bf0 = tm.Ellipsoid.B * tm.F0
	e2 = (af0*af0 - bf0*bf0) / (af0 * af0)
	n = (af0 - bf0) / (af0 + bf0)
	return
}

// Project converts latitude/longitude (degrees) on the projection's ellipsoid
// to eastings and northings using the Redfearn series.
func (tm TransverseMercator) Project(lat, lon float64) EastingNorthing {
	af0, bf0, e2, n := tm.constants()

	phi := lat * degToRad
	phi0 := tm.Lat0 * degToRad
	p := (lon - tm.Lon0) * degToRad

	sinPhi, cosPhi := math.Sincos(phi)
	tan2 := math.Pow(math.Tan(phi), 2)
	tan4 := tan2 * tan2

	nu := af0 / math.Sqrt(1-e2*sinPhi*sinPhi)
	rho := nu * (1 - e2) / (1 - e2*sinPhi*sinPhi)
	eta2 := nu/rho - 1

	m := MeridionalArc(bf0, n, phi0, phi)

	i := m + tm.N0
	ii := (nu / 2) * sinPhi * cosPhi
	iii := (nu / 24) * sinPhi * math.Pow(cosPhi, 3) * (5 - tan2 + 9*eta2)
	iiiA := (nu / 720) * sinPhi * math.Pow(cosPhi, 5) * (61 - 58*tan2 + tan4)
	iv := nu * cosPhi
	v := (nu / 6) * math.Pow(cosPhi, 3) * (nu/rho - tan2)
	vi := (nu / 120) * math.Pow(cosPhi, 5) * (5 - 18*tan2 + tan4 + 14*eta2 - 58*tan2*eta2)

	return EastingNorthing{
		E: tm.E0 + p*iv + math.Pow(p, 3)*v + math.Pow(p, 5)*vi,
		N: i + p*p*ii + math.Pow(p, 4)*iii + math.Pow(p, 6)*iiiA,
	}
}

// Unproject converts eastings and northings back to latitude/longitude
// (degrees) on the projection's ellipsoid.
func (tm TransverseMercator) Unproject(e, n float64) (lat, lon float64) {
	af0, bf0, e2, nn := tm.constants()
	phi0 := tm.Lat0 * degToRad

	// Footpoint latitude.
	phi := (n-tm.N0)/af0 + phi0
	m := MeridionalArc(bf0, nn, phi0, phi)
	for i := 0; i < maxLatitudeIterations && math.Abs(n-tm.N0-m) >= unprojectTolerance; i++ {
		phi += (n - tm.N0 - m) / af0
		m = MeridionalArc(bf0, nn, phi0, phi)
	}

	sinPhi := math.Sin(phi)
	nu := af0 / math.Sqrt(1-e2*sinPhi*sinPhi)
	rho := nu * (1 - e2) / (1 - e2*sinPhi*sinPhi)
	eta2 := nu/rho - 1

	t := math.Tan(phi)
	t2, t4, t6 := t*t, math.Pow(t, 4), math.Pow(t, 6)
	sec := 1 / math.Cos(phi)

	vii := t / (2 * rho * nu)
	viii := t / (24 * rho * math.Pow(nu, 3)) * (5 + 3*t2 + eta2 - 9*t2*eta2)
	ix := t / (720 * rho * math.Pow(nu, 5)) * (61 + 90*t2 + 45*t4)
	x := sec / nu
	xi := sec / (6 * math.Pow(nu, 3)) * (nu/rho + 2*t2)
	xii := sec / (120 * math.Pow(nu, 5)) * (5 + 28*t2 + 24*t4)
	xiiA := sec / (5040 * math.Pow(nu, 7)) * (61 + 662*t2 + 1320*t4 + 720*t6)

	de := e - tm.E0
	lat = phi - vii*de*de + viii*math.Pow(de, 4) - ix*math.Pow(de, 6)
	lon = tm.Lon0*degToRad + x*de - xi*math.Pow(de, 3) + xii*math.Pow(de, 5) - xiiA*math.Pow(de, 7)
	return lat * radToDeg, lon * radToDeg
}

// MeridionalArc returns the length of the meridian arc from latitude phi0 to
// phi (both radians), given b·F0 in meters and n = (a-b)/(a+b).
//
// Coefficients are evaluated in floating point: 5/4, 21/8, 15/8 and 35/24
// must not collapse to integers.
func MeridionalArc(bf0, n, phi0, phi float64) float64 {
	n2 := n * n
	n3 := n2 * n
	dPhi := phi - phi0
	sPhi := phi + phi0

	ma := (1 + n + 5.0/4.0*n2 + 5.0/4.0*n3) * dPhi
	mb := (3*n + 3*n2 + 21.0/8.0*n3) * math.Sin(dPhi) * math.Cos(sPhi)
	mc := (15.0/8.0*n2 + 15.0/8.0*n3) * math.Sin(2*dPhi) * math.Cos(2*sPhi)
	md := 35.0 / 24.0 * n3 * math.Sin(3*dPhi) * math.Cos(3*sPhi)

	return bf0 * (ma - mb + mc - md)
}
