package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Worked example from "A guide to coordinate systems in Great Britain", annex B.
const (
	guideLat    = 52 + 39.0/60 + 27.2531/3600
	guideLon    = 1 + 43.0/60 + 4.5177/3600
	guideHeight = 24.7
)

func TestToCartesian_GuideExample(t *testing.T) {
	c := ToCartesian(guideLat, guideLon, guideHeight, Airy1830)

	assert.InDelta(t, 3874938.849, c.X, 0.001)
	assert.InDelta(t, 116218.624, c.Y, 0.001)
	assert.InDelta(t, 5047168.208, c.Z, 0.001)
}

func TestFromCartesian_RoundTrip(t *testing.T) {
	points := []struct {
		name          string
		lat, lon, hgt float64
	}{
		{"guide example", guideLat, guideLon, guideHeight},
		{"london", 51.5074, -0.1278, 35},
		{"shetland", 60.15, -1.15, 0},
		{"dublin", 53.3498, -6.2603, 12},
		{"southern hemisphere", -33.8688, 151.2093, 58},
		{"below ellipsoid", 52.0, 1.0, -50},
	}

	for _, el := range []Ellipsoid{WGS84, Airy1830, Airy1830Modified, International1924} {
		for _, pt := range points {
			t.Run(el.Name+"/"+pt.name, func(t *testing.T) {
				c := ToCartesian(pt.lat, pt.lon, pt.hgt, el)
				lat, lon, hgt, err := FromCartesian(c, el)
				require.NoError(t, err)

				assert.InDelta(t, pt.lat, lat, 1e-8)
				assert.InDelta(t, pt.lon, lon, 1e-8)
				assert.InDelta(t, pt.hgt, hgt, 1e-3)
			})
		}
	}
}

func TestFromCartesian_NonFiniteInput(t *testing.T) {
	_, _, _, err := FromCartesian(Cartesian{X: math.NaN(), Y: 0, Z: 1}, WGS84)

	require.ErrorIs(t, err, ErrNoConvergence)
}

func TestEllipsoidTable(t *testing.T) {
	require.Len(t, Ellipsoids, 4)
	for name, el := range Ellipsoids {
		assert.Equal(t, name, el.Name)
		assert.Greater(t, el.A, el.B, "%s: semi-major axis must exceed semi-minor", name)
	}
	assert.InDelta(t, 0.00669438, WGS84.EccentricitySquared(), 1e-8)
}
