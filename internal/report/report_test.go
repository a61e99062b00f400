package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspoerri/photogridref/internal/exif"
	"github.com/pspoerri/photogridref/internal/locate"
)

func fixtureLocation() *exif.Location {
	return &exif.Location{
		Latitude:         52.872747351908075,
		Longitude:        0.5578569871674302,
		Altitude:         12.5,
		LatitudeRef:      "N",
		LongitudeRef:     "E",
		LatitudeDMS:      exif.DMS{Degrees: 52, Minutes: 52, Seconds: 21.890467},
		LongitudeDMS:     exif.DMS{Degrees: 0, Minutes: 33, Seconds: 28.285154},
		GPSTime:          time.Date(2023, 5, 31, 9, 15, 40, 0, time.UTC),
		DateTime:         "2023:06:01 12:00:00",
		DateTimeOriginal: "2023:05:31 10:15:42",
		Make:             "Canon",
		Model:            "Canon EOS 5D",
	}
}

func fixtureRecord(t *testing.T) *Record {
	t.Helper()
	loc := fixtureLocation()
	res, err := locate.Route(loc, locate.Options{})
	require.NoError(t, err)
	return New("/photos/2023/IMG_0001.jpg", loc, res)
}

func TestNew(t *testing.T) {
	r := fixtureRecord(t)

	assert.Equal(t, "IMG_0001.jpg", r.File)
	assert.Equal(t, "2023:05:31 10:15:42", r.Taken)
	assert.Equal(t, "Canon EOS 5D", r.Camera)
	assert.Equal(t, `52°52'21.89"N`, r.LatitudeDMS)
	assert.Equal(t, `0°33'28.29"E`, r.LongitudeDMS)
	assert.InDelta(t, 12.5, r.Altitude, 1e-9)
	require.NotNil(t, r.GPSTime)
	assert.Equal(t, time.Date(2023, 5, 31, 9, 15, 40, 0, time.UTC), *r.GPSTime)
	assert.Equal(t, "Great Britain", r.System)

	require.NotNil(t, r.Grid)
	assert.Equal(t, Grid{
		Letters:           "TF",
		Easting:           72250,
		Northing:          33650,
		AllFigureEasting:  572250,
		AllFigureNorthing: 333650,
		Height:            r.Grid.Height,
		TenFigure:         "TF7225033650",
		SixFigure:         "TF722336",
		Monad:             "TF7233",
		Tetrad:            "TF73G",
		Hectad:            "TF73",
	}, *r.Grid)
	assert.InDelta(t, -34.02, r.Grid.Height, 0.05)

	assert.Equal(t, "https://streetmap.co.uk/map.srf?X=572250&Y=333650&A=Y&Z=115", r.Links.StreetMap)
	assert.Equal(t, "https://www.openstreetmap.org/?mlat=52.872747&mlon=0.557857#map=15/52.872747/0.557857", r.Links.OpenStreetMap)
	assert.Equal(t, "https://tile.openstreetmap.org/15/16434/10693.png", r.Links.Tile)
}

func TestNewIreland(t *testing.T) {
	loc := &exif.Location{Latitude: 53.3498, Longitude: -6.2603}
	res, err := locate.Route(loc, locate.Options{})
	require.NoError(t, err)

	r := New("", loc, res)
	assert.Empty(t, r.File)
	assert.Equal(t, "Ireland", r.System)
	require.NotNil(t, r.Grid)
	assert.Equal(t, "O", r.Grid.Letters)
	assert.Equal(t, "O1588534673", r.Grid.TenFigure)
	assert.Equal(t, `0°0'0.00"W`, r.LongitudeDMS)
	assert.Empty(t, r.Links.StreetMap)
	assert.Equal(t, "https://tile.openstreetmap.org/15/15814/10621.png", r.Links.Tile)
	assert.Nil(t, r.GPSTime)
}

func TestNewOutsideGrid(t *testing.T) {
	loc := &exif.Location{Latitude: 48.8566, Longitude: 2.3522, Make: "Apple", Model: "iPhone 15"}
	res, err := locate.Route(loc, locate.Options{})
	require.NoError(t, err)

	r := New("paris.jpg", loc, res)
	assert.Equal(t, SystemNone, r.System)
	assert.Nil(t, r.Grid)
	assert.Equal(t, "Apple iPhone 15", r.Camera)
	assert.Empty(t, r.Links.StreetMap)
	assert.NotEmpty(t, r.Links.OpenStreetMap)
}

func TestNewNonFiniteAltitude(t *testing.T) {
	for _, alt := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		loc := fixtureLocation()
		loc.Altitude = alt
		res, err := locate.Route(loc, locate.Options{})
		require.NoError(t, err)

		r := New("", loc, res)
		assert.Zero(t, r.Altitude, "%v", alt)

		var buf bytes.Buffer
		require.NoError(t, (&JSONEncoder{}).Encode(&buf, r), "%v", alt)
		assert.Contains(t, buf.String(), `"altitude":0`)
	}
}

func TestNewEncoder(t *testing.T) {
	tests := []struct {
		format  string
		wantFmt string
		wantErr bool
	}{
		{"text", "text", false},
		{"txt", "text", false},
		{"json", "json", false},
		{"gridref", "gridref", false},
		{"en", "en", false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			enc, err := NewEncoder(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFmt, enc.Format())
			assert.NotEmpty(t, enc.ContentType())
		})
	}
}

func TestTextEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextEncoder{}).Encode(&buf, fixtureRecord(t)))

	want := strings.Join([]string{
		"Filename:   IMG_0001.jpg",
		"Date-time:  2023:05:31 10:15:42",
		"Camera:     Canon EOS 5D",
		"",
		"Lat,Long:   52.872747, 0.557857",
		`            52°52'21.89"N, 0°33'28.29"E`,
		"Altitude:   12m",
		"",
		"System:     Great Britain",
		"10 Figure:  TF 72250 33650  1m sq",
		"All Figure: 572250,333650   1m sq",
		"6 Figure:   TF722336        100m sq",
		"Monad:      TF7233          1km sq",
		"Tetrad:     TF73G           2km sq",
		"Hectad:     TF73            10km sq",
		"Map:        https://streetmap.co.uk/map.srf?X=572250&Y=333650&A=Y&Z=115",
		"",
		"Results only as accurate as your phone or camera.",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestTextEncoderOutsideGrid(t *testing.T) {
	loc := &exif.Location{Latitude: 40.4168, Longitude: -3.7038, Altitude: -5}
	res, err := locate.Route(loc, locate.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&TextEncoder{}).Encode(&buf, New("", loc, res)))
	out := buf.String()
	assert.Contains(t, out, "Location not within grid\n")
	assert.Contains(t, out, "Map:        https://www.openstreetmap.org/")
	assert.NotContains(t, out, "Altitude:")
	assert.NotContains(t, out, "Filename:")
	assert.NotContains(t, out, "System:")
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&buf, fixtureRecord(t)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Great Britain", got["system"])
	assert.Equal(t, "2023-05-31T09:15:40Z", got["gps_time"])

	grid, ok := got["grid"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "TF7225033650", grid["ten_figure"])
	assert.InDelta(t, 572250, grid["all_figure_easting"], 0)

	links, ok := got["links"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, links["streetmap"], "X=572250&Y=333650&A=Y")
}

func TestSingleLineEncoders(t *testing.T) {
	r := fixtureRecord(t)

	var buf bytes.Buffer
	require.NoError(t, (&GridRefEncoder{}).Encode(&buf, r))
	assert.Equal(t, "TF7225033650\n", buf.String())

	buf.Reset()
	require.NoError(t, (&EastingNorthingEncoder{}).Encode(&buf, r))
	assert.Equal(t, "572250,333650\n", buf.String())

	outside := &Record{System: SystemNone}
	assert.ErrorIs(t, (&GridRefEncoder{}).Encode(&buf, outside), ErrOutsideGrid)
	assert.ErrorIs(t, (&EastingNorthingEncoder{}).Encode(&buf, outside), ErrOutsideGrid)
}

func TestEastingNorthingPadding(t *testing.T) {
	r := &Record{Grid: &Grid{AllFigureEasting: 30500, AllFigureNorthing: 1140915}}
	var buf bytes.Buffer
	require.NoError(t, (&EastingNorthingEncoder{}).Encode(&buf, r))
	assert.Equal(t, "030500,1140915\n", buf.String())
}
