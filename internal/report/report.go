// Package report turns a routed photo location into a presentation record
// and renders it in the supported output formats.
package report

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/pspoerri/photogridref/internal/exif"
	"github.com/pspoerri/photogridref/internal/locate"
)

// SystemNone is the system name reported for positions outside both grids.
const SystemNone = "none"

// Record is everything reported for one photo.
type Record struct {
	File         string     `json:"file,omitempty"`
	Taken        string     `json:"taken,omitempty"`
	Camera       string     `json:"camera,omitempty"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	LatitudeDMS  string     `json:"latitude_dms"`
	LongitudeDMS string     `json:"longitude_dms"`
	Altitude     float64    `json:"altitude"`
	GPSTime      *time.Time `json:"gps_time,omitempty"`
	System       string     `json:"system"`
	Grid         *Grid      `json:"grid,omitempty"`
	Links        Links      `json:"links"`
}

// Grid is the grid reference at every supported resolution. Easting and
// Northing are within the lettered square; the all-figure values are
// measured from the false origin.
type Grid struct {
	Letters           string  `json:"letters"`
	Easting           int     `json:"easting"`
	Northing          int     `json:"northing"`
	AllFigureEasting  int     `json:"all_figure_easting"`
	AllFigureNorthing int     `json:"all_figure_northing"`
	Height            float64 `json:"height"`
	TenFigure         string  `json:"ten_figure"`
	SixFigure         string  `json:"six_figure"`
	Monad             string  `json:"monad"`
	Tetrad            string  `json:"tetrad"`
	Hectad            string  `json:"hectad"`
}

// New builds the record for a photo. name may be empty.
func New(name string, loc *exif.Location, res *locate.Result) *Record {
	r := &Record{
		Taken:        loc.Taken(),
		Camera:       camera(loc.Make, loc.Model),
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		LatitudeDMS:  formatDMS(loc.LatitudeDMS, hemisphere(loc.LatitudeRef, loc.Latitude, "N", "S")),
		LongitudeDMS: formatDMS(loc.LongitudeDMS, hemisphere(loc.LongitudeRef, loc.Longitude, "E", "W")),
		Altitude:     finiteOrZero(loc.Altitude),
		System:       SystemNone,
	}
	if name != "" {
		r.File = filepath.Base(name)
	}
	if !loc.GPSTime.IsZero() {
		t := loc.GPSTime
		r.GPSTime = &t
	}

	ref := res.Reference
	if ref.Valid() {
		r.System = systemName(res.System)
		r.Grid = &Grid{
			Letters:           ref.Code,
			Easting:           int(ref.E),
			Northing:          int(ref.N),
			AllFigureEasting:  int(res.Rounded.E),
			AllFigureNorthing: int(res.Rounded.N),
			Height:            ref.H,
			TenFigure:         ref.TenFigure(),
			SixFigure:         ref.SixFigure(),
			Monad:             ref.Monad(),
			Tetrad:            ref.Tetrad(),
			Hectad:            ref.Hectad(),
		}
	}
	r.Links = NewLinks(r.Latitude, r.Longitude, r.Grid, res.System)
	return r
}

func systemName(s locate.System) string {
	switch s {
	case locate.SystemGreatBritain:
		return "Great Britain"
	case locate.SystemIreland:
		return "Ireland"
	default:
		return SystemNone
	}
}

// camera joins make and model, skipping the make when the model already
// starts with it ("Canon" + "Canon EOS 5D").
func camera(manufacturer, model string) string {
	if strings.HasPrefix(model, manufacturer) {
		return model
	}
	return strings.TrimSpace(manufacturer + " " + model)
}

// hemisphere prefers the recorded reference letter and falls back to the
// sign of the decimal value.
func hemisphere(ref string, v float64, pos, neg string) string {
	if ref != "" {
		return ref
	}
	if v < 0 {
		return neg
	}
	return pos
}

func formatDMS(d exif.DMS, ref string) string {
	return fmt.Sprintf("%.0f°%.0f'%.2f\"%s", d.Degrees, d.Minutes, d.Seconds, ref)
}

// finiteOrZero matches the altitude locate.Locate projects with; JSON has no
// encoding for NaN or infinities.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
