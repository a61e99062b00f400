// Package locate routes a WGS-84 position to the British or Irish national
// grid and runs the matching datum shift, projection and grid encoding.
package locate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pspoerri/photogridref/internal/coord"
	"github.com/pspoerri/photogridref/internal/exif"
	"github.com/pspoerri/photogridref/internal/gridref"
)

// ErrInvalidPosition is returned for latitudes or longitudes that are not
// finite or lie outside their valid range.
var ErrInvalidPosition = errors.New("invalid position")

// Irish grid bounding box, exclusive on all sides.
const (
	irelandMinLat = 51.2
	irelandMaxLat = 55.73
	irelandMinLon = -12.2
	irelandMaxLon = -4.8
)

// Level 1 shift from a WGS-84 projection onto the Irish Grid, in meters.
const (
	irishLevel1DE = 49.0
	irishLevel1DN = -23.4
)

// System identifies the national grid a position was routed to.
type System int

const (
	SystemGreatBritain System = iota + 1
	SystemIreland
)

func (s System) String() string {
	switch s {
	case SystemGreatBritain:
		return "GB"
	case SystemIreland:
		return "Ireland"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Grid returns the lettering used by the system.
func (s System) Grid() gridref.System {
	if s == SystemIreland {
		return gridref.IrishGrid
	}
	return gridref.NationalGrid
}

// IrishLevel selects the accuracy of the WGS-84 to Irish Grid conversion.
type IrishLevel int

const (
	// IrishLevel1 projects WGS-84 coordinates directly and applies a fixed
	// offset. Good to a few meters.
	IrishLevel1 IrishLevel = iota + 1
	// IrishLevel2 applies the ETRF89 to Ireland 1975 Helmert transform first.
	IrishLevel2
)

// ParseIrishLevel parses "1" or "2".
func ParseIrishLevel(s string) (IrishLevel, error) {
	switch s {
	case "1":
		return IrishLevel1, nil
	case "2":
		return IrishLevel2, nil
	default:
		return 0, fmt.Errorf("unknown Irish grid level %q (supported: 1, 2)", s)
	}
}

func (l IrishLevel) String() string {
	return fmt.Sprintf("level %d", int(l))
}

// Options controls routing.
type Options struct {
	IrishLevel IrishLevel   // zero means IrishLevel1
	Logger     *slog.Logger // nil disables logging
}

// Result is a routed and encoded position. A Reference that is not Valid
// means the position lies outside the lettered area of its grid.
type Result struct {
	System    System
	Projected coord.EastingNorthing
	Rounded   coord.EastingNorthing
	Reference gridref.Reference
}

// IsIreland reports whether the position falls in the Irish Grid box.
func IsIreland(lat, lon float64) bool {
	return lat > irelandMinLat && lat < irelandMaxLat &&
		lon > irelandMinLon && lon < irelandMaxLon
}

// Route converts a photo's GPS location to a grid reference.
func Route(loc *exif.Location, opts Options) (*Result, error) {
	if loc == nil {
		return nil, fmt.Errorf("nil location: %w", ErrInvalidPosition)
	}
	return Locate(loc.Latitude, loc.Longitude, loc.Altitude, opts)
}

// Locate converts a WGS-84 latitude, longitude (degrees) and altitude
// (meters) to a grid reference.
func Locate(lat, lon, alt float64, opts Options) (*Result, error) {
	if !finite(lat) || !finite(lon) || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return nil, fmt.Errorf("%v,%v: %w", lat, lon, ErrInvalidPosition)
	}
	if !finite(alt) {
		alt = 0
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	res := &Result{System: SystemGreatBritain}
	if IsIreland(lat, lon) {
		res.System = SystemIreland
	}

	var err error
	switch res.System {
	case SystemIreland:
		res.Projected, err = projectIrish(lat, lon, opts.IrishLevel)
	default:
		res.Projected, err = coord.DatumShiftAndProject(lat, lon, alt, coord.WGS84ToOSGB36, coord.NationalGrid)
	}
	if err != nil {
		return nil, fmt.Errorf("projecting %v,%v: %w", lat, lon, err)
	}

	res.Rounded = res.Projected.Rounded()
	res.Reference = gridref.Encode(res.Rounded.E, res.Rounded.N, res.Rounded.H, res.System.Grid())

	log.Debug("routed position",
		slog.Float64("lat", lat),
		slog.Float64("lon", lon),
		slog.String("system", res.System.String()),
		slog.Float64("easting", res.Rounded.E),
		slog.Float64("northing", res.Rounded.N),
		slog.String("reference", res.Reference.TenFigure()))

	return res, nil
}

// projectIrish runs the Irish pipeline. Heights are not carried.
func projectIrish(lat, lon float64, level IrishLevel) (coord.EastingNorthing, error) {
	switch level {
	case 0, IrishLevel1:
		en := coord.IrishNationalGrid.Project(lat, lon)
		en.E += irishLevel1DE
		en.N += irishLevel1DN
		return en, nil
	case IrishLevel2:
		en, err := coord.DatumShiftAndProject(lat, lon, 0, coord.ETRF89ToIRL1975, coord.IrishNationalGrid)
		if err != nil {
			return coord.EastingNorthing{}, err
		}
		en.H = 0
		return en, nil
	default:
		return coord.EastingNorthing{}, fmt.Errorf("unknown Irish grid level %d", int(level))
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
