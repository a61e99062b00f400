package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrOutsideGrid is returned by the single-line encoders when the record
// has no grid reference.
var ErrOutsideGrid = errors.New("location not within grid")

// Encoder renders a record.
type Encoder interface {
	// Encode writes the record to w.
	Encode(w io.Writer, r *Record) error

	// Format returns the format name (e.g. "text", "json").
	Format() string

	// ContentType returns the MIME type of the output.
	ContentType() string
}

// NewEncoder creates an encoder for the given format.
func NewEncoder(format string) (Encoder, error) {
	switch format {
	case "text", "txt":
		return &TextEncoder{}, nil
	case "json":
		return &JSONEncoder{Indent: "  "}, nil
	case "gridref":
		return &GridRefEncoder{}, nil
	case "en":
		return &EastingNorthingEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %q (supported: text, json, gridref, en)", format)
	}
}

// TextEncoder writes a human readable summary.
type TextEncoder struct{}

const accuracyNote = "Results only as accurate as your phone or camera."

func (e *TextEncoder) Encode(w io.Writer, r *Record) error {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%-12s%s\n", label, value)
	}
	sized := func(label, value, size string) {
		fmt.Fprintf(&b, "%-12s%-16s%s\n", label, value, size)
	}

	if r.File != "" {
		line("Filename:", r.File)
	}
	if r.Taken != "" {
		line("Date-time:", r.Taken)
	}
	if r.Camera != "" {
		line("Camera:", r.Camera)
	}
	b.WriteString("\n")

	line("Lat,Long:", fmt.Sprintf("%.6f, %.6f", r.Latitude, r.Longitude))
	line("", r.LatitudeDMS+", "+r.LongitudeDMS)
	if r.Altitude > 0 {
		line("Altitude:", fmt.Sprintf("%.0fm", r.Altitude))
	}
	b.WriteString("\n")

	if g := r.Grid; g != nil {
		line("System:", r.System)
		sized("10 Figure:", fmt.Sprintf("%s %05d %05d", g.Letters, g.Easting, g.Northing), "1m sq")
		sized("All Figure:", fmt.Sprintf("%06d,%06d", g.AllFigureEasting, g.AllFigureNorthing), "1m sq")
		sized("6 Figure:", g.SixFigure, "100m sq")
		sized("Monad:", g.Monad, "1km sq")
		sized("Tetrad:", g.Tetrad, "2km sq")
		sized("Hectad:", g.Hectad, "10km sq")
	} else {
		b.WriteString("Location not within grid\n")
	}

	if r.Links.StreetMap != "" {
		line("Map:", r.Links.StreetMap)
	} else {
		line("Map:", r.Links.OpenStreetMap)
	}

	b.WriteString("\n" + accuracyNote + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (e *TextEncoder) Format() string      { return "text" }
func (e *TextEncoder) ContentType() string { return "text/plain; charset=utf-8" }

// JSONEncoder writes the record as a JSON object.
type JSONEncoder struct {
	Indent string
}

func (e *JSONEncoder) Encode(w io.Writer, r *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

func (e *JSONEncoder) Format() string      { return "json" }
func (e *JSONEncoder) ContentType() string { return "application/json" }

// GridRefEncoder writes the ten-figure reference on one line, e.g. TF7225033650.
type GridRefEncoder struct{}

func (e *GridRefEncoder) Encode(w io.Writer, r *Record) error {
	if r.Grid == nil {
		return ErrOutsideGrid
	}
	_, err := fmt.Fprintln(w, r.Grid.TenFigure)
	return err
}

func (e *GridRefEncoder) Format() string      { return "gridref" }
func (e *GridRefEncoder) ContentType() string { return "text/plain; charset=utf-8" }

// EastingNorthingEncoder writes the all-figure easting and northing on one
// line, e.g. 572250,333650.
type EastingNorthingEncoder struct{}

func (e *EastingNorthingEncoder) Encode(w io.Writer, r *Record) error {
	if r.Grid == nil {
		return ErrOutsideGrid
	}
	_, err := fmt.Fprintf(w, "%06d,%06d\n", r.Grid.AllFigureEasting, r.Grid.AllFigureNorthing)
	return err
}

func (e *EastingNorthingEncoder) Format() string      { return "en" }
func (e *EastingNorthingEncoder) ContentType() string { return "text/plain; charset=utf-8" }
