package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pspoerri/photogridref/internal/coord"
	"github.com/pspoerri/photogridref/internal/exif"
	"github.com/pspoerri/photogridref/internal/locate"
	"github.com/pspoerri/photogridref/internal/source"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: exifinfo <photo.jpg>\n")
		os.Exit(1)
	}

	if err := run(os.Stdout, os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, path string) error {
	img, err := source.Open(path, 0)
	if err != nil {
		return err
	}
	defer img.Close()

	fmt.Fprintf(w, "File: %s\n", img.Path)
	fmt.Fprintf(w, "Size: %d bytes\n", len(img.Data))

	tags, err := exif.Dump(img.Data)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Fprintf(w, "No EXIF segment\n")
		return nil
	}

	dir := ""
	for _, t := range tags {
		if t.Directory != dir {
			dir = t.Directory
			fmt.Fprintf(w, "\n  %s:\n", dir)
		}
		fmt.Fprintf(w, "    %-18s type=%-2d count=%-4d %s\n", t.Name(), t.Type, t.Count, t.Value)
	}

	loc, err := exif.Parse(img.Data)
	if errors.Is(err, exif.ErrNoGPSData) {
		fmt.Fprintf(w, "\nNo GPS position\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	fmt.Fprintf(w, "\nLatitude:  %.8f (%v %s)\n", loc.Latitude, loc.LatitudeDMS, loc.LatitudeRef)
	fmt.Fprintf(w, "Longitude: %.8f (%v %s)\n", loc.Longitude, loc.LongitudeDMS, loc.LongitudeRef)
	fmt.Fprintf(w, "Altitude:  %.2fm\n", loc.Altitude)
	if !loc.GPSTime.IsZero() {
		fmt.Fprintf(w, "GPS time:  %s\n", loc.GPSTime.Format(time.RFC3339))
	}
	if taken := loc.Taken(); taken != "" {
		fmt.Fprintf(w, "Taken:     %s\n", taken)
	}

	// Both Irish levels, to show how far apart they land.
	for _, level := range []locate.IrishLevel{locate.IrishLevel1, locate.IrishLevel2} {
		res, err := locate.Route(loc, locate.Options{IrishLevel: level})
		if err != nil {
			fmt.Fprintf(w, "Route (%v): ERROR: %v\n", level, err)
			continue
		}
		ref := res.Reference.TenFigure()
		if !res.Reference.Valid() {
			ref = "outside grid"
		}
		fmt.Fprintf(w, "Route (%v): %v E=%.3f N=%.3f H=%.3f %s\n", level, res.System,
			res.Projected.E, res.Projected.N, res.Projected.H, ref)
		if res.System != locate.SystemIreland {
			break
		}
	}

	fmt.Fprintf(w, "\nProjections:\n")
	for _, code := range []int{4326, 3857, 27700, 29903} {
		proj := coord.ForEPSG(code)
		x, y := proj.FromWGS84(loc.Longitude, loc.Latitude)
		lon, lat := proj.ToWGS84(x, y)
		fmt.Fprintf(w, "  EPSG:%-5d x=%.3f y=%.3f (back to %.6f, %.6f)\n", proj.EPSG(), x, y, lat, lon)
	}
	return nil
}
