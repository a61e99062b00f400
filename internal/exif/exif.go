// Package exif extracts GPS position and capture metadata from the EXIF
// block of a JPEG image held in memory.
package exif

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Parse failures. Callers match them with errors.Is.
var (
	ErrEmptyOrTruncated = errors.New("image data is empty or truncated")
	ErrNotAnImage       = errors.New("not a JPEG image")
	ErrCorruptDirectory = errors.New("corrupt EXIF directory")
	ErrNoGPSData        = errors.New("no GPS data")
)

// DMS is an angle as recorded by the camera: degrees, minutes and seconds.
type DMS struct {
	Degrees float64
	Minutes float64
	Seconds float64
}

// Decimal returns the unsigned angle in decimal degrees.
func (d DMS) Decimal() float64 {
	return d.Degrees + d.Minutes/60 + d.Seconds/3600
}

// Location is the GPS fix and capture metadata of a photograph.
// Latitude and Longitude are WGS-84 decimal degrees, negative south and west.
// Altitude is meters above sea level, zero when the image does not record it.
type Location struct {
	Latitude  float64
	Longitude float64
	Altitude  float64

	LatitudeRef  string // "N" or "S", empty when not recorded
	LongitudeRef string // "E" or "W", empty when not recorded
	LatitudeDMS  DMS
	LongitudeDMS DMS

	// GPSTime is the UTC time of the fix; zero unless the image carries a
	// GPS date stamp.
	GPSTime time.Time

	DateTime         string // IFD0 DateTime, "YYYY:MM:DD HH:MM:SS"
	DateTimeOriginal string
	Make             string
	Model            string
}

// Taken returns the capture date-time, preferring the original exposure time
// over the file modification time recorded in IFD0.
func (l *Location) Taken() string {
	if l.DateTimeOriginal != "" {
		return l.DateTimeOriginal
	}
	return l.DateTime
}

// Parse decodes the EXIF block of a JPEG image and returns its GPS location.
// The buffer is not modified or retained.
func Parse(buf []byte) (*Location, error) {
	block, err := findExif(buf)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, fmt.Errorf("no EXIF segment: %w", ErrNoGPSData)
	}

	t, err := newTIFF(block)
	if err != nil {
		return nil, err
	}

	ifd0, err := t.readIFD(t.firstIFD)
	if err != nil {
		return nil, fmt.Errorf("reading IFD0: %w", err)
	}

	loc := &Location{}
	var exifIFD, gpsIFD uint32
	for _, e := range ifd0 {
		switch e.Tag {
		case tagMake:
			loc.Make = e.ascii()
		case tagModel:
			loc.Model = e.ascii()
		case tagDateTime:
			loc.DateTime = e.ascii()
		case tagExifIFDPointer:
			exifIFD, _ = e.uint32Val(t.bo)
		case tagGPSIFDPointer:
			gpsIFD, _ = e.uint32Val(t.bo)
		}
	}

	if exifIFD != 0 {
		entries, err := t.readIFD(exifIFD)
		if err != nil {
			return nil, fmt.Errorf("reading Exif IFD: %w", err)
		}
		for _, e := range entries {
			if e.Tag == tagDateTimeOriginal {
				loc.DateTimeOriginal = e.ascii()
			}
		}
	}

	if gpsIFD == 0 {
		return nil, fmt.Errorf("no GPS IFD: %w", ErrNoGPSData)
	}
	entries, err := t.readIFD(gpsIFD)
	if err != nil {
		return nil, fmt.Errorf("reading GPS IFD: %w", err)
	}
	if err := decodeGPS(entries, t.bo, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// DMSFromDecimal splits an angle in decimal degrees into unsigned degrees,
// minutes and seconds.
func DMSFromDecimal(v float64) DMS {
	v = math.Abs(v)
	d := math.Floor(v)
	m := math.Floor((v - d) * 60)
	return DMS{
		Degrees: d,
		Minutes: m,
		Seconds: ((v-d)*60 - m) * 60,
	}
}
