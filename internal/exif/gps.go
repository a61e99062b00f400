package exif

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// GPS IFD tag IDs.
const (
	tagGPSLatitudeRef  = 0x0001
	tagGPSLatitude     = 0x0002
	tagGPSLongitudeRef = 0x0003
	tagGPSLongitude    = 0x0004
	tagGPSAltitudeRef  = 0x0005
	tagGPSAltitude     = 0x0006
	tagGPSTimeStamp    = 0x0007
	tagGPSDateStamp    = 0x001D
)

const gpsDateLayout = "2006:01:02"

// decodeGPS fills loc from the entries of a GPS IFD.
func decodeGPS(entries []tiffEntry, bo binary.ByteOrder, loc *Location) error {
	var (
		haveLat, haveLon bool
		altRef           uint32
		timeOfDay        []float64
		dateStamp        string
	)

	for _, e := range entries {
		switch e.Tag {
		case tagGPSLatitudeRef:
			loc.LatitudeRef = e.ascii()
		case tagGPSLatitude:
			loc.LatitudeDMS, haveLat = toDMS(e.rationals(bo))
		case tagGPSLongitudeRef:
			loc.LongitudeRef = e.ascii()
		case tagGPSLongitude:
			loc.LongitudeDMS, haveLon = toDMS(e.rationals(bo))
		case tagGPSAltitudeRef:
			altRef, _ = e.uint32Val(bo)
		case tagGPSAltitude:
			if v := e.rationals(bo); len(v) > 0 {
				loc.Altitude = v[0]
			}
		case tagGPSTimeStamp:
			timeOfDay = e.rationals(bo)
		case tagGPSDateStamp:
			dateStamp = e.ascii()
		}
	}

	if !haveLat || !haveLon {
		return fmt.Errorf("latitude or longitude missing: %w", ErrNoGPSData)
	}

	loc.Latitude = loc.LatitudeDMS.Decimal()
	if loc.LatitudeRef == "S" {
		loc.Latitude = -math.Abs(loc.Latitude)
	}
	loc.Longitude = loc.LongitudeDMS.Decimal()
	if loc.LongitudeRef == "W" {
		loc.Longitude = -math.Abs(loc.Longitude)
	}
	if math.IsNaN(loc.Altitude) || math.IsInf(loc.Altitude, 0) {
		loc.Altitude = 0
	}
	if altRef == 1 {
		loc.Altitude = -math.Abs(loc.Altitude)
	}

	if loc.Latitude == 0 && loc.Longitude == 0 {
		return fmt.Errorf("position is 0,0: %w", ErrNoGPSData)
	}

	loc.GPSTime = gpsTime(dateStamp, timeOfDay)
	return nil
}

// toDMS takes up to three degree, minute and second components.
func toDMS(v []float64) (DMS, bool) {
	var d DMS
	if len(v) == 0 {
		return d, false
	}
	d.Degrees = v[0]
	if len(v) > 1 {
		d.Minutes = v[1]
	}
	if len(v) > 2 {
		d.Seconds = v[2]
	}
	return d, true
}

func gpsTime(date string, timeOfDay []float64) time.Time {
	day, err := time.ParseInLocation(gpsDateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}
	}
	scale := [3]float64{3600, 60, 1}
	var secs float64
	for i, v := range timeOfDay {
		if i >= len(scale) {
			break
		}
		secs += v * scale[i]
	}
	return day.Add(time.Duration(secs * float64(time.Second)))
}
