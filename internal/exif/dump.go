package exif

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag is one decoded directory entry, for diagnostics.
type Tag struct {
	Directory string // "IFD0", "Exif" or "GPS"
	ID        uint16
	Type      uint16
	Count     uint32
	Value     string
}

// Name returns the tag's name for the tags this package understands, or its
// hexadecimal ID.
func (t Tag) Name() string {
	if t.Directory == "GPS" {
		if n, ok := gpsTagNames[t.ID]; ok {
			return n
		}
	} else if n, ok := tagNames[t.ID]; ok {
		return n
	}
	return fmt.Sprintf("0x%04X", t.ID)
}

var tagNames = map[uint16]string{
	tagMake:             "Make",
	tagModel:            "Model",
	tagDateTime:         "DateTime",
	tagExifIFDPointer:   "ExifIFDPointer",
	tagGPSIFDPointer:    "GPSIFDPointer",
	tagDateTimeOriginal: "DateTimeOriginal",
}

var gpsTagNames = map[uint16]string{
	tagGPSLatitudeRef:  "GPSLatitudeRef",
	tagGPSLatitude:     "GPSLatitude",
	tagGPSLongitudeRef: "GPSLongitudeRef",
	tagGPSLongitude:    "GPSLongitude",
	tagGPSAltitudeRef:  "GPSAltitudeRef",
	tagGPSAltitude:     "GPSAltitude",
	tagGPSTimeStamp:    "GPSTimeStamp",
	tagGPSDateStamp:    "GPSDateStamp",
}

type directory struct {
	name   string
	offset uint32
}

// maxDumpBytes caps how much of a byte-typed value Dump renders.
const maxDumpBytes = 16

// Dump lists every entry of IFD0 and of the Exif and GPS sub-IFDs it points
// to. Unlike Parse it does not require GPS data.
func Dump(buf []byte) ([]Tag, error) {
	block, err := findExif(buf)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, nil
	}

	t, err := newTIFF(block)
	if err != nil {
		return nil, err
	}

	var tags []Tag
	dirs := []directory{{"IFD0", t.firstIFD}}

	for i := 0; i < len(dirs); i++ {
		entries, err := t.readIFD(dirs[i].offset)
		if err != nil {
			return tags, fmt.Errorf("reading %s: %w", dirs[i].name, err)
		}
		for _, e := range entries {
			tags = append(tags, Tag{
				Directory: dirs[i].name,
				ID:        e.Tag,
				Type:      e.DataType,
				Count:     e.Count,
				Value:     formatValue(e, t),
			})
			if dirs[i].name != "IFD0" {
				continue
			}
			off, ok := e.uint32Val(t.bo)
			if !ok || off == 0 {
				continue
			}
			switch e.Tag {
			case tagExifIFDPointer:
				dirs = append(dirs, directory{"Exif", off})
			case tagGPSIFDPointer:
				dirs = append(dirs, directory{"GPS", off})
			}
		}
	}
	return tags, nil
}

func formatValue(e tiffEntry, t *tiffBlock) string {
	switch e.DataType {
	case dtASCII:
		return strconv.Quote(e.ascii())
	case dtByte, dtUndef, dtSByte:
		v := e.Value
		suffix := ""
		if len(v) > maxDumpBytes {
			v, suffix = v[:maxDumpBytes], "..."
		}
		return fmt.Sprintf("% x%s", v, suffix)
	case dtSShort:
		parts := make([]string, 0, e.Count)
		for i := 0; i < int(e.Count); i++ {
			parts = append(parts, strconv.Itoa(int(int16(t.bo.Uint16(e.Value[i*2:])))))
		}
		return strings.Join(parts, " ")
	case dtSLong:
		parts := make([]string, 0, e.Count)
		for i := 0; i < int(e.Count); i++ {
			parts = append(parts, strconv.Itoa(int(int32(t.bo.Uint32(e.Value[i*4:])))))
		}
		return strings.Join(parts, " ")
	default:
		vals := e.rationals(t.bo)
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strings.Join(parts, " ")
	}
}
