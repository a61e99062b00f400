package exif

import (
	"bytes"
	"fmt"
)

// JPEG markers.
const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerSOS    = 0xDA
	markerEOI    = 0xD9
	markerAPP1   = 0xE1
	markerTEM    = 0x01
	markerRST0   = 0xD0
	markerRST7   = 0xD7
)

var exifHeader = []byte("Exif\x00\x00")

// findExif walks the JPEG marker segments up to the first scan and returns
// the TIFF block of the first EXIF APP1 segment, or nil if there is none.
func findExif(buf []byte) ([]byte, error) {
	if len(buf) < 4 {
		return nil, ErrEmptyOrTruncated
	}
	if buf[0] != markerPrefix || buf[1] != markerSOI || buf[2] != markerPrefix {
		return nil, ErrNotAnImage
	}

	pos := 2
	for pos < len(buf) {
		if buf[pos] != markerPrefix {
			// Lost marker sync; nothing more can be found reliably.
			return nil, nil
		}
		for pos < len(buf) && buf[pos] == markerPrefix {
			pos++
		}
		if pos >= len(buf) {
			return nil, nil
		}

		marker := buf[pos]
		pos++

		switch {
		case marker == markerSOS || marker == markerEOI:
			return nil, nil
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			continue
		}

		if pos+2 > len(buf) {
			return nil, fmt.Errorf("segment 0x%02X length at offset %d: %w", marker, pos, ErrEmptyOrTruncated)
		}
		length := int(buf[pos])<<8 | int(buf[pos+1])
		if length < 2 {
			return nil, fmt.Errorf("segment 0x%02X at offset %d has length %d: %w", marker, pos, length, ErrCorruptDirectory)
		}
		if pos+length > len(buf) {
			return nil, fmt.Errorf("segment 0x%02X at offset %d runs past end of data: %w", marker, pos, ErrEmptyOrTruncated)
		}

		payload := buf[pos+2 : pos+length]
		if marker == markerAPP1 && bytes.HasPrefix(payload, exifHeader) {
			return payload[len(exifHeader):], nil
		}
		pos += length
	}
	return nil, nil
}
