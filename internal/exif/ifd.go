package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// IFD0 and Exif sub-IFD tag IDs.
const (
	tagMake             = 0x010F
	tagModel            = 0x0110
	tagDateTime         = 0x0132
	tagExifIFDPointer   = 0x8769
	tagGPSIFDPointer    = 0x8825
	tagDateTimeOriginal = 0x9003
)

// TIFF data types.
const (
	dtByte      = 1
	dtASCII     = 2
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndef     = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
	dtFloat     = 11
	dtDouble    = 12
)

const (
	tiffHeaderSize = 8
	ifdEntrySize   = 12
	inlineSize     = 4
)

// tiffBlock is the TIFF structure embedded in an EXIF segment. All offsets
// are relative to its first byte.
type tiffBlock struct {
	data     []byte
	bo       binary.ByteOrder
	firstIFD uint32
}

// tiffEntry is a directory entry with its value bytes resolved.
type tiffEntry struct {
	Tag      uint16
	DataType uint16
	Count    uint32
	Value    []byte
}

func newTIFF(data []byte) (*tiffBlock, error) {
	if len(data) < tiffHeaderSize {
		return nil, fmt.Errorf("TIFF header: %d bytes: %w", len(data), ErrCorruptDirectory)
	}

	var bo binary.ByteOrder
	switch string(data[0:2]) {
	case "II":
		bo = binary.LittleEndian
	case "MM":
		bo = binary.BigEndian
	default:
		return nil, fmt.Errorf("invalid TIFF byte order %x: %w", data[0:2], ErrCorruptDirectory)
	}

	if magic := bo.Uint16(data[2:4]); magic != 42 {
		return nil, fmt.Errorf("invalid TIFF magic %d: %w", magic, ErrCorruptDirectory)
	}

	return &tiffBlock{
		data:     data,
		bo:       bo,
		firstIFD: bo.Uint32(data[4:8]),
	}, nil
}

// slice returns n bytes at off, or ErrCorruptDirectory if they are not all
// inside the block.
func (t *tiffBlock) slice(off, n uint64) ([]byte, error) {
	size := uint64(len(t.data))
	if off > size || n > size-off {
		return nil, fmt.Errorf("%d bytes at offset %d outside %d-byte block: %w", n, off, size, ErrCorruptDirectory)
	}
	return t.data[off : off+n], nil
}

// readIFD reads the directory at offset. Entries with an unknown data type
// are dropped.
func (t *tiffBlock) readIFD(offset uint32) ([]tiffEntry, error) {
	head, err := t.slice(uint64(offset), 2)
	if err != nil {
		return nil, fmt.Errorf("directory at %d: %w", offset, err)
	}
	n := uint64(t.bo.Uint16(head))

	raw, err := t.slice(uint64(offset)+2, n*ifdEntrySize)
	if err != nil {
		return nil, fmt.Errorf("directory at %d with %d entries: %w", offset, n, err)
	}

	entries := make([]tiffEntry, 0, n)
	for i := uint64(0); i < n; i++ {
		buf := raw[i*ifdEntrySize : (i+1)*ifdEntrySize]
		e := tiffEntry{
			Tag:      t.bo.Uint16(buf[0:2]),
			DataType: t.bo.Uint16(buf[2:4]),
			Count:    t.bo.Uint32(buf[4:8]),
		}

		size := dataTypeSize(e.DataType)
		if size == 0 {
			continue
		}

		total := uint64(e.Count) * uint64(size)
		if total <= inlineSize {
			e.Value = buf[8 : 8+total]
		} else {
			dataOffset := uint64(t.bo.Uint32(buf[8:12]))
			e.Value, err = t.slice(dataOffset, total)
			if err != nil {
				return nil, fmt.Errorf("tag 0x%04X value: %w", e.Tag, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// dataTypeSize returns the size of one value of the type, or 0 for types
// this package does not decode.
func dataTypeSize(dt uint16) int {
	switch dt {
	case dtByte, dtASCII, dtSByte, dtUndef:
		return 1
	case dtShort, dtSShort:
		return 2
	case dtLong, dtSLong, dtFloat:
		return 4
	case dtRational, dtSRational, dtDouble:
		return 8
	default:
		return 0
	}
}

// ascii returns the string value up to its first NUL. The result does not
// share memory with the image buffer.
func (e tiffEntry) ascii() string {
	if e.DataType != dtASCII && e.DataType != dtUndef {
		return ""
	}
	s := e.Value
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(string(s))
}

func (e tiffEntry) uint32Val(bo binary.ByteOrder) (uint32, bool) {
	if e.Count == 0 {
		return 0, false
	}
	switch e.DataType {
	case dtByte, dtUndef:
		return uint32(e.Value[0]), true
	case dtShort:
		return uint32(bo.Uint16(e.Value)), true
	case dtLong:
		return bo.Uint32(e.Value), true
	default:
		return 0, false
	}
}

// rationals decodes rational, integer or floating point values. A rational
// with a zero denominator decodes as 0.
func (e tiffEntry) rationals(bo binary.ByteOrder) []float64 {
	n := int(e.Count)
	size := dataTypeSize(e.DataType)
	result := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := e.Value[i*size : (i+1)*size]
		switch e.DataType {
		case dtRational:
			num, den := bo.Uint32(v[0:4]), bo.Uint32(v[4:8])
			if den == 0 {
				result = append(result, 0)
			} else {
				result = append(result, float64(num)/float64(den))
			}
		case dtSRational:
			num, den := int32(bo.Uint32(v[0:4])), int32(bo.Uint32(v[4:8]))
			if den == 0 {
				result = append(result, 0)
			} else {
				result = append(result, float64(num)/float64(den))
			}
		case dtShort:
			result = append(result, float64(bo.Uint16(v)))
		case dtLong:
			result = append(result, float64(bo.Uint32(v)))
		case dtFloat:
			result = append(result, float64(math.Float32frombits(bo.Uint32(v))))
		case dtDouble:
			result = append(result, math.Float64frombits(bo.Uint64(v)))
		default:
			return nil
		}
	}
	return result
}
