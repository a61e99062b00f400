// Package exiftest builds synthetic JPEG images with EXIF metadata for
// tests.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"testing"
)

// TIFF data types written by Builder.
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeSRational = 10
	TypeDouble    = 12
)

// Tags the builder adds or that callers commonly need.
const (
	TagMake             = 0x010F
	TagModel            = 0x0110
	TagDateTime         = 0x0132
	TagExifIFDPointer   = 0x8769
	TagGPSIFDPointer    = 0x8825
	TagDateTimeOriginal = 0x9003

	TagGPSLatitudeRef  = 0x0001
	TagGPSLatitude     = 0x0002
	TagGPSLongitudeRef = 0x0003
	TagGPSLongitude    = 0x0004
	TagGPSAltitudeRef  = 0x0005
	TagGPSAltitude     = 0x0006
	TagGPSTimeStamp    = 0x0007
	TagGPSDateStamp    = 0x001D
)

const (
	headerSize = 8
	entrySize  = 12
	inlineSize = 4
)

// Entry is a directory entry. Values longer than four bytes are moved to
// the data area by Builder.TIFF.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Value []byte
}

// Builder assembles an EXIF TIFF block: header, IFD0, optional Exif and
// GPS sub-IFDs, then the out-of-line values. Sub-IFD pointers are added to
// IFD0 when Exif or GPS is non-nil.
type Builder struct {
	ByteOrder binary.ByteOrder
	IFD0      []Entry
	Exif      []Entry
	GPS       []Entry
}

func (b *Builder) ASCII(tag uint16, s string) Entry {
	v := append([]byte(s), 0)
	return Entry{tag, TypeASCII, uint32(len(v)), v}
}

// Rational takes numerator/denominator pairs.
func (b *Builder) Rational(tag uint16, pairs ...uint32) Entry {
	v := make([]byte, 4*len(pairs))
	for i, p := range pairs {
		b.ByteOrder.PutUint32(v[i*4:], p)
	}
	return Entry{tag, TypeRational, uint32(len(pairs) / 2), v}
}

// SRational takes signed numerator/denominator pairs.
func (b *Builder) SRational(tag uint16, pairs ...int32) Entry {
	v := make([]byte, 4*len(pairs))
	for i, p := range pairs {
		b.ByteOrder.PutUint32(v[i*4:], uint32(p))
	}
	return Entry{tag, TypeSRational, uint32(len(pairs) / 2), v}
}

func (b *Builder) Double(tag uint16, val float64) Entry {
	v := make([]byte, 8)
	b.ByteOrder.PutUint64(v, math.Float64bits(val))
	return Entry{tag, TypeDouble, 1, v}
}

func (b *Builder) Short(tag, val uint16) Entry {
	v := make([]byte, 2)
	b.ByteOrder.PutUint16(v, val)
	return Entry{tag, TypeShort, 1, v}
}

func (b *Builder) Long(tag uint16, val uint32) Entry {
	v := make([]byte, 4)
	b.ByteOrder.PutUint32(v, val)
	return Entry{tag, TypeLong, 1, v}
}

func (b *Builder) Byte(tag uint16, val byte) Entry {
	return Entry{tag, TypeByte, 1, []byte{val}}
}

// Degrees encodes an unsigned angle as degree, minute and second rationals
// with the seconds to a millionth.
func (b *Builder) Degrees(tag uint16, v float64) Entry {
	v = math.Abs(v)
	d := math.Floor(v)
	m := math.Floor((v - d) * 60)
	s := math.Round(((v-d)*60 - m) * 60 * 1e6)
	return b.Rational(tag, uint32(d), 1, uint32(m), 1, uint32(s), 1e6)
}

// TIFF returns the encoded block.
func (b *Builder) TIFF() []byte {
	dirSize := func(n int) int { return 2 + entrySize*n + 4 }

	ifd0 := append([]Entry(nil), b.IFD0...)
	n0 := len(ifd0)
	if b.Exif != nil {
		n0++
	}
	if b.GPS != nil {
		n0++
	}
	exifOff := headerSize + dirSize(n0)
	gpsOff := exifOff
	if b.Exif != nil {
		gpsOff += dirSize(len(b.Exif))
	}

	dirs := [][]Entry{nil}
	if b.Exif != nil {
		ifd0 = append(ifd0, b.Long(TagExifIFDPointer, uint32(exifOff)))
		dirs = append(dirs, b.Exif)
	}
	if b.GPS != nil {
		ifd0 = append(ifd0, b.Long(TagGPSIFDPointer, uint32(gpsOff)))
		dirs = append(dirs, b.GPS)
	}
	dirs[0] = ifd0

	dataOff := headerSize
	for _, d := range dirs {
		dataOff += dirSize(len(d))
	}

	var out, data []byte
	put16 := func(v uint16) {
		var buf [2]byte
		b.ByteOrder.PutUint16(buf[:], v)
		out = append(out, buf[:]...)
	}
	put32 := func(v uint32) {
		var buf [4]byte
		b.ByteOrder.PutUint32(buf[:], v)
		out = append(out, buf[:]...)
	}

	if b.ByteOrder == binary.LittleEndian {
		out = append(out, 'I', 'I')
	} else {
		out = append(out, 'M', 'M')
	}
	put16(42)
	put32(headerSize)

	for _, d := range dirs {
		put16(uint16(len(d)))
		for _, e := range d {
			put16(e.Tag)
			put16(e.Type)
			put32(e.Count)
			if len(e.Value) <= inlineSize {
				var field [4]byte
				copy(field[:], e.Value)
				out = append(out, field[:]...)
				continue
			}
			put32(uint32(dataOff + len(data)))
			data = append(data, e.Value...)
			if len(data)%2 == 1 {
				data = append(data, 0)
			}
		}
		put32(0)
	}
	return append(out, data...)
}

// Segment builds a JPEG marker segment with the given payload.
func Segment(marker byte, payload []byte) []byte {
	n := len(payload) + 2
	return append([]byte{0xFF, marker, byte(n >> 8), byte(n)}, payload...)
}

// APP1 wraps a TIFF block in an EXIF APP1 segment.
func APP1(tiff []byte) []byte {
	return Segment(0xE1, append([]byte("Exif\x00\x00"), tiff...))
}

// JPEG encodes a small image and inserts segments directly after its SOI
// marker.
func JPEG(t testing.TB, segments ...[]byte) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}

	enc := buf.Bytes()
	out := append([]byte(nil), enc[:2]...)
	for _, s := range segments {
		out = append(out, s...)
	}
	return append(out, enc[2:]...)
}

// Photo returns a JPEG whose GPS block records the given WGS-84 position.
// alt below zero is stored with the below-sea-level reference.
func Photo(t testing.TB, lat, lon, alt float64) []byte {
	t.Helper()
	b := &Builder{ByteOrder: binary.BigEndian}
	latRef, lonRef := "N", "E"
	if lat < 0 {
		latRef = "S"
	}
	if lon < 0 {
		lonRef = "W"
	}
	var altRef byte
	if alt < 0 {
		altRef = 1
	}
	b.IFD0 = []Entry{
		b.ASCII(TagMake, "Test"),
		b.ASCII(TagModel, "Test Camera"),
		b.ASCII(TagDateTime, "2024:04:01 09:30:00"),
	}
	b.GPS = []Entry{
		b.ASCII(TagGPSLatitudeRef, latRef),
		b.Degrees(TagGPSLatitude, lat),
		b.ASCII(TagGPSLongitudeRef, lonRef),
		b.Degrees(TagGPSLongitude, lon),
		b.Byte(TagGPSAltitudeRef, altRef),
		b.Rational(TagGPSAltitude, uint32(math.Round(math.Abs(alt)*100)), 100),
	}
	return JPEG(t, APP1(b.TIFF()))
}
