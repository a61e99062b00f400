package exif

import (
	"encoding/binary"
	"testing"

	"github.com/pspoerri/photogridref/internal/exif/exiftest"
)

func plainJPEG(t *testing.T) []byte {
	t.Helper()
	return exiftest.JPEG(t)
}

func withSegments(t *testing.T, segments ...[]byte) []byte {
	t.Helper()
	return exiftest.JPEG(t, segments...)
}

// fixtureBuilder describes a photo taken in north Norfolk at
// 52.872747351908075, 0.5578569871674302.
func fixtureBuilder(bo binary.ByteOrder) *exiftest.Builder {
	b := &exiftest.Builder{ByteOrder: bo}
	b.IFD0 = []exiftest.Entry{
		b.ASCII(tagMake, "Canon"),
		b.ASCII(tagModel, "Canon EOS 5D"),
		b.ASCII(tagDateTime, "2023:06:01 12:00:00"),
	}
	b.Exif = []exiftest.Entry{
		b.ASCII(tagDateTimeOriginal, "2023:05:31 10:15:42"),
	}
	b.GPS = []exiftest.Entry{
		b.ASCII(tagGPSLatitudeRef, "N"),
		b.Rational(tagGPSLatitude, 52, 1, 52, 1, 21890467, 1000000),
		b.ASCII(tagGPSLongitudeRef, "E"),
		b.Rational(tagGPSLongitude, 0, 1, 33, 1, 28285154, 1000000),
		b.Byte(tagGPSAltitudeRef, 0),
		b.Rational(tagGPSAltitude, 1250, 100),
		b.Rational(tagGPSTimeStamp, 9, 1, 15, 1, 40, 1),
		b.ASCII(tagGPSDateStamp, "2023:05:31"),
	}
	return b
}
