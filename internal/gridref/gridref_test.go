package gridref

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeNationalGrid(t *testing.T) {
	ref := Encode(572250, 333650, -46.52, NationalGrid)
	require.True(t, ref.Valid())
	assert.Equal(t, "TF", ref.Code)
	assert.InDelta(t, 72250, ref.E, 1e-9)
	assert.InDelta(t, 33650, ref.N, 1e-9)
	assert.InDelta(t, -46.52, ref.H, 1e-9)
}

func TestEncodeSquareCodes(t *testing.T) {
	tests := []struct {
		name string
		e, n float64
		sys  System
		code string
	}{
		{"origin", 0, 0, NationalGrid, "SV"},
		{"lincolnshire", 572250, 333650, NationalGrid, "TF"},
		{"wrexham", 332150, 345650, NationalGrid, "SJ"},
		{"london", 530029, 180380, NationalGrid, "TQ"},
		{"shetland", 447297, 1140915, NationalGrid, "HU"},
		{"cornwall", 134622, 25472, NationalGrid, "SW"},
		{"north east corner", 699999, 1299999, NationalGrid, "JM"},
		{"dublin", 315885, 234673, IrishGrid, "O"},
		{"belfast", 333811, 374071, IrishGrid, "J"},
		{"waterford", 268719, 83541, IrishGrid, "X"},
		{"cork", 167702, 72048, IrishGrid, "W"},
		{"donegal", 225517, 439262, IrishGrid, "C"},
		{"irish origin", 0, 0, IrishGrid, "V"},
		{"irish north east", 499999, 499999, IrishGrid, "E"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := Encode(tt.e, tt.n, 0, tt.sys)
			assert.Equal(t, tt.code, ref.Code)
			assert.Len(t, ref.Code, tt.sys.Letters)
		})
	}
}

func TestEncodeOutsideGrid(t *testing.T) {
	tests := []struct {
		name string
		e, n float64
		sys  System
	}{
		{"negative easting", -1, 100, NationalGrid},
		{"negative northing", 100, -0.5, NationalGrid},
		{"too far east", 700000, 100, NationalGrid},
		{"too far north", 100, 1300000, NationalGrid},
		{"irish too far east", 500000, 100, IrishGrid},
		{"irish too far north", 100, 500000, IrishGrid},
		{"nan", math.NaN(), 100, NationalGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := Encode(tt.e, tt.n, 0, tt.sys)
			assert.False(t, ref.Valid())
			assert.Equal(t, Reference{}, ref)
			assert.Empty(t, ref.TenFigure())
			assert.Empty(t, ref.Tetrad())
		})
	}
}

func TestEncodeResidual(t *testing.T) {
	// Residual is within [0, SquareSize) and the square plus residual
	// reconstructs the input.
	for _, v := range [][2]float64{{0, 0}, {99999.9, 12.5}, {100000, 100000}, {612345.6, 1234567.8}} {
		ref := Encode(v[0], v[1], 0, NationalGrid)
		require.True(t, ref.Valid(), "%v", v)
		assert.GreaterOrEqual(t, ref.E, 0.0)
		assert.Less(t, ref.E, SquareSize)
		assert.GreaterOrEqual(t, ref.N, 0.0)
		assert.Less(t, ref.N, SquareSize)
		assert.InDelta(t, v[0], float64(Truncate(v[0], SquareSize))*SquareSize+ref.E, 1e-6)
		assert.InDelta(t, v[1], float64(Truncate(v[1], SquareSize))*SquareSize+ref.N, 1e-6)
	}
}

func TestFormats(t *testing.T) {
	ref := Encode(572250, 333650, 0, NationalGrid)

	assert.Equal(t, "TF7225033650", ref.TenFigure())
	assert.Equal(t, "TF72253365", ref.Figures(8))
	assert.Equal(t, "TF722336", ref.SixFigure())
	assert.Equal(t, "TF7233", ref.Monad())
	assert.Equal(t, "TF73G", ref.Tetrad())
	assert.Equal(t, "TF73", ref.Hectad())

	assert.Empty(t, ref.Figures(0))
	assert.Empty(t, ref.Figures(5))
	assert.Empty(t, ref.Figures(12))
}

func TestFormatsZeroPadded(t *testing.T) {
	ref := Encode(300500, 301050, 0, NationalGrid)
	assert.Equal(t, "SJ0050001050", ref.TenFigure())
	assert.Equal(t, "SJ005010", ref.SixFigure())
	assert.Equal(t, "SJ0001", ref.Monad())
	assert.Equal(t, "SJ00A", ref.Tetrad())
	assert.Equal(t, "SJ00", ref.Hectad())
}

func TestFormatsIreland(t *testing.T) {
	ref := Encode(315885, 234673, 0, IrishGrid)
	assert.Equal(t, "O1588534673", ref.TenFigure())
	assert.Equal(t, "O158346", ref.SixFigure())
	assert.Equal(t, "O1534", ref.Monad())
	assert.Equal(t, "O13", ref.Hectad())
	assert.Equal(t, "O13M", ref.Tetrad())
}

func TestTetrads(t *testing.T) {
	tests := []struct {
		e, n   float64
		tetrad string
	}{
		{330500, 340500, "SJ34A"},
		{333500, 341500, "SJ34F"},
		{332150, 345650, "SJ34H"},
		{339999, 349999, "SJ34Z"},
	}
	for _, tt := range tests {
		ref := Encode(tt.e, tt.n, 0, NationalGrid)
		assert.Equal(t, tt.tetrad, ref.Tetrad())
	}
}

func TestTetradLetterAt(t *testing.T) {
	tests := []struct {
		col, row int
		want     byte
	}{
		{0, 0, 'A'},
		{0, 4, 'E'},
		{1, 0, 'F'},
		{2, 3, 'N'},
		{2, 4, 'P'}, // index 14 skips O
		{3, 0, 'Q'},
		{4, 4, 'Z'},
		{-1, 0, NoTetrad},
		{0, 5, NoTetrad},
		{5, 5, NoTetrad},
	}
	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(TetradLetterAt(tt.col, tt.row)), "(%d,%d)", tt.col, tt.row)
	}
}

func TestTetradLetterNeverO(t *testing.T) {
	seen := map[byte]bool{}
	for e := 0; e < 10; e++ {
		for n := 0; n < 10; n++ {
			l := TetradLetter(e, n)
			assert.NotEqual(t, byte('O'), l)
			assert.NotEqual(t, byte(NoTetrad), l)
			seen[l] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestTetradLetterKilometres(t *testing.T) {
	assert.Equal(t, "G", string(TetradLetter(72, 33)))
	assert.Equal(t, "Z", string(TetradLetter(8, 9)))
	assert.Equal(t, "A", string(TetradLetter(1, 1)))
	assert.Equal(t, "A", string(TetradLetter(130, 470)))
	assert.Equal(t, string(NoTetrad), string(TetradLetter(-2, 0)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, 72, Truncate(72250, 1000))
	assert.Equal(t, 7, Truncate(72250, 10000))
	assert.Equal(t, 0, Truncate(99999.99, SquareSize))
	assert.Equal(t, 5, Truncate(572250, SquareSize))
	assert.Equal(t, -1, Truncate(-0.5, 1000))
}
