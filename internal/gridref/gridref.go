// Package gridref encodes projected eastings and northings as letter-coded
// national grid references and derives the coarser references used in
// biological recording (monads, tetrads and hectads).
package gridref

import (
	"fmt"
	"math"
	"strings"
)

// SquareSize is the side of a lettered grid square in meters.
const SquareSize = 100000.0

// letters is the 5x5 lettering square used by both grids: A-Z without I,
// filled row by row from the north-west corner.
const letters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// NoTetrad is returned by TetradLetter for positions outside a hectad.
const NoTetrad = '?'

// System describes how a national grid letters its 100 km squares.
type System struct {
	Name    string
	Letters int  // letters per square code: 1 or 2
	Origin  byte // letter of the square holding the false origin
	Width   int  // 100 km squares east of the false origin
	Height  int  // 100 km squares north of the false origin
}

// Grid systems.
var (
	// NationalGrid is the Ordnance Survey National Grid over England, Scotland and Wales.
	NationalGrid = System{Name: "Great Britain", Letters: 2, Origin: 'S', Width: 7, Height: 13}
	// IrishGrid is the Irish National Grid over Ireland and Northern Ireland.
	IrishGrid = System{Name: "Ireland", Letters: 1, Origin: 'V', Width: 5, Height: 5}
)

// Reference is a grid reference: the square's letter code plus the
// easting/northing within that square and the height carried alongside.
// The zero Reference has no code and means the point lies outside the grid.
type Reference struct {
	Code string
	E, N float64
	H    float64
}

// Valid reports whether the reference lies inside its grid's lettered area.
func (r Reference) Valid() bool {
	return r.Code != ""
}

// Encode converts an easting/northing (meters) into a grid reference.
// Points outside the system's lettered squares yield the zero Reference.
func Encode(e, n, h float64, sys System) Reference {
	col := math.Floor(e / SquareSize)
	row := math.Floor(n / SquareSize)
	if math.IsNaN(col) || math.IsNaN(row) ||
		col < 0 || row < 0 || col >= float64(sys.Width) || row >= float64(sys.Height) {
		return Reference{}
	}

	code, ok := sys.squareCode(int(col), int(row))
	if !ok {
		return Reference{}
	}

	return Reference{
		Code: code,
		E:    math.Mod(e, SquareSize),
		N:    math.Mod(n, SquareSize),
		H:    h,
	}
}

// squareCode returns the letter code for the 100 km square at (col, row)
// counted from the false origin.
func (s System) squareCode(col, row int) (string, bool) {
	oc, or, ok := letterPosition(s.Origin)
	if !ok {
		return "", false
	}

	switch s.Letters {
	case 1:
		l, ok := letterAt(oc+col, or+row)
		if !ok {
			return "", false
		}
		return string(l), true
	case 2:
		// First letter picks the 500 km square, second the 100 km square inside it.
		major, ok := letterAt(oc+col/5, or+row/5)
		if !ok {
			return "", false
		}
		minor, _ := letterAt(col%5, row%5)
		return string([]byte{major, minor}), true
	default:
		return "", false
	}
}

// letterAt returns the letter at column c (west to east) and row r (south
// to north) of the lettering square.
func letterAt(c, r int) (byte, bool) {
	if c < 0 || c > 4 || r < 0 || r > 4 {
		return 0, false
	}
	return letters[(4-r)*5+c], true
}

func letterPosition(l byte) (c, r int, ok bool) {
	i := strings.IndexByte(letters, l)
	if i < 0 {
		return 0, 0, false
	}
	return i % 5, 4 - i/5, true
}

// Truncate floors a within-square coordinate to a whole number of cells of
// the given size in meters: Truncate(72250, 1000) == 72.
func Truncate(v, size float64) int {
	return int(math.Floor(v / size))
}

// Figures formats the reference with the given total number of digits
// (2, 4, 6, 8 or 10), truncating rather than rounding. It returns "" for an
// invalid reference or digit count.
func (r Reference) Figures(digits int) string {
	if !r.Valid() || digits < 2 || digits > 10 || digits%2 != 0 {
		return ""
	}
	half := digits / 2
	size := math.Pow10(5 - half)
	return fmt.Sprintf("%s%0*d%0*d", r.Code, half, Truncate(r.E, size), half, Truncate(r.N, size))
}

// TenFigure is the 1 m reference, e.g. TF7225033650.
func (r Reference) TenFigure() string { return r.Figures(10) }

// SixFigure is the 100 m reference, e.g. TF722336.
func (r Reference) SixFigure() string { return r.Figures(6) }

// Monad is the 1 km square, e.g. TF7233.
func (r Reference) Monad() string { return r.Figures(4) }

// Hectad is the 10 km square, e.g. TF73.
func (r Reference) Hectad() string { return r.Figures(2) }

// Tetrad is the 2 km square: the hectad followed by its tetrad letter, e.g. TF73G.
func (r Reference) Tetrad() string {
	if !r.Valid() {
		return ""
	}
	l := TetradLetter(Truncate(r.E, 1000), Truncate(r.N, 1000))
	if l == NoTetrad {
		return ""
	}
	return r.Hectad() + string(l)
}

// TetradLetter returns the DINTY tetrad letter for a 1 km square given by
// its easting and northing in whole kilometers. Only the position within
// the hectad (km mod 10) matters.
func TetradLetter(eKm, nKm int) byte {
	return TetradLetterAt((eKm%10)/2, (nKm%10)/2)
}

// TetradLetterAt returns the tetrad letter for tetrad column col and row
// row (0-4) within a hectad. Letters run A-Z without O, northwards then
// eastwards: (0,0) is A, (0,4) is E, (4,4) is Z.
func TetradLetterAt(col, row int) byte {
	if col < 0 || col > 4 || row < 0 || row > 4 {
		return NoTetrad
	}
	i := col*5 + row
	if i >= 14 {
		i++ // no O
	}
	return byte('A' + i)
}
