package coord

// Projection defines the interface for converting between a source CRS and WGS84.
type Projection interface {
	// ToWGS84 converts source CRS coordinates to WGS84 longitude/latitude (degrees).
	ToWGS84(x, y float64) (lon, lat float64)

	// FromWGS84 converts WGS84 longitude/latitude (degrees) to source CRS coordinates.
	FromWGS84(lon, lat float64) (x, y float64)

	// EPSG returns the EPSG code for this projection.
	EPSG() int
}

// ForEPSG returns a Projection for the given EPSG code.
// Returns nil if the EPSG code is not supported.
func ForEPSG(epsg int) Projection {
	switch epsg {
	case 27700:
		return &DatumGrid{Code: 27700, Datum: WGS84ToOSGB36, Grid: NationalGrid}
	case 29903:
		return &DatumGrid{Code: 29903, Datum: ETRF89ToIRL1975, Grid: IrishNationalGrid}
	case 4326:
		return &WGS84Identity{}
	case 3857:
		return &WebMercatorProj{}
	default:
		return nil
	}
}

// WGS84Identity is a no-op projection for data already in EPSG:4326.
type WGS84Identity struct{}

func (w *WGS84Identity) ToWGS84(x, y float64) (lon, lat float64)   { return x, y }
func (w *WGS84Identity) FromWGS84(lon, lat float64) (x, y float64) { return lon, lat }
func (w *WGS84Identity) EPSG() int                                 { return 4326 }

// DatumGrid is a national grid reached from WGS84 by a Helmert datum shift
// followed by a Transverse Mercator projection on the grid's ellipsoid.
// Heights are taken as zero.
type DatumGrid struct {
	Code  int
	Datum Helmert
	Grid  TransverseMercator
}

func (d *DatumGrid) EPSG() int { return d.Code }

// FromWGS84 converts WGS84 longitude/latitude (degrees) to grid easting/northing.
func (d *DatumGrid) FromWGS84(lon, lat float64) (easting, northing float64) {
	en, err := DatumShiftAndProject(lat, lon, 0, d.Datum, d.Grid)
	if err != nil {
		return 0, 0
	}
	return en.E, en.N
}

// ToWGS84 converts grid easting/northing to WGS84 longitude/latitude (degrees).
func (d *DatumGrid) ToWGS84(easting, northing float64) (lon, lat float64) {
	gLat, gLon := d.Grid.Unproject(easting, northing)
	c := d.Datum.Inverse().Apply(ToCartesian(gLat, gLon, 0, d.Grid.Ellipsoid))
	lat, lon, _, err := FromCartesian(c, WGS84)
	if err != nil {
		return 0, 0
	}
	return lon, lat
}

// DatumShiftAndProject moves a WGS84 position onto the grid's datum with the
// given Helmert transform and projects it. The returned H is the ellipsoidal
// height on the grid's ellipsoid.
func DatumShiftAndProject(lat, lon, height float64, datum Helmert, grid TransverseMercator) (EastingNorthing, error) {
	c := datum.Apply(ToCartesian(lat, lon, height, WGS84))
	gLat, gLon, gHeight, err := FromCartesian(c, grid.Ellipsoid)
	if err != nil {
		return EastingNorthing{}, err
	}
	en := grid.Project(gLat, gLon)
	en.H = gHeight
	return en, nil
}
