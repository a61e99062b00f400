package report

import (
	"fmt"

	"github.com/pspoerri/photogridref/internal/coord"
	"github.com/pspoerri/photogridref/internal/locate"
)

// MapZoom is the zoom level of the OpenStreetMap links.
const MapZoom = 15

// Links are web map views of the photo location.
type Links struct {
	StreetMap     string `json:"streetmap,omitempty"`
	OpenStreetMap string `json:"openstreetmap"`
	Tile          string `json:"tile"`
}

// NewLinks builds the map links. The StreetMap link needs a National Grid
// position and is empty otherwise.
func NewLinks(lat, lon float64, g *Grid, system locate.System) Links {
	x, y := coord.LonLatToTile(lon, lat, MapZoom)
	l := Links{
		OpenStreetMap: fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=%d/%.6f/%.6f",
			lat, lon, MapZoom, lat, lon),
		Tile: fmt.Sprintf("https://tile.openstreetmap.org/%d/%d/%d.png", MapZoom, x, y),
	}
	if g != nil && system == locate.SystemGreatBritain {
		l.StreetMap = fmt.Sprintf("https://streetmap.co.uk/map.srf?X=%06d&Y=%06d&A=Y&Z=115",
			g.AllFigureEasting, g.AllFigureNorthing)
	}
	return l
}
