// Package model holds the value types shared across the pipeline.
package model

import (
	"fmt"
	"strconv"
)

// viewerURLFormat is the Google Maps Street View viewer URL; the !1s segment
// carries the panorama ID.
const viewerURLFormat = "https://www.google.com/maps/@%s,%s,3a/data=!3m8!1e1!3m6!1s%s!2e10!3e12!6s"

// GeoPoint is an immutable latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CatalogPoint represents one point of interest from the catalog API.
// Name may be empty: the catalog returns null names for some points.
type CatalogPoint struct {
	Name string   `json:"name"`
	Geo  GeoPoint `json:"geo"`
}

// PanoramaPoint represents a resolved Street View panorama. Geo holds the
// panorama's actual coordinates, which may drift from the requested point.
type PanoramaPoint struct {
	Geo    GeoPoint `json:"geo"`
	PanoID string   `json:"pano_id"`
}

// ViewerURL returns the Google Maps viewer URL for the panorama, a pure
// function of the coordinates and the panorama ID.
func (p PanoramaPoint) ViewerURL() string {
	return fmt.Sprintf(viewerURLFormat, FormatCoord(p.Geo.Lat), FormatCoord(p.Geo.Lng), p.PanoID)
}

// Record pairs a catalog point with the panorama resolved for it.
type Record struct {
	Catalog  CatalogPoint  `json:"catalog_point"`
	Panorama PanoramaPoint `json:"panorama_point"`
}

// Work identifies a catalog work (an anime title or season) to process.
// Label is optional and appears only in logs.
type Work struct {
	ID    int    `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// FormatCoord renders a coordinate in the shortest decimal form that parses
// back to the same float64. Viewer URLs, the Street View location parameter,
// and the CSV exporter all share this rendering.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
