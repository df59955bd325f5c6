package models

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature renders the location as a GeoJSON feature carrying the address and
// the raw provider fields as properties. Locations without a coordinate get a
// null geometry.
func (l Location) Feature() *geojson.Feature {
	var geometry orb.Geometry
	if l.Point != nil {
		geometry = orb.Point{l.Point.Longitude, l.Point.Latitude}
	}

	f := geojson.NewFeature(geometry)
	for k, v := range l.Raw {
		f.Properties[k] = v
	}
	f.Properties["address"] = l.Address

	return f
}

// FeatureCollection renders locations as a GeoJSON feature collection, one
// feature per location.
func FeatureCollection(locations []Location) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range locations {
		fc.Append(l.Feature())
	}
	return fc
}
