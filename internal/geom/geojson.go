package geom

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
)

// Load reads a topology source and returns its collections. TopoJSON keeps
// its named objects; a GeoJSON file or a shapefile becomes one collection
// named after the file.
func Load(path string) (*Topology, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".shp":
		return LoadShapefile(path)
	case ".json", ".geojson", ".topojson":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "geom: read %s", path)
		}
		return Decode(baseName(path), data)
	}
	return nil, eris.Errorf("geom: unsupported file type %q", ext)
}

// Decode sniffs the document type and dispatches to the matching decoder.
func Decode(name string, data []byte) (*Topology, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, eris.Wrap(err, "geom: decode document")
	}
	switch head.Type {
	case "Topology":
		return DecodeTopology(data)
	case "FeatureCollection", "Feature":
		return DecodeGeoJSON(name, data)
	case "":
		return nil, eris.New("geom: invalid document: missing type")
	}
	return nil, eris.Errorf("geom: unsupported document type %q", head.Type)
}

// DecodeGeoJSON wraps a Feature or FeatureCollection as a single named
// collection.
func DecodeGeoJSON(name string, data []byte) (*Topology, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, eris.Wrap(err, "geom: decode geojson")
	}
	coll := &Collection{Name: name}
	if head.Type == "Feature" {
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, eris.Wrap(err, "geom: decode feature")
		}
		coll.Features = []*geojson.Feature{f}
	} else {
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, eris.Wrap(err, "geom: decode feature collection")
		}
		coll.Features = fc.Features
	}
	for _, f := range coll.Features {
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
	}
	return &Topology{Collections: []*Collection{coll}}, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
