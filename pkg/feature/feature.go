// Package feature converts between GeoJSON feature collections and the
// routing types.
package feature

import (
	"fmt"
	"io"
	"os"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/hazard"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/lane"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/routing"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const DefaultDestinationName = "Hamburg"

func ReadCollection(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read feature collection")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrMalformedInput, "decode feature collection")
	}
	return fc, nil
}

func ReadCollectionFile(filename string) (*geojson.FeatureCollection, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	fc, err := ReadCollection(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	return fc, nil
}

func WriteCollection(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encode feature collection")
	}
	_, err = w.Write(data)
	return err
}

func WriteCollectionFile(filename string, fc *geojson.FeatureCollection) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	if err := WriteCollection(file, fc); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", filename)
	}
	return file.Close()
}

// DefaultVesselName names the vessel at index i of its input.
func DefaultVesselName(i int) string {
	return fmt.Sprintf("Ship_%d", i)
}

// stringProperty returns the property as text, or def when it is missing.
func stringProperty(props geojson.Properties, key, def string) string {
	switch v := props[key].(type) {
	case nil:
		return def
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func optionalProperty(props geojson.Properties, key string) *string {
	if props[key] == nil {
		return nil
	}
	v := stringProperty(props, key, "")
	return &v
}

// Lines returns the line geometries of fc. Multi-lines are split into their
// parts; other geometries are counted as malformed.
func Lines(fc *geojson.FeatureCollection) ([]orb.LineString, int) {
	lines := make([]orb.LineString, 0, len(fc.Features))
	malformed := 0
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = append(lines, g)
		case orb.MultiLineString:
			lines = append(lines, g...)
		default:
			malformed++
		}
	}
	return lines, malformed
}

// Vessels reads one vessel per point feature. Features without a valid
// point position are reported as skipped.
func Vessels(fc *geojson.FeatureCollection) ([]routing.Vessel, []routing.Skip) {
	vessels := make([]routing.Vessel, 0, len(fc.Features))
	var skipped []routing.Skip
	for i, f := range fc.Features {
		name := stringProperty(f.Properties, "vessel_name", DefaultVesselName(i))
		p, ok := f.Geometry.(orb.Point)
		if !ok || !geo.Valid(p) {
			err := domain.NewErrorf(domain.ErrMalformedInput, "vessel %s: expected a point, got %v", name, f.Geometry)
			skipped = append(skipped, routing.Skip{Vessel: name, Reason: domain.Reason(err), Err: err})
			continue
		}
		vessels = append(vessels, routing.Vessel{
			Name:     name,
			Origin:   optionalProperty(f.Properties, "origin"),
			Position: p,
		})
	}
	return vessels, skipped
}

// Destination returns the first point feature of fc.
func Destination(fc *geojson.FeatureCollection) (routing.Destination, error) {
	for _, f := range fc.Features {
		if p, ok := f.Geometry.(orb.Point); ok && geo.Valid(p) {
			return routing.Destination{
				Name:     stringProperty(f.Properties, "name", DefaultDestinationName),
				Position: p,
			}, nil
		}
	}
	return routing.Destination{}, domain.NewErrorf(domain.ErrMalformedInput, "no destination point in %d features", len(fc.Features))
}

// Zones reads hazard polygons. Invalid polygons are dropped and returned as
// errors.
func Zones(fc *geojson.FeatureCollection) ([]*hazard.Zone, []error) {
	zones := make([]*hazard.Zone, 0, len(fc.Features))
	var dropped []error
	for i, f := range fc.Features {
		id := stringProperty(f.Properties, "incident_id", "")
		if id == "" {
			id = stringProperty(f.Properties, "id", fmt.Sprintf("zone_%d", i))
		}
		zone, err := hazard.NewZone(id, f.Geometry)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		zones = append(zones, zone)
	}
	return zones, dropped
}

func Routes(routes []routing.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range routes {
		f := geojson.NewFeature(r.Geometry)
		f.Properties["vessel_name"] = r.Vessel.Name
		f.Properties["origin"] = r.Vessel.Origin
		f.Properties["destination"] = r.Destination
		f.Properties["route_type"] = string(r.Kind)
		if r.Reason != "" {
			f.Properties["reason"] = r.Reason
		}
		f.Properties["length_km"] = r.LengthKm
		fc.Append(f)
	}
	return fc
}

func Lanes(segments []*lane.Segment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range segments {
		if len(s.Points) < 2 {
			continue
		}
		f := geojson.NewFeature(s.LineString())
		f.Properties["osm_id"] = s.ID
		f.Properties["lane_type"] = s.Type.String()
		if s.Name != "" {
			f.Properties["name"] = s.Name
		}
		fc.Append(f)
	}
	return fc
}
