package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

var ErrTransform = errors.New("coordinate outside the projection domain")

const (
	MaxMercatorLatitude float64 = 85.0511287798066
	MercatorExtent      float64 = orb.EarthRadius * math.Pi

	degreeTolerance float64 = 1e-9
	meterTolerance  float64 = 1e-6
)

type projection struct {
	// accepts reports whether a point expressed in this system lies within its domain
	accepts func(orb.Point) bool
	// represents reports whether a geographic point can be expressed in this system
	represents func(orb.Point) bool
	toWGS84    orb.Projection
	fromWGS84  orb.Projection
}

var projections = map[domain.CRS]projection{
	domain.EPSG4326: {
		accepts:    isGeographic,
		represents: isGeographic,
		toWGS84:    identity,
		fromWGS84:  identity,
	},
	domain.EPSG3857: {
		accepts:    isMercator,
		represents: isMercatorLatitude,
		toWGS84:    project.Mercator.ToWGS84,
		fromWGS84:  project.WGS84.ToMercator,
	},
}

//Transform converts points between the geographic storage CRS and the display CRS.
//Points outside the domain of either system are rejected rather than clamped.
func Transform(points []orb.Point, from, to domain.CRS) ([]orb.Point, error) {
	src, ok := projections[from]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported source crs %s", ErrTransform, from)
	}

	dst, ok := projections[to]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported target crs %s", ErrTransform, to)
	}

	result := make([]orb.Point, 0, len(points))

	for idx, p := range points {
		if !isFinite(p) || !src.accepts(p) {
			return nil, fmt.Errorf("%w: point %d (%v) is not a valid %s coordinate", ErrTransform, idx, p, from)
		}

		geographic := src.toWGS84(p)
		if !dst.represents(geographic) {
			return nil, fmt.Errorf("%w: point %d (%v) cannot be represented in %s", ErrTransform, idx, p, to)
		}

		result = append(result, dst.fromWGS84(geographic))
	}

	return result, nil
}

func TransformRing(ring orb.Ring, from, to domain.CRS) (orb.Ring, error) {
	points, err := Transform(ring, from, to)
	if err != nil {
		return nil, err
	}
	return orb.Ring(points), nil
}

func TransformGeometry(g domain.Geometry, to domain.CRS) (domain.Geometry, error) {
	ring, err := TransformRing(g.Ring, g.CRS, to)
	if err != nil {
		return domain.Geometry{}, err
	}
	return domain.Geometry{CRS: to, Ring: ring}, nil
}

//ToDisplay places a stored geographic point onto the display surface
func ToDisplay(p domain.Point, display domain.CRS) (orb.Point, error) {
	points, err := Transform([]orb.Point{{p.Lon, p.Lat}}, domain.EPSG4326, display)
	if err != nil {
		return orb.Point{}, err
	}
	return points[0], nil
}

func identity(p orb.Point) orb.Point {
	return p
}

func isFinite(p orb.Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func isGeographic(p orb.Point) bool {
	return math.Abs(p.Lon()) <= 180+degreeTolerance && math.Abs(p.Lat()) <= 90+degreeTolerance
}

func isMercatorLatitude(p orb.Point) bool {
	return math.Abs(p.Lon()) <= 180+degreeTolerance && math.Abs(p.Lat()) <= MaxMercatorLatitude+degreeTolerance
}

func isMercator(p orb.Point) bool {
	return math.Abs(p.X()) <= MercatorExtent+meterTolerance && math.Abs(p.Y()) <= MercatorExtent+meterTolerance
}
