package geometry

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/matryer/is"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/paulmach/orb"
)

func TestRoundTripThroughDisplayProjection(t *testing.T) {
	is := is.New(t)
	rnd := rand.New(rand.NewSource(4326))

	points := []orb.Point{{0, 0}, {5.1214, 52.0907}, {-179.999, -85.05}, {179.999, 85.05}}
	for i := 0; i < 500; i++ {
		lon := rnd.Float64()*360 - 180
		lat := rnd.Float64()*2*MaxMercatorLatitude - MaxMercatorLatitude
		points = append(points, orb.Point{lon, lat})
	}

	display, err := Transform(points, domain.EPSG4326, domain.EPSG3857)
	is.NoErr(err)

	back, err := Transform(display, domain.EPSG3857, domain.EPSG4326)
	is.NoErr(err)
	is.Equal(len(back), len(points))

	for i := range points {
		is.True(math.Abs(back[i].Lon()-points[i].Lon()) < 1e-6)
		is.True(math.Abs(back[i].Lat()-points[i].Lat()) < 1e-6)
	}
}

func TestRoundTripFromDisplayProjection(t *testing.T) {
	is := is.New(t)

	ring := orb.Ring{{570000, 6800000}, {580000, 6800000}, {580000, 6810000}, {570000, 6800000}}

	geographic, err := TransformRing(ring, domain.EPSG3857, domain.EPSG4326)
	is.NoErr(err)

	display, err := TransformRing(geographic, domain.EPSG4326, domain.EPSG3857)
	is.NoErr(err)

	for i := range ring {
		is.True(math.Abs(display[i].X()-ring[i].X()) < 1e-3)
		is.True(math.Abs(display[i].Y()-ring[i].Y()) < 1e-3)
	}
}

func TestPolesCannotBeProjectedToDisplay(t *testing.T) {
	is := is.New(t)

	_, err := Transform([]orb.Point{{10, 90}}, domain.EPSG4326, domain.EPSG3857)
	is.True(errors.Is(err, ErrTransform))

	_, err = Transform([]orb.Point{{10, -86}}, domain.EPSG4326, domain.EPSG3857)
	is.True(errors.Is(err, ErrTransform))
}

func TestOutOfDomainCoordinatesAreRejected(t *testing.T) {
	is := is.New(t)

	cases := []struct {
		p    orb.Point
		from domain.CRS
		to   domain.CRS
	}{
		{orb.Point{181, 0}, domain.EPSG4326, domain.EPSG3857},
		{orb.Point{0, 91}, domain.EPSG4326, domain.EPSG4326},
		{orb.Point{math.NaN(), 0}, domain.EPSG4326, domain.EPSG3857},
		{orb.Point{0, math.Inf(1)}, domain.EPSG3857, domain.EPSG4326},
		{orb.Point{MercatorExtent * 1.5, 0}, domain.EPSG3857, domain.EPSG4326},
		{orb.Point{0, 0}, domain.CRS(27700), domain.EPSG4326},
	}

	for _, c := range cases {
		_, err := Transform([]orb.Point{c.p}, c.from, c.to)
		is.True(errors.Is(err, ErrTransform))
	}
}

func TestMercatorExtentIsInsideTheDomain(t *testing.T) {
	is := is.New(t)

	corners := []orb.Point{{-MercatorExtent, -MercatorExtent}, {MercatorExtent, MercatorExtent}}
	geographic, err := Transform(corners, domain.EPSG3857, domain.EPSG4326)
	is.NoErr(err)
	is.True(math.Abs(geographic[1].Lat()-MaxMercatorLatitude) < 1e-9)
	is.True(math.Abs(geographic[1].Lon()-180) < 1e-9)
}

func TestToDisplayPlacesStoredPoints(t *testing.T) {
	is := is.New(t)

	p, err := ToDisplay(domain.NewPoint(0, 0), domain.EPSG3857)
	is.NoErr(err)
	is.True(math.Abs(p.X()) < 1e-9)
	is.True(math.Abs(p.Y()) < 1e-9)

	_, err = ToDisplay(domain.NewPoint(89.9, 0), domain.EPSG3857)
	is.True(errors.Is(err, ErrTransform))
}
