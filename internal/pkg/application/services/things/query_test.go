package things

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
)

func TestDefaultQueryEqualsWholeDomainQuery(t *testing.T) {
	is := is.New(t)
	profile := sensorthings.DefaultProfile()

	wholeDomain, err := NewEncoder(profile).Encode(geometry.WholeDomainRing())
	is.NoErr(err)

	q1, err := BuildQuery(profile, "")
	is.NoErr(err)
	q2, err := BuildQuery(profile, wholeDomain)
	is.NoErr(err)

	is.Equal(q1, q2)
}

func TestQueryIsFullyEscaped(t *testing.T) {
	is := is.New(t)

	q, err := BuildQuery(sensorthings.DefaultProfile(), "")
	is.NoErr(err)

	expected := "$expand=Locations%2CDatastreams%2FObservedProperty%28%24select%3Ddescription%29" +
		"&$filter=st_intersects%28Location%2Flocation%2C%20geography%27SRID%3D4326%3BPOLYGON%28%28" +
		"-180%20-90%2C180%20-90%2C180%2090%2C-180%2090%2C-180%20-90%29%29%27%29"

	is.Equal(q, expected)
	is.True(!strings.Contains(q, "+"))
	is.True(!strings.Contains(q, " "))
}

func TestQueryDecodesToTheFilterExpression(t *testing.T) {
	is := is.New(t)

	profile := sensorthings.DefaultProfile()
	profile.SRIDPrefix = false

	q, err := BuildQuery(profile, "POLYGON((5.1 52,5.2 52,5.2 52.1,5.1 52))")
	is.NoErr(err)

	values, err := url.ParseQuery(q)
	is.NoErr(err)
	is.Equal(values.Get("$expand"), "Locations,Datastreams/ObservedProperty($select=description)")
	is.Equal(values.Get("$filter"), "st_intersects(Location/location, geography'POLYGON((5.1 52,5.2 52,5.2 52.1,5.1 52))')")
}

func TestMalformedLiteralsAreRejected(t *testing.T) {
	is := is.New(t)

	literals := []string{
		"POINT(5 52)",
		"POLYGON((5 52,6 52,6 53,5 52)",
		"POLYGON((5 52,6 52,6 53,5 52))') or true or ('",
		"polygon",
	}

	for _, l := range literals {
		_, err := BuildQuery(sensorthings.DefaultProfile(), l)
		is.True(errors.Is(err, ErrQuery))
	}
}

func TestInvalidExpansionNamesAreRejected(t *testing.T) {
	is := is.New(t)

	profile := sensorthings.DefaultProfile()
	profile.DatastreamsExpand = "Datastreams($top=1)"

	_, err := BuildQuery(profile, "")
	is.True(errors.Is(err, ErrQuery))

	profile = sensorthings.DefaultProfile()
	profile.ObservedPropertyExpand = ""

	_, err = BuildQuery(profile, "")
	is.True(errors.Is(err, ErrQuery))
}

func TestEncoderFollowsProfile(t *testing.T) {
	is := is.New(t)

	e := NewEncoder(sensorthings.DefaultProfile())
	is.Equal(e.Precision, 6)
	is.True(e.SRIDPrefix)

	profile := sensorthings.DefaultProfile()
	profile.SRIDPrefix = false
	profile.Precision = 2

	wkt, err := NewEncoder(profile).Encode(geometry.WholeDomainRing())
	is.NoErr(err)
	is.Equal(wkt, "POLYGON((-180 -90,180 -90,180 90,-180 90,-180 -90))")
}
