package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

var ErrEncoding = errors.New("polygon ring cannot be encoded")

const (
	DefaultPrecision int    = 6
	SRIDPrefix       string = "SRID=4326;"
)

//Encoder writes geographic rings as WKT polygon literals
type Encoder struct {
	Precision  int
	SRIDPrefix bool
}

func NewEncoder(precision int, withSRID bool) Encoder {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return Encoder{Precision: precision, SRIDPrefix: withSRID}
}

//WholeDomainRing covers every valid longitude and latitude
func WholeDomainRing() orb.Ring {
	return orb.Ring{
		{-180, -90},
		{180, -90},
		{180, 90},
		{-180, 90},
		{-180, -90},
	}
}

//Encode produces POLYGON((lon lat,...)) with the ring explicitly closed. The
//ring must be expressed in EPSG:4326 with x as longitude and y as latitude.
func (e Encoder) Encode(ring orb.Ring) (string, error) {
	precision := e.Precision
	if precision <= 0 {
		precision = DefaultPrecision
	}

	vertices := make([]string, 0, len(ring)+1)
	distinct := map[string]struct{}{}

	for idx, p := range ring {
		if !isFinite(p) {
			return "", fmt.Errorf("%w: vertex %d is not a finite number", ErrEncoding, idx)
		}

		v := formatCoordinate(p.Lon(), precision) + " " + formatCoordinate(p.Lat(), precision)
		vertices = append(vertices, v)
		distinct[v] = struct{}{}
	}

	if len(distinct) < 3 {
		return "", fmt.Errorf("%w: ring has %d distinct vertices, at least 3 are required", ErrEncoding, len(distinct))
	}

	if vertices[0] != vertices[len(vertices)-1] {
		vertices = append(vertices, vertices[0])
	}

	sb := strings.Builder{}
	if e.SRIDPrefix {
		sb.WriteString(SRIDPrefix)
	}
	sb.WriteString("POLYGON((")
	sb.WriteString(strings.Join(vertices, ","))
	sb.WriteString("))")

	return sb.String(), nil
}

//ParseWKT reads the outer ring of a POLYGON literal, with or without an SRID prefix
func ParseWKT(s string) (orb.Ring, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		srid, rest, found := strings.Cut(s, ";")
		if !found {
			return nil, fmt.Errorf("%w: missing geometry after %s", ErrEncoding, srid)
		}
		if !strings.EqualFold(srid+";", SRIDPrefix) {
			return nil, fmt.Errorf("%w: unsupported %s", ErrEncoding, srid)
		}
		s = rest
	}

	polygon, err := wkt.UnmarshalPolygon(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	if len(polygon) == 0 || len(polygon[0]) == 0 {
		return nil, fmt.Errorf("%w: polygon is empty", ErrEncoding)
	}

	return polygon[0], nil
}

func formatCoordinate(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)

	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	if s == "-0" {
		return "0"
	}

	return s
}
