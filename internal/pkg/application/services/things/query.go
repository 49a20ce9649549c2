package things

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
)

var ErrQuery = errors.New("malformed sensorthings query")

var polygonLiteral = regexp.MustCompile(`^(SRID=\d+;)?POLYGON\s*\(\(.+\)\)$`)

//NewEncoder returns the polygon encoder matching the filter grammar of the profile
func NewEncoder(profile sensorthings.Profile) geometry.Encoder {
	return geometry.NewEncoder(profile.Precision, profile.SRIDPrefix)
}

//BuildQuery returns the escaped query string selecting Things whose location
//intersects the polygon. An empty literal selects the whole coordinate domain.
func BuildQuery(profile sensorthings.Profile, wkt string) (string, error) {
	if wkt == "" {
		var err error
		wkt, err = NewEncoder(profile).Encode(geometry.WholeDomainRing())
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrQuery, err)
		}
	}

	if !polygonLiteral.MatchString(wkt) || strings.Contains(wkt, "'") {
		return "", fmt.Errorf("%w: %q is not a polygon literal", ErrQuery, wkt)
	}

	expand, err := expansion(profile)
	if err != nil {
		return "", err
	}

	filter := fmt.Sprintf("st_intersects(%s, %s)", profile.LocationField, fmt.Sprintf(profile.GeographyLiteral, wkt))
	if !balanced(filter) {
		return "", fmt.Errorf("%w: unbalanced parentheses in filter %s", ErrQuery, filter)
	}

	return "$expand=" + sensorthings.Escape(expand) + "&$filter=" + sensorthings.Escape(filter), nil
}

func expansion(profile sensorthings.Profile) (string, error) {
	names := []string{profile.LocationsExpand, profile.DatastreamsExpand, profile.ObservedPropertyExpand}
	for _, n := range names {
		if !validName(n) {
			return "", fmt.Errorf("%w: invalid expansion name %q", ErrQuery, n)
		}
	}

	if !validName(profile.LocationField) {
		return "", fmt.Errorf("%w: invalid location field %q", ErrQuery, profile.LocationField)
	}

	expand := fmt.Sprintf("%s,%s/%s($select=description)", profile.LocationsExpand, profile.DatastreamsExpand, profile.ObservedPropertyExpand)
	return expand, nil
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "(),;&$'= ")
}

func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
