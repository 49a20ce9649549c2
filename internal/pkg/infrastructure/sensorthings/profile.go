package sensorthings

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"gopkg.in/yaml.v2"
)

const DefaultBaseURL string = "https://api-samenmeten.rivm.nl/v1.0"

//Profile names the entity sets, navigation properties and filter grammar of an upstream
//SensorThings endpoint. Servers differ in how they spell the geography literal.
type Profile struct {
	ThingsPath             string `yaml:"thingsPath"`
	DatastreamsPath        string `yaml:"datastreamsPath"`
	LocationsExpand        string `yaml:"locationsExpand"`
	DatastreamsExpand      string `yaml:"datastreamsExpand"`
	ObservedPropertyExpand string `yaml:"observedPropertyExpand"`
	ObservationsExpand     string `yaml:"observationsExpand"`
	LocationField          string `yaml:"locationField"`
	GeographyLiteral       string `yaml:"geographyLiteral"`
	SRIDPrefix             bool   `yaml:"sridPrefix"`
	Precision              int    `yaml:"precision"`
}

func DefaultProfile() Profile {
	return Profile{
		ThingsPath:             "Things",
		DatastreamsPath:        "Datastreams",
		LocationsExpand:        "Locations",
		DatastreamsExpand:      "Datastreams",
		ObservedPropertyExpand: "ObservedProperty",
		ObservationsExpand:     "Observations",
		LocationField:          "Location/location",
		GeographyLiteral:       "geography'%s'",
		SRIDPrefix:             true,
		Precision:              geometry.DefaultPrecision,
	}
}

//LoadProfile reads a YAML profile. Keys that are absent keep their default values.
func LoadProfile(input io.Reader) (Profile, error) {
	p := DefaultProfile()

	err := yaml.NewDecoder(input).Decode(&p)
	if err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("failed to decode sensorthings profile: %w", err)
	}

	if err = p.Validate(); err != nil {
		return Profile{}, err
	}

	return p, nil
}

func (p Profile) Validate() error {
	if strings.Count(p.GeographyLiteral, "%s") != 1 || strings.Count(p.GeographyLiteral, "%") != 1 {
		return fmt.Errorf("geography literal %q must contain exactly one %%s", p.GeographyLiteral)
	}

	required := map[string]string{
		"thingsPath":             p.ThingsPath,
		"datastreamsPath":        p.DatastreamsPath,
		"locationsExpand":        p.LocationsExpand,
		"datastreamsExpand":      p.DatastreamsExpand,
		"observedPropertyExpand": p.ObservedPropertyExpand,
		"observationsExpand":     p.ObservationsExpand,
		"locationField":          p.LocationField,
	}

	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("sensorthings profile is missing %s", key)
		}
	}

	if p.Precision < 0 {
		return fmt.Errorf("precision must not be negative (%d)", p.Precision)
	}

	return nil
}
