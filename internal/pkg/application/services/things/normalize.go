package things

import (
	"encoding/json"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
)

type locationDTO struct {
	Location struct {
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"location"`
}

type observedPropertyDTO struct {
	Description string `json:"description"`
}

func normalizeThings(profile sensorthings.Profile, entities []sensorthings.Entity) []domain.Thing {
	things := make([]domain.Thing, 0, len(entities))
	for _, e := range entities {
		things = append(things, normalizeThing(profile, e))
	}
	return things
}

//normalizeThing never fails. Absent or malformed nested collections leave the
//corresponding fields at their zero values.
func normalizeThing(profile sensorthings.Profile, e sensorthings.Entity) domain.Thing {
	t := domain.Thing{
		ID:                 sensorthings.IDString(e["@iot.id"]),
		DatastreamIDs:      []string{},
		ObservedProperties: []string{},
	}

	sensorthings.DecodeOptional(e["name"], &t.Name)

	var locations []locationDTO
	if sensorthings.DecodeOptional(e[profile.LocationsExpand], &locations) && len(locations) > 0 {
		var coordinates []float64
		if sensorthings.DecodeOptional(locations[0].Location.Coordinates, &coordinates) && len(coordinates) >= 2 {
			t.Location = domain.NewPoint(coordinates[1], coordinates[0])
		}
	}

	var datastreams []sensorthings.Entity
	if sensorthings.DecodeOptional(e[profile.DatastreamsExpand], &datastreams) {
		for _, ds := range datastreams {
			id := sensorthings.IDString(ds["@iot.id"])
			if id == "" {
				continue
			}

			var op observedPropertyDTO
			sensorthings.DecodeOptional(ds[profile.ObservedPropertyExpand], &op)

			t.DatastreamIDs = append(t.DatastreamIDs, id)
			t.ObservedProperties = append(t.ObservedProperties, op.Description)
		}
	}

	return t
}
