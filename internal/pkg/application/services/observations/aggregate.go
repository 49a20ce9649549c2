package observations

import (
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"golang.org/x/exp/slices"
)

//DatastreamIDs lists the datastreams of the selected Things in selection order
func DatastreamIDs(selected []domain.Thing) []string {
	ids := []string{}
	for _, t := range selected {
		ids = append(ids, t.DatastreamIDs...)
	}
	return ids
}

//Aggregate groups the joined series by the observed property of the datastream
//they belong to. Datastreams missing from joined are skipped.
func Aggregate(selected []domain.Thing, joined []domain.ObservationSeries) domain.GroupedSeries {
	grouped := domain.NewGroupedSeries()

	for _, thing := range selected {
		for i, id := range thing.DatastreamIDs {
			if i >= len(thing.ObservedProperties) {
				break
			}

			idx := slices.IndexFunc(joined, func(s domain.ObservationSeries) bool {
				return s.ID == id
			})
			if idx < 0 {
				continue
			}

			grouped.Append(thing.ObservedProperties[i], joined[idx])
		}
	}

	return grouped
}
