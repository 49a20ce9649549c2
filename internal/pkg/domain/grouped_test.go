package domain

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestGroupedSeriesKeepsFirstEncounterOrder(t *testing.T) {
	is := is.New(t)

	g := NewGroupedSeries()
	g.Append("pm25", ObservationSeries{ID: "1"})
	g.Append("temperature", ObservationSeries{ID: "2"})
	g.Append("pm25", ObservationSeries{ID: "3"})

	is.Equal(g.Keys(), []string{"pm25", "temperature"})
	is.Equal(g.Len(), 2)

	pm25, ok := g.Get("pm25")
	is.True(ok)
	is.Equal(len(pm25), 2)
	is.Equal(pm25[1].ID, "3")

	_, ok = g.Get("humidity")
	is.True(!ok)
}

func TestGroupedSeriesMarshalsKeysInOrder(t *testing.T) {
	is := is.New(t)

	g := NewGroupedSeries()
	g.Append("zeta", ObservationSeries{ID: "1", Name: "z", Observations: []Observation{}})
	g.Append("alpha", ObservationSeries{ID: "2", Name: "a", Observations: []Observation{}})

	b, err := json.Marshal(g)
	is.NoErr(err)
	is.Equal(string(b), `{"zeta":[{"id":"1","name":"z","observations":[]}],"alpha":[{"id":"2","name":"a","observations":[]}]}`)
}

func TestZeroValueGroupedSeries(t *testing.T) {
	is := is.New(t)

	var g GroupedSeries
	b, err := json.Marshal(g)
	is.NoErr(err)
	is.Equal(string(b), `{}`)

	g.Append("no2", ObservationSeries{ID: "7"})
	is.Equal(g.Groups()[0].Property, "no2")
}
