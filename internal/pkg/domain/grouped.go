package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

//GroupedSeries maps an observed property label to the series measuring it.
//Labels keep the order in which they were first appended.
type GroupedSeries struct {
	keys   []string
	groups map[string][]ObservationSeries
}

type SeriesGroup struct {
	Property string              `json:"property"`
	Series   []ObservationSeries `json:"series"`
}

func NewGroupedSeries() GroupedSeries {
	return GroupedSeries{
		keys:   []string{},
		groups: map[string][]ObservationSeries{},
	}
}

func (g *GroupedSeries) Append(label string, series ObservationSeries) {
	if g.groups == nil {
		g.groups = map[string][]ObservationSeries{}
	}

	if _, ok := g.groups[label]; !ok {
		g.keys = append(g.keys, label)
	}

	g.groups[label] = append(g.groups[label], series)
}

func (g GroupedSeries) Keys() []string {
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

func (g GroupedSeries) Get(label string) ([]ObservationSeries, bool) {
	series, ok := g.groups[label]
	return series, ok
}

func (g GroupedSeries) Len() int {
	return len(g.keys)
}

func (g GroupedSeries) Groups() []SeriesGroup {
	result := make([]SeriesGroup, 0, len(g.keys))
	for _, k := range g.keys {
		result = append(result, SeriesGroup{Property: k, Series: g.groups[k]})
	}
	return result
}

func (g GroupedSeries) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')

	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property label: %w", err)
		}

		series, err := json.Marshal(g.groups[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal series for %s: %w", k, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(series)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
