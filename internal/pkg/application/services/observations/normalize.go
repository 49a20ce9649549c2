package observations

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
)

type observationDTO struct {
	PhenomenonTime string `json:"phenomenonTime"`
	Result         any    `json:"result"`
}

func normalizeSeries(profile sensorthings.Profile, id string, e sensorthings.Entity) domain.ObservationSeries {
	series := domain.ObservationSeries{
		ID:           id,
		Observations: []domain.Observation{},
	}

	sensorthings.DecodeOptional(e["name"], &series.Name)

	var dtos []observationDTO
	if !sensorthings.DecodeOptional(e[profile.ObservationsExpand], &dtos) {
		return series
	}

	for _, dto := range dtos {
		when, ok := phenomenonTime(dto.PhenomenonTime)
		if !ok {
			continue
		}

		result, ok := numericValue(dto.Result)
		if !ok {
			continue
		}

		series.Observations = append(series.Observations, domain.Observation{Time: when, Result: result})
	}

	sort.SliceStable(series.Observations, func(i, j int) bool {
		return series.Observations[i].Time.Before(series.Observations[j].Time)
	})

	return series
}

//phenomenonTime accepts an instant or an ISO 8601 interval, in which case the
//start of the interval is used
func phenomenonTime(s string) (time.Time, bool) {
	start, _, _ := strings.Cut(strings.TrimSpace(s), "/")
	if start == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return time.Time{}, false
	}

	return t.UTC(), true
}

func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
