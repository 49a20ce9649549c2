package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/observations"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
	"github.com/rs/zerolog"
)

func TestRetrieveObservationsAcceptsRepeatedAndCommaSeparatedIDs(t *testing.T) {
	is, _, rw := setup(t)
	svc := defaultObservationServiceMock()
	req, _ := http.NewRequest("GET", "/api/observations?datastream=6961,6962&datastream=6970", nil)

	NewRetrieveObservationsHandler(zerolog.Nop(), svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusOK)
	is.Equal(svc.FetchAllCalls()[0].DatastreamIDs, []string{"6961", "6962", "6970"})
}

func TestRetrieveObservationsWithoutIDsIsABadRequest(t *testing.T) {
	is, _, rw := setup(t)
	svc := defaultObservationServiceMock()
	req, _ := http.NewRequest("GET", "/api/observations", nil)

	NewRetrieveObservationsHandler(zerolog.Nop(), svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusBadRequest)
	is.Equal(len(svc.FetchAllCalls()), 0)
}

func TestFailedJoinIsABadGateway(t *testing.T) {
	is, _, rw := setup(t)
	svc := defaultObservationServiceMock()
	svc.FetchAllFunc = func(ctx context.Context, ids []string) ([]domain.ObservationSeries, error) {
		return nil, fmt.Errorf("%w: %w", observations.ErrJoin, sensorthings.ErrFetch)
	}
	req, _ := http.NewRequest("GET", "/api/observations?datastream=1", nil)

	NewRetrieveObservationsHandler(zerolog.Nop(), svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusBadGateway)
}

func TestCreateChartsGroupsByObservedProperty(t *testing.T) {
	is, _, rw := setup(t)
	svc := defaultObservationServiceMock()
	body := bytes.NewBufferString(`{"things":[
		{"id":"T1","datastreamIds":["6961","6962"],"observedProperties":["pm25","temperature"]},
		{"id":"T2","datastreamIds":["6970"],"observedProperties":["pm25"]}
	]}`)
	req, _ := http.NewRequest("POST", "/api/charts", body)

	NewCreateChartsHandler(zerolog.Nop(), svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusOK)
	is.Equal(svc.FetchAllCalls()[0].DatastreamIDs, []string{"6961", "6962", "6970"})

	expected := `{"data": {"pm25":[{"id":"6961","name":"pm25-a","observations":[]},{"id":"6970","name":"pm25-b","observations":[]}],` +
		`"temperature":[{"id":"6962","name":"temperature","observations":[]}]}}`
	is.Equal(rw.Body.String(), expected)
}

func TestCreateChartsWithMalformedBodyIsABadRequest(t *testing.T) {
	is, _, rw := setup(t)
	svc := defaultObservationServiceMock()
	req, _ := http.NewRequest("POST", "/api/charts", bytes.NewBufferString(`{"things":`))

	NewCreateChartsHandler(zerolog.Nop(), svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusBadRequest)
}

func defaultObservationServiceMock() *observations.ObservationServiceMock {
	return &observations.ObservationServiceMock{
		FetchAllFunc: func(ctx context.Context, ids []string) ([]domain.ObservationSeries, error) {
			return []domain.ObservationSeries{
				{ID: "6970", Name: "pm25-b", Observations: []domain.Observation{}},
				{ID: "6962", Name: "temperature", Observations: []domain.Observation{}},
				{ID: "6961", Name: "pm25-a", Observations: []domain.Observation{}},
			}, nil
		},
	}
}
