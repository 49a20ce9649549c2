package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/things"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/viewer"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
)

func TestCreateSessionLoadsAllThings(t *testing.T) {
	is, _, rw := setup(t)
	registry, _ := testRegistry()
	req, _ := http.NewRequest("POST", "/api/sessions", nil)

	NewCreateSessionHandler(zerolog.Nop(), registry).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusCreated)
	is.True(strings.HasPrefix(rw.Header().Get("Location"), "/api/sessions/"))
	is.Equal(registry.Len(), 1)

	snapshot := readSnapshot(is, rw)
	is.Equal(len(snapshot.Things), 2)
	is.Equal(snapshot.Drawing, "idle")
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	is, ctx, rw := setup(t)
	registry, _ := testRegistry()
	req := sessionRequest(ctx, "GET", "no-such-session", nil)

	NewRetrieveSessionHandler(zerolog.Nop(), registry).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusNotFound)
}

func TestCompletedDrawingFiltersThings(t *testing.T) {
	is, ctx, _ := setup(t)
	registry, filters := testRegistry()
	session := registry.Create()

	rw := httptest.NewRecorder()
	NewStartDrawingHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "POST", session.ID(), nil))
	is.Equal(rw.Code, http.StatusOK)
	is.Equal(readSnapshot(is, rw).Drawing, "drawing")

	rw = httptest.NewRecorder()
	NewCompleteDrawingHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "POST", session.ID(), bytes.NewBufferString(utrechtFeature)))
	is.Equal(rw.Code, http.StatusOK)

	snapshot := readSnapshot(is, rw)
	is.Equal(len(*filters), 1)
	is.True(strings.HasPrefix((*filters)[0], "SRID=4326;POLYGON((5.030"))
	is.Equal(snapshot.Filter, (*filters)[0])
	is.Equal(len(snapshot.Things), 1)
	is.Equal(snapshot.DrawEpoch, uint64(1))
}

func TestCompletingWithoutDrawingIsABadRequest(t *testing.T) {
	is, ctx, rw := setup(t)
	registry, _ := testRegistry()
	session := registry.Create()

	NewCompleteDrawingHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "POST", session.ID(), bytes.NewBufferString(utrechtFeature)))

	is.Equal(rw.Code, http.StatusBadRequest)
}

func TestDrawingThatIsNotAPolygonIsABadRequest(t *testing.T) {
	is, ctx, rw := setup(t)
	registry, _ := testRegistry()
	session := registry.Create()
	is.NoErr(session.StartDrawing(ctx))

	body := bytes.NewBufferString(`{"type":"Point","coordinates":[560000,6800000]}`)
	NewEditDrawingHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "PUT", session.ID(), body))

	is.Equal(rw.Code, http.StatusBadRequest)
}

func TestClearDrawingRestoresAllThings(t *testing.T) {
	is, ctx, _ := setup(t)
	registry, filters := testRegistry()
	session := registry.Create()
	is.NoErr(session.StartDrawing(ctx))
	is.NoErr(session.FinishDrawing(ctx, orb.Ring{{560000, 6800000}, {580000, 6800000}, {580000, 6820000}, {560000, 6800000}}))

	rw := httptest.NewRecorder()
	NewClearDrawingHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "DELETE", session.ID(), nil))

	is.Equal(rw.Code, http.StatusOK)
	is.Equal((*filters)[len(*filters)-1], "")
	is.Equal(len(readSnapshot(is, rw).Things), 2)
}

func TestUpdateSelectionReturnsGroupedSeries(t *testing.T) {
	is, ctx, _ := setup(t)
	registry, _ := testRegistry()
	session := registry.Create()
	is.NoErr(session.Load(ctx))

	rw := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"things":["1033","1034"]}`)
	NewUpdateSelectionHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "PUT", session.ID(), body))
	is.Equal(rw.Code, http.StatusOK)

	rw = httptest.NewRecorder()
	NewRetrieveSessionSeriesHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "GET", session.ID(), nil))
	is.Equal(rw.Code, http.StatusOK)

	response := struct {
		Data map[string][]domain.ObservationSeries `json:"data"`
	}{}
	is.NoErr(json.Unmarshal(rw.Body.Bytes(), &response))
	is.Equal(len(response.Data["pm25"]), 2)
	is.Equal(len(response.Data["temperature"]), 1)
}

func TestMalformedSelectionIsABadRequest(t *testing.T) {
	is, ctx, rw := setup(t)
	registry, _ := testRegistry()
	session := registry.Create()

	NewUpdateSelectionHandler(zerolog.Nop(), registry).ServeHTTP(rw, sessionRequest(ctx, "PUT", session.ID(), bytes.NewBufferString(`[`)))

	is.Equal(rw.Code, http.StatusBadRequest)
}

const utrechtFeature string = `{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[
	[[560000,6800000],[580000,6800000],[580000,6820000],[560000,6820000],[560000,6800000]]]}}`

func readSnapshot(is *is.I, rw *httptest.ResponseRecorder) viewer.Snapshot {
	response := struct {
		Data struct {
			Drawing   string         `json:"drawing"`
			Filter    string         `json:"filter"`
			Things    []domain.Thing `json:"things"`
			DrawEpoch uint64         `json:"drawEpoch"`
		} `json:"data"`
	}{}
	is.NoErr(json.Unmarshal(rw.Body.Bytes(), &response))

	return viewer.Snapshot{
		Drawing:   response.Data.Drawing,
		Filter:    response.Data.Filter,
		Things:    response.Data.Things,
		DrawEpoch: response.Data.DrawEpoch,
	}
}

func sessionRequest(ctx context.Context, method, id string, body *bytes.Buffer) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, "/api/sessions/"+id, body)
	} else {
		req, _ = http.NewRequest(method, "/api/sessions/"+id, nil)
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)

	return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func testRegistry() (*viewer.Registry, *[]string) {
	filters := &[]string{}

	var query func(filter string) things.ThingServiceQuery
	query = func(filter string) things.ThingServiceQuery {
		return &things.ThingServiceQueryMock{
			IntersectingFunc: func(wkt string) things.ThingServiceQuery { return query(wkt) },
			FilterFunc:       func() string { return filter },
			ErrFunc:          func() error { return nil },
			GetFunc: func(ctx context.Context) ([]domain.Thing, error) {
				*filters = append(*filters, filter)
				if filter != "" {
					return testThings[:1], nil
				}
				return testThings, nil
			},
		}
	}

	thingSvc := &things.ThingServiceMock{
		QueryFunc: func() things.ThingServiceQuery { return query("") },
	}

	return viewer.NewRegistry(thingSvc, defaultObservationServiceMock(), geometry.NewEncoder(6, true), time.Hour), filters
}
