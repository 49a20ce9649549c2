package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/observations"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/things"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/viewer"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("sensordata-api/api")

const maxBodySize int64 = 1 << 20

func statusFromError(err error) int {
	switch {
	case errors.Is(err, viewer.ErrNoSuchSession):
		return http.StatusNotFound
	case errors.Is(err, viewer.ErrStale):
		return http.StatusConflict
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, geometry.ErrTransform),
		errors.Is(err, geometry.ErrEncoding),
		errors.Is(err, geometry.ErrInvalidTransition),
		errors.Is(err, things.ErrQuery):
		return http.StatusBadRequest
	case errors.Is(err, sensorthings.ErrFetch),
		errors.Is(err, observations.ErrJoin):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("internal error")
	} else {
		log.Error().Err(err).Msg("bad request")
	}

	w.Header().Add("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	body, _ := json.Marshal(struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}{http.StatusText(status), status, err.Error()})
	w.Write(body)
}

func writeData(w http.ResponseWriter, log zerolog.Logger, status int, data any) {
	bytes, err := json.Marshal(data)
	if err != nil {
		err = fmt.Errorf("unable to marshal results to json (%w)", err)
		writeError(w, log, err)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	if w.Header().Get("Cache-Control") == "" {
		w.Header().Add("Cache-Control", "no-cache")
	}
	w.WriteHeader(status)
	w.Write([]byte("{\"data\": " + string(bytes) + "}"))
}

var errBadRequestBody = errors.New("malformed request body")

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: %w", errBadRequestBody, err)
	}

	if err = json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequestBody, err)
	}

	return nil
}

//readRing decodes a GeoJSON Feature or bare Polygon geometry and returns its
//outer ring. An empty body yields a nil ring.
func readRing(r *http.Request) (orb.Ring, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequestBody, err)
	}

	if len(body) == 0 {
		return nil, nil
	}

	var g orb.Geometry

	feature, err := geojson.UnmarshalFeature(body)
	if err == nil {
		g = feature.Geometry
	} else {
		geom, gerr := geojson.UnmarshalGeometry(body)
		if gerr != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequestBody, err)
		}
		g = geom.Geometry()
	}

	polygon, ok := g.(orb.Polygon)
	if !ok || len(polygon) == 0 {
		return nil, fmt.Errorf("%w: expected a polygon", errBadRequestBody)
	}

	return polygon[0], nil
}
