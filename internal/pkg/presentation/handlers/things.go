package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/things"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/rs/zerolog"
)

//NewRetrieveThingsHandler serves the Things inside the polygon given by the wkt
//query parameter, or the unfiltered set from the service cache when none is given
func NewRetrieveThingsHandler(logger zerolog.Logger, svc things.ThingService, encoder geometry.Encoder) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-things")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		var result []domain.Thing

		params, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			err = fmt.Errorf("%w: %w", errBadRequestBody, err)
			writeError(w, log, err)
			return
		}

		wkt := params.Get("wkt")
		if wkt == "" {
			if cached, ok := svc.GetAll(); ok {
				w.Header().Add("Cache-Control", "max-age=300")
				writeData(w, log, http.StatusOK, cached)
				return
			}
		} else {
			wkt, err = normalizeWKT(wkt, encoder)
			if err != nil {
				writeError(w, log, err)
				return
			}
		}

		timeout, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		result, err = svc.Query().Intersecting(wkt).Get(timeout)
		if err != nil {
			writeError(w, log, err)
			return
		}

		writeData(w, log, http.StatusOK, result)
	})
}

//normalizeWKT re-encodes a client polygon in the form the upstream expects
func normalizeWKT(s string, encoder geometry.Encoder) (string, error) {
	ring, err := geometry.ParseWKT(s)
	if err != nil {
		return "", err
	}
	return encoder.Encode(ring)
}
