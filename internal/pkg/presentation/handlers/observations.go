package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/observations"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/rs/zerolog"
)

func NewRetrieveObservationsHandler(logger zerolog.Logger, svc observations.ObservationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-observations")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		ids := []string{}
		for _, param := range r.URL.Query()["datastream"] {
			for _, id := range strings.Split(param, ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
		}

		if len(ids) == 0 {
			err = fmt.Errorf("%w: no datastream ids supplied in query", errBadRequestBody)
			writeError(w, log, err)
			return
		}

		timeout, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		series, err := svc.FetchAll(timeout, ids)
		if err != nil {
			writeError(w, log, err)
			return
		}

		writeData(w, log, http.StatusOK, series)
	})
}

type chartRequest struct {
	Things []domain.Thing `json:"things"`
}

//NewCreateChartsHandler groups the observations of the posted Things by observed property
func NewCreateChartsHandler(logger zerolog.Logger, svc observations.ObservationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "create-charts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		request := chartRequest{}
		if err = readJSON(r, &request); err != nil {
			writeError(w, log, err)
			return
		}

		timeout, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		joined, err := svc.FetchAll(timeout, observations.DatastreamIDs(request.Things))
		if err != nil {
			writeError(w, log, err)
			return
		}

		writeData(w, log, http.StatusOK, observations.Aggregate(request.Things, joined))
	})
}
