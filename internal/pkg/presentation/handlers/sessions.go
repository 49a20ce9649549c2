package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/viewer"
	"github.com/rs/zerolog"
)

type selectionRequest struct {
	Things []string `json:"things"`
}

//NewCreateSessionHandler creates a session and loads the unfiltered Thing set into it
func NewCreateSessionHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "create-session")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		session := registry.Create()

		timeout, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err = session.Load(timeout); err != nil {
			registry.Remove(session.ID())
			writeError(w, log, err)
			return
		}

		w.Header().Add("Location", "/api/sessions/"+session.ID())
		writeData(w, log, http.StatusCreated, session.Snapshot())
	})
}

func NewRetrieveSessionHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return sessionHandler(logger, registry, "retrieve-session", func(ctx context.Context, s *viewer.Session, r *http.Request) (any, error) {
		return s.Snapshot(), nil
	})
}

func NewRetrieveSessionSeriesHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return sessionHandler(logger, registry, "retrieve-session-series", func(ctx context.Context, s *viewer.Session, r *http.Request) (any, error) {
		return s.Snapshot().Series, nil
	})
}

func NewStartDrawingHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return sessionHandler(logger, registry, "start-drawing", func(ctx context.Context, s *viewer.Session, r *http.Request) (any, error) {
		if err := s.StartDrawing(ctx); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

func NewEditDrawingHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return sessionHandler(logger, registry, "edit-drawing", func(ctx context.Context, s *viewer.Session, r *http.Request) (any, error) {
		ring, err := readRing(r)
		if err != nil {
			return nil, err
		}
		if err = s.EditDrawing(ring); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

func NewCompleteDrawingHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return sessionHandler(logger, registry, "complete-drawing", func(ctx context.Context, s *viewer.Session, r *http.Request) (any, error) {
		ring, err := readRing(r)
		if err != nil {
			return nil, err
		}
		if err = s.FinishDrawing(ctx, ring); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

func NewClearDrawingHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return sessionHandler(logger, registry, "clear-drawing", func(ctx context.Context, s *viewer.Session, r *http.Request) (any, error) {
		if err := s.ClearDrawing(ctx); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

func NewUpdateSelectionHandler(logger zerolog.Logger, registry *viewer.Registry) http.HandlerFunc {
	return sessionHandler(logger, registry, "update-selection", func(ctx context.Context, s *viewer.Session, r *http.Request) (any, error) {
		request := selectionRequest{}
		if err := readJSON(r, &request); err != nil {
			return nil, err
		}
		if err := s.Select(ctx, request.Things); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

func sessionHandler(logger zerolog.Logger, registry *viewer.Registry, name string, handle func(context.Context, *viewer.Session, *http.Request) (any, error)) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), name)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		session, err := registry.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, log, err)
			return
		}

		timeout, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		result, err := handle(timeout, session, r)
		if err != nil {
			writeError(w, log, err)
			return
		}

		writeData(w, log, http.StatusOK, result)
	})
}
