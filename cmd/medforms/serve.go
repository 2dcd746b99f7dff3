package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-medforms"
	formengine "github.com/goliatone/go-medforms/pkg/engine"
	"github.com/goliatone/go-medforms/pkg/form"
	"github.com/goliatone/go-medforms/pkg/model"

	"github.com/goliatone/go-medforms/components/specialties"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		configDir string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve forms, option endpoints and the browser runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				With().Timestamp().Logger()

			eng, err := newEngineFromDir(configDir)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           newRouter(eng, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", addr).Msg("listening")
				errCh <- server.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-stop:
				logger.Info().Msg("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configDir, "config-dir", "", "catalog config directory (embedded catalog if empty)")
	return cmd
}

func newRouter(eng *formengine.Engine, logger zerolog.Logger) http.Handler {
	cache := specialties.NewCache()
	component := specialties.New(specialties.WithCache(cache))

	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Handle("/runtime/*", http.StripPrefix("/runtime/",
		http.FileServerFS(medforms.RuntimeAssetsFS())))

	r.Get("/api/entities", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": eng.Entities()})
	})

	if _, err := specialties.RegisterRoutes(r, "/forms", specialties.WithCache(cache)); err != nil {
		logger.Error().Err(err).Msg("mount specialty routes")
	}

	handler := &formHandler{
		engine:    eng,
		cache:     cache,
		component: component,
		logger:    logger,
	}
	r.Get("/forms/{entity}", handler.render)
	r.Post("/forms/{entity}", handler.submit)

	return r
}

type formHandler struct {
	engine    *formengine.Engine
	cache     *specialties.Cache
	component *specialties.Component
	logger    zerolog.Logger
}

// specialtyOptions merges the packaged specialty list with runtime-created
// entries so rendered comboboxes match the options endpoint.
func (h *formHandler) specialtyOptions() []model.Option {
	list, err := specialties.DefaultSpecialties()
	if err != nil {
		h.logger.Warn().Err(err).Msg("load specialties")
	}
	list = append(list, h.cache.Values()...)
	opts := h.component.Options()
	return specialties.SearchOptions(list, "", opts.DefaultLimit, opts)
}

func (h *formHandler) render(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	result, err := h.engine.Generate(r.Context(), formengine.Request{
		Entity:  entity,
		Editing: r.URL.Query().Get("editing") == "true",
		Session: r.URL.Query().Get("session"),
		DynamicOptions: map[string][]model.Option{
			"specialties": h.specialtyOptions(),
		},
	})
	if err != nil {
		h.writeError(w, entity, err)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	if _, err := w.Write(result.Body); err != nil {
		h.logger.Warn().Err(err).Msg("write response")
	}
}

// submit decodes a form post against the entity definition, re-rendering
// with field errors when normalization rejects values.
func (h *formHandler) submit(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	def, err := h.engine.Catalog().Definition(entity)
	if err != nil {
		h.writeError(w, entity, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed form body"})
		return
	}

	values, fieldErrors := form.DecodeValues(def.Fields, r.PostForm)
	if len(fieldErrors) > 0 {
		result, err := h.engine.Generate(r.Context(), formengine.Request{
			Entity:  entity,
			Values:  values,
			Errors:  fieldErrors,
			Editing: true,
			Session: r.PostForm.Get("_session"),
			DynamicOptions: map[string][]model.Option{
				"specialties": h.specialtyOptions(),
			},
		})
		if err != nil {
			h.writeError(w, entity, err)
			return
		}
		w.Header().Set("Content-Type", result.ContentType)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write(result.Body)
		return
	}

	h.cacheCreatedOptions(def, values)

	writeJSON(w, http.StatusOK, map[string]any{
		"entity": entity,
		"values": values,
	})
}

// cacheCreatedOptions replays accepted values through a controller wired to
// the specialty cache, so combobox entries typed in the browser show up in
// later option fetches just like ones created in the terminal flow.
func (h *formHandler) cacheCreatedOptions(def model.FormDefinition, values map[string]any) {
	ctrl := form.NewController(def,
		form.WithOptionCache(h.cache),
		form.WithLogger(h.logger),
	)
	ctrl.SetDynamicOptions("specialties", h.specialtyOptions())
	for name, value := range values {
		if err := ctrl.Apply(form.ChangeEvent{Name: name, Value: value}); err != nil {
			h.logger.Warn().Err(err).Str("field", name).Msg("apply submitted value")
		}
	}
}

func (h *formHandler) writeError(w http.ResponseWriter, entity string, err error) {
	h.logger.Error().Err(err).Str("entity", entity).Msg("form request failed")
	status := http.StatusInternalServerError
	if errors.Is(err, formengine.ErrNoRenderer) {
		status = http.StatusServiceUnavailable
	} else if h.engine != nil && !h.engine.Catalog().Has(entity) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Headers are already written; encode errors have nowhere to go.
	_ = json.NewEncoder(w).Encode(payload)
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
