package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/outreach"
	"github.com/lendstack/prospect-pipeline/internal/prospect"
	"github.com/lendstack/prospect-pipeline/internal/qualify"
	"github.com/lendstack/prospect-pipeline/internal/search"
	"github.com/lendstack/prospect-pipeline/pkg/anthropic"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		api := &apiServer{
			store:      st,
			normalizer: initNormalizer(st),
			generator: outreach.NewGenerator(
				anthropic.NewClient(cfg.Anthropic.Key),
				outreach.WithModel(cfg.Anthropic.Model),
			),
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", api.health)
		r.Route("/api", func(r chi.Router) {
			r.Post("/search", api.search)
			r.Get("/prospects", api.listProspects)
			r.Post("/prospects", api.createProspect)
			r.Get("/prospects/{id}", api.getProspect)
			r.Put("/prospects/{id}", api.updateProspect)
			r.Delete("/prospects/{id}", api.deleteProspect)
			r.Post("/prospects/{id}/requalify", api.requalifyProspect)
			r.Post("/prospects/{id}/outreach", api.draftOutreach)
			r.Get("/criteria", api.getCriteria)
			r.Put("/criteria", api.putCriteria)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// apiServer holds the request handlers' shared collaborators.
type apiServer struct {
	store      prospect.Store
	normalizer *search.Normalizer
	generator  *outreach.Generator
}

func (s *apiServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) search(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.normalizer.Search(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) listProspects(w http.ResponseWriter, r *http.Request) {
	filter := prospect.ListFilter{
		Status: prospect.Status(r.URL.Query().Get("status")),
	}
	if filter.Status != "" && !prospect.ValidStatus(filter.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	list, err := s.store.ListProspects(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list prospects failed")
		zap.L().Error("list prospects", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *apiServer) createProspect(w http.ResponseWriter, r *http.Request) {
	var p prospect.Prospect
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Record.Name == "" {
		writeError(w, http.StatusBadRequest, "record.name is required")
		return
	}
	if p.Status == "" {
		p.Status = prospect.StatusNew
	}
	if !prospect.ValidStatus(p.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	if err := s.store.SaveProspect(r.Context(), &p); err != nil {
		writeError(w, http.StatusInternalServerError, "save prospect failed")
		zap.L().Error("save prospect", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *apiServer) getProspect(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProspect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, prospect.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prospect not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get prospect failed")
		zap.L().Error("get prospect", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// prospectUpdate carries an edit to a stored prospect. Omitted fields keep
// their stored values.
type prospectUpdate struct {
	Record      *model.BusinessRecord `json:"record,omitempty"`
	Status      *prospect.Status      `json:"status,omitempty"`
	CreditScore *int                  `json:"credit_score,omitempty"`
	Notes       *string               `json:"notes,omitempty"`
}

func (s *apiServer) updateProspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := s.store.GetProspect(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, prospect.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prospect not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get prospect failed")
		zap.L().Error("get prospect", zap.Error(err))
		return
	}

	var upd prospectUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.Status != nil && !prospect.ValidStatus(*upd.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	if upd.Record != nil {
		if upd.Record.Name == "" {
			writeError(w, http.StatusBadRequest, "record.name is required")
			return
		}
		upd.Record.ID = p.Record.ID
		p.Record = *upd.Record
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.CreditScore != nil {
		p.CreditScore = upd.CreditScore
	}
	if upd.Notes != nil {
		p.Notes = *upd.Notes
	}

	// Attribute edits re-score the prospect immediately.
	criteria, err := s.store.Criteria(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load criteria failed")
		zap.L().Error("load criteria", zap.Error(err))
		return
	}
	prospect.Requalify(p, criteria)

	if err := s.store.UpdateProspect(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "update prospect failed")
		zap.L().Error("update prospect", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *apiServer) deleteProspect(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProspect(r.Context(), chi.URLParam(r, "id")); err != nil {
		if eris.Is(err, prospect.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prospect not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete prospect failed")
		zap.L().Error("delete prospect", zap.Error(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *apiServer) requalifyProspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := s.store.GetProspect(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, prospect.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prospect not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get prospect failed")
		zap.L().Error("get prospect", zap.Error(err))
		return
	}

	criteria, err := s.store.Criteria(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load criteria failed")
		zap.L().Error("load criteria", zap.Error(err))
		return
	}

	prospect.Requalify(p, criteria)
	if err := s.store.UpdateProspect(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "update prospect failed")
		zap.L().Error("update prospect", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *apiServer) draftOutreach(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProspect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, prospect.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prospect not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get prospect failed")
		zap.L().Error("get prospect", zap.Error(err))
		return
	}

	email, err := s.generator.Generate(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, email)
}

func (s *apiServer) getCriteria(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Criteria(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load criteria failed")
		zap.L().Error("load criteria", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *apiServer) putCriteria(w http.ResponseWriter, r *http.Request) {
	var c qualify.Criteria
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.SetCriteria(r.Context(), c); err != nil {
		// Validation failures come back from SetCriteria.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Every saved prospect is re-scored under the new criteria so listings
	// never serve qualifications computed against a stale configuration.
	result, err := prospect.RequalifyAll(r.Context(), s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "requalify prospects failed")
		zap.L().Error("requalify prospects", zap.Error(err))
		return
	}

	writeJSON(w, http.StatusOK, criteriaUpdateResponse{Criteria: c, Requalified: result})
}

// criteriaUpdateResponse pairs the saved criteria with the re-scoring summary.
type criteriaUpdateResponse struct {
	Criteria    qualify.Criteria         `json:"criteria"`
	Requalified prospect.RequalifyResult `json:"requalified"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
