package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/adapters/csvfile"
	"sleigh-route-service/internal/api/dto"
	"sleigh-route-service/internal/ports"
	"sleigh-route-service/internal/services"
)

type PlanHandler struct {
	Repo     ports.InputRepository
	Provider ports.DistanceProvider
	Store    ports.PlanStore
	// Options are the server defaults; request fields are appended after them.
	Options []services.Option
}

// Create plans the tour from the configured input source and stores it.
// The body is optional.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	opts := append([]services.Option{}, h.Options...)
	if req.Improve != nil {
		opts = append(opts, services.WithImprove(*req.Improve))
	}
	if req.SkipUndeliverable != nil {
		opts = append(opts, services.WithSkipUndeliverable(*req.SkipUndeliverable))
	}
	if req.StrictWindow != nil {
		opts = append(opts, services.WithStrictWindow(*req.StrictWindow))
	}

	planner := services.NewPlanner(h.Provider, opts...)
	plan, err := services.PlanDeliveries(r.Context(), h.Repo, planner)
	if err != nil {
		writeDomainError(w, r, "plan deliveries", err)
		return
	}

	if err := h.Store.SavePlan(r.Context(), plan); err != nil {
		writeDomainError(w, r, "save plan", err)
		return
	}

	log.Info().Object("summary", services.Summarize(plan)).Msg("plan created")

	w.Header().Set("Location", "/plans/"+plan.ID)
	writeJSON(w, r, http.StatusCreated, dto.NewPlanResponse(plan))
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Store.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, "get plan", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}

// CSV serves the stored plan as a route file.
func (h *PlanHandler) CSV(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Store.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, "get plan", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="route_`+plan.ID+`.csv"`)
	if err := csvfile.WriteRoute(w, plan.Entries); err != nil {
		log.Error().Err(err).Str("plan_id", plan.ID).Msg("write route csv failed")
	}
}
