package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sleigh-route-service/internal/api/handlers"
	"sleigh-route-service/internal/ports"
	"sleigh-route-service/internal/services"
)

// Deps are the adapters the HTTP API is composed from.
type Deps struct {
	Repo     ports.InputRepository
	Provider ports.DistanceProvider
	Store    ports.PlanStore
	Options  []services.Option
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	childHandler := &handlers.ChildHandler{Repo: d.Repo}
	planHandler := &handlers.PlanHandler{
		Repo:     d.Repo,
		Provider: d.Provider,
		Store:    d.Store,
		Options:  d.Options,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /children", childHandler.List)
	mux.HandleFunc("POST /plans", planHandler.Create)
	mux.HandleFunc("GET /plans/{id}", planHandler.Get)
	mux.HandleFunc("GET /plans/{id}/csv", planHandler.CSV)

	return requestIDMiddleware(loggingMiddleware(mux))
}
