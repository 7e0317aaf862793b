package handlers

import (
	"net/http"

	"sleigh-route-service/internal/api/dto"
	"sleigh-route-service/internal/ports"
	"sleigh-route-service/internal/services"
)

// ChildHandler exposes the children with the article each one receives.
type ChildHandler struct {
	Repo ports.InputRepository
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := services.ListAssignments(r.Context(), h.Repo)
	if err != nil {
		writeDomainError(w, r, "list children", err)
		return
	}

	res := dto.ListChildrenResponse{
		Children: make([]dto.ChildResponse, 0, len(assignments)),
	}
	for _, a := range assignments {
		res.Children = append(res.Children, dto.ChildResponse{
			ChildID:   a.Child.ChildID,
			Latitude:  a.Child.Location.Lat,
			Longitude: a.Child.Location.Lon,
			Wish:      a.Child.Wish,
			Naughty:   a.Child.Naughty,
			ArticleID: a.Article.ArticleID,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
