package handlers

import (
	"net/http"

	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
	"github.com/go-chi/chi/v5"
)

// sportInfo describes what a client needs to render a scoring panel.
type sportInfo struct {
	Name         scoring.Sport    `json:"name"`
	TeamBased    bool             `json:"teamBased"`
	Sides        [2]scoring.Side  `json:"sides"`
	Actions      []scoring.Action `json:"actions"`
	InitialScore *scoring.Score   `json:"initialScore"`
}

type SportHandler struct {
	catalog map[scoring.Sport]sportInfo
	ordered []sportInfo
}

func NewSportHandler() *SportHandler {
	h := &SportHandler{catalog: make(map[scoring.Sport]sportInfo, len(scoring.Sports))}
	for _, sport := range scoring.Sports {
		score, _ := scoring.NewScore(sport)
		info := sportInfo{
			Name:         sport,
			TeamBased:    sport.TeamBased(),
			Sides:        [2]scoring.Side{scoring.TeamA.For(sport), scoring.TeamB.For(sport)},
			Actions:      sport.Actions(),
			InitialScore: score,
		}
		h.catalog[sport] = info
		h.ordered = append(h.ordered, info)
	}
	return h
}

// GetAllSports godoc
// @Summary Supported sports with their scoring actions
// @Tags sports
// @Success 200 {object} map[string]interface{}
// @Router /api/sports [get]
func (h *SportHandler) GetAllSports(w http.ResponseWriter, r *http.Request) {
	listResponse(w, r, h.ordered, len(h.ordered))
}

func (h *SportHandler) GetSport(w http.ResponseWriter, r *http.Request) {
	info, ok := h.catalog[scoring.Sport(chi.URLParam(r, "sport"))]
	if !ok {
		notFoundResponse(w, r, "sport not found")
		return
	}
	successResponse(w, r, http.StatusOK, info)
}
