package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
	"github.com/Ishan007-bot/Sports-Arena-Backend/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type createMatchRequest struct {
	Sport         string            `json:"sport"`
	Tournament    *int              `json:"tournament"`
	TeamA         *models.MatchSide `json:"teamA"`
	TeamB         *models.MatchSide `json:"teamB"`
	PlayerA       *models.MatchSide `json:"playerA"`
	PlayerB       *models.MatchSide `json:"playerB"`
	Venue         *string           `json:"venue"`
	StartTime     *time.Time        `json:"startTime"`
	MatchSettings scoring.Settings  `json:"matchSettings"`
	CreatedBy     string            `json:"createdBy"`
}

type scoreUpdateRequest struct {
	Sport   string          `json:"sport"`
	Action  scoring.Action  `json:"action"`
	Team    scoring.Side    `json:"team"`
	Details json.RawMessage `json:"details"`
}

type endMatchRequest struct {
	Winner        *scoring.Side `json:"winner"`
	WinningReason *string       `json:"winningReason"`
}

// ListMatches godoc
// @Summary List matches
// @Tags matches
// @Param status query string false "scheduled, live, completed or cancelled"
// @Param tournament query int false "tournament id"
// @Success 200 {object} map[string]interface{}
// @Router /api/matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	var filter services.MatchListFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.MatchStatus(raw)
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("tournament"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, errors.New("tournament must be a positive integer"))
			return
		}
		filter.TournamentID = &id
	}

	matches, err := h.matchService.ListMatches(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	listResponse(w, r, matches, len(matches))
}

// ListLiveMatches godoc
// @Summary List live matches with their current score
// @Tags matches
// @Success 200 {object} map[string]interface{}
// @Router /api/matches/live [get]
func (h *MatchHandler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListLiveMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	listResponse(w, r, matches, len(matches))
}

// GetMatch godoc
// @Summary Get a match
// @Tags matches
// @Param id path int true "match id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/matches/{id} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.GetMatch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, match)
}

// CreateMatch godoc
// @Summary Create a match
// @Tags matches
// @Accept json
// @Success 201 {object} map[string]interface{}
// @Router /api/matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), services.CreateMatchInput{
		Sport:        req.Sport,
		TournamentID: req.Tournament,
		TeamA:        req.TeamA,
		TeamB:        req.TeamB,
		PlayerA:      req.PlayerA,
		PlayerB:      req.PlayerB,
		Venue:        req.Venue,
		StartTime:    req.StartTime,
		Settings:     req.MatchSettings,
		CreatedBy:    req.CreatedBy,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusCreated, match)
}

// UpdateScore godoc
// @Summary Apply a scoring action
// @Tags matches
// @Accept json
// @Param id path int true "match id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/matches/{id}/score [put]
func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var req scoreUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ApplyScoreUpdate(r.Context(), id, services.ScoreUpdateInput{
		Sport:   req.Sport,
		Action:  req.Action,
		Team:    req.Team,
		Details: req.Details,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, match)
}

func (h *MatchHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.StartMatch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, match)
}

func (h *MatchHandler) EndMatch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var req endMatchRequest
	if err := readOptionalJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.EndMatch(r.Context(), id, services.EndMatchInput{
		Winner:        req.Winner,
		WinningReason: req.WinningReason,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, match)
}

func (h *MatchHandler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.CancelMatch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, match)
}

// UndoLastBall godoc
// @Summary Reset a cricket score
// @Description Clears the cricket score and its history.
// @Tags matches
// @Param id path int true "match id"
// @Success 200 {object} map[string]interface{}
// @Router /api/matches/{id}/undo [post]
func (h *MatchHandler) UndoLastBall(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.UndoLastCricketBall(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	messageResponse(w, r, "Last ball undone", match)
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.matchService.DeleteMatch(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	messageResponse(w, r, "Match deleted successfully", nil)
}

func (h *MatchHandler) ClearMatches(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.matchService.ClearMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	messageResponse(w, r, "All matches cleared", jsonResponse{"deleted": deleted})
}
