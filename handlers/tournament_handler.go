package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/middleware"
	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

type createTournamentRequest struct {
	Name        string     `json:"name"`
	Sport       string     `json:"sport"`
	Format      string     `json:"format"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Venue       *string    `json:"venue"`
	Description *string    `json:"description"`
	Teams       []int      `json:"teams"`
}

type addTeamRequest struct {
	TeamID int `json:"teamId"`
}

type tournamentStatusRequest struct {
	Status   models.TournamentStatus `json:"status"`
	Winner   *int                    `json:"winner"`
	RunnerUp *int                    `json:"runnerUp"`
}

func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	var filter services.TournamentListFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.TournamentStatus(raw)
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("sport"); raw != "" {
		filter.Sport = &raw
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	listResponse(w, r, tournaments, len(tournaments))
}

func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.GetTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), services.CreateTournamentInput{
		Name:        req.Name,
		Sport:       req.Sport,
		Format:      req.Format,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Venue:       req.Venue,
		Description: req.Description,
		TeamIDs:     req.Teams,
	}, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusCreated, tournament)
}

func (h *TournamentHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var req addTeamRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.TeamID <= 0 {
		badRequestResponse(w, r, errors.New("teamId is required"))
		return
	}

	tournament, err := h.tournamentService.AddTeam(r.Context(), id, req.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	fixtures, err := h.tournamentService.GenerateMatches(r.Context(), id, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusCreated, fixtures)
}

func (h *TournamentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var req tournamentStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateStatus(r.Context(), id, services.UpdateTournamentStatusInput{
		Status:     req.Status,
		WinnerID:   req.Winner,
		RunnerUpID: req.RunnerUp,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, tournament)
}

// GetStandings godoc
// @Summary Tournament table built from completed fixtures
// @Tags tournaments
// @Param tournamentID path int true "tournament id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	standings, err := h.tournamentService.GetStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	listResponse(w, r, standings, len(standings))
}
