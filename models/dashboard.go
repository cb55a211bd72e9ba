package models

type DashboardStats struct {
	UsersTotal        int `json:"usersTotal"`
	TeamsTotal        int `json:"teamsTotal"`
	TournamentsTotal  int `json:"tournamentsTotal"`
	ActiveTournaments int `json:"activeTournaments"`
	MatchesTotal      int `json:"matchesTotal"`
	LiveMatches       int `json:"liveMatches"`
	ScoreboardViewers int `json:"scoreboardViewers"`
}
