package models

// TournamentStanding is one row of a tournament table. Rows are derived from
// completed fixtures and are not stored.
type TournamentStanding struct {
	Rank            int    `json:"rank"`
	TeamID          int    `json:"teamId"`
	TeamName        string `json:"teamName"`
	Played          int    `json:"played"`
	Wins            int    `json:"wins"`
	Draws           int    `json:"draws"`
	Losses          int    `json:"losses"`
	ScoreFor        int    `json:"scoreFor"`
	ScoreAgainst    int    `json:"scoreAgainst"`
	ScoreDifference int    `json:"scoreDifference"`
	Points          int    `json:"points"`
}
