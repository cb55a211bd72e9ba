package models

import "time"

const DefaultTeamColor = "#000000"

type Player struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Position     *string `json:"position,omitempty"`
	JerseyNumber *int    `json:"jerseyNumber,omitempty"`
}

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Players   []Player  `json:"players" db:"players"`
	Captain   *string   `json:"captain,omitempty" db:"captain"`
	Coach     *string   `json:"coach,omitempty" db:"coach"`
	Color     string    `json:"color" db:"color"`
	CreatedBy *int      `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo,omitempty" db:"-"`
}
