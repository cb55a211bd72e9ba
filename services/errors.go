package services

import "errors"

// Errors shared by the services and mapped to HTTP statuses by the handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// validation
	ErrValidationFailed           = errors.New("validation failed")
	ErrPasswordTooShort           = errors.New("password is too short")
	ErrSportMismatch              = errors.New("sport does not match the match's sport")
	ErrUndoNotSupported           = errors.New("undo is only supported for cricket")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")
	ErrTournamentNotEnoughTeams   = errors.New("tournament needs at least two teams to generate matches")
	ErrLogoUploadDisabled         = errors.New("logo storage is not configured")

	// state
	ErrMatchFinished           = errors.New("match is already completed or cancelled")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrTournamentHasMatches    = errors.New("tournament already has generated matches")

	// conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrUsernameConflict       = errors.New("username is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTeamInUse              = errors.New("team is referenced by a tournament")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTeamAlreadyInTourney   = errors.New("team is already part of the tournament")

	// authentication and authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
)
