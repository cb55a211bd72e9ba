package scoring

import "fmt"

// Apply returns the score that results from applying one action to current.
// current is never modified. A nil or empty current is materialized to the
// sport's zero-state first. Unrecognized actions leave the score unchanged.
func Apply(sport Sport, current *Score, action Action, side Side, d Details) (*Score, error) {
	if !sport.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
	}

	var next *Score
	if current.Current() == nil {
		next = materialize(sport)
	} else {
		if current.Sport != sport {
			return nil, fmt.Errorf("%w: have %s, want %s", ErrSportMismatch, current.Sport, sport)
		}
		next = current.Clone()
	}

	switch sport {
	case Cricket:
		next.Cricket.apply(action, side, d)
	case Football:
		next.Football.apply(action, side, d)
	case Basketball:
		next.Basketball.apply(action, side, d)
	case Chess:
		next.Chess.apply(action, d)
	case Volleyball:
		next.Volleyball.apply(action, side, d)
	case Badminton, TableTennis:
		next.Games().apply(action, side, d)
	}
	return next, nil
}
