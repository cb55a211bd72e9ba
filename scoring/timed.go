package scoring

func (f *FootballScore) apply(action Action, side Side, d Details) {
	team := &f.TeamB
	if side.IsA() {
		team = &f.TeamA
	}

	switch action {
	case ActionGoal:
		team.Goals++
	case ActionCard:
		switch d.CardType {
		case CardYellow:
			team.Cards.Yellow++
		case CardRed:
			team.Cards.Red++
		}
	case ActionTime:
		if d.Time != nil {
			f.Time = *d.Time
		}
		if d.Period != nil {
			f.Period = *d.Period
		}
	}
}

func (b *BasketballScore) apply(action Action, side Side, d Details) {
	team := &b.TeamB
	if side.IsA() {
		team = &b.TeamA
	}

	switch action {
	case ActionPoints:
		team.Points += intOr(d.Points, 0)
	case ActionFoul:
		team.Fouls++
	case ActionQuarter, ActionTime:
		// Either action may carry both fields.
		b.Quarter = intOr(d.Quarter, b.Quarter)
		b.Time = intOr(d.Time, b.Time)
	}
}
