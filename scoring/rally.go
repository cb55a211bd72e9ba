package scoring

// rallyBoard is a view over the counters shared by volleyball, badminton and
// table tennis, so the point/set/serve rules are written once.
type rallyBoard struct {
	pointsA, pointsB *int
	wonA, wonB       *int
	current          *int
	serving          *string
	closeOut         func(a, b int)
}

func (r rallyBoard) apply(action Action, side Side, d Details) {
	switch action {
	case ActionPoint:
		if side.IsA() {
			*r.pointsA++
		} else {
			*r.pointsB++
		}
	case ActionSet, ActionGame:
		r.closeOut(*r.pointsA, *r.pointsB)
		if side.IsA() {
			*r.wonA++
		} else {
			*r.wonB++
		}
		*r.current++
		*r.pointsA, *r.pointsB = 0, 0
	case ActionServe:
		if d.Serving != nil {
			*r.serving = *d.Serving
		}
	}
}

func (v *VolleyballScore) board() rallyBoard {
	return rallyBoard{
		pointsA: &v.TeamA.Points,
		pointsB: &v.TeamB.Points,
		wonA:    &v.TeamA.Sets,
		wonB:    &v.TeamB.Sets,
		current: &v.CurrentSet,
		serving: &v.Serving,
		closeOut: func(a, b int) {
			v.SetScores = append(v.SetScores, SetTally{TeamA: a, TeamB: b})
		},
	}
}

func (v *VolleyballScore) apply(action Action, side Side, d Details) {
	if action == ActionSyncScore {
		v.sync(d)
		return
	}
	v.board().apply(action, side, d)
}

// sync replaces the record with the snapshot. Fields the snapshot omits fall
// back to the zero-state.
func (v *VolleyballScore) sync(d Details) {
	*v = *materialize(Volleyball).Volleyball
	overlayVolleyballSide(&v.TeamA, d.TeamA)
	overlayVolleyballSide(&v.TeamB, d.TeamB)
	v.CurrentSet = intOr(d.CurrentSet, v.CurrentSet)
	if d.Serving != nil {
		v.Serving = *d.Serving
	}
	if d.SetScores != nil {
		v.SetScores = append([]SetTally{}, d.SetScores...)
	}
}

func overlayVolleyballSide(dst *VolleyballSide, snap *SideSnapshot) {
	if snap == nil {
		return
	}
	dst.Points = intOr(snap.Points, dst.Points)
	dst.Sets = intOr(snap.Sets, dst.Sets)
}

func (g *GameScore) board() rallyBoard {
	return rallyBoard{
		pointsA: &g.PlayerA.Points,
		pointsB: &g.PlayerB.Points,
		wonA:    &g.PlayerA.Games,
		wonB:    &g.PlayerB.Games,
		current: &g.CurrentGame,
		serving: &g.Serving,
		closeOut: func(a, b int) {
			g.GameScores = append(g.GameScores, GameTally{PlayerA: a, PlayerB: b})
		},
	}
}

func (g *GameScore) apply(action Action, side Side, d Details) {
	if action == ActionSyncScore {
		g.sync(d)
		return
	}
	g.board().apply(action, side, d)
}

func (g *GameScore) sync(d Details) {
	*g = *newGameScore()

	a, b := d.PlayerA, d.PlayerB
	if a == nil {
		a = d.TeamA
	}
	if b == nil {
		b = d.TeamB
	}
	overlayGameSide(&g.PlayerA, a)
	overlayGameSide(&g.PlayerB, b)

	g.CurrentGame = intOr(d.CurrentGame, g.CurrentGame)
	if d.Serving != nil {
		g.Serving = *d.Serving
	}
	if d.GameScores != nil {
		g.GameScores = append([]GameTally{}, d.GameScores...)
	}
}

func overlayGameSide(dst *GameSide, snap *SideSnapshot) {
	if snap == nil {
		return
	}
	dst.Points = intOr(snap.Points, dst.Points)
	dst.Games = intOr(snap.Games, dst.Games)
}
