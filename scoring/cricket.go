package scoring

func (c *CricketScore) apply(action Action, side Side, d Details) {
	runs := intOr(d.Runs, 0)
	tally := c.tally(side)

	switch action {
	case ActionRuns:
		c.Runs += runs
		tally.Runs += runs
		// Only singles, twos and threes use up a delivery here; fours and
		// sixes are expected to arrive as boundary actions.
		if runs == 1 || runs == 2 || runs == 3 {
			c.Balls++
		}
	case ActionBoundary:
		c.Runs += runs
		tally.Runs += runs
		c.Balls++
	case ActionWicket:
		c.Wickets++
		tally.Wickets++
		c.Balls++
	case ActionWide:
		c.Extras.Wides++
		c.Runs++
		tally.Runs++
	case ActionNoBall:
		c.Extras.NoBalls++
		c.Runs++
		tally.Runs++
	default:
		return
	}

	if c.Balls >= ballsPerOver {
		c.Overs++
		c.Balls = 0
	}
}
