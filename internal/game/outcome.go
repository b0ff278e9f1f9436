package game

// Outcome is the terminal state of a game, if any.
type Outcome int

const (
	OutcomeRunning    Outcome = iota
	OutcomeVictory            // exactly one team left
	OutcomeExtinction         // every team gone; an unexpected state
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeVictory:
		return "victory"
	case OutcomeExtinction:
		return "extinction"
	default:
		return "unknown"
	}
}

// GameResult summarises a finished (or abandoned) game.
type GameResult struct {
	Outcome       Outcome
	Winner        TeamID // valid only for OutcomeVictory
	Ticks         int
	Kills         int
	MaxKills      int
	HighestKiller UnitID
	Survivors     [teamCount]int
	Spawned       [teamCount]int
}

// Result captures the world's current result.
func (w *World) Result() GameResult {
	r := GameResult{
		Outcome:       w.outcome,
		Winner:        w.winner,
		Ticks:         w.tick,
		Kills:         w.kills,
		MaxKills:      w.maxKills,
		HighestKiller: w.highestKiller,
	}
	for _, t := range AllTeams {
		r.Survivors[t] = w.teams[t].Remaining
		r.Spawned[t] = w.teams[t].Spawned
	}
	return r
}

// Description is a one-line human summary of the result.
func (r GameResult) Description() string {
	switch r.Outcome {
	case OutcomeVictory:
		return r.Winner.String() + " team wins"
	case OutcomeExtinction:
		return "everyone is dead"
	default:
		return "no winner yet"
	}
}
