package game

// UnitSnapshot is a read-only copy of one unit's drawable state.
type UnitSnapshot struct {
	ID       UnitID
	Label    string
	Team     TeamID
	Pos      Vector
	Vel      Vector
	Dead     bool
	Avoiding bool
	Leader   bool
	Kills    int
}

// TeamSnapshot is a read-only copy of one team's counters.
type TeamSnapshot struct {
	Team      TeamID
	Remaining int
	Leader    UnitID
	Resting   bool
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Tick          int
	Paused        bool
	Outcome       Outcome
	Winner        TeamID
	Field         Field
	Kills         int
	MaxKills      int
	HighestKiller UnitID
	Units         []UnitSnapshot
	Teams         []TeamSnapshot
}

// Snapshot copies the current world state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:          w.tick,
		Paused:        w.paused,
		Outcome:       w.outcome,
		Winner:        w.winner,
		Field:         w.field,
		Kills:         w.kills,
		MaxKills:      w.maxKills,
		HighestKiller: w.highestKiller,
		Units:         make([]UnitSnapshot, 0, len(w.roster)),
		Teams:         make([]TeamSnapshot, 0, teamCount),
	}
	for _, u := range w.roster {
		s.Units = append(s.Units, UnitSnapshot{
			ID:       u.id,
			Label:    u.Label(),
			Team:     u.team,
			Pos:      u.pos,
			Vel:      u.vel,
			Dead:     u.dead,
			Avoiding: u.steering.avoiding,
			Leader:   w.IsLeader(u),
			Kills:    u.kills,
		})
	}
	for _, t := range w.teams {
		s.Teams = append(s.Teams, TeamSnapshot{
			Team:      t.ID,
			Remaining: t.Remaining,
			Leader:    t.Leader,
			Resting:   t.rest.resting,
		})
	}
	return s
}

// IsLeader reports whether u is currently its team's elected leader.
func (w *World) IsLeader(u *Unit) bool {
	return !u.dead && w.teams[u.team].Leader == u.id
}

// OptimizeTrails compacts every trail between ticks.
func (w *World) OptimizeTrails() (int, error) {
	if w.inTick {
		return 0, ErrMidTick
	}
	n := w.Trails.Optimize()
	w.log.Add(w.tick, "--", "--", "trail", "optimize", "vertices snapped", float64(n))
	return n, nil
}

// ClearTrails empties every trail between ticks.
func (w *World) ClearTrails() error {
	if w.inTick {
		return ErrMidTick
	}
	w.Trails.Clear()
	w.log.Add(w.tick, "--", "--", "trail", "clear", "paths cleared", 0)
	return nil
}
