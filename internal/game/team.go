package game

import "image/color"

// TeamID identifies one of the four competing teams.
type TeamID int

const (
	TeamRed    TeamID = iota // hunter
	TeamBlue                 // evader
	TeamGreen                // gang
	TeamYellow               // rest cycle
	teamCount
)

// AllTeams lists the teams in spawn order.
var AllTeams = [teamCount]TeamID{TeamRed, TeamBlue, TeamGreen, TeamYellow}

func (t TeamID) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	case TeamGreen:
		return "green"
	case TeamYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter prefix used in unit labels.
func (t TeamID) Letter() string {
	switch t {
	case TeamRed:
		return "R"
	case TeamBlue:
		return "B"
	case TeamGreen:
		return "G"
	case TeamYellow:
		return "Y"
	default:
		return "?"
	}
}

// Valid reports whether t names one of the four teams.
func (t TeamID) Valid() bool {
	return t >= TeamRed && t < teamCount
}

// Team holds per-team attributes and the small amount of state owned by the
// team's strategy (elected leader, rest timer).
type Team struct {
	ID         TeamID
	Color      color.RGBA
	BaseSpeed  float64
	CanCorrupt bool
	Spawn      Vector

	// Remaining always equals the number of living units whose current team
	// is this one.
	Remaining int

	// Leader is the elected gang leader; 0 means none.
	Leader UnitID

	// Members lists units spawned onto this team, in spawn order.
	// ClearDead prunes dead entries.
	Members []*Unit

	// Spawned counts every unit ever spawned onto this team.
	Spawned int

	rest restTimer
}

// teamBaseSpeed is the per-team max speed in pixels per tick.
var teamBaseSpeed = [teamCount]float64{
	TeamRed:    1.5,
	TeamBlue:   2.0,
	TeamGreen:  4.0,
	TeamYellow: 4.0,
}

// teamColors are the colours renderers draw each team with.
var teamColors = [teamCount]color.RGBA{
	TeamRed:    {R: 255, G: 0, B: 0, A: 255},
	TeamBlue:   {R: 0, G: 0, B: 255, A: 255},
	TeamGreen:  {R: 0, G: 255, B: 0, A: 255}, // lime
	TeamYellow: {R: 255, G: 255, B: 0, A: 255},
}

// TeamColor returns the display colour for t.
func TeamColor(t TeamID) color.RGBA {
	if !t.Valid() {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return teamColors[t]
}

// newTeams builds the team table for a field of the given size. Spawn points
// sit in the four corners, spawnMargin pixels in from each edge.
func newTeams(field Field, corrupt bool) [teamCount]*Team {
	right := field.Width - spawnMargin
	bottom := field.Height - spawnMargin
	spawns := [teamCount]Vector{
		TeamRed:    Vec(spawnMargin, spawnMargin),
		TeamBlue:   Vec(right, spawnMargin),
		TeamGreen:  Vec(spawnMargin, bottom),
		TeamYellow: Vec(right, bottom),
	}
	var teams [teamCount]*Team
	for _, id := range AllTeams {
		teams[id] = &Team{
			ID:         id,
			Color:      teamColors[id],
			BaseSpeed:  teamBaseSpeed[id],
			CanCorrupt: corrupt,
			Spawn:      spawns[id],
			rest:       newRestTimer(),
		}
	}
	return teams
}

// ParseTeam maps a team name or letter back to its TeamID.
func ParseTeam(s string) (TeamID, bool) {
	for _, t := range AllTeams {
		if s == t.String() || s == t.Letter() {
			return t, true
		}
	}
	return -1, false
}
