package spectate

import (
	"encoding/json"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

type unitDTO struct {
	ID       int     `json:"id"`
	Label    string  `json:"label"`
	Team     string  `json:"team"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Dead     bool    `json:"dead,omitempty"`
	Leader   bool    `json:"leader,omitempty"`
	Avoiding bool    `json:"avoiding,omitempty"`
	Kills    int     `json:"kills,omitempty"`
}

type teamDTO struct {
	Team      string `json:"team"`
	Remaining int    `json:"remaining"`
	Resting   bool   `json:"resting,omitempty"`
}

type stateMsg struct {
	Type          string    `json:"type"`
	Tick          int       `json:"tick"`
	Paused        bool      `json:"paused"`
	Outcome       string    `json:"outcome"`
	Winner        string    `json:"winner,omitempty"`
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	Kills         int       `json:"kills"`
	MaxKills      int       `json:"max_kills"`
	HighestKiller int       `json:"highest_killer"`
	Units         []unitDTO `json:"units"`
	Teams         []teamDTO `json:"teams"`
}

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type spawnPayload struct {
	Team string  `json:"team"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func toStateMsg(s game.Snapshot) stateMsg {
	msg := stateMsg{
		Type:          "state",
		Tick:          s.Tick,
		Paused:        s.Paused,
		Outcome:       s.Outcome.String(),
		Width:         s.Field.Width,
		Height:        s.Field.Height,
		Kills:         s.Kills,
		MaxKills:      s.MaxKills,
		HighestKiller: int(s.HighestKiller),
		Units:         make([]unitDTO, 0, len(s.Units)),
		Teams:         make([]teamDTO, 0, len(s.Teams)),
	}
	if s.Outcome == game.OutcomeVictory {
		msg.Winner = s.Winner.String()
	}
	for _, u := range s.Units {
		msg.Units = append(msg.Units, unitDTO{
			ID:       int(u.ID),
			Label:    u.Label,
			Team:     u.Team.String(),
			X:        u.Pos.X,
			Y:        u.Pos.Y,
			VX:       u.Vel.X,
			VY:       u.Vel.Y,
			Dead:     u.Dead,
			Leader:   u.Leader,
			Avoiding: u.Avoiding,
			Kills:    u.Kills,
		})
	}
	for _, t := range s.Teams {
		msg.Teams = append(msg.Teams, teamDTO{Team: t.Team.String(), Remaining: t.Remaining, Resting: t.Resting})
	}
	return msg
}
