package view

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
)

// hudLine is one row of HUD text with its colour.
type hudLine struct {
	text string
	clr  color.Color
}

var (
	hudText     = color.RGBA{R: 220, G: 230, B: 220, A: 255}
	hudWarn     = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	hudDim      = color.RGBA{R: 150, G: 160, B: 150, A: 255}
	graveColour = color.RGBA{R: 120, G: 120, B: 120, A: 200}
)

// hudLines builds the top-left info panel.
func hudLines(snap game.Snapshot, opts config.ViewConfig, fps float64, mouse game.Vector) []hudLine {
	var lines []hudLine
	if opts.ShowFPS {
		lines = append(lines, hudLine{fmt.Sprintf("FPS: %.0f", fps), hudText})
	}
	if opts.ShowMouseInfo {
		clr := color.Color(hudText)
		if !snap.Field.Contains(mouse) {
			clr = hudWarn
		}
		lines = append(lines, hudLine{"mouse " + mouse.String(), clr})
	}
	if opts.ShowTeamInfo {
		for _, t := range snap.Teams {
			label := fmt.Sprintf("%-6s %4d", t.Team, t.Remaining)
			if t.Resting {
				label += "  zzz"
			}
			lines = append(lines, hudLine{label, game.TeamColor(t.Team)})
		}
		lines = append(lines, hudLine{fmt.Sprintf("tick %d  kills %d", snap.Tick, snap.Kills), hudDim})
		if snap.MaxKills > 0 {
			lines = append(lines, hudLine{fmt.Sprintf("top killer #%d (%d)", snap.HighestKiller, snap.MaxKills), hudDim})
		}
	}
	if snap.Paused && snap.Outcome == game.OutcomeRunning {
		lines = append(lines, hudLine{"PAUSED", hudWarn})
	}
	return lines
}

// bannerText is the centred message shown once the game halts.
func bannerText(snap game.Snapshot) string {
	switch snap.Outcome {
	case game.OutcomeVictory:
		return fmt.Sprintf("Game over, %s team wins!", snap.Winner)
	case game.OutcomeExtinction:
		return "Something went wrong, everyone is dead"
	default:
		return ""
	}
}

// keyLegend lists the viewer's key bindings.
var keyLegend = []string{
	"click=pause  right-click=select  wheel=zoom",
	"C=copy report  O=optimize trails  T=clear trails",
	"X=clear graves  H=toggle HUD",
}
