package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// ReportInterval is how often callers are expected to Collect (1s at 60TPS).
const ReportInterval = TicksPerSecond

// TeamReport captures a single team's state at one point in time.
type TeamReport struct {
	Team      TeamID
	Remaining int
	Avoiding  int     // members steering away from the edge
	AvgSpeed  float64 // mean |velocity| of living members
	Leader    UnitID
	Resting   bool
}

// SimReport is a full snapshot of the simulation at one tick.
type SimReport struct {
	Tick       int
	Kills      int
	Population int
	Teams      [teamCount]TeamReport
}

// SimReporter collects periodic reports from the simulation and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect gathers a report from the current world state.
// Call this periodically (e.g. every ReportInterval ticks).
func (r *SimReporter) Collect(w *World) {
	report := SimReport{
		Tick:       w.CurrentTick(),
		Kills:      w.Kills(),
		Population: w.Population(),
	}
	var living [teamCount]int
	for _, id := range AllTeams {
		team := w.Team(id)
		report.Teams[id] = TeamReport{
			Team:      id,
			Remaining: team.Remaining,
			Resting:   id == TeamYellow && team.Resting(),
		}
		if l := w.Unit(team.Leader); l != nil && !l.dead && l.team == id {
			report.Teams[id].Leader = l.id
		}
	}
	for _, u := range w.Units() {
		if u.dead {
			continue
		}
		tr := &report.Teams[u.team]
		living[u.team]++
		tr.AvgSpeed += u.vel.Magnitude()
		if u.steering.avoiding {
			tr.Avoiding++
		}
	}
	for _, id := range AllTeams {
		if living[id] > 0 {
			report.Teams[id].AvgSpeed /= float64(living[id])
		}
	}

	r.history = append(r.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / ReportInterval * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgRemaining [teamCount]float64
	AvgAvoiding  [teamCount]float64
	AvgSpeed     [teamCount]float64

	// KillsInWindow is the number of collisions resolved between the first
	// and last sample.
	KillsInWindow int
}

// WindowSummary averages the reports that fall within the recent window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	oldest, newest := window[len(window)-1], window[0]
	wr := &WindowReport{
		FromTick:      oldest.Tick,
		ToTick:        newest.Tick,
		SampleCount:   len(window),
		KillsInWindow: newest.Kills - oldest.Kills,
	}
	for _, rpt := range window {
		for _, id := range AllTeams {
			tr := rpt.Teams[id]
			wr.AvgRemaining[id] += float64(tr.Remaining)
			wr.AvgAvoiding[id] += float64(tr.Avoiding)
			wr.AvgSpeed[id] += tr.AvgSpeed
		}
	}
	for _, id := range AllTeams {
		wr.AvgRemaining[id] /= n
		wr.AvgAvoiding[id] /= n
		wr.AvgSpeed[id] /= n
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Behaviour Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "kills in window: %d\n", wr.KillsInWindow)
	for _, id := range AllTeams {
		fmt.Fprintf(&sb, "  %-6s remaining=%6.1f  avoiding=%5.1f  speed=%.2f\n",
			id, wr.AvgRemaining[id], wr.AvgAvoiding[id], wr.AvgSpeed[id])
	}
	return sb.String()
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d population=%d kills=%d ---\n", rpt.Tick, rpt.Population, rpt.Kills)
	for _, tr := range rpt.Teams {
		phase := ""
		if tr.Resting {
			phase = " (resting)"
		}
		fmt.Fprintf(&sb, "%-6s remaining=%-4d avoiding=%-3d speed=%.2f%s\n",
			tr.Team, tr.Remaining, tr.Avoiding, tr.AvgSpeed, phase)
	}
	return sb.String()
}
