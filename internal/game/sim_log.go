package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Unit     string  // label e.g. "R12", or "--" for global events
	Team     string  // team name or "--"
	Category string  // combat, team, bounds, game, trail, roster
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] R12  combat    kill             B40
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Unit, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike KillFeed it is unbounded and
// machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick avoidance and
// spawn entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, unit, team, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Unit:     unit,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, unit, team, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, unit, team, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FilterUnit returns entries for a specific unit label.
func (sl *SimLog) FilterUnit(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Unit == label {
			out = append(out, e)
		}
	}
	return out
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.CurrentTick())
	for _, t := range AllTeams {
		team := w.Team(t)
		leader := "-"
		if l := w.Unit(team.Leader); l != nil && !l.IsDead() && l.Team() == t {
			leader = l.Label()
		}
		fmt.Fprintf(&sb, "%-6s remaining=%-4d leader=%s\n", t, team.Remaining, leader)
	}
	fmt.Fprintf(&sb, "kills=%d  corruptions=%d  fence=%d\n",
		sl.CountCategory("combat", "kill"),
		sl.CountCategory("combat", "corrupt"),
		sl.CountCategory("bounds", "fence_kill"))
	if w.MaxKills() > 0 {
		if k := w.Unit(w.HighestKiller()); k != nil {
			fmt.Fprintf(&sb, "top killer: %s with %d\n", k.Label(), w.MaxKills())
		} else {
			fmt.Fprintf(&sb, "top killer: #%d with %d\n", w.HighestKiller(), w.MaxKills())
		}
	}
	fmt.Fprintf(&sb, "state: %s\n", w.Outcome())
	return sb.String()
}

// KillsSince returns the combat kill entries recorded after the first
// cursor log entries, and the cursor to pass next time.
func (sl *SimLog) KillsSince(cursor int) ([]SimLogEntry, int) {
	if cursor < 0 || cursor > len(sl.entries) {
		cursor = len(sl.entries)
	}
	var out []SimLogEntry
	for _, e := range sl.entries[cursor:] {
		if e.Category == "combat" && e.Key == "kill" {
			out = append(out, e)
		}
	}
	return out, len(sl.entries)
}
