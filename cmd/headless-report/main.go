package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	result       game.GameResult
	recordKiller string

	firstKillTick   int
	firstLeaderTick int
	kills           int
	corruptions     int
	fenceKills      int
	violations      int
	eliminations    []string

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var workers int
	var cfgPath string

	flag.IntVar(&runs, "runs", 20, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 36000, "tick limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&workers, "workers", 4, "concurrent runs")
	flag.StringVar(&cfgPath, "config", "", "optional YAML config for the simulation section")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if workers <= 0 {
		workers = 1
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	settings := cfg.Settings()

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d workers=%d units_per_team=%d combat=%s corruption=%t fence=%t\n\n",
		runs, ticks, seedBase, seedStep, workers, settings.UnitsPerTeam, settings.Combat, settings.Corruption, settings.ElectricFence)

	all, err := runAll(settings, runs, ticks, seedBase, seedStep, workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
}

// runAll fans the runs out over a fixed worker pool and returns them in
// run order.
func runAll(base game.Settings, runs, ticks int, seedBase, seedStep int64, workers int) ([]runStats, error) {
	all := make([]runStats, runs)
	var firstErr error
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, runs)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seed := seedBase + int64(i)*seedStep
				rs, err := runBattle(i+1, base, seed, ticks)
				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				all[i] = rs
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < runs; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return all, firstErr
}

func runBattle(runIndex int, base game.Settings, seed int64, ticks int) (runStats, error) {
	s := base
	s.Seed = seed
	s.StartPaused = false
	w, err := game.NewWorld(s)
	if err != nil {
		return runStats{runIndex: runIndex, seed: seed}, err
	}
	if err := w.Populate(); err != nil {
		return runStats{runIndex: runIndex, seed: seed}, err
	}

	reporter := game.NewSimReporter(0)
	for i := 0; i < ticks && w.Tick(); i++ {
		if w.CurrentTick()%game.ReportInterval == 0 {
			reporter.Collect(w)
		}
	}
	if w.CurrentTick()%game.ReportInterval != 0 {
		reporter.Collect(w)
	}

	log := w.Log()
	entries := log.Entries()
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		result:          w.Result(),
		firstKillTick:   firstTick(entries, "combat", "kill", ""),
		firstLeaderTick: firstTick(entries, "team", "leader", ""),
		kills:           log.CountCategory("combat", "kill"),
		corruptions:     log.CountCategory("combat", "corrupt"),
		fenceKills:      log.CountCategory("bounds", "fence_kill"),
		violations:      log.CountCategory("bounds", "violation"),
		windowSummary:   reporter.WindowSummary(),
	}
	for _, e := range log.Filter("team", "eliminated") {
		rs.eliminations = append(rs.eliminations, fmt.Sprintf("%s@%d", e.Team, e.Tick))
	}
	if u := w.Unit(rs.result.HighestKiller); u != nil {
		rs.recordKiller = u.Label()
	}
	return rs, nil
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: %s outcome=%s ticks=%d\n", rs.result.Description(), rs.result.Outcome, rs.result.Ticks)
	fmt.Printf("phase_markers: first_kill=%d first_leader=%d eliminated=%s\n",
		rs.firstKillTick, rs.firstLeaderTick, joinList(rs.eliminations))
	fmt.Printf("event_totals: kill=%d corrupt=%d fence_kill=%d violation=%d\n",
		rs.kills, rs.corruptions, rs.fenceKills, rs.violations)
	if rs.recordKiller != "" {
		fmt.Printf("record_killer: %s kills=%d\n", rs.recordKiller, rs.result.MaxKills)
	}
	var parts []string
	for _, t := range game.AllTeams {
		parts = append(parts, fmt.Sprintf("%s=%d/%d", t, rs.result.Survivors[t], rs.result.Spawned[t]))
	}
	fmt.Printf("survivors: %s\n", strings.Join(parts, " "))
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

// tally is the cross-run aggregate.
type tally struct {
	wins        map[game.TeamID]int
	extinctions int
	unfinished  int
	finishTicks []int
	killTicks   []int
	totalKills  int
	bestKiller  string
	bestKills   int
	bestRun     int
}

func aggregate(all []runStats) tally {
	t := tally{wins: map[game.TeamID]int{}}
	for _, rs := range all {
		switch rs.result.Outcome {
		case game.OutcomeVictory:
			t.wins[rs.result.Winner]++
			t.finishTicks = append(t.finishTicks, rs.result.Ticks)
		case game.OutcomeExtinction:
			t.extinctions++
			t.finishTicks = append(t.finishTicks, rs.result.Ticks)
		default:
			t.unfinished++
		}
		if rs.firstKillTick >= 0 {
			t.killTicks = append(t.killTicks, rs.firstKillTick)
		}
		t.totalKills += rs.kills
		if rs.result.MaxKills > t.bestKills {
			t.bestKills = rs.result.MaxKills
			t.bestKiller = rs.recordKiller
			t.bestRun = rs.runIndex
		}
	}
	return t
}

func printAggregate(all []runStats) {
	t := aggregate(all)
	n := len(all)

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d victories=%d extinctions=%d unfinished=%d\n",
		n, n-t.extinctions-t.unfinished, t.extinctions, t.unfinished)
	for _, team := range game.AllTeams {
		fmt.Printf("  %-6s wins=%3d  rate=%5.1f%%\n", team, t.wins[team], pct(t.wins[team], n))
	}
	fmt.Printf("avg_finish_tick=%s avg_first_kill_tick=%s avg_kills_per_run=%.1f\n",
		avgTickString(t.finishTicks), avgTickString(t.killTicks), avg(t.totalKills, n))
	if t.bestKiller != "" {
		fmt.Printf("record_killer=%s kills=%d run=%d\n", t.bestKiller, t.bestKills, t.bestRun)
	}
}

func pct(k, n int) float64 {
	return avg(k, n) * 100
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinList(s []string) string {
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, ",")
}
