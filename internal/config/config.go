// Package config loads the simulation and viewer options from a YAML file
// and applies command-line overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

// Config is the full on-disk configuration.
type Config struct {
	Sim      SimConfig      `yaml:"sim"`
	View     ViewConfig     `yaml:"view"`
	Audio    AudioConfig    `yaml:"audio"`
	Spectate SpectateConfig `yaml:"spectate"`
}

// SimConfig maps onto game.Settings.
type SimConfig struct {
	UnitsPerTeam     int     `yaml:"units_per_team"`
	FieldWidth       float64 `yaml:"field_width"`
	FieldHeight      float64 `yaml:"field_height"`
	FixedSpawn       bool    `yaml:"fixed_spawn"`
	ElectricFence    bool    `yaml:"electric_fence"`
	InfectionMode    bool    `yaml:"infection_mode"`
	PopulationCombat bool    `yaml:"population_combat_balance"`
	StartPaused      bool    `yaml:"start_paused"`
	AnnounceKills    bool    `yaml:"announce_kills"`
	Seed             int64   `yaml:"seed"`
	Verbose          bool    `yaml:"verbose"`
}

// ViewConfig holds renderer toggles shared by the window and terminal viewers.
type ViewConfig struct {
	DrawPaths         bool `yaml:"draw_paths"`
	DrawUnits         bool `yaml:"draw_units"`
	DrawGraves        bool `yaml:"draw_graves"`
	HighlightAvoiding bool `yaml:"highlight_avoiding"`
	DrawDeadPaths     bool `yaml:"draw_dead_paths"`
	ShowFPS           bool `yaml:"show_fps"`
	ShowMouseInfo     bool `yaml:"show_mouse_info"`
	ShowTeamInfo      bool `yaml:"show_team_info"`
	OptimizeTrails    bool `yaml:"optimize_trails"`
	// LagThresholdMS is the frame time that triggers trail compaction.
	LagThresholdMS int `yaml:"lag_threshold_ms"`
}

// LagThreshold returns LagThresholdMS as a duration.
func (v ViewConfig) LagThreshold() time.Duration {
	return time.Duration(v.LagThresholdMS) * time.Millisecond
}

// AudioConfig controls the kill cue.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// SpectateConfig controls the websocket spectator server.
type SpectateConfig struct {
	Addr       string `yaml:"addr"`
	SnapshotMS int    `yaml:"snapshot_ms"`
}

// SnapshotInterval returns SnapshotMS as a duration.
func (s SpectateConfig) SnapshotInterval() time.Duration {
	return time.Duration(s.SnapshotMS) * time.Millisecond
}

// Default returns the stock configuration.
func Default() Config {
	s := game.DefaultSettings()
	return Config{
		Sim: SimConfig{
			UnitsPerTeam:  s.UnitsPerTeam,
			FieldWidth:    s.Field.Width,
			FieldHeight:   s.Field.Height,
			FixedSpawn:    s.FixedSpawn,
			ElectricFence: s.ElectricFence,
			Seed:          s.Seed,
		},
		View: ViewConfig{
			DrawPaths:         true,
			DrawUnits:         true,
			DrawGraves:        true,
			HighlightAvoiding: false,
			DrawDeadPaths:     true,
			ShowFPS:           true,
			ShowMouseInfo:     true,
			ShowTeamInfo:      true,
			OptimizeTrails:    true,
			LagThresholdMS:    10,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
		Spectate: SpectateConfig{
			Addr:       ":8080",
			SnapshotMS: 100,
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports values no viewer can run with.
func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if c.View.LagThresholdMS < 0 {
		return fmt.Errorf("view.lag_threshold_ms must be >= 0, got %d", c.View.LagThresholdMS)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0,1], got %g", c.Audio.Volume)
	}
	if c.Spectate.SnapshotMS <= 0 {
		return fmt.Errorf("spectate.snapshot_ms must be > 0, got %d", c.Spectate.SnapshotMS)
	}
	return nil
}

// Settings converts the sim section into core settings.
func (c Config) Settings() game.Settings {
	combat := game.CombatUniform
	if c.Sim.PopulationCombat {
		combat = game.CombatPopulationWeighted
	}
	return game.Settings{
		Field:         game.Field{Width: c.Sim.FieldWidth, Height: c.Sim.FieldHeight},
		UnitsPerTeam:  c.Sim.UnitsPerTeam,
		FixedSpawn:    c.Sim.FixedSpawn,
		ElectricFence: c.Sim.ElectricFence,
		Combat:        combat,
		Corruption:    c.Sim.InfectionMode,
		AnnounceKills: c.Sim.AnnounceKills,
		StartPaused:   c.Sim.StartPaused,
		Seed:          c.Sim.Seed,
		Verbose:       c.Sim.Verbose,
	}
}

// Overrides are optional command-line values; nil fields leave the file
// value in place.
type Overrides struct {
	UnitsPerTeam  *int
	FieldWidth    *float64
	FieldHeight   *float64
	FixedSpawn    *bool
	ElectricFence *bool
	InfectionMode *bool
	Population    *bool
	AnnounceKills *bool
	StartPaused   *bool
	Seed          *int64
	Audio         *bool
	Addr          *string
}

// Apply returns c with every non-nil override applied, revalidated.
func (o Overrides) Apply(c Config) (Config, error) {
	if o.UnitsPerTeam != nil {
		c.Sim.UnitsPerTeam = *o.UnitsPerTeam
	}
	if o.FieldWidth != nil {
		c.Sim.FieldWidth = *o.FieldWidth
	}
	if o.FieldHeight != nil {
		c.Sim.FieldHeight = *o.FieldHeight
	}
	if o.FixedSpawn != nil {
		c.Sim.FixedSpawn = *o.FixedSpawn
	}
	if o.ElectricFence != nil {
		c.Sim.ElectricFence = *o.ElectricFence
	}
	if o.InfectionMode != nil {
		c.Sim.InfectionMode = *o.InfectionMode
	}
	if o.Population != nil {
		c.Sim.PopulationCombat = *o.Population
	}
	if o.AnnounceKills != nil {
		c.Sim.AnnounceKills = *o.AnnounceKills
	}
	if o.StartPaused != nil {
		c.Sim.StartPaused = *o.StartPaused
	}
	if o.Seed != nil {
		c.Sim.Seed = *o.Seed
	}
	if o.Audio != nil {
		c.Audio.Enabled = *o.Audio
	}
	if o.Addr != nil {
		c.Spectate.Addr = *o.Addr
	}
	return c, c.Validate()
}
