package config

import "flag"

// FlagSet binds the common simulation flags to fs. After fs.Parse, call
// Overrides to collect only the flags the user actually passed.
type FlagSet struct {
	fs *flag.FlagSet

	Path          string
	unitsPerTeam  int
	fieldWidth    float64
	fieldHeight   float64
	fixedSpawn    bool
	fence         bool
	infection     bool
	population    bool
	announceKills bool
	startPaused   bool
	seed          int64
	audio         bool
	addr          string
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *flag.FlagSet) *FlagSet {
	d := Default()
	f := &FlagSet{fs: fs}
	fs.StringVar(&f.Path, "config", "steering-wars.yaml", "path to YAML config (missing file uses defaults)")
	fs.IntVar(&f.unitsPerTeam, "units", d.Sim.UnitsPerTeam, "units per team")
	fs.Float64Var(&f.fieldWidth, "width", d.Sim.FieldWidth, "field width in pixels")
	fs.Float64Var(&f.fieldHeight, "height", d.Sim.FieldHeight, "field height in pixels")
	fs.BoolVar(&f.fixedSpawn, "fixed-spawn", d.Sim.FixedSpawn, "spawn every unit at its team corner")
	fs.BoolVar(&f.fence, "fence", d.Sim.ElectricFence, "kill units that leave the field")
	fs.BoolVar(&f.infection, "infection", d.Sim.InfectionMode, "losers defect instead of dying")
	fs.BoolVar(&f.population, "population-combat", d.Sim.PopulationCombat, "favour smaller teams in combat")
	fs.BoolVar(&f.announceKills, "announce-kills", d.Sim.AnnounceKills, "record kills in the kill feed")
	fs.BoolVar(&f.startPaused, "paused", d.Sim.StartPaused, "start paused")
	fs.Int64Var(&f.seed, "seed", d.Sim.Seed, "RNG seed")
	fs.BoolVar(&f.audio, "audio", d.Audio.Enabled, "play a cue on each kill")
	fs.StringVar(&f.addr, "addr", d.Spectate.Addr, "spectator listen address")
	return f
}

// Overrides returns pointers for every flag that was set explicitly.
func (f *FlagSet) Overrides() Overrides {
	var o Overrides
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "units":
			o.UnitsPerTeam = &f.unitsPerTeam
		case "width":
			o.FieldWidth = &f.fieldWidth
		case "height":
			o.FieldHeight = &f.fieldHeight
		case "fixed-spawn":
			o.FixedSpawn = &f.fixedSpawn
		case "fence":
			o.ElectricFence = &f.fence
		case "infection":
			o.InfectionMode = &f.infection
		case "population-combat":
			o.Population = &f.population
		case "announce-kills":
			o.AnnounceKills = &f.announceKills
		case "paused":
			o.StartPaused = &f.startPaused
		case "seed":
			o.Seed = &f.seed
		case "audio":
			o.Audio = &f.audio
		case "addr":
			o.Addr = &f.addr
		}
	})
	return o
}

// Resolve loads the config file and applies the explicit flags.
func (f *FlagSet) Resolve() (Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return cfg, err
	}
	return f.Overrides().Apply(cfg)
}
