package wanted

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LevelTuning is one row of the escalation table, indexed by star level.
type LevelTuning struct {
	MaxPursuers int     `yaml:"max_pursuers"`
	Ranged      bool    `yaml:"ranged"`
	Aerial      bool    `yaml:"aerial"`
	EscortProb  float64 `yaml:"escort_prob"`
	EscapeTime  float64 `yaml:"escape_time"`
	HeatRadius  float64 `yaml:"heat_radius"`
}

// Tuning collects the numbers that shape the pursuit curve. Defaults match
// the shipped balance; a YAML file can override individual fields.
type Tuning struct {
	Thresholds   []float64     `yaml:"thresholds"`    // heat needed for levels 1..5
	Levels       []LevelTuning `yaml:"levels"`        // rows for levels 1..5
	Tariffs      []int         `yaml:"tariffs"`       // spray price by level; [0] unused
	SprayPalette []uint32      `yaml:"spray_palette"` // settle colors

	SpawnInterval float64 `yaml:"spawn_interval"` // pursuer spawn cadence, seconds
	SpikeMin      float64 `yaml:"spike_deploy_min"`
	SpikeMax      float64 `yaml:"spike_deploy_max"`
	RoadblockMin  float64 `yaml:"roadblock_deploy_min"`
	RoadblockMax  float64 `yaml:"roadblock_deploy_max"`
	BribeRespawn  float64 `yaml:"bribe_respawn"`
	SprayCooldown float64 `yaml:"spray_cooldown"`
	SprayDuration float64 `yaml:"spray_duration"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Thresholds: []float64{2, 4, 7, 10, 14},
		Levels: []LevelTuning{
			{MaxPursuers: 2, Ranged: false, Aerial: false, EscortProb: 0, EscapeTime: 15, HeatRadius: 50},
			{MaxPursuers: 4, Ranged: false, Aerial: false, EscortProb: 0.6, EscapeTime: 25, HeatRadius: 80},
			{MaxPursuers: 6, Ranged: true, Aerial: true, EscortProb: 0.6, EscapeTime: 40, HeatRadius: 120},
			{MaxPursuers: 8, Ranged: true, Aerial: true, EscortProb: 0.6, EscapeTime: 60, HeatRadius: 170},
			{MaxPursuers: 12, Ranged: true, Aerial: true, EscortProb: 0.6, EscapeTime: 90, HeatRadius: 250},
		},
		Tariffs: []int{0, 200, 500, 1000, 2000, 5000},
		SprayPalette: []uint32{
			0xcc3333, 0x3333cc, 0x33cc33, 0xcccc33,
			0xeeeeee, 0xff8800, 0x8800ff, 0x00cccc,
		},
		SpawnInterval: 5.0,
		SpikeMin:      8.0,
		SpikeMax:      14.0,
		RoadblockMin:  15.0,
		RoadblockMax:  25.0,
		BribeRespawn:  90.0,
		SprayCooldown: 10.0,
		SprayDuration: 1.5,
	}
}

// LoadTuning reads YAML overrides on top of the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	if len(t.Thresholds) != MaxLevel {
		return fmt.Errorf("want %d thresholds, got %d", MaxLevel, len(t.Thresholds))
	}
	if len(t.Levels) != MaxLevel {
		return fmt.Errorf("want %d level rows, got %d", MaxLevel, len(t.Levels))
	}
	if len(t.Tariffs) != MaxLevel+1 {
		return fmt.Errorf("want %d tariffs, got %d", MaxLevel+1, len(t.Tariffs))
	}
	if len(t.SprayPalette) == 0 {
		return fmt.Errorf("empty spray palette")
	}
	for i := 1; i < len(t.Thresholds); i++ {
		if t.Thresholds[i] <= t.Thresholds[i-1] {
			return fmt.Errorf("thresholds must increase: [%d]=%v", i, t.Thresholds[i])
		}
	}
	return nil
}

// Row returns the escalation row for a level in 1..5. Level 0 maps to a zero
// row so callers never index out of range while cleared.
func (t Tuning) Row(level int) LevelTuning {
	if level < 1 {
		return LevelTuning{}
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return t.Levels[level-1]
}
