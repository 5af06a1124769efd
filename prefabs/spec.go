package prefabs

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Load returns the raw bytes of an embedded prefab file.
func Load(filename string) ([]byte, error) {
	return fs.ReadFile(PrefabsFS, filename)
}

// LoadSpec decodes an embedded prefab file into a spec type.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec is the player archetype: starting health, candle, inventory and
// respawn tuning.
type PlayerSpec struct {
	Name               string        `yaml:"name"`
	Health             int           `yaml:"health"`
	RespawnDelayFrames int           `yaml:"respawn_delay_frames"`
	Candle             CandleSpec    `yaml:"candle"`
	Inventory          InventorySpec `yaml:"inventory"`
	Abilities          AbilitySpec   `yaml:"abilities"`
}

type CandleSpec struct {
	MaxWax   float64 `yaml:"max_wax"`
	StartWax float64 `yaml:"start_wax"`
	State    string  `yaml:"state"`
}

type InventorySpec struct {
	Matches int `yaml:"matches"`
}

type AbilitySpec struct {
	DoubleJump bool `yaml:"double_jump"`
	WallGrab   bool `yaml:"wall_grab"`
	Anchor     bool `yaml:"anchor"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// TrapSpec is the default trap archetype.
type TrapSpec struct {
	Name   string `yaml:"name"`
	Damage int    `yaml:"damage"`
	Armed  bool   `yaml:"armed"`
}

func LoadTrapSpec() (*TrapSpec, error) {
	spec, err := LoadSpec[TrapSpec]("trap.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
