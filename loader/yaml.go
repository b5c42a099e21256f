package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/storycore/types"
)

// YAML catalogs split the game across one file per kind:
//
//	verbs.yml, items.yml, subjects.yml, narratives.yml,
//	events.yml, room_blueprints.yml, intro.yml
//
// Word lists are not authored in YAML catalogs; the defaults apply.

// LoadYAML reads a YAML catalog from dir, validates references, and
// returns the Config.
func LoadYAML(dir string) (*types.Config, error) {
	cfg := &types.Config{}

	if err := readYAML(dir, "verbs.yml", &cfg.Verbs); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "items.yml", &cfg.Items); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "subjects.yml", &cfg.Subjects); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "narratives.yml", &cfg.Narratives); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "events.yml", &cfg.Events); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "room_blueprints.yml", &cfg.Rooms); err != nil {
		return nil, err
	}
	if err := readYAML(dir, "intro.yml", &cfg.Intro); err != nil {
		return nil, err
	}

	return finish(cfg)
}

// LoadJSON parses a whole catalog from a single JSON document, the
// shape a front-end would ship embedded or fetch over the wire.
func LoadJSON(data []byte) (*types.Config, error) {
	cfg := &types.Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing catalog JSON: %w", err)
	}
	return finish(cfg)
}

func readYAML(dir, name string, out any) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("reading catalog file %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// finish applies word defaults, sorts the catalogs into id order, and
// validates. Shared by the YAML and JSON paths.
func finish(cfg *types.Config) (*types.Config, error) {
	cfg.Prepositions, cfg.Determiners, cfg.Movements, cfg.Directions =
		applyWordDefaults(cfg.Prepositions, cfg.Determiners, cfg.Movements, cfg.Directions)
	for i := range cfg.Verbs {
		if cfg.Verbs[i].Function == "" {
			cfg.Verbs[i].Function = types.VerbNormal
		}
	}
	sortCatalogs(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
