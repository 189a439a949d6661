package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SportRules says, per sport, whether a tied final score settles as a push.
// Sports absent from the file default to no draws, so a tie defers to manual
// resolution instead of being guessed.
type SportRules struct {
	Sports map[string]SportRule `yaml:"sports"`
}

type SportRule struct {
	Draws bool `yaml:"draws"`
}

// LoadSportRules reads the sport rules file. A missing file is not an error:
// it yields the conservative default of no draws anywhere.
func LoadSportRules(path string) (*SportRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SportRules{Sports: map[string]SportRule{}}, nil
		}
		return nil, fmt.Errorf("failed to read sports file: %w", err)
	}

	var rules SportRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse sports file: %w", err)
	}
	if rules.Sports == nil {
		rules.Sports = map[string]SportRule{}
	}

	return &rules, nil
}

func (r *SportRules) DrawsAllowed(sport string) bool {
	rule, found := r.Sports[strings.ToLower(strings.TrimSpace(sport))]
	return found && rule.Draws
}
