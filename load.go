package statewalk

import (
	"fmt"

	"github.com/aretw0/statewalk/internal/config"
)

// Load initializes an Engine from a YAML graph definition on disk. Options
// apply as in New; code-defined transitions can be added afterwards with
// AddTransition.
func Load(path string, opts ...Option) (*Engine, error) {
	def, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return fromDefinition(def, opts...)
}

// LoadBytes initializes an Engine from an in-memory YAML definition.
func LoadBytes(data []byte, opts ...Option) (*Engine, error) {
	def, err := config.Load(data)
	if err != nil {
		return nil, err
	}
	return fromDefinition(def, opts...)
}

func fromDefinition(def *config.Definition, opts ...Option) (*Engine, error) {
	eng, err := New(opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range def.States {
		if err := eng.AddState(s); err != nil {
			return nil, fmt.Errorf("definition: %w", err)
		}
	}
	for _, t := range def.Transitions {
		if err := eng.AddTransition(t); err != nil {
			return nil, fmt.Errorf("definition: %w", err)
		}
	}
	return eng, nil
}
