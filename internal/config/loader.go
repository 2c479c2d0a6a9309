// Package config loads state graph definitions from YAML. A definition
// declares states with their owned objects (including declarative
// search-region dependencies) and the task-sequence transitions between
// them; code-defined transitions can only be registered programmatically.
package config

import (
	"fmt"
	"os"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Definition is the parsed, resolved form of a YAML graph definition.
type Definition struct {
	States      []*domain.State
	Transitions []*domain.Transition
}

type rawFile struct {
	States      []rawState      `yaml:"states"`
	Transitions []rawTransition `yaml:"transitions"`
}

type rawState struct {
	ID      int64       `yaml:"id"`
	Name    string      `yaml:"name"`
	CanHide []string    `yaml:"can_hide"`
	Objects []rawObject `yaml:"objects"`
}

type rawObject struct {
	Name           string             `yaml:"name"`
	Kind           string             `yaml:"kind"`
	SearchRegion   *domain.Region     `yaml:"search_region"`
	Location       *domain.Location   `yaml:"location"`
	SearchRegionOn *rawSearchRegionOn `yaml:"search_region_on"`
	Meta           map[string]any     `yaml:"meta"`
}

type rawSearchRegionOn struct {
	State  string         `yaml:"state"`
	Object string         `yaml:"object"`
	Kind   string         `yaml:"kind"`
	Adjust map[string]any `yaml:"adjust"`
}

type rawTransition struct {
	Name           string    `yaml:"name"`
	From           string    `yaml:"from"`
	Activate       []string  `yaml:"activate"`
	Exit           []string  `yaml:"exit"`
	Score          int       `yaml:"score"`
	StaysVisible   bool      `yaml:"stays_visible"`
	RequireArrival bool      `yaml:"require_arrival"`
	Steps          []rawStep `yaml:"steps"`
}

type rawStep struct {
	Action  string         `yaml:"action"`
	Options map[string]any `yaml:"options"`
	Targets []string       `yaml:"targets"`
}

// LoadFile reads and resolves a YAML definition from disk.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return Load(data)
}

// Load parses a YAML definition and resolves state-name references to ids.
func Load(data []byte) (*Definition, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	idByName := make(map[string]domain.StateID, len(raw.States))
	for _, rs := range raw.States {
		if rs.Name == "" {
			return nil, fmt.Errorf("state %d has no name", rs.ID)
		}
		if _, dup := idByName[rs.Name]; dup {
			return nil, fmt.Errorf("duplicate state name %q", rs.Name)
		}
		idByName[rs.Name] = domain.StateID(rs.ID)
	}

	def := &Definition{}
	objectsByKey := make(map[string]*domain.StateObject)

	for _, rs := range raw.States {
		state := &domain.State{
			ID:   domain.StateID(rs.ID),
			Name: rs.Name,
		}
		for _, hidden := range rs.CanHide {
			id, ok := idByName[hidden]
			if !ok {
				return nil, fmt.Errorf("state %q can_hide unknown state %q", rs.Name, hidden)
			}
			state.CanHide = append(state.CanHide, id)
		}
		for _, ro := range rs.Objects {
			obj, err := buildObject(rs.Name, ro)
			if err != nil {
				return nil, err
			}
			state.Objects = append(state.Objects, obj)
			objectsByKey[rs.Name+":"+obj.Name] = obj
		}
		def.States = append(def.States, state)
	}

	for i, rt := range raw.Transitions {
		tr, err := buildTransition(rt, idByName, objectsByKey)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		def.Transitions = append(def.Transitions, tr)
	}
	return def, nil
}

func buildObject(owner string, ro rawObject) (*domain.StateObject, error) {
	if ro.Name == "" {
		return nil, fmt.Errorf("state %q has an unnamed object", owner)
	}
	kind := domain.ObjectKind(ro.Kind)
	if kind == "" {
		kind = domain.KindImage
	}
	switch kind {
	case domain.KindImage, domain.KindRegion, domain.KindLocation, domain.KindString:
	default:
		return nil, fmt.Errorf("object %s:%s has unknown kind %q", owner, ro.Name, ro.Kind)
	}

	obj := &domain.StateObject{
		Name:        ro.Name,
		OwnerState:  owner,
		Kind:        kind,
		FixedRegion: ro.SearchRegion,
	}
	if ro.Location != nil {
		obj.SetLocation(*ro.Location)
	}
	if len(ro.Meta) > 0 {
		if err := mapstructure.Decode(ro.Meta, &obj.Meta); err != nil {
			return nil, fmt.Errorf("object %s:%s meta: %w", owner, ro.Name, err)
		}
	}
	if ro.SearchRegionOn != nil {
		dep, err := buildSearchRegionOn(owner, ro.Name, *ro.SearchRegionOn)
		if err != nil {
			return nil, err
		}
		obj.SearchRegionOn = dep
	}
	return obj, nil
}

func buildSearchRegionOn(owner, name string, raw rawSearchRegionOn) (*domain.SearchRegionOnObject, error) {
	if raw.State == "" || raw.Object == "" {
		return nil, fmt.Errorf("object %s:%s search_region_on needs both state and object", owner, name)
	}
	dep := &domain.SearchRegionOnObject{
		TargetStateName:  raw.State,
		TargetObjectName: raw.Object,
		TargetKind:       domain.ObjectKind(raw.Kind),
	}
	if dep.TargetKind == "" {
		dep.TargetKind = domain.KindImage
	}
	if len(raw.Adjust) > 0 {
		if err := mapstructure.Decode(raw.Adjust, &dep.Adjust); err != nil {
			return nil, fmt.Errorf("object %s:%s adjust: %w", owner, name, err)
		}
	}
	return dep, nil
}

func buildTransition(rt rawTransition, idByName map[string]domain.StateID, objects map[string]*domain.StateObject) (*domain.Transition, error) {
	from, ok := idByName[rt.From]
	if !ok {
		return nil, fmt.Errorf("unknown source state %q", rt.From)
	}
	if len(rt.Activate) == 0 {
		return nil, fmt.Errorf("from %q: no activate targets", rt.From)
	}
	tr := &domain.Transition{
		Name:           rt.Name,
		From:           from,
		Score:          rt.Score,
		StaysVisible:   rt.StaysVisible,
		RequireArrival: rt.RequireArrival,
	}
	for _, name := range rt.Activate {
		id, ok := idByName[name]
		if !ok {
			return nil, fmt.Errorf("activates unknown state %q", name)
		}
		tr.Activate = append(tr.Activate, id)
	}
	for _, name := range rt.Exit {
		id, ok := idByName[name]
		if !ok {
			return nil, fmt.Errorf("exits unknown state %q", name)
		}
		tr.Exit = append(tr.Exit, id)
	}

	seq := &domain.TaskSequence{}
	for i, rs := range rt.Steps {
		step, err := buildStep(rt.From, rs, objects)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		seq.Steps = append(seq.Steps, step)
	}
	if len(seq.Steps) == 0 {
		return nil, fmt.Errorf("from %q: declarative transition needs at least one step", rt.From)
	}
	tr.Sequence = seq
	return tr, nil
}

func buildStep(fromState string, rs rawStep, objects map[string]*domain.StateObject) (domain.TaskStep, error) {
	if rs.Action == "" {
		return domain.TaskStep{}, fmt.Errorf("step has no action")
	}
	step := domain.TaskStep{
		Action: domain.ActionConfig{
			Type:    domain.ActionType(rs.Action),
			Options: rs.Options,
		},
	}
	for _, target := range rs.Targets {
		// Targets may be "object" (owned by the source state) or
		// "state:object" for cross-state references.
		key := target
		if _, ok := objects[key]; !ok {
			key = fromState + ":" + target
		}
		obj, ok := objects[key]
		if !ok {
			return domain.TaskStep{}, fmt.Errorf("unknown target object %q", target)
		}
		step.Targets.Objects = append(step.Targets.Objects, obj)
	}
	return step, nil
}
