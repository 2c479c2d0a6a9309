package domain

// ActionType names the low-level GUI operation a step performs.
type ActionType string

const (
	ActionFind     ActionType = "find"
	ActionClick    ActionType = "click"
	ActionTypeText ActionType = "type"
	ActionScroll   ActionType = "scroll"
	ActionVanish   ActionType = "vanish"
)

// ActionConfig describes one operation for the action-execution collaborator.
// Options is a free-form bag the performer interprets (e.g. click count,
// similarity threshold).
type ActionConfig struct {
	Type    ActionType     `yaml:"type"`
	Options map[string]any `yaml:"options,omitempty"`
}

// ObjectCollection is the set of UI elements an action targets.
type ObjectCollection struct {
	Objects []*StateObject
}

// ActionResult is what the action-execution collaborator returns: an overall
// success flag plus the matches produced along the way. Matches feed the
// dynamic region resolver.
type ActionResult struct {
	Success bool
	Matches []Match
}
