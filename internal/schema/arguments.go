package schema

import (
	"encoding/json"
	"fmt"
)

// Argument is either a bare string or a rule-gated value that may itself be
// one string or several. Modern VersionInfo documents mix both shapes in the
// same array.
type Argument struct {
	Plain   string
	IsPlain bool
	Value   []string
	Rules   Rules
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		a.IsPlain = true
		a.Plain = plain
		return nil
	}

	var shaped struct {
		Value json.RawMessage `json:"value"`
		Rules Rules           `json:"rules"`
	}
	if err := json.Unmarshal(data, &shaped); err != nil {
		return fmt.Errorf("schema: argument is neither a string nor a rule-specific object: %w", err)
	}

	var single string
	if err := json.Unmarshal(shaped.Value, &single); err == nil {
		a.Value = []string{single}
		a.Rules = shaped.Rules
		return nil
	}

	var many []string
	if err := json.Unmarshal(shaped.Value, &many); err != nil {
		return fmt.Errorf("schema: argument value is neither a string nor an array: %w", err)
	}
	a.Value = many
	a.Rules = shaped.Rules
	return nil
}

func (a Argument) MarshalJSON() ([]byte, error) {
	if a.IsPlain {
		return json.Marshal(a.Plain)
	}
	shaped := struct {
		Value []string `json:"value"`
		Rules Rules    `json:"rules,omitempty"`
	}{Value: a.Value, Rules: a.Rules}
	return json.Marshal(shaped)
}

// Arguments is either the Modern {game, jvm} shape or a Legacy
// space-separated minecraftArguments string, discriminated on which JSON
// key was present in the enclosing VersionInfo document.
type Arguments struct {
	Modern bool
	Game   []Argument
	Jvm    []Argument
	Legacy string
}
