package schema

import (
	"encoding/json"
	"testing"
)

func TestArgumentUnmarshalPlainString(t *testing.T) {
	var a Argument
	if err := json.Unmarshal([]byte(`"--username"`), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !a.IsPlain || a.Plain != "--username" {
		t.Fatalf("got %+v, want plain %q", a, "--username")
	}
}

func TestArgumentUnmarshalRuleGatedSingleValue(t *testing.T) {
	var a Argument
	doc := `{"rules":[{"action":"allow","os":{"name":"osx"}}],"value":"-XstartOnFirstThread"}`
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.IsPlain {
		t.Fatal("expected rule-gated argument, got plain")
	}
	if len(a.Value) != 1 || a.Value[0] != "-XstartOnFirstThread" {
		t.Fatalf("Value = %v", a.Value)
	}
	if len(a.Rules) != 1 || a.Rules[0].Action != Allow {
		t.Fatalf("Rules = %v", a.Rules)
	}
}

func TestArgumentUnmarshalRuleGatedMultiValue(t *testing.T) {
	var a Argument
	doc := `{"rules":[{"action":"allow","features":{"has_custom_resolution":true}}],"value":["--width","${resolution_width}"]}`
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []string{"--width", "${resolution_width}"}
	if len(a.Value) != 2 || a.Value[0] != want[0] || a.Value[1] != want[1] {
		t.Fatalf("Value = %v, want %v", a.Value, want)
	}
}

func TestArgumentUnmarshalInvalid(t *testing.T) {
	var a Argument
	if err := json.Unmarshal([]byte(`42`), &a); err == nil {
		t.Fatal("expected error for non-string, non-object argument")
	}
}
