package rules

import (
	"reflect"
	"testing"

	"github.com/wrenfield/pickaxe/internal/schema"
)

func TestGameArgumentsLegacySpaceSplits(t *testing.T) {
	args := schema.Arguments{Legacy: "--username ${auth_player_name} --version ${version_name}"}
	got := GameArguments(args, nil, Linux64)
	want := []string{"--username", "${auth_player_name}", "--version", "${version_name}"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestJvmArgumentsLegacyYieldsNothing(t *testing.T) {
	args := schema.Arguments{Legacy: "-Xmx2G"}
	if got := JvmArguments(args, nil, Linux64); got != nil {
		t.Fatalf("got %v, want nil for a Legacy document", got)
	}
}

func TestGameArgumentsModernFlatMapsPlainAndRuleGated(t *testing.T) {
	demo := schema.Argument{IsPlain: true, Plain: "--demo"}
	resolution := schema.Argument{
		Value: []string{"--width", "${resolution_width}"},
		Rules: schema.Rules{{Action: schema.Allow, Features: map[string]bool{"has_custom_resolution": true}}},
	}
	args := schema.Arguments{Modern: true, Game: []schema.Argument{demo, resolution}}

	got := GameArguments(args, map[string]bool{"has_custom_resolution": false}, Linux64)
	want := []string{"--demo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v when the feature is absent", got, want)
	}

	got = GameArguments(args, map[string]bool{"has_custom_resolution": true}, Linux64)
	want = []string{"--demo", "--width", "${resolution_width}"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v when the feature is present", got, want)
	}
}

func TestJvmArgumentsModernSkipsDisallowedRule(t *testing.T) {
	osxOnly := schema.Argument{
		Value: []string{"-XstartOnFirstThread"},
		Rules: schema.Rules{{Action: schema.Allow, Os: &schema.RuleOs{Name: "osx"}}},
	}
	args := schema.Arguments{Modern: true, Jvm: []schema.Argument{osxOnly}}

	if got := JvmArguments(args, nil, Linux64); len(got) != 0 {
		t.Fatalf("got %v, want none on linux", got)
	}
	if got := JvmArguments(args, nil, OSX64); !reflect.DeepEqual(got, []string{"-XstartOnFirstThread"}) {
		t.Fatalf("got %v, want the osx-gated argument", got)
	}
}

func TestIterateEmptyListYieldsNil(t *testing.T) {
	if got := Iterate(nil, nil, Linux64); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
