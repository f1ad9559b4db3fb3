package config

import (
	"testing"

	"github.com/wrenfield/pickaxe/internal/rules"
)

func TestHostOsSelectorFromRuntimeIsAlwaysOneOfTheKnownBits(t *testing.T) {
	got := hostOsSelectorFromRuntime()
	if !rules.AllBits.Intersects(got) {
		t.Fatalf("hostOsSelectorFromRuntime() = %v, not a recognised OS bit", got)
	}
}

func TestHostOsSelectorEnvOverride(t *testing.T) {
	t.Setenv("PICKAXE_OS_OVERRIDE", "linux64")
	if got := HostOsSelector(); got != rules.Linux64 {
		t.Fatalf("got %v, want Linux64", got)
	}
}
