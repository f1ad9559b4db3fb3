// Package rules evaluates the Mojang rule DSL (§4.4 of the specification)
// against a caller-supplied OS selector and feature map. The rule data
// shapes themselves live in internal/schema since they are part of the
// upstream JSON documents; this package only evaluates them.
package rules

import (
	"strings"

	"github.com/wrenfield/pickaxe/internal/schema"
)

// OsSelector is a bitset over the recognised OS/arch combinations.
type OsSelector uint16

const (
	Linux32 OsSelector = 1 << iota
	Linux64
	Windows32
	Windows64
	Windows10_32
	Windows10_64
	OSX32
	OSX64
	MacOS32
	MacOS64
)

// AllBits is every recognised OS bit.
const AllBits = Linux32 | Linux64 | Windows32 | Windows64 | Windows10_32 | Windows10_64 | OSX32 | OSX64 | MacOS32 | MacOS64

// nativeEntry pairs one OsSelector bit with the (os_name, arch) the Library
// natives map and template substitution expect, per spec §4.3.
type nativeEntry struct {
	Bit    OsSelector
	OSName string
	Arch   string
}

// NativeTable is the fixed (bit, os_name, arch) table driving OS-native
// library selection (§4.3).
var NativeTable = []nativeEntry{
	{Linux32, "linux", "32"},
	{Linux64, "linux", "64"},
	{Windows32, "windows", "32"},
	{Windows64, "windows", "64"},
	{Windows10_32, "windows", "32"},
	{Windows10_64, "windows", "64"},
	{OSX32, "osx", "32"},
	{OSX64, "osx", "64"},
	{MacOS32, "osx", "32"},
	{MacOS64, "osx", "64"},
}

// Has reports whether every bit of other is set in s.
func (s OsSelector) Has(other OsSelector) bool {
	return s&other == other
}

// Intersects reports whether s and other share any set bit.
func (s OsSelector) Intersects(other OsSelector) bool {
	return s&other != 0
}

// matchedBits computes the set of OS bits a Rule's os predicate matches,
// per the table in spec §4.4. An absent RuleOs (no os field at all) matches
// every bit.
func matchedBits(os *schema.RuleOs) OsSelector {
	if os == nil {
		return AllBits
	}
	isX86 := os.Arch == "x86"
	isTen := strings.HasPrefix(os.Version, "10")

	switch os.Name {
	case "linux":
		if isX86 {
			return Linux32
		}
		return Linux64 | Linux32
	case "windows":
		switch {
		case isX86 && isTen:
			return Windows10_32
		case isTen:
			return Windows10_64 | Windows10_32
		case isX86:
			return Windows32 | Windows10_32
		default:
			return Windows32 | Windows64 | Windows10_32 | Windows10_64
		}
	case "osx":
		switch {
		case isX86 && isTen:
			return OSX32
		case isTen:
			return OSX64 | OSX32
		case isX86:
			return MacOS32 | OSX32
		default:
			return OSX32 | OSX64 | MacOS32 | MacOS64
		}
	default:
		return AllBits
	}
}

// evalRule evaluates one rule against the caller's feature map and OS
// selector, applying the invert-on-mismatch semantics of spec §4.4.
func evalRule(r schema.Rule, features map[string]bool, os OsSelector) schema.RuleAction {
	invert := func() schema.RuleAction {
		if r.Action == schema.Allow {
			return schema.Disallow
		}
		return schema.Allow
	}

	if !os.Intersects(matchedBits(r.Os)) {
		return invert()
	}
	for k, want := range r.Features {
		got := features[k]
		if got != want {
			return invert()
		}
	}
	return r.Action
}

// IsAllowed reports whether the item governed by rs is allowed under the
// given features and OS selector: allowed unless some rule explicitly
// disallows it (spec §4.4).
func IsAllowed(rs schema.Rules, features map[string]bool, os OsSelector) bool {
	for _, r := range rs {
		if evalRule(r, features, os) == schema.Disallow {
			return false
		}
	}
	return true
}
