package rules

import (
	"strings"

	"github.com/wrenfield/pickaxe/internal/schema"
)

// GameArguments flattens VersionInfo's game argument list (spec §4.4's
// "Argument iteration"). Modern documents flat-map each Argument: a Plain
// entry contributes its one string, a RuleSpecific entry contributes its
// value(s) only when IsAllowed, and nothing otherwise. Legacy documents
// carry no structured list at all, just a pre-joined minecraftArguments
// string, so iteration there is a verbatim space-split with no rule
// evaluation.
func GameArguments(args schema.Arguments, features map[string]bool, os OsSelector) []string {
	if !args.Modern {
		return strings.Fields(args.Legacy)
	}
	return Iterate(args.Game, features, os)
}

// JvmArguments flattens VersionInfo's jvm argument list. Legacy documents
// have no jvm argument list; Modern ones flat-map exactly like game args.
func JvmArguments(args schema.Arguments, features map[string]bool, os OsSelector) []string {
	if !args.Modern {
		return nil
	}
	return Iterate(args.Jvm, features, os)
}

// Iterate flat-maps one Modern argument list against features and os:
// Plain(s) -> [s]; RuleSpecific{value, rules} -> value if the rules are
// allowed, else nothing.
func Iterate(args []schema.Argument, features map[string]bool, os OsSelector) []string {
	var out []string
	for _, a := range args {
		if a.IsPlain {
			out = append(out, a.Plain)
			continue
		}
		if IsAllowed(a.Rules, features, os) {
			out = append(out, a.Value...)
		}
	}
	return out
}
