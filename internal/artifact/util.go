// Package artifact implements the Artifact contract (C3): for each parsed
// document, the lazy sequence of child Sources it expands into, along with
// the library-path synthesis and template-substitution helpers spec §6
// requires (grounded on original_source/src/util.rs's build_library_path
// and substitute_params).
package artifact

import (
	"path"
	"strings"

	"github.com/wrenfield/pickaxe/internal/schema"
)

// BuildLibraryPath synthesises a library's on-disk relative path from its
// Maven-style coordinate when no explicit path was supplied upstream, per
// spec §6.
func BuildLibraryPath(name string, hash schema.Sha1Hash, classifier *string) string {
	parts := strings.Split(name, ":")
	if len(parts) == 3 {
		group, art, version := parts[0], parts[1], parts[2]
		groupPath := strings.ReplaceAll(group, ".", "/")
		filename := art + "-" + version
		if classifier != nil {
			filename += "-" + *classifier
		}
		filename += ".jar"
		return path.Join(groupPath, art, version, filename)
	}
	if name == "" {
		return hash.String() + ".jar"
	}
	return name + "-" + hash.String() + ".jar"
}

// Substitute resolves ${key} placeholders left-to-right from params. An
// unterminated placeholder is emitted verbatim, as is any placeholder whose
// resolved value equals its own literal text (self-referential short
// circuit), per spec §6.
func Substitute(s string, params map[string]string) string {
	var sb strings.Builder
	i := 0
	for i < len(s) {
		idx := strings.Index(s[i:], "${")
		if idx == -1 {
			sb.WriteString(s[i:])
			break
		}
		start := i + idx
		sb.WriteString(s[i:start])

		closeIdx := strings.IndexByte(s[start+2:], '}')
		if closeIdx == -1 {
			sb.WriteString(s[start:])
			break
		}
		end := start + 2 + closeIdx
		key := s[start+2 : end]
		placeholder := s[start : end+1]

		if val, ok := params[key]; ok && val != placeholder {
			sb.WriteString(val)
		} else {
			sb.WriteString(placeholder)
		}
		i = end + 1
	}
	return sb.String()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
