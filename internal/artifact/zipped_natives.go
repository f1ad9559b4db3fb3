package artifact

import (
	"iter"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/source"
)

// ZippedNativesArtifact wraps a resolved native-library zip: an in-memory
// archive index plus the set of entry-name prefixes to skip. It is the
// Go counterpart of the Rust draft's ZippedFile (original_source/src/data/other.rs).
type ZippedNativesArtifact struct {
	Handle     source.ArchiveHandle
	Classifier string
	Exclude    []string
}

// Provide yields one Archive source per entry whose name does not start
// with any excluded prefix (spec §4.3).
func (a ZippedNativesArtifact) Provide(cfg config.GlobalConfig) iter.Seq[source.Source] {
	return func(yield func(source.Source) bool) {
		for _, name := range a.Handle.Names() {
			if hasAnyPrefix(name, a.Exclude) {
				continue
			}
			natives := source.NativesRef{Classifier: a.Classifier}
			if !yield(source.ArchiveEntryByName(name, a.Handle, name, natives)) {
				return
			}
		}
	}
}
