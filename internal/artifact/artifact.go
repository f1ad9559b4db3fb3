package artifact

import (
	"iter"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/source"
)

// Artifact is the contract every parsed document (or raw/zipped payload)
// satisfies: given the global configuration, it lazily yields the child
// Sources it expands into (spec §4.3, §9 "Polymorphism across artifacts").
type Artifact interface {
	Provide(cfg config.GlobalConfig) iter.Seq[source.Source]
}

// empty is the zero-child Artifact behind the leaf kind JustFile.
// (Link/Directory JvmContent entries are skipped inline by JvmInfoArtifact.)
type empty struct{}

func (empty) Provide(config.GlobalConfig) iter.Seq[source.Source] {
	return func(yield func(source.Source) bool) {}
}

// JustFile is a raw, non-archive, non-JSON payload with no children — the
// Go counterpart of original_source/src/data/other.rs's JustFile.
type JustFile struct{ empty }
