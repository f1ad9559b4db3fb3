package artifact

import (
	"iter"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
)

// VersionManifestArtifact wraps a parsed VersionManifest document.
type VersionManifestArtifact struct {
	Doc schema.VersionManifest
}

// Provide yields one VersionInfo Remote source per listed version.
func (a VersionManifestArtifact) Provide(cfg config.GlobalConfig) iter.Seq[source.Source] {
	return func(yield func(source.Source) bool) {
		for _, v := range a.Doc.Versions {
			kind := source.SourceKind{Kind: source.KindVersionInfo}
			if !yield(source.Remote(v.ID, v.URL, kind, nil, nil)) {
				return
			}
		}
	}
}
