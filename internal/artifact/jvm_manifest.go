package artifact

import (
	"iter"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
)

// JvmManifestArtifact wraps a parsed JvmManifest (the all.json runtime
// manifest).
type JvmManifestArtifact struct {
	Doc schema.JvmManifest
}

// Provide yields one JvmInfo Remote source per (platform, component, entry):
// every candidate a component lists is a distinct resolvable artifact, not
// just the newest one. The manifest's "availability" ranking is upstream
// rollout metadata, not an indication that only one candidate is fetchable.
func (a JvmManifestArtifact) Provide(cfg config.GlobalConfig) iter.Seq[source.Source] {
	return func(yield func(source.Source) bool) {
		for platform, p := range a.Doc.Platforms {
			for component, candidates := range p.Resources {
				for _, c := range candidates {
					hash, size := c.Manifest.Hash, c.Manifest.Size
					kind := source.SourceKind{Kind: source.KindJvmInfo, Platform: platform, JvmName: component}
					if !yield(source.Remote(c.Version.Name, c.Manifest.URL, kind, &hash, &size)) {
						return
					}
				}
			}
		}
	}
}
