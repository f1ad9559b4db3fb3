package artifact

import (
	"iter"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
)

// AssetIndexArtifact wraps a parsed AssetIndex document.
type AssetIndexArtifact struct {
	Doc schema.AssetIndex
}

// Provide yields one Asset Remote source per object, named and addressed
// per spec §4.3: URL is config.origin + "/" + hash[0:2] + "/" + hash, and
// name is the logical path for legacy (map_to_resources) indexes or the
// two-level hash path otherwise. An object whose size is 0 (absent) gets no
// declared size, so no size check applies to it.
func (a AssetIndexArtifact) Provide(cfg config.GlobalConfig) iter.Seq[source.Source] {
	return func(yield func(source.Source) bool) {
		for logicalPath, obj := range a.Doc.Objects {
			hashHex := obj.Hash.String()
			hh := hashHex[:2]
			url := cfg.AssetsOrigin + "/" + hh + "/" + hashHex

			name := hh + "/" + hashHex
			if a.Doc.MapToResources {
				name = logicalPath
			}

			hash, size := obj.Hash, obj.Size
			var sizePtr *int64
			if size != 0 {
				sizePtr = &size
			}
			kind := source.SourceKind{Kind: source.KindAsset, Legacy: a.Doc.MapToResources}
			if !yield(source.Remote(name, url, kind, &hash, sizePtr)) {
				return
			}
		}
	}
}
