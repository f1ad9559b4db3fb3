package artifact

import (
	"iter"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
)

// JvmInfoArtifact wraps a parsed JvmInfo document (one platform/component's
// file tree). Platform and JvmName identify the owning manifest entry for
// directory placement (spec §4.5).
type JvmInfoArtifact struct {
	Platform string
	JvmName  string
	Doc      schema.JvmInfo
}

// Provide yields one JvmFile Remote source per File content entry. Link and
// Directory entries yield nothing. When cfg.PreferCompressedJvm is set and
// an lzma variant is present, it is selected and Compressed is set true;
// otherwise the raw variant is used.
func (a JvmInfoArtifact) Provide(cfg config.GlobalConfig) iter.Seq[source.Source] {
	return func(yield func(source.Source) bool) {
		for path, content := range a.Doc.Content {
			if content.Kind != schema.JvmContentFile {
				continue
			}

			resource := content.Downloads.Raw
			compressed := false
			if cfg.PreferCompressedJvm && content.Downloads.Lzma != nil {
				resource = *content.Downloads.Lzma
				compressed = true
			}

			hash, size := resource.Hash, resource.Size
			kind := source.SourceKind{
				Kind:       source.KindJvmFile,
				Platform:   a.Platform,
				JvmName:    a.JvmName,
				Executable: content.Executable,
				Compressed: compressed,
			}
			if !yield(source.Remote(path, resource.URL, kind, &hash, &size)) {
				return
			}
		}
	}
}
