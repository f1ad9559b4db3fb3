package artifact

import (
	"iter"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/rules"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
)

// VersionInfoArtifact wraps a parsed VersionInfo document. ID is the
// version identifier (e.g. "1.20.1"), also used as the owning-version
// classifier on every ZippedNatives source it produces.
type VersionInfoArtifact struct {
	ID  string
	Doc schema.VersionInfo
}

// Provide yields the client jar, optional server jar, asset index, and —
// for every rule-allowed library — its artifact jar plus at most one
// native archive per matching OS bit (spec §4.3).
func (a VersionInfoArtifact) Provide(cfg config.GlobalConfig) iter.Seq[source.Source] {
	return func(yield func(source.Source) bool) {
		clientHash, clientSize := a.Doc.Downloads.Client.Hash, a.Doc.Downloads.Client.Size
		if !yield(source.Remote(a.ID, a.Doc.Downloads.Client.URL,
			source.SourceKind{Kind: source.KindClientJar}, &clientHash, &clientSize)) {
			return
		}

		if a.Doc.Downloads.Server != nil {
			serverHash, serverSize := a.Doc.Downloads.Server.Hash, a.Doc.Downloads.Server.Size
			if !yield(source.Remote(a.ID, a.Doc.Downloads.Server.URL,
				source.SourceKind{Kind: source.KindServerJar}, &serverHash, &serverSize)) {
				return
			}
		}

		assetHash, assetSize := a.Doc.AssetIndex.Hash, a.Doc.AssetIndex.Size
		if !yield(source.Remote(a.Doc.AssetIndex.ID, a.Doc.AssetIndex.URL,
			source.SourceKind{Kind: source.KindAssetIndex}, &assetHash, &assetSize)) {
			return
		}

		for _, lib := range a.Doc.Libraries {
			if !rules.IsAllowed(lib.Rules, cfg.Features, cfg.OsSelector) {
				continue
			}

			if lib.Resources.Artifact != nil {
				art := lib.Resources.Artifact
				name := art.Path
				if name == "" {
					name = BuildLibraryPath(lib.Name, art.Hash, nil)
				}
				hash, size := art.Hash, art.Size
				if !yield(source.Remote(name, art.URL, source.SourceKind{Kind: source.KindLibrary}, &hash, &size)) {
					return
				}
			}

			if !a.provideNatives(lib, cfg, yield) {
				return
			}
		}
	}
}

// provideNatives implements the OS-native selection algorithm of spec §4.3:
// for each set bit in cfg.OsSelector, substitute ${arch} into the library's
// per-OS classifier template, then look the result up in the extra
// (classifier-addressed) resources; de-duplicate by the resulting
// classifier so OS bits sharing an os_name/arch pair don't double-emit.
func (a VersionInfoArtifact) provideNatives(lib schema.Library, cfg config.GlobalConfig, yield func(source.Source) bool) bool {
	if lib.Natives == nil {
		return true
	}
	seen := map[string]bool{}
	var exclude []string
	if lib.Extract != nil {
		exclude = lib.Extract.Exclude
	}

	for _, entry := range rules.NativeTable {
		if !cfg.OsSelector.Intersects(entry.Bit) {
			continue
		}
		template, ok := lib.Natives[entry.OSName]
		if !ok {
			continue
		}
		classifier := Substitute(template, map[string]string{"arch": entry.Arch})
		if seen[classifier] {
			continue
		}
		seen[classifier] = true

		resource, ok := lib.Resources.Extra[classifier]
		if !ok {
			continue
		}
		name := resource.Path
		if name == "" {
			name = BuildLibraryPath(lib.Name, resource.Hash, &classifier)
		}
		hash, size := resource.Hash, resource.Size
		kind := source.SourceKind{Kind: source.KindZippedNatives, Classifier: a.ID, Exclude: exclude}
		if !yield(source.Remote(name, resource.URL, kind, &hash, &size)) {
			return false
		}
	}
	return true
}
