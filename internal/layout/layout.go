// Package layout implements the directory placer (C4): a pure, total
// function from a Source plus five base directories to an on-disk path
// (spec §4.5).
package layout

import (
	"path/filepath"

	"github.com/wrenfield/pickaxe/internal/source"
)

// Dirs is the five base directories the placer resolves every path
// relative to. Grounded on original_source/src/dirs.rs's Dirs shape,
// completed with the JVM/server-jar cases spec §4.5 adds.
type Dirs struct {
	Root       string
	Assets     string
	Libraries  string
	Versions   string
	Runtime    string
}

// Locate returns the on-disk path for src given dirs, per the table in
// spec §4.5.
func Locate(src source.Source, dirs Dirs) string {
	if !src.IsRemote() {
		return filepath.Join(dirs.Versions, src.Archive.Natives.Classifier, "natives", src.Archive.EntryName)
	}

	k := src.Kind
	switch k.Kind {
	case source.KindVersionManifest, source.KindJvmManifest:
		return filepath.Join(dirs.Root, src.Name+".json")
	case source.KindAssetIndex:
		return filepath.Join(dirs.Assets, "indexes", src.Name+".json")
	case source.KindAsset:
		if k.Legacy {
			return filepath.Join(dirs.Assets, "legacy", src.Name)
		}
		return filepath.Join(dirs.Assets, "objects", src.Name)
	case source.KindLibrary, source.KindZippedNatives:
		return filepath.Join(dirs.Libraries, src.Name)
	case source.KindClientJar:
		return filepath.Join(dirs.Versions, src.Name, src.Name+".jar")
	case source.KindServerJar:
		return filepath.Join(dirs.Versions, src.Name, src.Name+"_server.jar")
	case source.KindVersionInfo:
		return filepath.Join(dirs.Versions, src.Name, src.Name+".json")
	case source.KindJvmInfo:
		return filepath.Join(dirs.Runtime, k.JvmName, k.Platform, k.JvmName, src.Name+"_info.json")
	case source.KindJvmFile:
		return filepath.Join(dirs.Runtime, k.JvmName, k.Platform, k.JvmName, src.Name)
	default:
		return filepath.Join(dirs.Root, src.Name)
	}
}
