// Package source defines Source and SourceKind, the pre-resolution
// description of a single fetchable unit in the artifact graph (spec §3, §4.2).
package source

import (
	"fmt"

	"github.com/wrenfield/pickaxe/internal/schema"
)

// Kind discriminates the variants of SourceKind.
type Kind int

const (
	KindVersionManifest Kind = iota
	KindVersionInfo
	KindClientJar
	KindServerJar
	KindAssetIndex
	KindAsset
	KindLibrary
	KindZippedNatives
	KindJvmInfo
	KindJvmFile
	// KindJvmManifest extends the closed-but-extensible enumeration of
	// spec §3 to give the JVM runtime manifest (the all.json root
	// document JvmManifestArtifact consumes) the same root-pointer
	// treatment VersionManifest gets; the base spec omits it because its
	// JSON schema section only walks the chain starting at a version,
	// not a runtime bundle.
	KindJvmManifest
)

func (k Kind) String() string {
	switch k {
	case KindVersionManifest:
		return "VersionManifest"
	case KindVersionInfo:
		return "VersionInfo"
	case KindClientJar:
		return "ClientJar"
	case KindServerJar:
		return "ServerJar"
	case KindAssetIndex:
		return "AssetIndex"
	case KindAsset:
		return "Asset"
	case KindLibrary:
		return "Library"
	case KindZippedNatives:
		return "ZippedNatives"
	case KindJvmInfo:
		return "JvmInfo"
	case KindJvmFile:
		return "JvmFile"
	case KindJvmManifest:
		return "JvmManifest"
	default:
		return "Unknown"
	}
}

// SourceKind carries the discriminant plus whatever variant-specific fields
// that discriminant needs. Not every field applies to every Kind; see the
// constructors in this package for the valid combinations.
type SourceKind struct {
	Kind Kind

	// Asset
	Legacy bool

	// ZippedNatives
	Classifier string
	Exclude    []string

	// JvmInfo, JvmFile
	Platform   string
	JvmName    string
	Executable bool
	Compressed bool
}

// ArchiveHandle is a previously-resolved archive that Archive sources read
// entries from. Implemented by internal/resolver's ResolvedArchive; defined
// here so this package never imports the resolver (it would be a cycle).
type ArchiveHandle interface {
	// EntryByName returns the bytes of the named entry.
	EntryByName(name string) ([]byte, error)
	// EntryByIndex returns the bytes and name of the entry at position i.
	EntryByIndex(i int) (name string, data []byte, err error)
	// Names lists every entry name the archive holds, in archive order.
	Names() []string
}

// NativesRef is the ArchiveKind payload for an Archive source produced by a
// ZippedNatives artifact: classifier names the owning Minecraft version ID.
type NativesRef struct {
	Classifier string
}

// ArchiveRef is the Archive variant of Source: a reference to an entry of a
// previously-resolved archive.
type ArchiveRef struct {
	Handle     ArchiveHandle
	EntryName  string
	EntryIndex int
	ByIndex    bool
	Natives    NativesRef
}

// Source is the tagged union of spec §3: either a Remote (URL + kind +
// optional hash/size) or an Archive (a reference into an already-resolved
// archive's entries).
type Source struct {
	Name string
	Kind SourceKind

	// Remote
	URL  string
	Hash *schema.Sha1Hash
	Size *int64

	// Archive
	Archive *ArchiveRef
}

// IsRemote reports whether this is the Remote variant.
func (s Source) IsRemote() bool {
	return s.Archive == nil
}

// Remote constructs a Remote-variant Source.
func Remote(name, url string, kind SourceKind, hash *schema.Sha1Hash, size *int64) Source {
	return Source{Name: name, URL: url, Kind: kind, Hash: hash, Size: size}
}

// ArchiveEntryByName constructs an Archive-variant Source identifying an
// entry by name.
func ArchiveEntryByName(name string, handle ArchiveHandle, entryName string, natives NativesRef) Source {
	return Source{
		Name: name,
		Archive: &ArchiveRef{
			Handle:    handle,
			EntryName: entryName,
			Natives:   natives,
		},
	}
}

// Key returns a deterministic string identifying the on-disk target this
// Source resolves to, suitable for optional de-duplication by C8 traversal.
func (s Source) Key() string {
	if s.IsRemote() {
		return fmt.Sprintf("remote:%s:%s", s.Kind.Kind, s.Name)
	}
	return fmt.Sprintf("archive:%s:%s", s.Archive.Natives.Classifier, s.Archive.EntryName)
}

func (s Source) String() string {
	return s.Key()
}
