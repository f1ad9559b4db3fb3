package schema

import (
	"encoding/json"
	"fmt"
)

// Resource is the uniform shape used wherever a downloadable file is
// described: a SHA-1, a byte size, and a URL.
type Resource struct {
	Hash Sha1Hash `json:"sha1"`
	Size int64    `json:"size"`
	URL  string   `json:"url"`
}

// VersionManifest is the top-level document at version_manifest_v2.json.
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Version `json:"versions"`
}

// Version is one entry of VersionManifest.Versions.
type Version struct {
	ID          string `json:"id"`
	Kind        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// AssetIndexRef is the asset_index field embedded in a VersionInfo.
type AssetIndexRef struct {
	Resource
	ID        string `json:"id"`
	TotalSize int64  `json:"totalSize"`
}

// Downloads is the downloads field of a VersionInfo: a mandatory client jar
// and an optional server jar.
type Downloads struct {
	Client Resource  `json:"client"`
	Server *Resource `json:"server,omitempty"`
}

// LibraryResource is a Resource with an optional explicit on-disk path;
// when Path is empty the path is synthesised from the owning Library's name
// (see internal/artifact.BuildLibraryPath).
type LibraryResource struct {
	Resource
	Path string `json:"path,omitempty"`
}

// LibraryResources is the resources field of a Library: a primary artifact
// plus classifier-addressed extras (natives jars, sources jars, etc).
type LibraryResources struct {
	Artifact *LibraryResource           `json:"artifact,omitempty"`
	Extra    map[string]LibraryResource `json:"classifiers,omitempty"`
}

// LibraryExtract names path prefixes to exclude when unpacking a native jar.
type LibraryExtract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// Library is one entry of VersionInfo.Libraries.
type Library struct {
	Name      string            `json:"name"`
	Resources LibraryResources  `json:"downloads"`
	Natives   map[string]string `json:"natives,omitempty"`
	Extract   *LibraryExtract   `json:"extract,omitempty"`
	Rules     Rules             `json:"rules,omitempty"`
}

// JavaVersion is the java_version field of a VersionInfo.
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// VersionInfo is the document fetched from a Version.URL.
type VersionInfo struct {
	ID                     string      `json:"id"`
	Kind                   string      `json:"type"`
	AssetIndex             AssetIndexRef `json:"assetIndex"`
	Assets                 string      `json:"assets"`
	Downloads              Downloads   `json:"downloads"`
	Libraries              []Library   `json:"libraries"`
	MainClass              string      `json:"mainClass"`
	Arguments              Arguments   `json:"-"`
	MinimumLauncherVersion int         `json:"minimumLauncherVersion"`
	ReleaseTime            string      `json:"releaseTime"`
	Time                   string      `json:"time"`
	JavaVersion            *JavaVersion `json:"javaVersion,omitempty"`
	ComplianceLevel        int         `json:"complianceLevel,omitempty"`
}

// UnmarshalJSON discriminates the two mutually exclusive argument shapes by
// which key is present, per spec §4.1.
func (v *VersionInfo) UnmarshalJSON(data []byte) error {
	type alias VersionInfo
	var shaped struct {
		alias
		ModernArgs *struct {
			Game []Argument `json:"game"`
			Jvm  []Argument `json:"jvm"`
		} `json:"arguments,omitempty"`
		LegacyArgs *string `json:"minecraftArguments,omitempty"`
	}
	if err := json.Unmarshal(data, &shaped); err != nil {
		return fmt.Errorf("schema: decode VersionInfo: %w", err)
	}
	*v = VersionInfo(shaped.alias)
	switch {
	case shaped.ModernArgs != nil:
		v.Arguments = Arguments{Modern: true, Game: shaped.ModernArgs.Game, Jvm: shaped.ModernArgs.Jvm}
	case shaped.LegacyArgs != nil:
		v.Arguments = Arguments{Modern: false, Legacy: *shaped.LegacyArgs}
	}
	return nil
}

// AssetObject is one value of an AssetIndex.Objects map.
type AssetObject struct {
	Hash Sha1Hash `json:"hash"`
	Size int64    `json:"size"`
}

// AssetIndex is the document at VersionInfo.AssetIndex.URL.
type AssetIndex struct {
	MapToResources bool                   `json:"map_to_resources"`
	Objects        map[string]AssetObject `json:"objects"`
}

// JvmResource is one version entry of a JvmManifest platform/component list.
type JvmResource struct {
	Availability struct {
		Group      int `json:"group"`
		Progress   int `json:"progress"`
	} `json:"availability"`
	Manifest Resource `json:"manifest"`
	Version  struct {
		Name     string `json:"name"`
		Released string `json:"released"`
	} `json:"version"`
}

// JvmPlatform is one platform entry of a JvmManifest.
type JvmPlatform struct {
	Resources map[string][]JvmResource `json:"-"`
}

func (p *JvmPlatform) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &p.Resources)
}

// JvmManifest is the top-level all.json JVM runtime manifest.
type JvmManifest struct {
	Platforms map[string]JvmPlatform `json:"-"`
}

func (m *JvmManifest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.Platforms)
}

// JvmContentKind discriminates the three shapes a JvmInfo.Content entry can
// take.
type JvmContentKind int

const (
	JvmContentFile JvmContentKind = iota
	JvmContentLink
	JvmContentDirectory
)

// JvmFileDownloads holds the raw and (optionally) lzma-compressed variants
// of a JVM runtime file.
type JvmFileDownloads struct {
	Raw  Resource  `json:"raw"`
	Lzma *Resource `json:"lzma,omitempty"`
}

// JvmContent is one value of a JvmInfo.Content map: a file, a symlink, or a
// directory marker.
type JvmContent struct {
	Kind       JvmContentKind
	Downloads  JvmFileDownloads
	Executable bool
	Target     string
}

func (c *JvmContent) UnmarshalJSON(data []byte) error {
	var shaped struct {
		Kind       string            `json:"type"`
		Downloads  *JvmFileDownloads `json:"downloads,omitempty"`
		Executable bool              `json:"executable,omitempty"`
		Target     string            `json:"target,omitempty"`
	}
	if err := json.Unmarshal(data, &shaped); err != nil {
		return fmt.Errorf("schema: decode JvmContent: %w", err)
	}
	switch shaped.Kind {
	case "file":
		c.Kind = JvmContentFile
		if shaped.Downloads != nil {
			c.Downloads = *shaped.Downloads
		}
		c.Executable = shaped.Executable
	case "link":
		c.Kind = JvmContentLink
		c.Target = shaped.Target
	case "directory":
		c.Kind = JvmContentDirectory
	default:
		return fmt.Errorf("schema: unknown JvmContent type %q", shaped.Kind)
	}
	return nil
}

// JvmInfo is the per-component runtime file manifest (e.g. java-runtime-gamma).
type JvmInfo struct {
	Content map[string]JvmContent `json:"files"`
}
