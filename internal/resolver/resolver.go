// Package resolver implements the Resolver abstraction (C6): turning a
// Source into a ResolvedArtifact, applying the freshness policy, the
// size-integrity check, and dispatching parsed-document decoding per
// SourceKind. Grounded on original_source/api/src/files/io.rs's SyncTask
// and Validation, and src/resolver.rs's type-erased ErasedArtifact.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/wrenfield/pickaxe/internal/artifact"
	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/fetch"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
	"github.com/wrenfield/pickaxe/internal/tasks"
)

// Validation controls the freshness policy applied before a Remote source
// is fetched (spec §4.6).
type Validation int

const (
	// NoneAtAll always trusts the local copy if one exists.
	NoneAtAll Validation = iota
	// Force always re-downloads, ignoring any local copy.
	Force
	// Usual re-downloads unless the local copy exists and (no size is
	// declared or its length equals the declared size).
	Usual
)

// Resolved is the type-erased result of resolving one Source: its raw
// bytes (for persistence) plus the Artifact view used to enumerate
// children. Archive kinds reuse the same shape.
type Resolved struct {
	Data     []byte
	Artifact artifact.Artifact
}

// Resolver turns Sources into Resolved artifacts, gating concurrent
// resolution behind an optional permit semaphore.
type Resolver struct {
	Fetch   *fetch.Client
	permits chan struct{}
}

// New builds a Resolver. concurrencyLimit <= 0 means unlimited.
func New(fetchClient *fetch.Client, concurrencyLimit int) *Resolver {
	r := &Resolver{Fetch: fetchClient}
	if concurrencyLimit > 0 {
		r.permits = make(chan struct{}, concurrencyLimit)
	}
	return r
}

func (r *Resolver) acquire(ctx context.Context) (func(), error) {
	if r.permits == nil {
		return func() {}, nil
	}
	select {
	case r.permits <- struct{}{}:
		return func() { <-r.permits }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolve fetches (or reads, or reads-from-archive) src, validates it,
// decodes it per its SourceKind, and returns the Resolved view. localPath
// is where the freshness check and any disk read look; it is produced by
// internal/layout.Locate.
func (r *Resolver) Resolve(ctx context.Context, src source.Source, cfg config.GlobalConfig, localPath string, v Validation) (Resolved, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return Resolved{}, &SchedulingError{Reason: err.Error()}
	}
	defer release()

	var data []byte
	if src.IsRemote() {
		data, err = r.resolveRemote(ctx, src, localPath, v)
	} else {
		data, err = r.resolveArchive(ctx, src)
	}
	if err != nil {
		return Resolved{}, err
	}

	art, persisted, err := decode(src, data, cfg)
	if err != nil {
		return Resolved{}, err
	}
	if persisted != nil {
		data = persisted
	}
	return Resolved{Data: data, Artifact: art}, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, src source.Source, localPath string, v Validation) ([]byte, error) {
	if err := tasks.WaitIfPaused(ctx); err != nil {
		return nil, err
	}

	if v != Force {
		if data, ok := readFresh(localPath, src.Size, v); ok {
			return data, nil
		}
	}

	resp, err := r.Fetch.Get(ctx, src.URL)
	if err != nil {
		return nil, &NetworkError{Source: src.Name, Err: err}
	}
	defer resp.Body.Close()

	if src.Size != nil && resp.ContentLength >= 0 && resp.ContentLength != *src.Size {
		return nil, &IntegrityError{Source: src.Name, Declared: *src.Size, Got: resp.ContentLength}
	}

	var total int64 = -1
	if src.Size != nil {
		total = *src.Size
	} else if resp.ContentLength >= 0 {
		total = resp.ContentLength
	}
	reader := fetch.NewProgressReader(ctx, resp.Body, total, nil)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &NetworkError{Source: src.Name, Err: err}
	}
	if src.Size != nil && int64(len(data)) != *src.Size {
		return nil, &IntegrityError{Source: src.Name, Declared: *src.Size, Got: int64(len(data))}
	}
	return data, nil
}

// readFresh implements the NoneAtAll/Usual freshness check of spec §4.6.
func readFresh(localPath string, size *int64, v Validation) ([]byte, bool) {
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, false
	}
	if v == Usual && size != nil && info.Size() != *size {
		return nil, false
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *Resolver) resolveArchive(ctx context.Context, src source.Source) ([]byte, error) {
	if err := tasks.WaitIfPaused(ctx); err != nil {
		return nil, err
	}

	ref := src.Archive
	if ref.Handle == nil {
		// An Archive source may only reference an archive resolved
		// earlier in the same traversal (spec §3's invariant); a nil
		// handle means the caller tried to chain an Archive off another
		// Archive rather than off a resolved ZippedNatives. Converted to
		// an Integrity error per spec §9's redesign note rather than a
		// fatal abort.
		return nil, &IntegrityError{Source: src.Archive.EntryName, Reason: "archive source has no backing handle (nested archives are rejected)"}
	}

	var (
		data []byte
		err  error
	)
	if ref.ByIndex {
		_, data, err = ref.Handle.EntryByIndex(ref.EntryIndex)
	} else {
		data, err = ref.Handle.EntryByName(ref.EntryName)
	}
	if err != nil {
		return nil, &DecodeError{Source: ref.EntryName, Err: err}
	}
	return data, nil
}

// decode dispatches parsed-document decoding per SourceKind (spec §4.6
// point 2): JSON-shaped kinds parse into their document and an Artifact
// wrapping it; ZippedNatives builds an in-memory archive index; everything
// else keeps raw bytes behind JustFile.
func decode(src source.Source, data []byte, cfg config.GlobalConfig) (artifact.Artifact, []byte, error) {
	if !src.IsRemote() {
		return artifact.JustFile{}, nil, nil
	}

	switch src.Kind.Kind {
	case source.KindVersionManifest:
		var doc schema.VersionManifest
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, &DecodeError{Source: src.Name, Err: err}
		}
		return artifact.VersionManifestArtifact{Doc: doc}, nil, nil

	case source.KindVersionInfo:
		var doc schema.VersionInfo
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, &DecodeError{Source: src.Name, Err: err}
		}
		return artifact.VersionInfoArtifact{ID: src.Name, Doc: doc}, nil, nil

	case source.KindAssetIndex:
		var doc schema.AssetIndex
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, &DecodeError{Source: src.Name, Err: err}
		}
		return artifact.AssetIndexArtifact{Doc: doc}, nil, nil

	case source.KindJvmManifest:
		var doc schema.JvmManifest
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, &DecodeError{Source: src.Name, Err: err}
		}
		return artifact.JvmManifestArtifact{Doc: doc}, nil, nil

	case source.KindJvmInfo:
		var doc schema.JvmInfo
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, &DecodeError{Source: src.Name, Err: err}
		}
		return artifact.JvmInfoArtifact{Platform: src.Kind.Platform, JvmName: src.Kind.JvmName, Doc: doc}, nil, nil

	case source.KindJvmFile:
		if src.Kind.Compressed {
			raw, err := decompressLzma(data)
			if err != nil {
				return nil, nil, &DecodeError{Source: src.Name, Err: err}
			}
			return artifact.JustFile{}, raw, nil
		}
		return artifact.JustFile{}, nil, nil

	case source.KindZippedNatives:
		archive, err := NewResolvedArchive(data)
		if err != nil {
			return nil, nil, &DecodeError{Source: src.Name, Err: err}
		}
		return artifact.ZippedNativesArtifact{Handle: archive, Classifier: src.Kind.Classifier, Exclude: src.Kind.Exclude}, nil, nil

	case source.KindClientJar, source.KindServerJar, source.KindAsset, source.KindLibrary:
		return artifact.JustFile{}, nil, nil

	default:
		return nil, nil, &DecodeError{Source: src.Name, Err: fmt.Errorf("unhandled source kind %s", src.Kind.Kind)}
	}
}
