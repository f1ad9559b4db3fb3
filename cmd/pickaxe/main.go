// Command pickaxe resolves a Minecraft version's full artifact graph
// (client jar, libraries, natives, assets, JVM runtime) to a local data
// directory, driven by config.Load's on-disk/env configuration plus the
// command-line flags below (-version is required).
// The GUI, the launch-command builder, and authentication are explicitly
// out of scope (see SPEC_FULL.md's Non-goals); this binary only acquires
// artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/wrenfield/pickaxe/internal/artifact"
	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/control"
	"github.com/wrenfield/pickaxe/internal/fetch"
	"github.com/wrenfield/pickaxe/internal/layout"
	"github.com/wrenfield/pickaxe/internal/resolver"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
	"github.com/wrenfield/pickaxe/internal/traversal"
)

func main() {
	versionID := flag.String("version", "", "Minecraft version ID to acquire (required)")
	force := flag.Bool("force", false, "re-download every artifact, ignoring any local copy")
	controlAddr := flag.String("control-addr", "", "if set, serve the task control API on this address (e.g. 127.0.0.1:8787)")
	jvmManifestURL := flag.String("jvm-manifest-url", "", "if set, also acquire the JVM runtime manifest at this URL (e.g. the all.json a version's javaVersion.component resolves to) and its full file tree")
	flag.Parse()

	if *versionID == "" {
		fmt.Fprintln(os.Stderr, "pickaxe: -version is required")
		os.Exit(2)
	}

	if err := run(*versionID, *force, *controlAddr, *jvmManifestURL); err != nil {
		log.Fatalf("pickaxe: %v", err)
	}
}

func run(versionID string, force bool, controlAddr string, jvmManifestURL string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	globalCfg, err := cfg.ToGlobalConfig()
	if err != nil {
		return fmt.Errorf("prepare data directory: %w", err)
	}

	fetchClient := fetch.New()
	// concurrencyLimit is 0 (unlimited) here deliberately: the traversal
	// driver's own tasks.Manager already gates concurrency at
	// cfg.ConcurrencyLimit, so gating again at the resolver would be a
	// redundant second semaphore on the same work.
	res := resolver.New(fetchClient, 0)

	validation := resolver.Usual
	if force {
		validation = resolver.Force
	}

	driver := traversal.New(res, globalCfg, validation, func(e traversal.Event) {
		log.Println(traversal.LogLine(e))
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if controlAddr != "" {
		srv := control.New(driver.Manager)
		go func() {
			if err := srv.Run(controlAddr); err != nil {
				log.Printf("pickaxe: control server stopped: %v", err)
			}
		}()
	}

	root, javaVersion, err := resolveVersionRoot(ctx, res, globalCfg, versionID, validation)
	if err != nil {
		return fmt.Errorf("resolve version manifest: %w", err)
	}
	if javaVersion != nil {
		log.Printf("pickaxe: %s wants JVM component %q", versionID, javaVersion.Component)
	}

	errs := driver.Run(ctx, root)

	// The JVM runtime chain (JvmManifestArtifact -> JvmInfoArtifact ->
	// JvmFile) is a second, independent root: a version's javaVersion only
	// names which component it wants, not the all.json URL that component
	// lives under (that indirection isn't part of the version manifest
	// chain at all), so it has to be supplied explicitly rather than
	// discovered by walking the same traversal as the client jar/assets.
	if jvmManifestURL != "" {
		jvmRoot := source.Remote("jvm_runtime_manifest", jvmManifestURL, source.SourceKind{Kind: source.KindJvmManifest}, nil, nil)
		errs = append(errs, driver.Run(ctx, jvmRoot)...)
	}

	for _, e := range errs {
		log.Printf("pickaxe: %v", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d artifact(s) failed to resolve", len(errs))
	}
	return nil
}

// resolveVersionRoot fetches the version manifest and picks out the single
// VersionInfo source matching versionID, so the traversal driver acquires
// only the requested version rather than every version Mojang has ever
// published. It also resolves that VersionInfo document one step further
// to surface javaVersion, purely for the caller to log or cross-reference
// against a JVM runtime manifest; the returned root is still the unresolved
// VersionInfo source, so the driver performs the real (validation-aware,
// event-reporting) resolution itself rather than this helper's own probe.
func resolveVersionRoot(ctx context.Context, res *resolver.Resolver, cfg config.GlobalConfig, versionID string, v resolver.Validation) (source.Source, *schema.JavaVersion, error) {
	manifestSrc := source.Remote("version_manifest_v2", config.DefaultVersionManifestURL,
		source.SourceKind{Kind: source.KindVersionManifest}, nil, nil)
	manifestPath := layout.Locate(manifestSrc, cfg.Dirs)

	resolved, err := res.Resolve(ctx, manifestSrc, cfg, manifestPath, v)
	if err != nil {
		return source.Source{}, nil, err
	}

	manifest, ok := resolved.Artifact.(artifact.VersionManifestArtifact)
	if !ok {
		return source.Source{}, nil, fmt.Errorf("unexpected artifact type for version manifest")
	}
	for _, child := range manifest.Provide(cfg) {
		if child.Name != versionID {
			continue
		}

		var javaVersion *schema.JavaVersion
		childPath := layout.Locate(child, cfg.Dirs)
		if info, err := res.Resolve(ctx, child, cfg, childPath, v); err == nil {
			if versionInfo, ok := info.Artifact.(artifact.VersionInfoArtifact); ok {
				javaVersion = versionInfo.Doc.JavaVersion
			}
		}
		return child, javaVersion, nil
	}
	return source.Source{}, nil, fmt.Errorf("version %q not found in manifest", versionID)
}
