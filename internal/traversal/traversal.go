// Package traversal implements the traversal driver (C8): it seeds a work
// queue with a root Source, resolves it, enumerates its children via the
// resolved Artifact, schedules each child's resolution under the task
// manager's permit control, and persists bytes to the placer's path.
// Grounded on spec §4.8; the worker/result-channel shape is borrowed from
// the teacher's internal/download/manager.go Start/worker loop.
package traversal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/layout"
	"github.com/wrenfield/pickaxe/internal/resolver"
	"github.com/wrenfield/pickaxe/internal/source"
	"github.com/wrenfield/pickaxe/internal/tasks"
)

// Event reports one source's terminal outcome to the caller's onEvent
// callback, for progress logging or a control-plane feed.
type Event struct {
	Source source.Source
	Path   string
	State  tasks.State
	Bytes  int64
	Err    error
}

// LogLine renders an Event as a single human-readable log line using
// go-humanize byte formatting, matching the teacher's progress-reporting
// style in internal/download/manager.go.
func LogLine(e Event) string {
	if e.Err != nil {
		return fmt.Sprintf("%-9s %-40s %v", e.State, e.Source.Name, e.Err)
	}
	return fmt.Sprintf("%-9s %-40s %s", e.State, e.Source.Name, humanize.Bytes(uint64(e.Bytes)))
}

// Driver orchestrates one traversal: every resolved source's children are
// scheduled recursively until no outstanding work remains.
type Driver struct {
	Resolver   *resolver.Resolver
	Manager    *tasks.Manager[resolver.Resolved]
	Config     config.GlobalConfig
	Validation resolver.Validation
	OnEvent    func(Event)

	mu   sync.Mutex
	errs []error
	wg   sync.WaitGroup
}

// New builds a Driver, constructing its own task manager sized to
// cfg.ConcurrencyLimit.
func New(res *resolver.Resolver, cfg config.GlobalConfig, v resolver.Validation, onEvent func(Event)) *Driver {
	return &Driver{
		Resolver:   res,
		Manager:    tasks.NewManager[resolver.Resolved](cfg.ConcurrencyLimit),
		Config:     cfg,
		Validation: v,
		OnEvent:    onEvent,
	}
}

// Run seeds the traversal with root and blocks until every source
// transitively reachable from it has reached a terminal state. It returns
// every per-source error encountered during this call (errors from earlier
// Run calls on the same Driver are not repeated); per spec §7 propagation policy, one
// source's failure never prevents its siblings from being processed.
func (d *Driver) Run(ctx context.Context, root source.Source) []error {
	d.mu.Lock()
	start := len(d.errs)
	d.mu.Unlock()

	d.schedule(ctx, root)
	d.wg.Wait()
	return d.errs[start:]
}

func (d *Driver) schedule(ctx context.Context, src source.Source) {
	d.wg.Add(1)
	localPath := layout.Locate(src, d.Config.Dirs)

	h := d.Manager.Spawn(ctx, src, func(ctx context.Context) (resolver.Resolved, error) {
		resolved, err := d.Resolver.Resolve(ctx, src, d.Config, localPath, d.Validation)
		if err != nil {
			return resolver.Resolved{}, err
		}
		if err := persist(localPath, resolved.Data); err != nil {
			return resolver.Resolved{}, err
		}
		return resolved, nil
	})

	go func() {
		defer d.wg.Done()
		h.Wait()

		val, err, ok := h.Result()
		if d.OnEvent != nil {
			d.OnEvent(Event{Source: src, Path: localPath, State: h.State(), Bytes: int64(len(val.Data)), Err: err})
		}
		if err != nil {
			d.mu.Lock()
			d.errs = append(d.errs, fmt.Errorf("%s: %w", src.Name, err))
			d.mu.Unlock()
			return
		}
		if !ok || val.Artifact == nil {
			return
		}
		for child := range val.Artifact.Provide(d.Config) {
			d.schedule(ctx, child)
		}
	}()
}

// persist writes data to path, creating parent directories first. Per
// spec §9's open question, a second source colliding on the same path
// simply overwrites the first; no deduplication is performed.
func persist(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &resolver.FilesystemError{Source: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &resolver.FilesystemError{Source: path, Err: err}
	}
	return nil
}
