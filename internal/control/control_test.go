package control

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wrenfield/pickaxe/internal/resolver"
	"github.com/wrenfield/pickaxe/internal/source"
	"github.com/wrenfield/pickaxe/internal/tasks"
)

func TestListAndGetTask(t *testing.T) {
	mgr := tasks.NewManager[resolver.Resolved](0)
	release := make(chan struct{})
	src := source.Remote("1.20.1", "http://x", source.SourceKind{Kind: source.KindClientJar}, nil, nil)
	h := mgr.Spawn(context.Background(), src, func(ctx context.Context) (resolver.Resolved, error) {
		<-release
		return resolver.Resolved{Data: []byte("abc")}, nil
	})
	defer func() { close(release); h.Wait() }()

	srv := New(mgr)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tasks")
	if err != nil {
		t.Fatalf("GET /tasks: %v", err)
	}
	defer resp.Body.Close()
	var list []taskJSON
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != src.Key() {
		t.Fatalf("got %+v, want one task with ID %q", list, src.Key())
	}

	resp2, err := http.Get(ts.URL + "/tasks/" + src.Key())
	if err != nil {
		t.Fatalf("GET /tasks/:id: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp2.StatusCode)
	}
}

func TestGetUnknownTaskReturns404(t *testing.T) {
	mgr := tasks.NewManager[resolver.Resolved](0)
	srv := New(mgr)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tasks/does-not-exist")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPauseResumeCancelEndpoints(t *testing.T) {
	mgr := tasks.NewManager[resolver.Resolved](0)
	entered := make(chan struct{})
	proceed := make(chan struct{})
	src := source.Remote("1.20.1", "http://x", source.SourceKind{Kind: source.KindClientJar}, nil, nil)
	h := mgr.Spawn(context.Background(), src, func(ctx context.Context) (resolver.Resolved, error) {
		close(entered)
		<-proceed
		return resolver.Resolved{}, nil
	})
	<-entered

	srv := New(mgr)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	mustPost(t, ts.URL+"/tasks/"+src.Key()+"/pause")
	waitForTaskState(t, h, tasks.Paused)

	mustPost(t, ts.URL+"/tasks/"+src.Key()+"/resume")
	waitForTaskState(t, h, tasks.Running)

	// Cancel while the task is still enrolled: a finished task is dropped
	// from the manager and its id is no longer found.
	mustPost(t, ts.URL+"/tasks/"+src.Key()+"/cancel")
	waitForTaskState(t, h, tasks.Cancelled)

	close(proceed)
	h.Wait()
}

func waitForTaskState(t *testing.T, h *tasks.Handle[resolver.Resolved], want tasks.State) {
	t.Helper()
	deadline := time.After(time.Second)
	for h.State() != want {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for state %s, currently %s", want, h.State())
		case <-time.After(time.Millisecond):
		}
	}
}

func mustPost(t *testing.T, url string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s status = %d", url, resp.StatusCode)
	}
}
