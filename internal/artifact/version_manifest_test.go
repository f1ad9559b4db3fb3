package artifact

import (
	"testing"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/schema"
	"github.com/wrenfield/pickaxe/internal/source"
)

func collect(seq func(func(source.Source) bool)) []source.Source {
	var out []source.Source
	seq(func(s source.Source) bool {
		out = append(out, s)
		return true
	})
	return out
}

func TestVersionManifestArtifactProvide(t *testing.T) {
	a := VersionManifestArtifact{Doc: schema.VersionManifest{
		Versions: []schema.Version{
			{ID: "1.20.1", Kind: "release", URL: "http://x/1.20.1.json"},
			{ID: "1.20.2", Kind: "release", URL: "http://x/1.20.2.json"},
		},
	}}

	got := collect(a.Provide(config.GlobalConfig{}))
	if len(got) != 2 {
		t.Fatalf("got %d sources, want 2", len(got))
	}
	if got[0].Name != "1.20.1" || got[0].Kind.Kind != source.KindVersionInfo {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].URL != "http://x/1.20.2.json" {
		t.Fatalf("got[1].URL = %q", got[1].URL)
	}
}

func TestVersionManifestArtifactProvideStopsEarly(t *testing.T) {
	a := VersionManifestArtifact{Doc: schema.VersionManifest{
		Versions: []schema.Version{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	}}

	var seen []string
	a.Provide(config.GlobalConfig{})(func(s source.Source) bool {
		seen = append(seen, s.Name)
		return len(seen) < 1
	})
	if len(seen) != 1 {
		t.Fatalf("expected iteration to stop after first yield, got %v", seen)
	}
}
