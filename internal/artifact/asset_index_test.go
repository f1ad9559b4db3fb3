package artifact

import (
	"testing"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/schema"
)

func TestAssetIndexArtifactProvideHashAddressed(t *testing.T) {
	h := mustHash(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709")
	a := AssetIndexArtifact{Doc: schema.AssetIndex{
		MapToResources: false,
		Objects:        map[string]schema.AssetObject{"icons/icon_16x16.png": {Hash: h, Size: 42}},
	}}
	cfg := config.GlobalConfig{AssetsOrigin: "http://resources"}

	got := collect(a.Provide(cfg))
	if len(got) != 1 {
		t.Fatalf("got %d sources, want 1", len(got))
	}
	s := got[0]
	wantHex := h.String()
	if s.Name != wantHex[:2]+"/"+wantHex {
		t.Fatalf("Name = %q", s.Name)
	}
	if s.URL != "http://resources/"+wantHex[:2]+"/"+wantHex {
		t.Fatalf("URL = %q", s.URL)
	}
	if s.Kind.Legacy {
		t.Fatal("expected Legacy false for non-map_to_resources index")
	}
}

func TestAssetIndexArtifactProvideLegacyLogicalPath(t *testing.T) {
	h := mustHash(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709")
	a := AssetIndexArtifact{Doc: schema.AssetIndex{
		MapToResources: true,
		Objects:        map[string]schema.AssetObject{"icons/icon_16x16.png": {Hash: h, Size: 42}},
	}}
	cfg := config.GlobalConfig{AssetsOrigin: "http://resources"}

	got := collect(a.Provide(cfg))
	if len(got) != 1 || got[0].Name != "icons/icon_16x16.png" {
		t.Fatalf("got %+v", got)
	}
	if !got[0].Kind.Legacy {
		t.Fatal("expected Legacy true for map_to_resources index")
	}
}
