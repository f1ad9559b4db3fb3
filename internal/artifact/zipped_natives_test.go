package artifact

import (
	"fmt"
	"testing"

	"github.com/wrenfield/pickaxe/internal/config"
	"github.com/wrenfield/pickaxe/internal/source"
)

type fakeArchive struct {
	names []string
	data  map[string][]byte
}

func (f *fakeArchive) Names() []string { return f.names }

func (f *fakeArchive) EntryByName(name string) ([]byte, error) {
	d, ok := f.data[name]
	if !ok {
		return nil, fmt.Errorf("no entry %q", name)
	}
	return d, nil
}

func (f *fakeArchive) EntryByIndex(i int) (string, []byte, error) {
	name := f.names[i]
	d, err := f.EntryByName(name)
	return name, d, err
}

func TestZippedNativesArtifactProvideExcludesPrefixedEntries(t *testing.T) {
	handle := &fakeArchive{
		names: []string{"META-INF/MANIFEST.MF", "org/lwjgl/libopenal.so", "org/lwjgl/libopenal.dylib"},
		data:  map[string][]byte{},
	}
	a := ZippedNativesArtifact{Handle: handle, Classifier: "1.8.9", Exclude: []string{"META-INF/"}}

	got := collect(a.Provide(config.GlobalConfig{}))
	if len(got) != 2 {
		t.Fatalf("got %d sources, want 2 (META-INF excluded): %+v", len(got), got)
	}
	for _, s := range got {
		if s.IsRemote() {
			t.Fatalf("expected an Archive-variant source, got Remote: %+v", s)
		}
		if s.Archive.Natives.Classifier != "1.8.9" {
			t.Fatalf("Classifier = %q", s.Archive.Natives.Classifier)
		}
	}
	if got[0].Archive.EntryName != "org/lwjgl/libopenal.so" {
		t.Fatalf("got[0].EntryName = %q", got[0].Archive.EntryName)
	}
}

func TestZippedNativesArtifactProvideNoExclusions(t *testing.T) {
	handle := &fakeArchive{names: []string{"a.so", "b.so"}, data: map[string][]byte{}}
	a := ZippedNativesArtifact{Handle: handle, Classifier: "1.8.9"}

	got := collect(a.Provide(config.GlobalConfig{}))
	if len(got) != 2 {
		t.Fatalf("got %d sources, want 2", len(got))
	}
}

var _ source.ArchiveHandle = (*fakeArchive)(nil)
