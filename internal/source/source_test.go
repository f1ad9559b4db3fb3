package source

import "testing"

func TestRemoteIsRemote(t *testing.T) {
	s := Remote("1.20.1", "http://x", SourceKind{Kind: KindClientJar}, nil, nil)
	if !s.IsRemote() {
		t.Fatal("expected Remote-constructed source to report IsRemote() true")
	}
}

func TestArchiveEntryByNameIsNotRemote(t *testing.T) {
	s := ArchiveEntryByName("a.so", nil, "a.so", NativesRef{Classifier: "1.8.9"})
	if s.IsRemote() {
		t.Fatal("expected Archive-constructed source to report IsRemote() false")
	}
}

func TestKeyDistinguishesRemoteAndArchive(t *testing.T) {
	remote := Remote("1.20.1", "http://x", SourceKind{Kind: KindClientJar}, nil, nil)
	archive := ArchiveEntryByName("a.so", nil, "a.so", NativesRef{Classifier: "1.20.1"})
	if remote.Key() == archive.Key() {
		t.Fatalf("expected distinct keys, got %q for both", remote.Key())
	}
}

func TestKeyStableForEquivalentSources(t *testing.T) {
	a := Remote("1.20.1", "http://x", SourceKind{Kind: KindClientJar}, nil, nil)
	b := Remote("1.20.1", "http://y", SourceKind{Kind: KindClientJar}, nil, nil)
	if a.Key() != b.Key() {
		t.Fatalf("expected Key to ignore URL, got %q vs %q", a.Key(), b.Key())
	}
}

func TestKindString(t *testing.T) {
	if KindJvmManifest.String() != "JvmManifest" {
		t.Fatalf("got %q", KindJvmManifest.String())
	}
	if Kind(999).String() != "Unknown" {
		t.Fatalf("expected Unknown for an unrecognised kind")
	}
}
