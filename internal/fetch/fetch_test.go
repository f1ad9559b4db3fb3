package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetReturnsStatusErrorOnNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New()
	c.http.RetryMax = 0
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	var statusErr *StatusError
	if !asStatusError(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("StatusCode = %d", statusErr.StatusCode)
	}
}

func asStatusError(err error, target **StatusError) bool {
	if se, ok := err.(*StatusError); ok {
		*target = se
		return true
	}
	return false
}

func TestGetSucceedsOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New()
	c.http.RetryMax = 0
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
}

func TestProgressReaderTracksBytesRead(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 1000)
	var lastRead, lastTotal int64
	r := NewProgressReader(context.Background(), bytes.NewReader(data), int64(len(data)), func(read, total int64) {
		lastRead, lastTotal = read, total
	})

	buf := make([]byte, 256)
	total := 0
	for {
		n, err := r.Read(buf)
		total += n
		if err != nil {
			break
		}
	}
	if int64(total) != int64(len(data)) {
		t.Fatalf("read %d bytes, want %d", total, len(data))
	}
	if r.BytesRead() != int64(len(data)) {
		t.Fatalf("BytesRead() = %d, want %d", r.BytesRead(), len(data))
	}
	if lastRead != int64(len(data)) || lastTotal != int64(len(data)) {
		t.Fatalf("last callback args = (%d, %d)", lastRead, lastTotal)
	}
}
