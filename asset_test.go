package evergreen

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNewImageAsset(t *testing.T) {
	a := NewImageAsset("x", image.NewNRGBA(image.Rect(0, 0, 7, 5)))
	if !a.Ready() || a.Ref() != "x" {
		t.Fatal("decoded asset not ready")
	}
	if w, h := a.Size(); w != 7 || h != 5 {
		t.Errorf("Size = %dx%d, want 7x5", w, h)
	}

	pending := NewImageAsset("y", nil)
	if pending.Ready() || pending.Image() != nil {
		t.Error("nil image asset is ready")
	}
	if w, h := pending.Size(); w != 0 || h != 0 {
		t.Errorf("pending Size = %dx%d, want 0x0", w, h)
	}
}

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.png")
	if err := os.WriteFile(path, testPNG(t, 12, 8), 0o644); err != nil {
		t.Fatal(err)
	}
	var l Loader
	a := l.Load(context.Background(), path)
	l.Wait()
	if !a.Ready() {
		t.Fatal("asset not ready after Wait")
	}
	if w, h := a.Size(); w != 12 || h != 8 {
		t.Errorf("Size = %dx%d, want 12x8", w, h)
	}
}

func TestLoaderHTTP(t *testing.T) {
	data := testPNG(t, 3, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	l := Loader{Client: srv.Client()}
	ok := l.Load(context.Background(), srv.URL+"/ok.png")
	missing := l.Load(context.Background(), srv.URL+"/missing.png")
	l.Wait()

	if !ok.Ready() {
		t.Error("downloaded asset not ready")
	}
	if missing.Ready() {
		t.Error("404 asset became ready")
	}
}

func TestLoaderFailuresStayPending(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	var l Loader
	tests := []string{filepath.Join(dir, "nope.png"), garbage}
	assets := make([]*ImageAsset, len(tests))
	for i, ref := range tests {
		assets[i] = l.Load(context.Background(), ref)
	}
	l.Wait()
	for i, a := range assets {
		if a.Ready() {
			t.Errorf("%s: failed load became ready", tests[i])
		}
	}
}

func TestLoaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var l Loader
	a := l.Load(ctx, "http://127.0.0.1:1/never.png")
	l.Wait()
	if a.Ready() {
		t.Error("cancelled load became ready")
	}
}

func TestLoadAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var memories []Memory
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, testPNG(t, 2, 2), 0o644); err != nil {
			t.Fatal(err)
		}
		memories = append(memories, Memory{Ref: path, Title: name})
	}
	var l Loader
	markers := l.LoadAll(context.Background(), memories)
	l.Wait()
	if len(markers) != 3 {
		t.Fatalf("markers = %d, want 3", len(markers))
	}
	for i, m := range markers {
		if m.Title != memories[i].Title || m.Asset.Ref() != memories[i].Ref {
			t.Errorf("marker %d = %q/%q, want %q", i, m.Title, m.Asset.Ref(), memories[i].Title)
		}
		if !m.Asset.Ready() {
			t.Errorf("marker %d not ready", i)
		}
	}
}
