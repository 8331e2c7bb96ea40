package images_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pulpit/internal/images"
)

var pngSample = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0x01}, 64)...)

func TestCompressWritesBoundedCopy(t *testing.T) {
	dir := images.NewDir(filepath.Join(t.TempDir(), "imgs"), 1024)

	ref, err := dir.Compress(pngSample)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Fatalf("expected png extension, got %q", ref)
	}
	stored, err := os.ReadFile(ref)
	if err != nil {
		t.Fatalf("read stored image: %v", err)
	}
	if !bytes.Equal(stored, pngSample) {
		t.Fatal("stored bytes differ from input")
	}
}

func TestCompressRejectsOversizedInput(t *testing.T) {
	dir := images.NewDir(t.TempDir(), 16)
	if _, err := dir.Compress(pngSample); !errors.Is(err, images.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestEmbeddableRoundTrip(t *testing.T) {
	dir := images.NewDir(t.TempDir(), 0)

	ref, err := dir.Compress(pngSample)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	embedded, err := dir.ToEmbeddable(ref)
	if err != nil {
		t.Fatalf("ToEmbeddable failed: %v", err)
	}
	if embedded.MimeType != "image/png" || embedded.OriginalPath != ref {
		t.Fatalf("unexpected embeddable: %+v", embedded)
	}

	restored, err := dir.FromEmbeddable(embedded)
	if err != nil {
		t.Fatalf("FromEmbeddable failed: %v", err)
	}
	if restored == ref {
		t.Fatal("expected a fresh reference")
	}
	raw, err := os.ReadFile(restored)
	if err != nil {
		t.Fatalf("read restored image: %v", err)
	}
	if !bytes.Equal(raw, pngSample) {
		t.Fatal("restored bytes differ from original")
	}
}

func TestToEmbeddableMissingRef(t *testing.T) {
	dir := images.NewDir(t.TempDir(), 0)
	if _, err := dir.ToEmbeddable(filepath.Join(dir.Root, "missing.png")); err == nil {
		t.Fatal("expected error for missing reference")
	}
}
