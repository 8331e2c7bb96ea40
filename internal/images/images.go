// Package images is the image collaborator boundary: the engine hands raw
// bytes in and gets opaque references back, or turns a reference into an
// embeddable base64 payload for snapshots.
//
// The Dir implementation stores bounded copies under a single directory.
// Re-encoding/resizing is outside this boundary; the size cap is enforced on
// ingestion instead.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrImageTooLarge marks input exceeding the configured size cap.
var ErrImageTooLarge = errors.New("image too large")

// Embeddable is an image payload inlined into a snapshot.
type Embeddable struct {
	Base64       string `json:"base64"`
	MimeType     string `json:"mimeType"`
	OriginalPath string `json:"originalPath,omitempty"`
}

// Library is the collaborator surface the engine depends on.
type Library interface {
	// Compress ingests raw image bytes and returns a stable reference.
	Compress(raw []byte) (string, error)
	// ToEmbeddable loads a reference into an inline payload.
	ToEmbeddable(ref string) (Embeddable, error)
	// FromEmbeddable materializes an inline payload as a fresh reference.
	FromEmbeddable(e Embeddable) (string, error)
}

// Dir stores images as files under a root directory. References are absolute
// file paths.
type Dir struct {
	Root     string
	MaxBytes int64
}

// NewDir builds a directory-backed library. A non-positive maxBytes disables
// the cap.
func NewDir(root string, maxBytes int64) *Dir {
	return &Dir{Root: root, MaxBytes: maxBytes}
}

// Compress writes a bounded copy of raw into the root directory.
func (d *Dir) Compress(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("empty image")
	}
	if d.MaxBytes > 0 && int64(len(raw)) > d.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds cap of %d", ErrImageTooLarge, len(raw), d.MaxBytes)
	}
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return "", fmt.Errorf("ensure image directory: %w", err)
	}
	ref := filepath.Join(d.Root, uuid.NewString()+extensionFor(http.DetectContentType(raw)))
	if err := os.WriteFile(ref, raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return ref, nil
}

// ToEmbeddable reads a reference back as an inline payload.
func (d *Dir) ToEmbeddable(ref string) (Embeddable, error) {
	raw, err := os.ReadFile(ref)
	if err != nil {
		return Embeddable{}, fmt.Errorf("read image %q: %w", ref, err)
	}
	return Embeddable{
		Base64:       base64.StdEncoding.EncodeToString(raw),
		MimeType:     http.DetectContentType(raw),
		OriginalPath: ref,
	}, nil
}

// FromEmbeddable decodes an inline payload into a new reference.
func (d *Dir) FromEmbeddable(e Embeddable) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(e.Base64)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}
	return d.Compress(raw)
}

func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
