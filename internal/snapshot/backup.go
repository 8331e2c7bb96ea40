package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const backupPrefix = "pulpit-backup-"

// BackupFileName renders the auto-backup name for a timestamp.
func BackupFileName(at time.Time) string {
	return backupPrefix + at.UTC().Format("20060102-150405") + ".json"
}

// Write encodes a snapshot to the given path, creating parent directories.
func Write(snap *Snapshot, path string) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Read decodes a snapshot file.
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}

// Candidate describes one auto-backup file considered for restore.
type Candidate struct {
	Path        string
	SermonCount int
	ModTime     time.Time
}

// BestCandidate picks the auto-backup to restore from among the files in dir:
// most sermons first, newest modification time as the tie-break. Unreadable
// files are ignored. Returns "" when no candidate exists.
func BestCandidate(dir string) (string, error) {
	candidates, err := ListCandidates(dir)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0].Path, nil
}

// ListCandidates returns all readable auto-backups in dir, best first.
func ListCandidates(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var candidates []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(dir, name)
		snap, err := Read(path)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Path:        path,
			SermonCount: len(snap.Sermons),
			ModTime:     info.ModTime(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].SermonCount != candidates[j].SermonCount {
			return candidates[i].SermonCount > candidates[j].SermonCount
		}
		return candidates[i].ModTime.After(candidates[j].ModTime)
	})
	return candidates, nil
}

// Prune deletes the oldest auto-backups beyond keep. Best candidates are
// retained by the same ranking restore uses.
func Prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	candidates, err := ListCandidates(dir)
	if err != nil {
		return err
	}
	for _, stale := range candidates[min(keep, len(candidates)):] {
		if err := os.Remove(stale.Path); err != nil {
			return fmt.Errorf("remove stale backup: %w", err)
		}
	}
	return nil
}
