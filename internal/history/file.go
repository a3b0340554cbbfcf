package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// FileStoreVersion is the schema version written to the history file.
const FileStoreVersion = 1

// Lockfile retry settings.
const (
	lockMaxRetries = 40
	lockRetryDelay = 25 * time.Millisecond
	staleLockAge   = 30 * time.Second
)

// fileData is the serialized form of the history file.
type fileData struct {
	Version int      `json:"version"`
	Trips   []Record `json:"trips"`
}

// FileBackend stores history as a versioned JSON document. Writes go
// through a temp file and rename, and a lockfile coordinates concurrent
// ecotrip processes.
type FileBackend struct {
	filePath string
}

// NewFileBackend returns a backend for filePath.
func NewFileBackend(filePath string) (*FileBackend, error) {
	if filePath == "" {
		return nil, errors.New("history file path cannot be empty")
	}
	return &FileBackend{filePath: filePath}, nil
}

// FilePath returns the history file location.
func (b *FileBackend) FilePath() string {
	return b.filePath
}

// Load reads the history file. A missing file is an empty history; an
// undecodable or wrong-version file returns ErrStoreCorrupted.
func (b *FileBackend) Load(_ context.Context) ([]Record, error) {
	data, err := os.ReadFile(b.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var fd fileData
	if unmarshalErr := json.Unmarshal(data, &fd); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, unmarshalErr)
	}
	if fd.Version != FileStoreVersion {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrStoreCorrupted, fd.Version, FileStoreVersion)
	}
	if fd.Trips == nil {
		return []Record{}, nil
	}
	return fd.Trips, nil
}

// Save replaces the history file atomically.
func (b *FileBackend) Save(_ context.Context, records []Record) error {
	unlock, err := b.acquireFileLock()
	if err != nil {
		return fmt.Errorf("acquiring history lock: %w", err)
	}
	defer unlock()
	return b.writeLocked(records)
}

// Update loads, transforms and saves the history while holding the
// lockfile, so concurrent ecotrip processes cannot drop each other's trips.
func (b *FileBackend) Update(ctx context.Context, fn func(current []Record, loadErr error) []Record) error {
	unlock, err := b.acquireFileLock()
	if err != nil {
		return fmt.Errorf("acquiring history lock: %w", err)
	}
	defer unlock()

	current, loadErr := b.Load(ctx)
	return b.writeLocked(fn(current, loadErr))
}

func (b *FileBackend) writeLocked(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(fileData{Version: FileStoreVersion, Trips: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	tmpPath := b.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing history temp file: %w", writeErr)
	}
	if renameErr := os.Rename(tmpPath, b.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming history temp file: %w", renameErr)
	}
	return nil
}

// acquireFileLock takes the cross-process lockfile and returns its release func.
func (b *FileBackend) acquireFileLock() (func(), error) {
	lockPath := b.filePath + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	for attempt := 0; attempt < lockMaxRetries; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if removeStaleLock(lockPath) {
			continue
		}
		time.Sleep(lockRetryDelay)
	}
	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock deletes a lock older than staleLockAge whose owner is gone.
func removeStaleLock(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if lockOwnerAlive(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func lockOwnerAlive(lockPath string) bool {
	data, err := os.ReadFile(lockPath)
	if err != nil || len(data) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(data), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 probes for existence without delivering anything.
	return proc.Signal(syscall.Signal(0)) == nil
}
