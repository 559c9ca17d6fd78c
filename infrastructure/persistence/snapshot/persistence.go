package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// load applies the construction-time policy and returns the initial state
// together with whether snapshot writes should be attempted.
func (s *Store) load() (Document, bool) {
	if !s.opts.Enabled {
		s.logger.Info("Persistence disabled, using in-memory store")
		return seedDocument(s.now()), false
	}

	if err := os.MkdirAll(s.opts.DataDir, 0o755); err != nil {
		s.warnOnce("Cannot create data directory, falling back to in-memory store", err)
		return seedDocument(s.now()), false
	}

	doc, err := readDocument(s.path)
	if err == nil {
		s.logger.Info("Loaded snapshot",
			zap.String("path", s.path),
			zap.Int("groups", len(doc.Groups)),
			zap.Int("topics", len(doc.Topics)),
		)
		return doc, true
	}
	if !os.IsNotExist(err) {
		s.logger.Warn("Snapshot unreadable, reseeding", zap.String("path", s.path), zap.Error(err))
	}

	doc = seedDocument(s.now())
	if err := writeDocument(s.path, doc); err != nil {
		s.metrics.RecordSnapshotWrite(err)
		s.warnOnce("Cannot write snapshot file, continuing in-memory only", err)
		return doc, false
	}
	s.metrics.RecordSnapshotWrite(nil)
	return doc, true
}

// persist rewrites the snapshot with the state current at write time.
// Writes are serialized; a failure is logged once and never surfaces.
func (s *Store) persist() {
	if !s.persistent {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	doc := s.doc.clone()
	s.mu.RUnlock()

	err := writeDocument(s.path, doc)
	s.metrics.RecordSnapshotWrite(err)
	if err != nil {
		s.warnOnce("Failed to persist snapshot, continuing in-memory", err)
	}
}

func (s *Store) warnOnce(msg string, err error) {
	s.warned.Do(func() {
		s.logger.Warn(msg, zap.String("dataDir", s.opts.DataDir), zap.Error(err))
	})
}

func readDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	doc.normalize()
	return doc, nil
}

// writeDocument writes to a temp file in the same directory and renames it
// over path, so readers never observe a partial file.
func writeDocument(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
