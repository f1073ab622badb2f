package data

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/resdayn/internal/logger"
	"github.com/Faultbox/resdayn/pkg/esm"
)

// Loader reads content files into a store, in caller-specified order.
// Later files overwrite or delete what earlier files defined, so the order
// of LoadFile calls is part of the result.
type Loader struct {
	store *Store
	stats Stats

	// Responses in a content file belong to the most recent topic header;
	// the file format leaves the association implicit.
	topic string
}

// NewLoader returns a loader that fills store.
func NewLoader(store *Store) *Loader {
	return &Loader{store: store, stats: Stats{ByKind: make(map[esm.Tag]int)}}
}

// Store returns the store this loader fills.
func (l *Loader) Store() *Store { return l.store }

// Stats returns the statistics collected so far. The result shares the
// loader's internal map and is for reading only.
func (l *Loader) Stats() Stats { return l.stats }

// LoadFile reads one ESM or ESP file from disk into the store.
func (l *Loader) LoadFile(path string) (*esm.FileHeader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	return l.Load(filepath.Base(path), raw)
}

// LoadAll loads files in the given order, stopping at the first failure.
// Records from files loaded before the failing one stay in the store.
func (l *Loader) LoadAll(paths ...string) error {
	for _, path := range paths {
		if _, err := l.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// Load decodes one in-memory content file. name is used for logging and
// error context only.
func (l *Loader) Load(name string, raw []byte) (*esm.FileHeader, error) {
	start := time.Now()
	l.topic = ""

	r := esm.NewReader(raw)
	header, err := l.readHeader(name, r)
	if err != nil {
		return nil, err
	}

	records := 0
	for r.HasMoreRecords() {
		tag, _, flags, err := r.ReadRecordHeader()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rec, err := esm.DecodeRecord(r, tag, flags)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		records++
		if rec == nil {
			l.stats.Unknown++
			logger.Debug("unknown record kind skipped",
				zap.String("file", name),
				zap.String("tag", string(tag)))
		} else {
			l.insert(name, rec)
		}
		// Unconditional, even after a clean decode: a decoder that
		// miscounts its subrecords must not desynchronize the rest of the
		// file.
		r.SkipRecord()
	}

	elapsed := time.Since(start)
	l.stats.Files = append(l.stats.Files, name)
	l.stats.Records += records
	l.stats.Elapsed += elapsed

	logger.Info("content file loaded",
		zap.String("file", name),
		zap.Float32("version", header.Version),
		zap.Int("records", records),
		zap.Duration("elapsed", elapsed))
	return header, nil
}

// readHeader consumes the TES3 record every content file must start with.
// The header is used for logging and master-file bookkeeping, not stored.
func (l *Loader) readHeader(name string, r *esm.Reader) (*esm.FileHeader, error) {
	tag, _, flags, err := r.ReadRecordHeader()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if tag != esm.TagTES3 {
		return nil, fmt.Errorf("%s: %w: first record is %s, want TES3", name, esm.ErrBadHeader, tag)
	}
	rec, err := esm.DecodeRecord(r, tag, flags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r.SkipRecord()

	header := rec.(*esm.FileHeader)
	for _, m := range header.Masters {
		logger.Debug("content file depends on master",
			zap.String("file", name),
			zap.String("master", m.Name),
			zap.Uint64("size", m.Size))
	}
	return header, nil
}

func (l *Loader) insert(name string, rec esm.Record) {
	switch t := rec.(type) {
	case *esm.FileHeader:
		// A stray TES3 past the first record carries nothing worth keeping.
		return
	case *esm.Dialogue:
		l.topic = t.ID
	case *esm.DialogueInfo:
		if l.topic == "" {
			logger.Debug("dialogue entry before any topic dropped",
				zap.String("file", name),
				zap.String("id", t.ID))
			return
		}
		t.Topic = l.topic
	}

	l.stats.ByKind[rec.Kind()]++
	if rec.Meta().Deleted {
		l.stats.Deleted++
	} else {
		l.stats.Inserted++
	}
	l.store.Insert(rec)
}
