package tinystore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/tinystore/codec"
	"github.com/hupe1980/tinystore/persistence"
)

// DefaultExtension is appended to the store label when no explicit save
// path is configured.
const DefaultExtension = ".tsdb"

// Store is an in-memory collection of values of a single comparable element
// type, with whole-store snapshot persistence.
//
// The zero value is not usable; construct with New, Load or Open. A Store
// assumes exclusive single-writer ownership and performs no locking (see the
// package documentation).
type Store[T comparable] struct {
	label            string
	savePath         string
	strictDuplicates bool
	items            map[T]struct{}

	codec       codec.Codec
	compression persistence.Compression
	logger      *Logger
	metrics     MetricsCollector
}

// snapshotState is the logical schema of a persisted store. Item order in
// the encoded slice carries no meaning.
type snapshotState[T comparable] struct {
	Label            string `json:"label"`
	SavePath         string `json:"save_path,omitempty"`
	StrictDuplicates bool   `json:"strict_duplicates"`
	Items            []T    `json:"items"`
}

// New creates an empty store with the given human-readable label.
//
// The label doubles as the default snapshot file stem, so slug-form-like-this
// is preferable; use WithSavePath to override the location entirely.
func New[T comparable](label string, optFns ...Option) *Store[T] {
	opts := applyOptions(optFns)

	return &Store[T]{
		label:            label,
		savePath:         opts.savePath,
		strictDuplicates: opts.strictDuplicates,
		items:            make(map[T]struct{}),
		codec:            opts.codec,
		compression:      opts.compression,
		logger:           opts.logger,
		metrics:          opts.metrics,
	}
}

// Label returns the store's human-readable identifier.
func (s *Store[T]) Label() string { return s.label }

// SavePath returns the explicit snapshot path, or "" when the store falls
// back to "{label}.tsdb" in the current working directory.
func (s *Store[T]) SavePath() string { return s.savePath }

// StrictDuplicates reports whether duplicate inserts are surfaced as errors.
func (s *Store[T]) StrictDuplicates() bool { return s.strictDuplicates }

// Path returns the file the next Save will write to: the configured save
// path if set, otherwise "{label}.tsdb" relative to the working directory.
func (s *Store[T]) Path() string {
	if s.savePath != "" {
		return s.savePath
	}
	return s.label + DefaultExtension
}

// Len returns the number of elements currently stored.
func (s *Store[T]) Len() int { return len(s.items) }

// Contains reports whether an element equal to item exists in the store.
func (s *Store[T]) Contains(item T) bool {
	_, ok := s.items[item]
	return ok
}

// Items returns a copy of all stored elements in unspecified order.
func (s *Store[T]) Items() []T {
	out := make([]T, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	return out
}

// Create inserts item into the store.
//
// Under strict duplicates an equal existing element makes Create fail with
// ErrDuplicateFound; otherwise the attempt is a silent no-op that still
// succeeds. The container never holds two equal elements either way.
func (s *Store[T]) Create(item T) error {
	start := time.Now()
	err := s.create(item)
	s.metrics.RecordCreate(time.Since(start), err)
	s.logger.LogCreate(s.label, err)
	return err
}

func (s *Store[T]) create(item T) error {
	if s.strictDuplicates {
		if _, ok := s.items[item]; ok {
			return fmt.Errorf("%w in store %q", ErrDuplicateFound, s.label)
		}
	}
	s.items[item] = struct{}{}
	return nil
}

// Destroy removes the element structurally equal to item.
// It fails with ErrItemNotFound if no such element exists; the store is
// unchanged on failure.
func (s *Store[T]) Destroy(item T) error {
	start := time.Now()
	err := s.destroy(item)
	s.metrics.RecordDestroy(time.Since(start), err)
	s.logger.LogDestroy(s.label, err)
	return err
}

func (s *Store[T]) destroy(item T) error {
	if _, ok := s.items[item]; !ok {
		return fmt.Errorf("%w in store %q", ErrItemNotFound, s.label)
	}
	delete(s.items, item)
	return nil
}

// Update replaces old with new by destroying old and creating new.
//
// If old is absent, Update fails with ErrItemNotFound and nothing changes.
// If the destroy succeeds but new collides with a different surviving
// element under strict duplicates, Update fails with ErrDuplicateFound and
// the store is left with old removed and new absent. Callers must treat a
// failed update as having already removed old.
func (s *Store[T]) Update(old, new T) error {
	start := time.Now()
	err := s.update(old, new)
	s.metrics.RecordUpdate(time.Since(start), err)
	s.logger.LogUpdate(s.label, err)
	return err
}

func (s *Store[T]) update(old, new T) error {
	if err := s.destroy(old); err != nil {
		return err
	}
	return s.create(new)
}

// Find scans the store and returns the first element whose projection
// equals target, or ErrItemNotFound when none matches.
//
// The scan follows the container's native iteration order, which is not
// stable across runs, insertions, or persistence round trips; when several
// elements match, which one is returned is unspecified. The result is a
// copy -- mutate it and call Update to persist changes.
//
// Find is a free function because Go methods cannot introduce the
// projection's type parameter.
func Find[T comparable, V comparable](s *Store[T], projection func(T) V, target V) (T, error) {
	start := time.Now()
	item, err := find(s, projection, target)
	s.metrics.RecordFind(time.Since(start), err)
	return item, err
}

func find[T comparable, V comparable](s *Store[T], projection func(T) V, target V) (T, error) {
	for item := range s.items {
		if projection(item) == target {
			return item, nil
		}
	}

	var zero T
	return zero, fmt.Errorf("%w in store %q", ErrItemNotFound, s.label)
}

// Query scans the store and returns every element whose projection equals
// target, in unspecified order.
//
// An empty result set is reported as ErrItemNotFound rather than an empty
// slice. This mirrors the store's historical contract; treat "no matches"
// as a non-fatal error, not as corruption.
func Query[T comparable, V comparable](s *Store[T], projection func(T) V, target V) ([]T, error) {
	start := time.Now()
	items, err := query(s, projection, target)
	s.metrics.RecordQuery(len(items), time.Since(start), err)
	return items, err
}

func query[T comparable, V comparable](s *Store[T], projection func(T) V, target V) ([]T, error) {
	var items []T
	for item := range s.items {
		if projection(item) == target {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: query matched nothing in store %q", ErrItemNotFound, s.label)
	}

	return items, nil
}

// Save dumps the whole store to its resolved path (see Path). The previous
// snapshot, if any, is replaced in one atomic step.
func (s *Store[T]) Save() error {
	return s.SaveToFile(s.Path())
}

// SaveToFile dumps the whole store to filename atomically.
func (s *Store[T]) SaveToFile(filename string) error {
	start := time.Now()
	err := persistence.SaveToFile(filename, func(w io.Writer) error {
		return s.SaveToWriter(w)
	})
	s.metrics.RecordSnapshot(time.Since(start), err)
	s.logger.LogSnapshot(s.label, filename, len(s.items), err)
	return err
}

// SaveToWriter writes a complete snapshot of the store to w.
func (s *Store[T]) SaveToWriter(w io.Writer) error {
	state := snapshotState[T]{
		Label:            s.label,
		SavePath:         s.savePath,
		StrictDuplicates: s.strictDuplicates,
		Items:            s.Items(),
	}

	payload, err := s.codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return persistence.WriteSnapshot(w, s.codec.Name(), s.compression, payload)
}

// Load reads a snapshot file and reconstructs the store it encodes.
//
// It fails with ErrDatabaseNotFound if path does not exist and with
// ErrCorrupt if the file cannot be decoded as a store of element type T.
// Label, save path and duplicate policy come from the file; options only
// override the runtime configuration (codec, compression, logger, metrics).
func Load[T comparable](path string, optFns ...Option) (*Store[T], error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		}
		return nil, err
	}

	var store *Store[T]
	err := persistence.LoadFromFile(path, func(r io.Reader) error {
		var err error
		store, err = LoadFromReader[T](r, optFns...)
		return err
	})
	if err != nil {
		return nil, err
	}

	store.logger.LogLoad(path, len(store.items), nil)
	return store, nil
}

// LoadFromReader reconstructs a store from a snapshot stream.
func LoadFromReader[T comparable](r io.Reader, optFns ...Option) (*Store[T], error) {
	info, payload, err := persistence.ReadSnapshot(r)
	if err != nil {
		return nil, translateError(err)
	}

	fileCodec, ok := codec.ByName(info.CodecName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrCorrupt, info.CodecName)
	}

	var state snapshotState[T]
	if err := fileCodec.UnmarshalStrict(payload, &state); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %w", ErrCorrupt, err)
	}

	opts := applyOptions(optFns)
	if !opts.codecSet {
		// Keep writing with the codec the file was created with.
		opts.codec = fileCodec
	}
	if !opts.compressionSet {
		opts.compression = info.Compression
	}

	store := &Store[T]{
		label:            state.Label,
		savePath:         state.SavePath,
		strictDuplicates: state.StrictDuplicates,
		items:            make(map[T]struct{}, len(state.Items)),
		codec:            opts.codec,
		compression:      opts.compression,
		logger:           opts.logger,
		metrics:          opts.metrics,
	}
	for _, item := range state.Items {
		store.items[item] = struct{}{}
	}

	return store, nil
}

// Open loads the store at path if the file exists, and bootstraps a fresh
// one otherwise.
//
// For a fresh store the label is derived from the path's file stem and the
// save path is set to path, so a later Save lands where Open looked. Note
// the stem rule takes the segment between the final two dots: "x.y.z" yields
// label "y", so prefer single-extension filenames. strictDuplicates applies
// to the fresh store only; a loaded store keeps the policy it was dumped
// with.
func Open[T comparable](path string, strictDuplicates bool, optFns ...Option) (*Store[T], error) {
	if _, err := os.Stat(path); err == nil {
		return Load[T](path, optFns...)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	label, err := labelFromPath(path)
	if err != nil {
		return nil, err
	}

	optFns = append([]Option{
		WithSavePath(path),
		WithStrictDuplicates(strictDuplicates),
	}, optFns...)

	return New[T](label, optFns...), nil
}

// labelFromPath derives a store label from the snapshot file name: the
// segment between the final two dots ("x.y.z" yields "y"), or the whole
// name when it contains no dot.
func labelFromPath(path string) (string, error) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", fmt.Errorf("%w: no file name in %q", ErrBadName, path)
	}

	segments := strings.Split(base, ".")
	label := segments[0]
	if len(segments) > 1 {
		label = segments[len(segments)-2]
	}
	if label == "" {
		return "", fmt.Errorf("%w: no usable stem in %q", ErrBadName, path)
	}

	return label, nil
}
