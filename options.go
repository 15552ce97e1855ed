package tinystore

import (
	"github.com/hupe1980/tinystore/codec"
	"github.com/hupe1980/tinystore/persistence"
)

type options struct {
	savePath         string
	strictDuplicates bool
	codec            codec.Codec
	codecSet         bool
	compression      persistence.Compression
	compressionSet   bool
	logger           *Logger
	metrics          MetricsCollector
}

// Option configures Store constructor/load behavior.
type Option func(*options)

func applyOptions(optFns []Option) options {
	opts := options{
		codec:       codec.Default,
		compression: persistence.CompressionNone,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// WithSavePath sets an explicit snapshot file location, overriding the
// default "{label}.tsdb" in the current working directory.
//
// The path is fixed for the life of the store; there is no setter.
func WithSavePath(path string) Option {
	return func(o *options) {
		o.savePath = path
	}
}

// WithStrictDuplicates controls whether inserting an element equal to an
// existing one fails with ErrDuplicateFound (true) or is silently ignored
// (false, the default). The container never stores duplicates either way.
func WithStrictDuplicates(strict bool) Option {
	return func(o *options) {
		o.strictDuplicates = strict
	}
}

// WithCodec configures the codec used to encode snapshot payloads.
//
// If nil is passed, codec.Default is used. Loading is unaffected: snapshot
// files record the codec they were written with, and the matching codec is
// selected by name.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
		o.codecSet = true
	}
}

// WithCompression configures snapshot payload compression.
// The default is no compression.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
		o.compressionSet = true
	}
}

// WithLogger configures structured logging for store operations.
// Pass nil to disable logging entirely.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}
