// Package history keeps the activity log of generation batches. The log is a
// single JSON array stored under one key, newest entry first, capped at
// MaxEntries.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mockbanker/mockbanker/internal/kvstore"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/tracing"
)

const (
	// Key is the store key holding the serialised log.
	Key = "history"
	// MaxEntries is the retention cap; older entries are dropped on append.
	MaxEntries = 50
)

// Entry is one recorded batch.
type Entry struct {
	ID string `json:"id"`
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64  `json:"timestamp"`
	Category  string `json:"category"`
	// Country holds the selector code or label ("Random", a card brand).
	Country string   `json:"country"`
	Count   int      `json:"count"`
	Results []string `json:"results"`
}

// Time converts Timestamp to local time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Log is the activity history over a kvstore.Store.
type Log struct {
	store   kvstore.Store
	now     func() time.Time
	newID   func() string
	tracer  trace.Tracer
	entries []Entry
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithIDs overrides id generation.
func WithIDs(next func() string) Option {
	return func(l *Log) { l.newID = next }
}

// WithTracer traces appends.
func WithTracer(t trace.Tracer) Option {
	return func(l *Log) {
		if t != nil {
			l.tracer = t
		}
	}
}

// New creates a Log. Call Load to populate the in-memory view.
func New(store kvstore.Store, opts ...Option) *Log {
	l := &Log{
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
		tracer: tracing.Noop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load re-reads the persisted log and replaces the in-memory view. A missing
// or malformed blob loads as an empty log. When the store cannot be read the
// current view is kept.
func (l *Log) Load(ctx context.Context) []Entry {
	entries, err := l.read(ctx)
	if err != nil {
		log.ErrorErr(log.CatHistory, "read history", err)
		return l.Entries()
	}
	l.entries = entries
	return l.Entries()
}

// Entries returns a copy of the in-memory view, newest first.
func (l *Log) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len is the number of entries in the in-memory view.
func (l *Log) Len() int { return len(l.entries) }

// Append re-reads the stored log, prepends e, truncates to MaxEntries and
// writes the whole log back. Zero ID and Timestamp are filled in. If the
// stored log cannot be read nothing is written, so a failed read never
// overwrites existing entries.
func (l *Log) Append(ctx context.Context, e Entry) (Entry, error) {
	ctx, span := l.tracer.Start(ctx, tracing.SpanHistory)
	defer span.End()

	if e.ID == "" {
		e.ID = l.newID()
	}
	if e.Timestamp == 0 {
		e.Timestamp = l.now().UnixMilli()
	}
	if e.Results == nil {
		e.Results = []string{}
	}

	current, err := l.read(ctx)
	if err != nil {
		span.RecordError(err)
		return e, err
	}
	next := make([]Entry, 0, min(len(current)+1, MaxEntries))
	next = append(next, e)
	next = append(next, current...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	span.SetAttributes(attribute.Int(tracing.AttrEntries, len(next)))

	data, err := json.Marshal(next)
	if err != nil {
		return e, fmt.Errorf("encode history: %w", err)
	}
	if err := l.store.Set(ctx, Key, string(data)); err != nil {
		span.RecordError(err)
		return e, fmt.Errorf("write history: %w", err)
	}
	l.entries = next
	log.Debug(log.CatHistory, "appended", "category", e.Category, "country", e.Country, "count", e.Count, "entries", len(next))
	return e, nil
}

// Record appends a batch. It satisfies pipeline.Recorder.
func (l *Log) Record(ctx context.Context, category, label string, count int, results []string) error {
	_, err := l.Append(ctx, Entry{
		Category: category,
		Country:  label,
		Count:    count,
		Results:  slices.Clone(results),
	})
	return err
}

// Clear empties the view, then removes the stored log.
func (l *Log) Clear(ctx context.Context) error {
	l.entries = nil
	if err := l.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	log.Info(log.CatHistory, "cleared")
	return nil
}

// read returns the stored log. Only a store failure is an error; a missing
// or malformed blob is an empty log.
func (l *Log) read(ctx context.Context) ([]Entry, error) {
	raw, found, err := l.store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !found {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn(log.CatHistory, "ignoring malformed history", "error", err.Error(), "bytes", len(raw))
		return nil, nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, nil
}
