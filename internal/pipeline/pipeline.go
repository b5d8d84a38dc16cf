// Package pipeline turns a generation request into a batch of rows and
// reports each attempt to the activity history.
package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/tracing"
)

// Count bounds for a single batch.
const (
	MinCount     = 1
	MaxCount     = 100
	DefaultCount = 5
)

// ClampCount pins n into [MinCount, MaxCount].
func ClampCount(n int) int {
	return min(max(n, MinCount), MaxCount)
}

// Request asks for Count rows for Selector. An empty Selector means random
// where the domain allows it.
type Request struct {
	Selector string
	Count    int
	Options  catalog.GenOptions
}

// Snapshot is one batch, rows in generation order.
type Snapshot[R catalog.Row] struct {
	Domain    string
	Selector  string
	Requested int
	Rows      []R
}

// Label is the selector as shown in history.
func (s Snapshot[R]) Label() string {
	if s.Selector == "" {
		return catalog.RandomLabel
	}
	return s.Selector
}

// PrimaryValues lists each row's identifying value.
func (s Snapshot[R]) PrimaryValues() []string {
	out := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.PrimaryValue()
	}
	return out
}

// Len is the number of rows actually produced.
func (s Snapshot[R]) Len() int { return len(s.Rows) }

// NewRand returns a PCG source. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate calls reg exactly ClampCount(req.Count) times. Failed draws are
// skipped, so the snapshot can be shorter than requested.
func Generate[R catalog.Row](reg catalog.Registry[R], req Request, r *rand.Rand) Snapshot[R] {
	n := ClampCount(req.Count)
	snap := Snapshot[R]{
		Domain:    reg.Info().Key,
		Selector:  req.Selector,
		Requested: n,
		Rows:      make([]R, 0, n),
	}
	for range n {
		row, ok := reg.Generate(req.Selector, req.Options, r)
		if !ok {
			continue
		}
		snap.Rows = append(snap.Rows, row)
	}
	if len(snap.Rows) < n {
		log.Debug(log.CatGen, "short batch",
			"domain", snap.Domain, "selector", req.Selector,
			"requested", n, "produced", len(snap.Rows))
	}
	return snap
}

// Recorder persists one history entry per batch.
type Recorder interface {
	Record(ctx context.Context, category, label string, count int, results []string) error
}

// Runner wires generation to history and tracing.
type Runner struct {
	recorder Recorder
	tracer   trace.Tracer
	history  bool
}

// NewRunner creates a Runner. A nil recorder disables history.
func NewRunner(recorder Recorder, tracer trace.Tracer, recordHistory bool) *Runner {
	if tracer == nil {
		tracer = tracing.Noop()
	}
	return &Runner{recorder: recorder, tracer: tracer, history: recordHistory && recorder != nil}
}

// WithHistory returns a copy with history recording switched on or off.
func (rn *Runner) WithHistory(enabled bool) *Runner {
	cp := *rn
	cp.history = enabled && rn.recorder != nil
	return &cp
}

// Run generates a batch and records exactly one history entry for it, even
// when no row was produced. Recording failures are logged only.
func Run[R catalog.Row](ctx context.Context, rn *Runner, reg catalog.Registry[R], req Request, r *rand.Rand) Snapshot[R] {
	info := reg.Info()
	ctx, span := rn.tracer.Start(ctx, tracing.SpanGenerate)
	defer span.End()

	snap := Generate(reg, req, r)
	span.SetAttributes(
		attribute.String(tracing.AttrDomain, info.Key),
		attribute.String(tracing.AttrSelector, snap.Label()),
		attribute.Int(tracing.AttrRequested, snap.Requested),
		attribute.Int(tracing.AttrProduced, snap.Len()),
	)
	log.Info(log.CatGen, "generated", "domain", info.Key, "selector", snap.Label(), "rows", snap.Len())

	if rn.history {
		if err := rn.recorder.Record(ctx, info.Category, snap.Label(), snap.Requested, snap.PrimaryValues()); err != nil {
			span.RecordError(err)
			log.ErrorErr(log.CatHistory, "record batch failed", err, "domain", info.Key)
		}
	}
	return snap
}
