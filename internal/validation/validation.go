// Package validation answers "is this value a valid X?" for any domain,
// with a human-readable message and, where check digits can be recomputed,
// a suggested correction.
package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mockbanker/mockbanker/internal/cachemanager"
	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/tracing"
)

// VerdictTTL is how long a verdict stays cached.
const VerdictTTL = 10 * time.Minute

// Request names the domain, the country (ignored by value-only domains) and
// the raw user input.
type Request struct {
	Domain  string
	Country string
	Value   string
}

func (r Request) key() string {
	return r.Domain + "|" + r.Country + "|" + r.Value
}

// Verdict is the outcome shown to the user.
type Verdict struct {
	Valid   bool
	Message string
	// Suggestion is a corrected value for an invalid input whose structure
	// is right but whose check digits are not. Empty otherwise.
	Suggestion string
}

// Check validates req without caching. ok is false for blank input, which
// has no verdict.
func Check(req Request) (Verdict, bool) {
	req.Value = strings.TrimSpace(req.Value)
	if req.Value == "" {
		return Verdict{}, false
	}

	d, found := catalog.Lookup(req.Domain)
	if !found {
		return Verdict{Message: fmt.Sprintf("Unknown identifier type %q", req.Domain)}, true
	}
	info := d.Info()

	if p, isParser := d.(catalog.Parser); isParser {
		return checkParsed(info, p, d, req), true
	}

	valid, supported := d.Validate(req.Country, req.Value)
	if !supported {
		return unsupported(info), true
	}
	v := Verdict{Valid: valid, Message: info.InvalidMessage}
	if valid {
		v.Message = info.ValidMessage
	} else if r, isRepairer := d.(catalog.Repairer); isRepairer {
		v.Suggestion = suggestion(r, req.Value)
	}
	return v, true
}

func checkParsed(info catalog.Info, p catalog.Parser, d catalog.Descriptor, req Request) Verdict {
	if info.CountryScoped && !catalog.HasOption(d, req.Country) {
		return unsupported(info)
	}
	parsed, ok := p.Parse(req.Country, req.Value)
	switch {
	case !ok:
		return Verdict{Message: "Could not parse ID"}
	case parsed.Valid:
		return Verdict{Valid: true, Message: fmt.Sprintf("%s (%s / %s)", info.ValidMessage, parsed.Gender, parsed.DOB)}
	}
	return Verdict{Message: info.InvalidMessage}
}

func unsupported(info catalog.Info) Verdict {
	return Verdict{Message: info.Name + " validation not supported for this country"}
}

func suggestion(r catalog.Repairer, value string) string {
	fixed, ok := r.Repair(value)
	if !ok || Normalize(fixed) == Normalize(value) {
		return ""
	}
	return fixed
}

// Normalize uppercases s and drops all whitespace, the form suggestions are
// compared in.
func Normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// Dispatcher is Check behind a verdict cache.
type Dispatcher struct {
	cache       *cachemanager.ReadThroughCache[string, Verdict, Request]
	repairHints bool
	tracer      trace.Tracer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRepairHints toggles suggestions in returned verdicts.
func WithRepairHints(enabled bool) Option {
	return func(d *Dispatcher) { d.repairHints = enabled }
}

// WithTracer traces each validation.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.tracer = t
		}
	}
}

// WithoutCache makes every call go through Check.
func WithoutCache() Option {
	return func(d *Dispatcher) {
		d.cache = cachemanager.NewReadThroughCache[string, Verdict, Request](newVerdictCache(), checkFn, true)
	}
}

func newVerdictCache() *cachemanager.InMemoryCacheManager[string, Verdict] {
	return cachemanager.NewInMemoryCacheManager[string, Verdict]("verdicts", VerdictTTL, cachemanager.DefaultCleanupInterval)
}

func checkFn(_ context.Context, req Request) (Verdict, error) {
	v, _ := Check(req)
	return v, nil
}

// New creates a Dispatcher with repair hints on.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cache:       cachemanager.NewReadThroughCache[string, Verdict, Request](newVerdictCache(), checkFn, false),
		repairHints: true,
		tracer:      tracing.Noop(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Validate is Check with caching. ok is false for blank input.
func (d *Dispatcher) Validate(ctx context.Context, req Request) (Verdict, bool) {
	req.Value = strings.TrimSpace(req.Value)
	if req.Value == "" {
		return Verdict{}, false
	}

	ctx, span := d.tracer.Start(ctx, tracing.SpanValidate)
	defer span.End()

	v, hit, _ := d.cache.Get(ctx, req.key(), req, VerdictTTL)
	if !d.repairHints {
		v.Suggestion = ""
	}
	span.SetAttributes(
		attribute.String(tracing.AttrDomain, req.Domain),
		attribute.Bool(tracing.AttrValid, v.Valid),
		attribute.Bool(tracing.AttrCacheHit, hit),
	)
	log.Debug(log.CatValidate, "validated", "domain", req.Domain, "country", req.Country, "valid", v.Valid, "cached", hit)
	return v, true
}
