package tracing

// Span names.
const (
	SpanGenerate = "pipeline.generate"
	SpanExport   = "export.render"
	SpanValidate = "validation.validate"
	SpanHistory  = "history.append"
)

// Span attribute keys.
const (
	AttrDomain    = "domain.key"
	AttrSelector  = "domain.selector"
	AttrRequested = "batch.requested"
	AttrProduced  = "batch.produced"
	AttrFormat    = "export.format"
	AttrBytes     = "export.bytes"
	AttrValid     = "validation.valid"
	AttrCacheHit  = "validation.cache_hit"
	AttrEntries   = "history.entries"
)
