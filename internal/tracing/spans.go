package tracing

// Span attribute keys for strand tracing.
// These constants define the semantic conventions for span attributes
// across the registry, catalog, codec, and program store.
const (
	// Kind attributes
	AttrKindName  = "kind.name"
	AttrLookupKey = "kind.key"
	AttrKindCount = "kind.count"

	// Operation attributes
	AttrOpCanonical = "op.canonical"
	AttrOpCount     = "op.count"

	// Program attributes
	AttrProgramID    = "program.id"
	AttrProgramName  = "program.name"
	AttrProgramCount = "program.count"

	// Catalog attributes
	AttrCatalogDir  = "catalog.dir"
	AttrCatalogFile = "catalog.file"

	// Cache attributes
	AttrCacheHit = "cache.hit"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixService = "service."
	SpanPrefixRepo    = "repo."
	SpanPrefixCatalog = "catalog."
	SpanPrefixCodec   = "codec."
)

// Event names for span events.
const (
	EventKindDefined    = "kind.defined"
	EventCatalogLoaded  = "catalog.loaded"
	EventProgramDecoded = "program.decoded"
	EventCacheHit       = "cache.hit"
	EventCacheMiss      = "cache.miss"
	EventErrorOccurred  = "error.occurred"
)
