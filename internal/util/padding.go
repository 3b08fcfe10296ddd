package util

import "unsafe"

// CacheLineSize is a reasonable default for most modern CPUs.
// std has runtime/internal/sys.CacheLineSize but it's unexported.
// 64 works well in practice.
const CacheLineSize = 64

// CacheLinePad is a dummy field used to separate hot fields into distinct
// cache lines and reduce false sharing. Place between groups of hot fields.
type CacheLinePad struct{ _ [CacheLineSize]byte }

// Compile-time size check: the pad must be exactly one cache line.
var _ [CacheLineSize - int(unsafe.Sizeof(CacheLinePad{}))]byte
