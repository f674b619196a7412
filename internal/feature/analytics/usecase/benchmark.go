package usecase

import "strings"

const (
	// DefaultShanghaiBenchmark is the SSE Composite index.
	DefaultShanghaiBenchmark = "000001.SS"
	// DefaultBenchmark is the SZSE Component index, used for every other market.
	DefaultBenchmark = "399001.SZ"
)

// BenchmarkResolver maps a symbol to the index its beta is measured against, by
// market suffix.
type BenchmarkResolver struct {
	fallback string
	bySuffix map[string]string
}

// NewBenchmarkResolver creates a resolver. Empty arguments select the defaults:
// ".SS" symbols map to DefaultShanghaiBenchmark and all others to DefaultBenchmark.
func NewBenchmarkResolver(fallback string, bySuffix map[string]string) *BenchmarkResolver {
	if fallback == "" {
		fallback = DefaultBenchmark
	}
	if len(bySuffix) == 0 {
		bySuffix = map[string]string{".SS": DefaultShanghaiBenchmark}
	}
	normalized := make(map[string]string, len(bySuffix))
	for suffix, index := range bySuffix {
		normalized[strings.ToUpper(suffix)] = index
	}
	return &BenchmarkResolver{fallback: fallback, bySuffix: normalized}
}

// Resolve returns the benchmark symbol for symbol.
func (r *BenchmarkResolver) Resolve(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.LastIndexByte(symbol, '.'); i >= 0 {
		if index, ok := r.bySuffix[symbol[i:]]; ok {
			return index
		}
	}
	return r.fallback
}
