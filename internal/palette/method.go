package palette

import (
	"fmt"
	"strings"
)

// Method names a palette quantization strategy.
type Method string

const (
	MethodMedianCut Method = "median_cut"
	MethodDominant  Method = "dominant"
	MethodKMeans    Method = "kmeans"
)

// Methods lists every supported method, default first.
func Methods() []Method {
	return []Method{MethodMedianCut, MethodDominant, MethodKMeans}
}

// ParseMethod accepts method names case-insensitively, with '-' or '_'.
// The empty string selects median cut.
func ParseMethod(s string) (Method, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if name == "" {
		return MethodMedianCut, nil
	}
	for _, m := range Methods() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown palette method %q", s)
}

// New returns the quantizer for m.
func New(m Method) (Quantizer, error) {
	switch m {
	case MethodMedianCut, "":
		return MedianCut{}, nil
	case MethodDominant:
		return Dominant{}, nil
	case MethodKMeans:
		return KMeans{}, nil
	default:
		return nil, fmt.Errorf("unknown palette method %q", string(m))
	}
}
