package catalog

import (
	"errors"
	"fmt"
)

// Per-entry error kinds. Inspect and Walk wrap them with the offending path,
// so match with errors.Is.
var (
	ErrPathEncoding         = errors.New("path is not valid UTF-8")
	ErrMissingExtension     = errors.New("missing extension")
	ErrMissingFilename      = errors.New("missing file name")
	ErrUnsupportedExtension = errors.New("unsupported extension")
	ErrDecode               = errors.New("decode failure")
	ErrPixelLayout          = errors.New("unsupported pixel layout")
	ErrPaletteExtraction    = errors.New("palette extraction failure")
	ErrTraversal            = errors.New("traversal failure")
)

var failureKinds = []error{ErrTraversal, ErrDecode, ErrPixelLayout, ErrPaletteExtraction}

var reasonKinds = []error{
	ErrPathEncoding,
	ErrMissingExtension,
	ErrMissingFilename,
	ErrUnsupportedExtension,
	ErrDecode,
	ErrPixelLayout,
	ErrPaletteExtraction,
	ErrTraversal,
}

// IsFailure reports whether err means an entry looked like an image but could
// not be cataloged. Everything else is a file that is simply not an image.
func IsFailure(err error) bool {
	for _, kind := range failureKinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Reason returns the short kind label of err, such as "decode failure", or
// "unknown" for errors outside this package.
func Reason(err error) string {
	for _, kind := range reasonKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "unknown"
}

func wrap(kind error, path string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, path, err)
	}
	return fmt.Errorf("%w: %s", kind, path)
}
