package catalog

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

// Kind is the image container format, derived from the file extension.
type Kind int

const (
	KindJPEG Kind = iota + 1
	KindPNG
)

// ParseKind classifies a file extension (without the dot) case-insensitively.
func ParseKind(ext string) (Kind, error) {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return KindJPEG, nil
	case "png":
		return KindPNG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "Jpeg"
	case KindPNG:
		return "Png"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindJPEG, KindPNG:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid image kind %d", int(k))
	}
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Jpeg":
		*k = KindJPEG
	case "Png":
		*k = KindPNG
	default:
		return fmt.Errorf("invalid image kind %q", text)
	}
	return nil
}

// decode reads r with the decoder registered for k. Content that does not
// match the extension is a decode error.
func (k Kind) decode(r io.Reader) (image.Image, error) {
	switch k {
	case KindJPEG:
		return jpeg.Decode(r)
	case KindPNG:
		return png.Decode(r)
	default:
		return nil, fmt.Errorf("no decoder for %s", k)
	}
}
