package catalog

import (
	"bufio"
	"image"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"photojson/internal/palette"
)

// DefaultPaletteSize is the number of colors extracted per image.
const DefaultPaletteSize uint8 = 3

// Inspector builds Image records from single files. It is safe for
// concurrent use.
type Inspector struct {
	paletteSize uint8
	quality     int
	quantizer   palette.Quantizer
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithPaletteSize sets the maximum number of colors per image. Zero keeps the
// default.
func WithPaletteSize(n uint8) InspectorOption {
	return func(i *Inspector) {
		if n > 0 {
			i.paletteSize = n
		}
	}
}

// WithQuality sets the pixel sampling step. Values below one keep the default.
func WithQuality(q int) InspectorOption {
	return func(i *Inspector) {
		if q >= 1 {
			i.quality = q
		}
	}
}

// WithQuantizer selects the palette algorithm.
func WithQuantizer(q palette.Quantizer) InspectorOption {
	return func(i *Inspector) {
		if q != nil {
			i.quantizer = q
		}
	}
}

func NewInspector(opts ...InspectorOption) *Inspector {
	i := &Inspector{
		paletteSize: DefaultPaletteSize,
		quality:     palette.DefaultQuality,
		quantizer:   palette.MedianCut{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Classify validates the path and derives the image kind from its extension
// without touching the file.
func Classify(path string) (Kind, error) {
	if !utf8.ValidString(path) {
		return 0, wrap(ErrPathEncoding, path, nil)
	}
	base := filepath.Base(path)
	ext, ok := extension(base)
	if !ok {
		return 0, wrap(ErrMissingExtension, path, nil)
	}
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return 0, wrap(ErrMissingFilename, path, nil)
	}
	kind, err := ParseKind(ext)
	if err != nil {
		return 0, wrap(ErrUnsupportedExtension, path, nil)
	}
	return kind, nil
}

// extension returns the text after the last dot of name. A name without a
// dot, or whose only dot is the leading one, has no extension.
func extension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return "", false
	}
	return name[idx+1:], true
}

// Inspect decodes the file at path and extracts its dimensions and palette.
// It returns the zero Image on any failure.
func (i *Inspector) Inspect(path string) (Image, error) {
	kind, err := Classify(path)
	if err != nil {
		return Image{}, err
	}

	img, err := decodeFile(path, kind)
	if err != nil {
		return Image{}, err
	}
	bounds := img.Bounds()

	buf, err := palette.Normalize(img)
	if err != nil {
		return Image{}, wrap(ErrPixelLayout, path, err)
	}
	colors, err := palette.Extract(i.quantizer, buf, i.quality, int(i.paletteSize))
	if err != nil {
		return Image{}, wrap(ErrPaletteExtraction, path, err)
	}

	return Image{
		Path:     path,
		FileName: filepath.Base(path),
		Kind:     kind,
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		Colors:   colors,
	}, nil
}

func decodeFile(path string, kind Kind) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrap(ErrDecode, path, err)
	}
	defer f.Close()

	img, err := kind.decode(bufio.NewReader(f))
	if err != nil {
		return nil, wrap(ErrDecode, path, err)
	}
	return img, nil
}
