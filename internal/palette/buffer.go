package palette

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrUnsupportedLayout is returned by Normalize for image types whose channel
// layout cannot be mapped onto RGB or RGBA.
var ErrUnsupportedLayout = errors.New("unsupported pixel layout")

// Layout is the per-pixel byte arrangement of a Buffer.
type Layout int

const (
	LayoutRGB Layout = iota + 1
	LayoutRGBA
)

func (l Layout) String() string {
	switch l {
	case LayoutRGB:
		return "rgb"
	case LayoutRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// Channels returns the number of bytes per pixel.
func (l Layout) Channels() int {
	if l == LayoutRGBA {
		return 4
	}
	return 3
}

// Buffer is a tightly packed, top-left origin pixel buffer. RGBA buffers use
// straight (non-premultiplied) alpha.
type Buffer struct {
	Layout Layout
	Width  int
	Height int
	Pix    []byte
}

// Len returns the number of pixels in the buffer.
func (b Buffer) Len() int {
	return b.Width * b.Height
}

// Image exposes the buffer as an image.Image for libraries that need one.
func (b Buffer) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Layout == LayoutRGBA {
		return &image.NRGBA{Pix: b.Pix, Stride: 4 * b.Width, Rect: rect}
	}
	out := image.NewNRGBA(rect)
	for i, j := 0, 0; i+2 < len(b.Pix); i, j = i+3, j+4 {
		out.Pix[j] = b.Pix[i]
		out.Pix[j+1] = b.Pix[i+1]
		out.Pix[j+2] = b.Pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}

// LayoutOf reports the channel layout Normalize would produce for img.
func LayoutOf(img image.Image) (Layout, error) {
	switch img.(type) {
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return LayoutRGB, nil
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted, *image.NYCbCrA:
		return LayoutRGBA, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedLayout, img)
	}
}

// Normalize converts a decoded image into a packed RGB or RGBA buffer.
func Normalize(img image.Image) (Buffer, error) {
	if img == nil {
		return Buffer{}, fmt.Errorf("%w: nil image", ErrUnsupportedLayout)
	}
	layout, err := LayoutOf(img)
	if err != nil {
		return Buffer{}, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Copy(nrgba, image.Point{}, img, bounds, draw.Src, nil)

	buf := Buffer{Layout: layout, Width: width, Height: height}
	if layout == LayoutRGBA {
		buf.Pix = nrgba.Pix
		return buf, nil
	}

	buf.Pix = make([]byte, 0, width*height*3)
	for i := 0; i+4 <= len(nrgba.Pix); i += 4 {
		buf.Pix = append(buf.Pix, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return buf, nil
}
