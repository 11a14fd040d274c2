// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imaging wraps the third-party codecs that decode raster images,
// reduce them to luminance and encode PGM. Importing it registers decoders
// for PNG, JPEG, GIF, BMP, TIFF, WebP and the PNM family with package image.
package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/effect"
	pnm "github.com/jbuchbinder/gopnm"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/img2pgm/pkg/types"
)

// ErrUnknownLuma is returned for a luma policy this package does not implement.
var ErrUnknownLuma = errors.New("unknown luma policy")

// Open decodes the image file at path. The returned format is the name the
// decoder registered under (e.g. "png", "jpeg").
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, format, nil
}

// Grayscale reduces img to 8-bit luminance using policy. An empty policy
// means LumaRec601. With LumaRec601 an *image.Gray input is returned as is.
func Grayscale(img image.Image, policy types.LumaPolicy) *image.Gray {
	if policy == types.LumaBild {
		// effect.Grayscale stores the luminance in every channel of an RGBA.
		rgba := effect.Grayscale(img)
		dst := image.NewGray(rgba.Bounds())
		draw.Draw(dst, dst.Bounds(), rgba, rgba.Bounds().Min, draw.Src)
		return dst
	}

	if g, ok := img.(*image.Gray); ok {
		return g
	}
	return rec601(img)
}

// rec601 computes mode "L" luminance from straight (non-premultiplied) RGB,
// so alpha does not darken the result.
func rec601(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(b)

	if src, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := src.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[di] = luma601(src.Pix[si], src.Pix[si+1], src.Pix[si+2])
				si += 4
				di++
			}
		}
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.Pix[dst.PixOffset(x, y)] = luma601(c.R, c.G, c.B)
		}
	}
	return dst
}

// luma601 is L = R*299/1000 + G*587/1000 + B*114/1000 in 16.16 fixed point.
func luma601(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

// encodePGM writes img as PGM. Tests override it to simulate encoder failures.
var encodePGM = func(w io.Writer, img image.Image) error {
	return pnm.Encode(w, img, pnm.PGM)
}

// SavePGM encodes img as PGM into path, truncating any existing file. When
// encoding fails the partial file is removed.
func SavePGM(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := encodePGM(w, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding PGM: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Codec binds a luma policy to the package functions. It satisfies
// convert.Codec.
type Codec struct {
	luma types.LumaPolicy
}

// NewCodec returns a Codec for policy. An empty policy selects LumaRec601.
func NewCodec(policy types.LumaPolicy) (*Codec, error) {
	if policy == "" {
		policy = types.LumaRec601
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w %q: use %s or %s", ErrUnknownLuma, policy, types.LumaRec601, types.LumaBild)
	}
	return &Codec{luma: policy}, nil
}

// Luma returns the policy the codec converts with.
func (c *Codec) Luma() types.LumaPolicy { return c.luma }

// Open decodes the image file at path.
func (c *Codec) Open(path string) (image.Image, string, error) { return Open(path) }

// Grayscale converts img with the codec's luma policy.
func (c *Codec) Grayscale(img image.Image) *image.Gray { return Grayscale(img, c.luma) }

// Save writes img to path as PGM.
func (c *Codec) Save(img image.Image, path string) error { return SavePGM(img, path) }
