// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a raster image file into a grayscale PGM file
// written next to it. Decoding, luminance conversion and PGM encoding are
// delegated to a Codec; this package owns argument handling, output naming
// and the messages printed to the user.
package convert

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/pdiddy/img2pgm/pkg/types"
)

// UsageLine is printed when no image file is given. The wording is kept
// verbatim because calling scripts match on it.
const UsageLine = "usage: python img2pgm.py <image-file-name>"

// Codec decodes, converts and encodes images. The imaging package provides
// the production implementation.
type Codec interface {
	// Open decodes the image at path and returns it with the name of the
	// format that decoded it.
	Open(path string) (image.Image, string, error)

	// Grayscale reduces img to a single 8-bit luminance channel.
	Grayscale(img image.Image) *image.Gray

	// Save writes img to path as PGM, replacing any existing file.
	Save(img image.Image, path string) error
}

// Result holds the outcome of one conversion.
type Result struct {
	Input  string
	Output string
	Format string
	Width  int
	Height int
}

// Line returns the confirmation printed after a successful conversion.
func (r Result) Line() string {
	return fmt.Sprintf("input:%s    output:%s", r.Input, r.Output)
}

// Record converts the result into a journal entry.
func (r Result) Record(luma types.LumaPolicy, at time.Time) types.ConversionRecord {
	return types.ConversionRecord{
		Input:       r.Input,
		Output:      r.Output,
		Format:      r.Format,
		Width:       r.Width,
		Height:      r.Height,
		Luma:        luma,
		ConvertedAt: at.UTC(),
	}
}

// ConvertFile decodes inname, converts it to grayscale and saves it as
// OutputPath(inname). Open and save failures are returned wrapped; nothing
// is written when decoding fails.
func ConvertFile(c Codec, inname string) (Result, error) {
	outname := OutputPath(inname)

	img, format, err := c.Open(inname)
	if err != nil {
		return Result{}, fmt.Errorf("opening image %s: %w", inname, err)
	}

	gray := c.Grayscale(img)

	if err := c.Save(gray, outname); err != nil {
		return Result{}, fmt.Errorf("saving %s: %w", outname, err)
	}

	b := gray.Bounds()
	return Result{
		Input:  inname,
		Output: outname,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// Run converts the first positional argument and prints one line to w:
// the usage message when args is empty, or the confirmation on success.
// The returned result is nil when only usage was printed. Arguments after
// the first are ignored.
func Run(c Codec, args []string, w io.Writer) (*Result, error) {
	if len(args) == 0 {
		fmt.Fprintln(w, UsageLine)
		return nil, nil
	}

	res, err := ConvertFile(c, args[0])
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(w, res.Line())
	return &res, nil
}
