// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionRecord describes one completed image-to-PGM conversion.
type ConversionRecord struct {
	// ID is assigned by the journal when the record is stored.
	ID int64 `json:"id" yaml:"id"`

	// Input is the path exactly as given on the command line.
	Input string `json:"input" yaml:"input"`

	// Output is the derived .pgm path.
	Output string `json:"output" yaml:"output"`

	// Format is the decoder name reported for the input (e.g. "png", "jpeg").
	Format string `json:"format" yaml:"format"`

	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// Luma is the policy used for the grayscale conversion.
	Luma LumaPolicy `json:"luma" yaml:"luma"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
