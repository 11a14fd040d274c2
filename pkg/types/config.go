// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LumaPolicy selects the weighting used to reduce a color image to a single
// luminance channel.
type LumaPolicy string

const (
	// LumaRec601 applies ITU-R 601-2 weights (0.299, 0.587, 0.114), the
	// classic mode "L" conversion. It is the default.
	LumaRec601 LumaPolicy = "rec601"

	// LumaBild applies the bild effect weights (0.3, 0.6, 0.1).
	LumaBild LumaPolicy = "bild"
)

// Valid reports whether p names a known policy.
func (p LumaPolicy) Valid() bool {
	switch p {
	case LumaRec601, LumaBild:
		return true
	}
	return false
}

// JournalConfig holds settings for the optional conversion journal.
type JournalConfig struct {
	// Path is the SQLite database file. An empty path disables the journal.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Enabled reports whether a journal database is configured.
func (c JournalConfig) Enabled() bool {
	return c.Path != ""
}

// ConverterConfig groups the settings for a single conversion run.
type ConverterConfig struct {
	// Luma selects the grayscale weighting (default rec601).
	Luma LumaPolicy `json:"luma" yaml:"luma"`

	Journal JournalConfig `json:"journal" yaml:"journal"`
}
