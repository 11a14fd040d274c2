// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/img2pgm/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := types.JournalConfig{
		Path:       filepath.Join(t.TempDir(), "state", "journal.db"),
		MaxResults: 3,
	}
	s, err := NewStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(name string, at time.Time) types.ConversionRecord {
	return types.ConversionRecord{
		Input:       name + ".png",
		Output:      name + ".pgm",
		Format:      "png",
		Width:       640,
		Height:      480,
		Luma:        types.LumaRec601,
		ConvertedAt: at,
	}
}

var base = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

// --- tests ---

func TestNewStore_NotConfigured(t *testing.T) {
	_, err := NewStore(types.JournalConfig{})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	s := testStore(t)
	_, err := os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	s, err := NewStore(types.JournalConfig{Path: path})
	require.NoError(t, err)
	_, err = s.Record(ctx, record("first", base))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(types.JournalConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first.png", got[0].Input)
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id1, err := s.Record(ctx, record("a", base))
	require.NoError(t, err)
	id2, err := s.Record(ctx, record("b", base.Add(time.Minute)))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, id2, got[0].ID, "newest first")
	assert.Equal(t, "b.png", got[0].Input)
	assert.Equal(t, "b.pgm", got[0].Output)
	assert.Equal(t, "png", got[0].Format)
	assert.Equal(t, 640, got[0].Width)
	assert.Equal(t, 480, got[0].Height)
	assert.Equal(t, types.LumaRec601, got[0].Luma)
	assert.True(t, got[0].ConvertedAt.Equal(base.Add(time.Minute)))
}

func TestList_DefaultLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		_, err := s.Record(ctx, record(name, base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.List(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestRecord_ZeroTimeUsesNow(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	_, err := s.Record(ctx, record("now", time.Time{}))
	require.NoError(t, err)

	got, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].ConvertedAt.After(before))
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, record("scan", base))
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.Export(ctx, &buf, FormatJSON, 0))

		var got []types.ConversionRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "scan.pgm", got[0].Output)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.Export(ctx, &buf, FormatYAML, 0))

		var got []types.ConversionRecord
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "scan.png", got[0].Input)
		assert.Equal(t, types.LumaRec601, got[0].Luma)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.Export(ctx, &buf, FormatTable, 0))
		assert.Contains(t, buf.String(), "scan.png")
		assert.Contains(t, buf.String(), "640x480")
		assert.Contains(t, buf.String(), "1 entries")
	})

	t.Run("unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		err := s.Export(ctx, &buf, Format("xml"), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}

func TestWrite_Empty(t *testing.T) {
	var table, js bytes.Buffer
	require.NoError(t, Write(&table, FormatTable, nil))
	assert.Equal(t, "No conversions recorded.\n", table.String())

	require.NoError(t, Write(&js, FormatJSON, nil))
	assert.Equal(t, "[]\n", js.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
