package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAddSearchDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.writeFile(t, "/downloads/presets.zip", "zip")
	f.writeFile(t, "/downloads/guide.pdf", "pdf")

	presets, err := f.catalog.Add(ctx, NewProduct{SourcePath: "/downloads/presets.zip", Title: "Lightroom Presets", Tags: "photo, editing", Category: "Bundles"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("files", "presets.zip"), presets.FilePath)
	_, err = f.catalog.Add(ctx, NewProduct{SourcePath: "/downloads/guide.pdf", Title: "Guide", Category: "Books"})
	require.NoError(t, err)

	found, err := f.catalog.Search(ctx, "EDIT")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Lightroom Presets", found[0].Title)

	all, err := f.catalog.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, f.catalog.Delete(ctx, presets.ID))
	exists, _ := afero.Exists(f.fs, presets.FilePath)
	assert.False(t, exists)
	assert.ErrorIs(t, f.catalog.Delete(ctx, presets.ID), ErrNotFound)
}

func TestCatalogAddKeepsExistingFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.writeFile(t, "/a/guide.pdf", "one")
	f.writeFile(t, "/b/guide.pdf", "two")

	first, err := f.catalog.Add(ctx, NewProduct{SourcePath: "/a/guide.pdf", Title: "One"})
	require.NoError(t, err)
	second, err := f.catalog.Add(ctx, NewProduct{SourcePath: "/b/guide.pdf", Title: "Two"})
	require.NoError(t, err)
	assert.NotEqual(t, first.FilePath, second.FilePath)

	data, err := afero.ReadFile(f.fs, first.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestCatalogAddValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.Add(context.Background(), NewProduct{SourcePath: "/x.pdf"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Violations["title"])

	_, err = f.catalog.Add(context.Background(), NewProduct{SourcePath: "/missing.pdf", Title: "Missing"})
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.writeFile(t, "/src/guide.pdf", "pdf")
	_, err := f.catalog.Add(ctx, NewProduct{SourcePath: "/src/guide.pdf", Title: "Guide", Tags: "a,b", Category: "Books"})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := f.catalog.ExportCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"Guide", "a,b", "Books", filepath.Join("files", "guide.pdf")}, rows[1][:4])
}
