package services

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	cf := NewClientFiles(fs, filepath.Join("files", "ClientFiles"))
	require.NoError(t, afero.WriteFile(fs, "/tmp/contract.pdf", []byte("c"), 0o644))

	assert.Equal(t, filepath.Join("files", "ClientFiles", "Jane_Doe"), cf.Folder("Jane Doe"))
	assert.Equal(t, filepath.Join("files", "ClientFiles", "_"), cf.Folder(".."))

	names, err := cf.List("Jane Doe")
	require.NoError(t, err)
	assert.Empty(t, names)

	stored, err := cf.Add("Jane Doe", "/tmp/contract.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("files", "ClientFiles", "Jane_Doe", "contract.pdf"), stored)

	names, err = cf.List("Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, []string{"contract.pdf"}, names)

	_, err = cf.Path("Jane Doe", "../secret")
	assert.ErrorIs(t, err, errBadFileName)

	require.NoError(t, cf.Remove("Jane Doe", "contract.pdf"))
	assert.Error(t, cf.Remove("Jane Doe", "contract.pdf"))
}
