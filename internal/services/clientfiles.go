package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

var errBadFileName = errors.New("file name must not contain a path")

// ClientFiles keeps one folder of attachments per client under root.
type ClientFiles struct {
	fs   afero.Fs
	root string
}

func NewClientFiles(fs afero.Fs, root string) *ClientFiles {
	return &ClientFiles{fs: fs, root: root}
}

// Folder returns the folder of clientName, spaces replaced by underscores.
func (c *ClientFiles) Folder(clientName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(clientName), " ", "_")
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		name = "_"
	}
	return filepath.Join(c.root, name)
}

// List creates the folder if needed and returns its file names sorted.
func (c *ClientFiles) List(clientName string) ([]string, error) {
	dir := c.Folder(clientName)
	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Add copies src into the client's folder and returns the stored path.
func (c *ClientFiles) Add(clientName, src string) (string, error) {
	dest, err := copyInto(c.fs, src, c.Folder(clientName))
	if err != nil {
		return "", fmt.Errorf("add client file %s: %w", src, err)
	}
	return dest, nil
}

// Path resolves a file name inside the client's folder.
func (c *ClientFiles) Path(clientName, fileName string) (string, error) {
	if fileName == "" || filepath.Base(fileName) != fileName || fileName == ".." {
		return "", errBadFileName
	}
	return filepath.Join(c.Folder(clientName), fileName), nil
}

func (c *ClientFiles) Remove(clientName, fileName string) error {
	p, err := c.Path(clientName, fileName)
	if err != nil {
		return err
	}
	if err := c.fs.Remove(p); err != nil {
		return fmt.Errorf("remove client file %s: %w", fileName, err)
	}
	return nil
}
