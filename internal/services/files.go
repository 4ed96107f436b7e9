package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// copyInto copies src into dir under its base name. When that name is taken a
// short random suffix is inserted before the extension. It returns the new path.
func copyInto(fs afero.Fs, src, dir string) (string, error) {
	in, err := fs.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()
	if info, err := in.Stat(); err == nil && info.IsDir() {
		return "", fmt.Errorf("%s is a directory", src)
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := filepath.Base(src)
	dest := filepath.Join(dir, name)
	if exists, _ := afero.Exists(fs, dest); exists {
		ext := filepath.Ext(name)
		dest = filepath.Join(dir, strings.TrimSuffix(name, ext)+"_"+uuid.NewString()[:8]+ext)
	}
	out, err := fs.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	return dest, out.Close()
}

// removeIfExists deletes path, ignoring a missing file.
func removeIfExists(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
