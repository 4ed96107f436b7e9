package receipt

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
)

type logo struct {
	data []byte
	ext  extension.Type
}

// loadLogo reads and decodes the image at path. PNG and JPEG are embedded as-is,
// any other decodable format (GIF, BMP) is re-encoded to PNG.
func loadLogo(fs afero.Fs, path string) (*logo, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	switch format {
	case "png":
		return &logo{data: data, ext: extension.Png}, nil
	case "jpeg":
		return &logo{data: data, ext: extension.Jpg}, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("convert %s logo: %w", format, err)
	}
	return &logo{data: buf.Bytes(), ext: extension.Png}, nil
}
