// Package localfs stores uploaded product images on the local filesystem,
// downscaling large images before writing.
package localfs

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

const (
	maxDimension = 1200
	jpegQuality  = 82
)

type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Save decodes, downscales and re-encodes the image as JPEG, then writes it
// under a timestamped name. Returns the serveable URL path.
func (s *Storage) Save(name string, data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	fileName := fmt.Sprintf("%d_%s.jpg", time.Now().UnixMilli(), sanitize(name))
	path := filepath.Join(s.dir, fileName)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	defer out.Close()
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	log.Debug().Str("file", fileName).Msg("image stored")
	return "/uploads/" + fileName, nil
}

// Delete removes a previously saved image by its URL path.
func (s *Storage) Delete(urlPath string) error {
	name := filepath.Base(urlPath)
	if name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitize(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "img"
	}
	return b.String()
}
