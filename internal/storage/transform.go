package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var ErrUnsupportedImage = errors.New("unsupported image")

// MaxPixels bounds the decoded size of an upload, read from the image header before decoding.
const MaxPixels = 40_000_000

type imageFormat struct {
	format      imaging.Format
	ext         string
	contentType string
}

var (
	jpegFormat = imageFormat{format: imaging.JPEG, ext: "jpg", contentType: "image/jpeg"}
	pngFormat  = imageFormat{format: imaging.PNG, ext: "png", contentType: "image/png"}
)

func detectFormat(file ImageFile) (imageFormat, bool) {
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg":
		return jpegFormat, true
	case ".png":
		return pngFormat, true
	case "":
		switch file.ContentType {
		case "image/jpeg":
			return jpegFormat, true
		case "image/png":
			return pngFormat, true
		}
	}
	return imageFormat{}, false
}

type preparedImage struct {
	name   string
	data   []byte
	format imageFormat
}

// fitImage scales the image down to fit maxW x maxH. Smaller images are only re-encoded.
func fitImage(file ImageFile, maxW, maxH int) (preparedImage, error) {
	format, ok := detectFormat(file)
	if !ok {
		return preparedImage{}, fmt.Errorf("%w: %s (allowed: jpg, jpeg, png)", ErrUnsupportedImage, file.Filename)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return preparedImage{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, file.Filename, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return preparedImage{}, fmt.Errorf("%w: %s is %dx%d, over the %d pixel limit", ErrUnsupportedImage, file.Filename, cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return preparedImage{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, file.Filename, err)
	}

	fitted := imaging.Fit(img, maxW, maxH, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, format.format, imaging.JPEGQuality(85)); err != nil {
		return preparedImage{}, fmt.Errorf("failed to encode %s: %w", file.Filename, err)
	}
	return preparedImage{name: file.Filename, data: buf.Bytes(), format: format}, nil
}
