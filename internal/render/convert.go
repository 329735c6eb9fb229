package render

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the extensions Convert can write.
var Formats = []string{".png", ".gif", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".ppm"}

// Convert decodes src in any registered format and re-encodes it into dst
// according to the extension of dst.
func Convert(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := encode(out, img, filepath.Ext(dst)); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("convert %s to %s: %w", format, dst, err)
	}
	return out.Close()
}

func encode(f *os.File, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(f, img)
	case ".gif":
		return gif.Encode(f, img, nil)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		return bmp.Encode(f, img)
	case ".tif", ".tiff":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".ppm":
		return EncodePPM(f, img)
	default:
		return fmt.Errorf("unsupported output format %q (supported: %s)", ext, strings.Join(Formats, ", "))
	}
}
