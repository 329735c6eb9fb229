package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/san-kum/dpendulum/internal/dynamo"
)

const ppmMagic = "P6"

func init() {
	image.RegisterFormat("ppm", ppmMagic, DecodePPM, DecodePPMConfig)
}

// Intensity maps a flip time to a gray level: (v+1)/(totalTime+1) clamped
// to [0, 1] and scaled to 0..255. NoFlip is black.
func Intensity(v, totalTime float64) uint8 {
	x := (v + 1) / (totalTime + 1)
	if math.IsNaN(x) || x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return uint8(math.Round(x * 255))
}

// FlipImage renders m with row i (theta1 = Angles[i]) at y = i.
func FlipImage(m *dynamo.FlipMatrix, totalTime float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Side, m.Side))
	for i := 0; i < m.Side; i++ {
		for j, v := range m.Row(i) {
			img.Pix[i*img.Stride+j] = Intensity(v, totalTime)
		}
	}
	return img
}

// EncodePPM writes img as a binary (P6) PPM with maxval 255.
func EncodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", ppmMagic, b.Dx(), b.Dy()); err != nil {
		return err
	}

	px := make([]byte, 3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			px[0], px[1], px[2] = c.R, c.G, c.B
			if _, err := bw.Write(px); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteFlipPPM renders m and writes it to path.
func WriteFlipPPM(path string, m *dynamo.FlipMatrix, totalTime float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePPM(f, FlipImage(m, totalTime)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type ppmHeader struct {
	width, height, maxval int
}

func readHeader(br *bufio.Reader) (ppmHeader, error) {
	var magic [2]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return ppmHeader{}, err
	}
	if string(magic[:]) != ppmMagic {
		return ppmHeader{}, errors.New("ppm: not a binary PPM")
	}

	var h ppmHeader
	for _, field := range []*int{&h.width, &h.height, &h.maxval} {
		v, err := readInt(br)
		if err != nil {
			return ppmHeader{}, fmt.Errorf("ppm: header: %w", err)
		}
		*field = v
	}
	if h.width <= 0 || h.height <= 0 {
		return ppmHeader{}, fmt.Errorf("ppm: invalid size %dx%d", h.width, h.height)
	}
	if h.maxval < 1 || h.maxval > 255 {
		return ppmHeader{}, fmt.Errorf("ppm: unsupported maxval %d", h.maxval)
	}

	// exactly one whitespace byte separates the header from the raster
	if _, err := br.ReadByte(); err != nil {
		return ppmHeader{}, err
	}
	return h, nil
}

// readInt skips whitespace and # comments, then reads a decimal number.
func readInt(br *bufio.Reader) (int, error) {
	var c byte
	var err error
	for {
		if c, err = br.ReadByte(); err != nil {
			return 0, err
		}
		if c == '#' {
			if _, err = br.ReadString('\n'); err != nil {
				return 0, err
			}
			continue
		}
		if !isSpace(c) {
			break
		}
	}

	n := 0
	digits := 0
	for c >= '0' && c <= '9' {
		n = n*10 + int(c-'0')
		digits++
		if n > 1<<24 {
			return 0, errors.New("number too large")
		}
		if c, err = br.ReadByte(); err != nil {
			return 0, err
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("unexpected byte %q", c)
	}
	return n, br.UnreadByte()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func DecodePPMConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodePPM reads a binary PPM with maxval up to 255.
func DecodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	row := make([]byte, 3*h.width)
	for y := 0; y < h.height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("ppm: row %d: %w", y, err)
		}
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < h.width; x++ {
			for k := 0; k < 3; k++ {
				dst[4*x+k] = uint8(int(row[3*x+k]) * 255 / h.maxval)
			}
			dst[4*x+3] = 0xff
		}
	}
	return img, nil
}
