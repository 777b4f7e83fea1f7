package dump

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
)

// Encode writes img to w as a dump: the dimensions header when the layout
// has one, then three channel fields per pixel in row-major order. Alpha is
// dropped. Nothing is written for images that fail Options.CheckDimensions.
func Encode(ctx context.Context, w io.Writer, img image.Image, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if err := opts.CheckDimensions(width, height); err != nil {
		return err
	}

	order := opts.Layout.ByteOrder
	bw := bufio.NewWriter(w)

	if opts.Layout.HasHeader() {
		header := Header{Width: uint32(width), Height: uint32(height)}
		if err := header.Write(bw, order); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	row := make([]byte, width*3*opts.FieldWidth)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		i := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i += putChannel(row[i:], c.R, opts.FieldWidth, order)
			i += putChannel(row[i:], c.G, opts.FieldWidth, order)
			i += putChannel(row[i:], c.B, opts.FieldWidth, order)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("error writing row %d: %w", y-b.Min.Y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error flushing dump: %w", err)
	}
	return nil
}

// Decode reads a dump of the given total size from r. The size is checked
// against the layout before any pixel is read. Decoded pixels are opaque.
func Decode(ctx context.Context, r io.Reader, size int64, opts Options) (*image.RGBA, *Info, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	br := bufio.NewReader(r)
	info, err := readInfo(br, size, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := info.check(opts); err != nil {
		return nil, info, err
	}

	order := opts.Layout.ByteOrder
	img := image.NewRGBA(image.Rect(0, 0, info.Width, info.Height))
	row := make([]byte, info.Width*3*opts.FieldWidth)

	for y := 0; y < info.Height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, info, err
		}
		if _, err := io.ReadFull(br, row); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				return nil, info, fmt.Errorf("%w: unexpected end of data in row %d: %w", ErrMalformed, y, err)
			}
			return nil, info, fmt.Errorf("error reading row %d: %w", y, err)
		}

		pix := img.Pix[y*img.Stride : y*img.Stride+info.Width*4]
		for x, i := 0, 0; x < info.Width; x++ {
			for c := 0; c < 3; c++ {
				v, err := channel(row[i:], opts.FieldWidth, order)
				if err != nil {
					return nil, info, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				pix[x*4+c] = v
				i += opts.FieldWidth
			}
			pix[x*4+3] = 0xff
		}
	}

	return img, info, nil
}

func putChannel(dst []byte, v uint8, fieldWidth int, order binary.ByteOrder) int {
	if fieldWidth == 4 {
		order.PutUint32(dst, uint32(v))
		return 4
	}
	dst[0] = v
	return 1
}

func channel(src []byte, fieldWidth int, order binary.ByteOrder) (uint8, error) {
	if fieldWidth == 4 {
		v := order.Uint32(src)
		if v > math.MaxUint8 {
			return 0, fmt.Errorf("%w: channel value %d out of range", ErrMalformed, v)
		}
		return uint8(v), nil
	}
	return src[0], nil
}
