package dump

import (
	"errors"
	"fmt"
	"io"
)

// Info describes a dump as read from its header (or derived from its size
// for headerless layouts).
type Info struct {
	Layout     string
	Width      int
	Height     int
	HeaderSize int
	FieldWidth int
	// Expected is the size a dump with these dimensions must have.
	Expected int64
	// Actual is the size of the dump being read.
	Actual int64
	// Trailing counts bytes past the last complete row of a headerless dump.
	Trailing int64
	// Problem is set by Inspect when the dump is not well formed.
	Problem string
}

// WellFormed reports whether the dump size matches its dimensions exactly.
func (i *Info) WellFormed() bool {
	return i.Problem == "" && i.Expected == i.Actual
}

// Inspect reads only the header of a dump of the given size and reports its
// geometry. A readable but inconsistent dump is not an error; see
// Info.Problem.
func Inspect(r io.Reader, size int64, opts Options) (*Info, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	info, err := readInfo(r, size, opts)
	if err != nil {
		return nil, err
	}
	strict := opts
	strict.Truncate = false
	if err := info.check(strict); err != nil {
		info.Problem = err.Error()
	}
	return info, nil
}

func readInfo(r io.Reader, size int64, opts Options) (*Info, error) {
	l := opts.Layout
	info := &Info{
		Layout:     l.Name(),
		HeaderSize: l.HeaderSize,
		FieldWidth: opts.FieldWidth,
		Actual:     size,
	}

	if l.HasHeader() {
		if size < int64(l.HeaderSize) {
			return nil, fmt.Errorf("%w: %d bytes is too small for the %d byte header", ErrMalformed, size, l.HeaderSize)
		}
		var header Header
		if err := header.Read(r, l.ByteOrder); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: truncated header: %w", ErrMalformed, err)
			}
			return nil, fmt.Errorf("reading header: %w", err)
		}
		info.Width = int(header.Width)
		info.Height = int(header.Height)
		if info.Width > opts.MaxDimension || info.Height > opts.MaxDimension {
			// Do not evaluate sizes for absurd headers.
			return info, nil
		}
	} else {
		rowBytes := int64(opts.LegacyWidth) * 3 * int64(opts.FieldWidth)
		info.Width = opts.LegacyWidth
		info.Height = int(size / rowBytes)
		info.Trailing = size % rowBytes
	}

	expected, err := l.ExpectedSize(info.Width, info.Height, opts.FieldWidth)
	if err != nil {
		return nil, err
	}
	info.Expected = expected
	return info, nil
}

func (i *Info) check(opts Options) error {
	if i.Width == 0 || i.Height == 0 {
		return fmt.Errorf("%w: empty image (%dx%d)", ErrMalformed, i.Width, i.Height)
	}
	if i.Width > opts.MaxDimension || i.Height > opts.MaxDimension {
		return fmt.Errorf("%w: image too large, width: %d height: %d (max %d)", ErrMalformed, i.Width, i.Height, opts.MaxDimension)
	}
	if i.Trailing > 0 && !opts.Truncate {
		return fmt.Errorf("%w: %d trailing bytes do not form a complete row of width %d", ErrMalformed, i.Trailing, i.Width)
	}
	if i.Expected+i.Trailing != i.Actual {
		return fmt.Errorf("%w: size is %d bytes, a %dx%d image needs %d", ErrMalformed, i.Actual, i.Width, i.Height, i.Expected)
	}
	return nil
}
