// Package dump converts images to and from raw row-major RGB channel dumps.
package dump

import (
	"errors"
	"fmt"
	"math"

	"PixelDump/layout"
)

var (
	// ErrMalformed marks a dump whose size or contents disagree with its layout.
	ErrMalformed = errors.New("malformed dump")
	// ErrUnsupportedFieldWidth is returned for channel field widths other than 1 and 4.
	ErrUnsupportedFieldWidth = errors.New("unsupported channel field width")
	// ErrUnsupportedImage is returned for images a dump cannot hold.
	ErrUnsupportedImage = errors.New("unsupported image")
)

const (
	// DefaultLegacyWidth is the width assumed for headerless dumps.
	DefaultLegacyWidth = 1326
	// DefaultMaxDimension bounds the width and height accepted from a dump.
	DefaultMaxDimension = 65535
)

// Options select the on-disk layout of a conversion.
type Options struct {
	// Layout describes the dump. Headerless layouts take their width from LegacyWidth.
	Layout *layout.Layout
	// FieldWidth is the size of one channel field: 1 (a byte) or 4 (a
	// 32-bit integer holding 0..255).
	FieldWidth int
	// LegacyWidth is the fixed width of headerless dumps.
	LegacyWidth int
	// Truncate lets headerless dumps drop a trailing partial row instead of
	// being rejected.
	Truncate bool
	// MaxDimension is the largest width or height accepted when decoding.
	MaxDimension int
}

func DefaultOptions() Options {
	return Options{
		Layout:       layout.MustBuiltin(layout.Headered),
		FieldWidth:   1,
		LegacyWidth:  DefaultLegacyWidth,
		MaxDimension: DefaultMaxDimension,
	}
}

// LegacyOptions are DefaultOptions for headerless dumps.
func LegacyOptions() Options {
	opts := DefaultOptions()
	opts.Layout = layout.MustBuiltin(layout.Legacy)
	return opts
}

// Validate checks the options before any data is read or written.
func (o Options) Validate() error {
	if o.Layout == nil {
		return errors.New("no dump layout configured")
	}
	if o.FieldWidth != 1 && o.FieldWidth != 4 {
		return fmt.Errorf("%w: %d", ErrUnsupportedFieldWidth, o.FieldWidth)
	}
	if !o.Layout.HasHeader() && o.LegacyWidth <= 0 {
		return fmt.Errorf("legacy width must be positive, got %d", o.LegacyWidth)
	}
	if o.MaxDimension <= 0 {
		return fmt.Errorf("max dimension must be positive, got %d", o.MaxDimension)
	}
	return nil
}

// CheckDimensions reports an error when an image of the given size would
// produce a dump that these options refuse to decode.
func (o Options) CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: empty image (%dx%d)", ErrUnsupportedImage, width, height)
	}
	if width > o.MaxDimension || height > o.MaxDimension {
		return fmt.Errorf("%w: image too large, width: %d height: %d (max %d)", ErrUnsupportedImage, width, height, o.MaxDimension)
	}
	if uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 {
		return fmt.Errorf("%w: image %dx%d does not fit a 32-bit header", ErrUnsupportedImage, width, height)
	}
	return nil
}
