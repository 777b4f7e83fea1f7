// Package convert runs image/dump conversions on files.
package convert

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	// Input formats understood by EncodeFile.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"PixelDump/dump"
	"PixelDump/logger"

	"go.uber.org/zap"
)

// Mode is the direction of a conversion.
type Mode int

const (
	ImageToBinary Mode = iota
	BinaryToImage
)

func (m Mode) String() string {
	switch m {
	case ImageToBinary:
		return "image-to-binary"
	case BinaryToImage:
		return "binary-to-image"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Request is one conversion. For ImageToBinary, Input is an image and
// Output the dump path (or a directory to place the default dump name in).
// For BinaryToImage, Input is a dump and Output the directory receiving the
// image.
type Request struct {
	Mode   Mode
	Input  string
	Output string
}

type Converter struct {
	opts       dump.Options
	outputName string
	dumpName   string
	logger     logger.Logger
}

type Option func(*Converter)

// WithOutputName sets the file name of decoded images.
func WithOutputName(name string) Option {
	return func(c *Converter) {
		c.outputName = name
	}
}

// WithDumpName sets the file name used when an encode output is a directory.
func WithDumpName(name string) Option {
	return func(c *Converter) {
		c.dumpName = name
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

func New(opts dump.Options, options ...Option) *Converter {
	c := &Converter{
		opts:       opts,
		outputName: "output_image.png",
		dumpName:   "binary_output.txt",
		logger:     logger.NewNoopLogger(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Run dispatches req and returns the path of the written file.
func (c *Converter) Run(ctx context.Context, req Request) (string, error) {
	switch req.Mode {
	case ImageToBinary:
		return c.EncodeFile(ctx, req.Input, req.Output)
	case BinaryToImage:
		return c.DecodeFile(ctx, req.Input, req.Output)
	default:
		return "", fmt.Errorf("unknown conversion mode %v", req.Mode)
	}
}

// EncodeFile decodes the image at imagePath and writes it as a dump. No file
// is left behind when any step fails.
func (c *Converter) EncodeFile(ctx context.Context, imagePath, outputPath string) (string, error) {
	if err := c.opts.Validate(); err != nil {
		return "", err
	}
	log := c.logger.With(zap.String("input", imagePath))

	img, format, err := loadImage(imagePath)
	if err != nil {
		return "", newError(ErrLoad, imagePath, err)
	}
	b := img.Bounds()
	log.Debug("image loaded", zap.String("format", format), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	if err := c.opts.CheckDimensions(b.Dx(), b.Dy()); err != nil {
		return "", newError(ErrLoad, imagePath, err)
	}

	if fi, err := os.Stat(outputPath); err == nil && fi.IsDir() {
		outputPath = filepath.Join(outputPath, c.dumpName)
	}
	if !c.opts.Layout.HasHeader() && b.Dx() != c.opts.LegacyWidth {
		log.Warn("image width differs from the legacy width, the dump will not decode to the same image",
			zap.Int("width", b.Dx()), zap.Int("legacy_width", c.opts.LegacyWidth))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return "", newError(ErrWriteOpen, outputPath, err)
	}

	err = dump.Encode(ctx, f, img, c.opts)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("error closing output: %w", cerr)
	}
	if err != nil {
		if rerr := os.Remove(outputPath); rerr != nil {
			log.Warn("failed to remove partial dump", zap.String("output", outputPath), zap.Error(rerr))
		}
		return "", newError(ErrWrite, outputPath, err)
	}

	log.Info("image converted to dump",
		zap.String("output", outputPath),
		zap.String("layout", c.opts.Layout.Name()),
		zap.Int("field_width", c.opts.FieldWidth))
	return outputPath, nil
}

// DecodeFile reads the dump at dumpPath and saves it as a PNG named by the
// output name inside outputDir. The image file only appears once fully
// written.
func (c *Converter) DecodeFile(ctx context.Context, dumpPath, outputDir string) (string, error) {
	if err := c.opts.Validate(); err != nil {
		return "", err
	}
	log := c.logger.With(zap.String("input", dumpPath))

	f, size, err := openDump(dumpPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, info, err := dump.Decode(ctx, f, size, c.opts)
	if err != nil {
		if errors.Is(err, dump.ErrMalformed) {
			return "", newError(ErrMalformed, dumpPath, err)
		}
		return "", newError(ErrRead, dumpPath, err)
	}
	if info.Trailing > 0 {
		log.Warn("dropped trailing partial row", zap.Int64("bytes", info.Trailing))
	}
	log.Debug("dump decoded", zap.Int("width", info.Width), zap.Int("height", info.Height))

	outputPath := filepath.Join(outputDir, c.outputName)
	if err := savePNG(outputDir, outputPath, img); err != nil {
		return "", newError(ErrSave, outputPath, err)
	}

	log.Info("dump converted to image", zap.String("output", outputPath))
	return outputPath, nil
}

// InspectFile reports the geometry of the dump at dumpPath.
func (c *Converter) InspectFile(dumpPath string) (*dump.Info, error) {
	f, size, err := openDump(dumpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := dump.Inspect(f, size, c.opts)
	if err != nil {
		if errors.Is(err, dump.ErrMalformed) {
			return nil, newError(ErrMalformed, dumpPath, err)
		}
		return nil, newError(ErrRead, dumpPath, err)
	}
	return info, nil
}

func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return image.Decode(f)
}

func openDump(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, newError(ErrReadOpen, path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, newError(ErrReadOpen, path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, 0, newError(ErrReadOpen, path, errors.New("is a directory"))
	}
	return f, fi.Size(), nil
}

// savePNG encodes img into a temporary file next to outputPath and renames
// it into place.
func savePNG(outputDir, outputPath string, img image.Image) (err error) {
	tmp, err := createTemp(outputDir)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = png.Encode(tmp, img); err != nil {
		return fmt.Errorf("error encoding png: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), outputPath)
}

// createTemp opens a new hidden file in dir. Unlike os.CreateTemp it uses
// mode 0666, so the file ends up with the same permissions os.Create gives.
func createTemp(dir string) (*os.File, error) {
	for try := 0; ; try++ {
		name := filepath.Join(dir, fmt.Sprintf(".pixeldump-%d-%08x.png", os.Getpid(), rand.Uint32()))
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
		if errors.Is(err, fs.ErrExist) && try < 100 {
			continue
		}
		return f, err
	}
}
