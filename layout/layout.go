// Package layout loads and evaluates the YAML descriptions of dump files.
package layout

import (
	"embed"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path"
	"strings"

	"PixelDump/structs"
	"PixelDump/utils"

	"github.com/knetic/govaluate"
	"gopkg.in/yaml.v2"
)

// Names of the layouts shipped with the binary.
const (
	Headered = "rawdump"
	Legacy   = "legacy"
)

//go:embed formats/*.yml
var builtin embed.FS

// Layout is a validated dump description with its payload length expression
// compiled.
type Layout struct {
	Format       structs.FileFormat
	ByteOrder    binary.ByteOrder
	HeaderFields []structs.Field
	HeaderSize   int
	// Warnings are the non-fatal problems found while validating Format.
	Warnings []string

	payloadField structs.Field
	payload      *govaluate.EvaluableExpression
}

// Builtin returns one of the embedded layouts by name.
func Builtin(name string) (*Layout, error) {
	data, err := builtin.ReadFile(path.Join("formats", name+".yml"))
	if err != nil {
		return nil, fmt.Errorf("unknown builtin layout %q", name)
	}
	return Parse(data, name)
}

// MustBuiltin is like Builtin but panics if the embedded layout is broken.
func MustBuiltin(name string) *Layout {
	l, err := Builtin(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Load reads and validates a layout file from disk.
func Load(yamlFile string) (*Layout, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("error reading layout file %s: %w", yamlFile, err)
	}
	return Parse(data, yamlFile)
}

// Parse unmarshals, validates and compiles a layout. source is only used in
// error messages.
func Parse(data []byte, source string) (*Layout, error) {
	var fileFormat structs.FileFormat
	if err := yaml.Unmarshal(data, &fileFormat); err != nil {
		if yamlErr, ok := err.(*yaml.TypeError); ok {
			return nil, fmt.Errorf("error unmarshaling layout from %s: %s", source, strings.Join(yamlErr.Errors, "; "))
		}
		return nil, fmt.Errorf("error unmarshaling layout from %s: %w", source, err)
	}

	warnings, err := Validate(&fileFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", source, err)
	}

	l := &Layout{Format: fileFormat, Warnings: warnings}
	if fileFormat.ByteOrder == "little" {
		l.ByteOrder = binary.LittleEndian
	} else {
		l.ByteOrder = binary.BigEndian
	}

	if fileFormat.Header != "" {
		l.HeaderFields = fileFormat.Structs[fileFormat.Header].Fields
		for _, field := range l.HeaderFields {
			size, _ := field.FixedSize()
			l.HeaderSize += size
		}
	}

	l.payloadField = fileFormat.Structs[fileFormat.Payload].Fields[0]
	if l.payloadField.IsExpressionLength() {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(l.payloadField.Length, utils.GetExpressionFunctions())
		if err != nil {
			return nil, fmt.Errorf("invalid layout %s: payload length %q: %w", source, l.payloadField.Length, err)
		}
		l.payload = expr
	}

	if err := l.checkPayload(); err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", source, err)
	}

	return l, nil
}

// payloadSamples are the geometries a payload length is checked against.
var payloadSamples = []struct{ width, height, fieldSize int }{
	{1, 1, 1},
	{2, 3, 1},
	{7, 5, 4},
	{1326, 2, 1},
	{640, 480, 4},
}

// checkPayload makes sure the payload length is exactly the number of bytes
// the dump codec streams: three channel fields per pixel.
func (l *Layout) checkPayload() error {
	for _, s := range payloadSamples {
		got, err := l.PayloadSize(s.width, s.height, s.fieldSize)
		if err != nil {
			return err
		}
		want := int64(s.width) * int64(s.height) * utils.ChannelsPerPixel * int64(s.fieldSize)
		if got != want {
			return fmt.Errorf("payload length %q is %d bytes for a %dx%d image with %d byte fields, the pixel data is %d bytes",
				l.payloadField.Length, got, s.width, s.height, s.fieldSize, want)
		}
	}
	return nil
}

func (l *Layout) Name() string {
	return l.Format.Name
}

// HasHeader reports whether dumps of this layout start with their dimensions.
func (l *Layout) HasHeader() bool {
	return l.HeaderSize > 0
}

// PayloadSize evaluates the payload length for the given dimensions.
func (l *Layout) PayloadSize(width, height, fieldSize int) (int64, error) {
	if l.payload == nil {
		n, err := l.payloadField.GetLength()
		return int64(n), err
	}

	result, err := l.payload.Evaluate(map[string]interface{}{
		"Width":     float64(width),
		"Height":    float64(height),
		"FieldSize": float64(fieldSize),
		"Channels":  float64(utils.ChannelsPerPixel),
	})
	if err != nil {
		return 0, fmt.Errorf("evaluating payload length %q: %w", l.payloadField.Length, err)
	}
	size, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("payload length %q evaluated to %T, want a number", l.payloadField.Length, result)
	}
	if size < 0 || size != math.Trunc(size) || size > math.MaxInt64 {
		return 0, fmt.Errorf("payload length %q evaluated to %v, want a non-negative integer", l.payloadField.Length, size)
	}
	return int64(size), nil
}

// ExpectedSize is the total size in bytes of a well formed dump.
func (l *Layout) ExpectedSize(width, height, fieldSize int) (int64, error) {
	payload, err := l.PayloadSize(width, height, fieldSize)
	if err != nil {
		return 0, err
	}
	return int64(l.HeaderSize) + payload, nil
}

// Marshal renders the layout back to YAML.
func (l *Layout) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(&l.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout %s: %w", l.Name(), err)
	}
	return data, nil
}
