// project/structs/structs.go
package structs

import (
	"fmt"
	"strconv"
	"strings"
)

// FileFormat is the YAML description of a dump layout.
type FileFormat struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	ByteOrder   string            `yaml:"byteOrder,omitempty"`
	Header      string            `yaml:"header,omitempty"` // key into Structs, empty for headerless dumps
	Payload     string            `yaml:"payload"`          // key into Structs
	Structs     map[string]Struct `yaml:"structs"`
}

type Struct struct {
	Fields []Field `yaml:"fields"`
}

type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
	// Length is a number (as string) or an expression over the decoded
	// dimensions, e.g. "PixelBytes(Width, Height, FieldSize)".
	// Only []byte fields use it.
	Length string `yaml:"length,omitempty"`
}

// fixedSizes maps the numeric field types to their encoded size in bytes.
var fixedSizes = map[string]int{
	"uint8": 1, "int8": 1,
	"uint16": 2, "int16": 2,
	"uint32": 4, "int32": 4, "float32": 4,
	"uint64": 8, "int64": 8, "float64": 8,
}

// FixedSize reports the encoded size of a fixed-size numeric field.
func (f *Field) FixedSize() (int, bool) {
	size, ok := fixedSizes[f.Type]
	return size, ok
}

func (f *Field) IsBytes() bool {
	return f.Type == "[]byte"
}

func (f *Field) GetLength() (int, error) {
	// If Length is empty, return 0
	if f.Length == "" {
		return 0, nil
	}

	length, err := strconv.Atoi(f.Length)
	if err != nil {
		return 0, fmt.Errorf("invalid length for field %s: %w", f.Name, err)
	}

	return length, nil
}

// IsExpressionLength reports whether Length is set but is not a plain integer.
func (f *Field) IsExpressionLength() bool {
	if strings.TrimSpace(f.Length) == "" {
		return false
	}
	_, err := strconv.Atoi(f.Length)
	return err != nil
}
