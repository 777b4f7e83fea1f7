package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"PixelDump/structs"
	"PixelDump/utils"

	"github.com/knetic/govaluate"
)

// headerFields is the only header the dump codec knows how to read.
var headerFields = []structs.Field{
	{Name: "Width", Type: "uint32"},
	{Name: "Height", Type: "uint32"},
}

// Validate checks a layout description. It returns non-fatal warnings and
// an error joining every critical problem found.
func Validate(fileFormat *structs.FileFormat) ([]string, error) {
	var warnings []string
	var problems []error

	if strings.TrimSpace(fileFormat.Name) == "" {
		problems = append(problems, errors.New("layout is missing a 'name'"))
	}

	switch fileFormat.ByteOrder {
	case "", "big", "little":
	default:
		problems = append(problems, fmt.Errorf("unknown byteOrder %q, must be 'big' or 'little'", fileFormat.ByteOrder))
	}

	for structName, structDef := range fileFormat.Structs {
		for _, field := range structDef.Fields {
			if strings.TrimSpace(field.Type) == "" {
				problems = append(problems, fmt.Errorf("struct '%s': field '%s' is missing a 'type'", structName, field.Name))
				continue
			}

			switch {
			case field.IsBytes():
				if err := validateLength(structName, field); err != nil {
					problems = append(problems, err)
				}
			default:
				if _, ok := field.FixedSize(); !ok {
					problems = append(problems, fmt.Errorf("struct '%s': field '%s' has unsupported type '%s'", structName, field.Name, field.Type))
					continue
				}
				if field.Length != "" {
					warnings = append(warnings, fmt.Sprintf("struct '%s': field '%s' of fixed-size type '%s' has an unnecessary 'length: %s'. It will be ignored.", structName, field.Name, field.Type, field.Length))
				}
			}
		}
	}

	if fileFormat.Header != "" {
		if err := validateHeader(fileFormat); err != nil {
			problems = append(problems, err)
		}
	}

	if err := validatePayload(fileFormat); err != nil {
		problems = append(problems, err)
	}

	return warnings, errors.Join(problems...)
}

func validateLength(structName string, field structs.Field) error {
	if field.Length == "" {
		return fmt.Errorf("struct '%s': field '%s' of type '%s' requires a 'length' (a positive integer or an expression)", structName, field.Name, field.Type)
	}
	if n, err := strconv.Atoi(field.Length); err == nil {
		if n <= 0 {
			return fmt.Errorf("struct '%s': field '%s' has invalid non-positive 'length: %s'", structName, field.Name, field.Length)
		}
		return nil
	}
	if !utils.IsValidLengthExpression(field.Length) {
		return fmt.Errorf("struct '%s': field '%s' has invalid 'length: %s'", structName, field.Name, field.Length)
	}
	if _, err := govaluate.NewEvaluableExpressionWithFunctions(field.Length, utils.GetExpressionFunctions()); err != nil {
		return fmt.Errorf("struct '%s': field '%s' has unparsable length expression '%s': %w", structName, field.Name, field.Length, err)
	}
	return nil
}

func validateHeader(fileFormat *structs.FileFormat) error {
	header, ok := fileFormat.Structs[fileFormat.Header]
	if !ok {
		return fmt.Errorf("header struct '%s' is not defined", fileFormat.Header)
	}
	if len(header.Fields) != len(headerFields) {
		return fmt.Errorf("header struct '%s' must have exactly the fields Width and Height (uint32), found %d field(s)", fileFormat.Header, len(header.Fields))
	}
	for i, want := range headerFields {
		got := header.Fields[i]
		if got.Name != want.Name || got.Type != want.Type {
			return fmt.Errorf("header struct '%s' field %d: expected '%s %s', found '%s %s'", fileFormat.Header, i, want.Name, want.Type, got.Name, got.Type)
		}
	}
	return nil
}

func validatePayload(fileFormat *structs.FileFormat) error {
	if fileFormat.Payload == "" {
		return errors.New("layout is missing a 'payload' struct")
	}
	if fileFormat.Payload == fileFormat.Header {
		return errors.New("'payload' and 'header' must name different structs")
	}
	payload, ok := fileFormat.Structs[fileFormat.Payload]
	if !ok {
		return fmt.Errorf("payload struct '%s' is not defined", fileFormat.Payload)
	}
	if len(payload.Fields) != 1 || !payload.Fields[0].IsBytes() {
		return fmt.Errorf("payload struct '%s' must have exactly one '[]byte' field", fileFormat.Payload)
	}
	return nil
}
