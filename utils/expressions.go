package utils

import (
	"fmt"
	"strings"

	"github.com/knetic/govaluate"
)

// ChannelsPerPixel is the number of channel fields stored for every pixel.
const ChannelsPerPixel = 3

// GetExpressionFunctions defines functions usable in layout Length expressions.
func GetExpressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		// PixelBytes(width, height, fieldSize) is the size of the channel
		// payload of a width x height RGB dump.
		"PixelBytes": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("PixelBytes expects 3 arguments (width, height, fieldSize)")
			}

			// --- Careful argument conversion (govaluate uses float64) ---
			width, err := nonNegative(args[0], "width")
			if err != nil {
				return nil, err
			}
			height, err := nonNegative(args[1], "height")
			if err != nil {
				return nil, err
			}
			fieldSize, err := nonNegative(args[2], "fieldSize")
			if err != nil {
				return nil, err
			}
			// --- End conversion ---

			return width * height * ChannelsPerPixel * fieldSize, nil
		},
		// RowBytes(width, fieldSize) is the size of one row of pixels.
		"RowBytes": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("RowBytes expects 2 arguments (width, fieldSize)")
			}
			width, err := nonNegative(args[0], "width")
			if err != nil {
				return nil, err
			}
			fieldSize, err := nonNegative(args[1], "fieldSize")
			if err != nil {
				return nil, err
			}
			return width * ChannelsPerPixel * fieldSize, nil
		},
	}
}

func nonNegative(arg interface{}, name string) (float64, error) {
	v, ok := arg.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %s must be numeric, got %T", name, arg)
	}
	if v < 0 {
		return 0, fmt.Errorf("argument %s must not be negative, got %v", name, v)
	}
	return v, nil
}

// IsValidLengthExpression performs basic checks on a potential length expression.
// This is NOT a full expression parser.
func IsValidLengthExpression(expr string) bool {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "..." {
		return false // Empty or placeholder is invalid here
	}
	return true
}
