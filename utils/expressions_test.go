package utils

import (
	"testing"

	"github.com/knetic/govaluate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, expr string, params map[string]interface{}) (interface{}, error) {
	t.Helper()
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, GetExpressionFunctions())
	require.NoError(t, err)
	return e.Evaluate(params)
}

func TestPixelBytes(t *testing.T) {
	got, err := evaluate(t, "PixelBytes(Width, Height, FieldSize)", map[string]interface{}{
		"Width": 2.0, "Height": 3.0, "FieldSize": 4.0,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2*3*3*4), got)
}

func TestRowBytes(t *testing.T) {
	got, err := evaluate(t, "RowBytes(1326, 1)", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1326*3), got)
}

func TestPixelBytesRejectsBadArguments(t *testing.T) {
	_, err := evaluate(t, "PixelBytes(1, 2)", nil)
	require.Error(t, err)

	_, err = evaluate(t, "PixelBytes(-1, 2, 1)", nil)
	require.Error(t, err)
}

func TestIsValidLengthExpression(t *testing.T) {
	assert.False(t, IsValidLengthExpression(""))
	assert.False(t, IsValidLengthExpression("  ...  "))
	assert.True(t, IsValidLengthExpression("Width * Height"))
}
