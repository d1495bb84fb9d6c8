package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleParams struct {
	Column string  `json:"column" validate:"required"`
	Mode   string  `json:"mode" validate:"omitempty,oneof=fast slow"`
	Window int     `json:"window" validate:"min=2"`
	Ratio  float64 `validate:"gte=0"`
}

func TestStructOK(t *testing.T) {
	assert.NoError(t, Struct(sampleParams{Column: "x", Mode: "fast", Window: 2}))
	assert.NoError(t, Struct(sampleParams{Column: "x", Window: 5}))
}

func TestStructCollectsAllFields(t *testing.T) {
	err := Struct(sampleParams{Mode: "medium", Window: 1, Ratio: -1})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 4)
	assert.Equal(t, FieldError{Field: "column", Rule: "required"}, verr.Fields[0])
	assert.Equal(t, "mode", verr.Fields[1].Field)
	assert.Equal(t, "Ratio", verr.Fields[3].Field, "untagged fields fall back to the Go name")

	msg := err.Error()
	assert.Contains(t, msg, `field "column" is required`)
	assert.Contains(t, msg, `field "mode" must be one of [fast slow]`)
	assert.Contains(t, msg, `field "window" must be at least 2`)
}

type conditionalParams struct {
	Scope  string `json:"scope"`
	Filter string `json:"filter" validate:"required_if=Scope period"`
}

func TestRequiredIf(t *testing.T) {
	assert.NoError(t, Struct(conditionalParams{Scope: "total"}))
	err := Struct(conditionalParams{Scope: "period"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "filter" is required when Scope is period`)
}
