package customvalidator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	EquipmentID string  `json:"equipment_id" validate:"notblank"`
	Note        *string `json:"note" validate:"omitempty,notblank"`
}

func TestNotBlank(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	blank := "  "
	note := "ok"

	assert.NoError(t, v.Struct(sample{EquipmentID: "E1"}))
	assert.NoError(t, v.Struct(sample{EquipmentID: "E1", Note: &note}))
	assert.Error(t, v.Struct(sample{EquipmentID: ""}))
	assert.Error(t, v.Struct(sample{EquipmentID: " \t"}))
	assert.Error(t, v.Struct(sample{EquipmentID: "E1", Note: &blank}))
}

func TestFieldNamesFromJSONTag(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	err := v.Struct(sample{})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "equipment_id", verrs[0].Field())
}
