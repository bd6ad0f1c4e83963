package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedule struct {
	Date     string  `json:"eventDate" validate:"required,datetime=2006-01-02"`
	Time     string  `json:"eventTime" validate:"required,datetime=15:04"`
	NextDate *string `json:"nextDate" validate:"omitempty,datetime=2006-01-02"`
	Seats    *int    `json:"maxAttendees" validate:"omitempty,min=1"`
}

func TestValidator_Layouts(t *testing.T) {
	v := New()
	bad := "2024-13-01"
	zero := 0

	tests := []struct {
		name   string
		input  schedule
		fields []string
	}{
		{name: "valid", input: schedule{Date: "2024-05-01", Time: "18:30"}},
		{name: "slash date", input: schedule{Date: "01/05/2024", Time: "18:30"}, fields: []string{"eventDate"}},
		{name: "seconds in time", input: schedule{Date: "2024-05-01", Time: "18:30:00"}, fields: []string{"eventTime"}},
		{name: "optional date checked when set", input: schedule{Date: "2024-05-01", Time: "09:00", NextDate: &bad}, fields: []string{"nextDate"}},
		{name: "attendees below one", input: schedule{Date: "2024-05-01", Time: "09:00", Seats: &zero}, fields: []string{"maxAttendees"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if len(tt.fields) == 0 {
				require.NoError(t, err)

				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			got := make([]string, 0, len(validationErr.Fields))
			for _, field := range validationErr.Fields {
				got = append(got, field.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "email", Rule: "email"},
		{Field: "title", Rule: "max", Param: "200"},
	}}

	assert.Equal(t, "email failed email; title failed max=200", err.Error())
}

func TestValidator_ReportsRuleAndParam(t *testing.T) {
	input := schedule{Date: "2024/05/01", Time: "18:30"}

	var validationErr *ValidationError
	require.ErrorAs(t, New().Validate(&input), &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, FieldError{Field: "eventDate", Rule: "datetime", Param: "2006-01-02"}, validationErr.Fields[0])
}
