package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedule struct {
	Date string `validate:"required,matchdate"`
	Time string `validate:"required,matchtime"`
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	assert.NoError(t, v.Struct(schedule{Date: "2025-06-01", Time: "18:30"}))

	err := v.Struct(schedule{Date: "01/06/2025", Time: "6pm"})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	tags := map[string]string{}
	for _, fe := range ve {
		tags[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{"Date": "matchdate", "Time": "matchtime"}, tags)

	assert.Error(t, v.Struct(schedule{Date: "2025-02-30", Time: "24:10"}))
}

type reschedule struct {
	Date *string `json:"match_date" validate:"omitempty,matchdate"`
}

func TestCustomTagsOnOptionalFields(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	good, bad := "2025-06-01", "June 1st"
	assert.NoError(t, v.Struct(reschedule{}))
	assert.NoError(t, v.Struct(reschedule{Date: &good}))

	err := v.Struct(reschedule{Date: &bad})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "match_date", ve[0].Field())
}
