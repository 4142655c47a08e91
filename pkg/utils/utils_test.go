package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_UTCMidnight(t *testing.T) {
	got, err := ParseDate("2024-01-04")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-01-04", FormatDate(got))

	_, err = ParseDate("04/01/2024")
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("-2", 10))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidateStruct(t *testing.T) {
	type stay struct {
		CheckIn string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
		Method  string `json:"method" validate:"required,oneof=credit_card cash"`
	}

	assert.Nil(t, ValidateStruct(&stay{CheckIn: "2024-01-01", Method: "cash"}))

	errs := ValidateStruct(&stay{CheckIn: "tomorrow", Method: "bitcoin"})
	require.Len(t, errs, 2)
	assert.Equal(t, "Must be one of: credit_card, cash", errs["Method"])
	assert.Equal(t, "CheckIn: Must be a date in 2006-01-02 format; Method: Must be one of: credit_card, cash", FormatValidationErrors(errs))
}
