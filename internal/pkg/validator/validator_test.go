package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findbus/internal/pkg/errors"
	"github.com/findbus/internal/usecase/dto"
)

func TestValidate_BusSearchRequest(t *testing.T) {
	hours := 30
	rating := 7.0

	err := Validate(&dto.BusSearchRequest{Sort: "cheapest", MaxDurationHours: &hours, RatingMax: &rating})

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "oneof", appErr.Details["Sort"])
	assert.Equal(t, "lte", appErr.Details["MaxDurationHours"])
	assert.Equal(t, "lte", appErr.Details["RatingMax"])
	assert.Empty(t, errors.ErrInvalidRequest.Details, "sentinel must not be mutated")
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, Validate(&dto.BusSearchRequest{}))
}
