package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicab/internal/apperrors"
	"indicab/internal/db"
	"indicab/internal/service"
)

// An unknown status from the dashboard is the caller's mistake and surfaces
// as a validation error, not an internal one.
func TestAdminUpdateBookingStatus_UnknownStatus(t *testing.T) {
	svc := service.NewAdminService(nil, nil, nil, nil)

	err := svc.UpdateBookingStatus(context.Background(), "some-id", "teleported")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "status", verr.Fields[0].Field)
}

func TestAdminCreateDriver_MissingName(t *testing.T) {
	svc := service.NewAdminService(nil, nil, nil, nil)

	err := svc.CreateDriver(context.Background(), &db.Driver{Name: "   "})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "name", verr.Fields[0].Field)
}
