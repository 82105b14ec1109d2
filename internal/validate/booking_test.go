package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicab/internal/entities"
	"indicab/internal/validate"
)

func validRequest() *entities.BookingRequest {
	return &entities.BookingRequest{
		VehicleID:      "c2c9b8a0-5f7d-4d2e-9a1b-3e4f5a6b7c8d",
		CustomerName:   "Asha Verma",
		CustomerEmail:  "asha@example.com",
		CustomerPhone:  "+919876543210",
		Passengers:     2,
		PickupLocation: "Connaught Place",
		DropLocation:   "IGI Airport T3",
		VehicleType:    "sedan",
		StartDate:      "2025-01-10",
		EndDate:        "2025-01-12",
		TotalAmount:    1500,
		PaymentMethod:  "card",
	}
}

func TestBooking_Valid(t *testing.T) {
	got, verr := validate.Booking(validRequest())

	require.Nil(t, verr)
	assert.Equal(t, "Asha Verma", got.CustomerName)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), got.StartTime)
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), got.EndTime)
	assert.Equal(t, "card", got.PaymentMethod)
}

func TestBooking_RFC3339Dates(t *testing.T) {
	req := validRequest()
	req.StartDate = "2025-01-10T09:30:00Z"
	req.EndDate = "2025-01-10T18:00:00+05:30"

	got, verr := validate.Booking(req)

	require.Nil(t, verr)
	assert.Equal(t, time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC), got.StartTime)
	// +05:30 offset normalized to UTC.
	assert.Equal(t, time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC), got.EndTime)
}

func TestBooking_NormalizesCaseAndWhitespace(t *testing.T) {
	req := validRequest()
	req.CustomerName = "  Asha Verma  "
	req.PaymentMethod = " CARD "
	req.VehicleType = "SUV"

	got, verr := validate.Booking(req)

	require.Nil(t, verr)
	assert.Equal(t, "Asha Verma", got.CustomerName)
	assert.Equal(t, "card", got.PaymentMethod)
	assert.Equal(t, "suv", got.VehicleType)
}

func TestBooking_CollectsEveryViolation(t *testing.T) {
	req := &entities.BookingRequest{
		VehicleID:     "",
		CustomerName:  "",
		CustomerEmail: "not-an-email",
		CustomerPhone: "12",
		Passengers:    0,
		VehicleType:   "rickshaw",
		StartDate:     "yesterday",
		EndDate:       "",
		TotalAmount:   -1,
		PaymentMethod: "bitcoin",
	}

	_, verr := validate.Booking(req)

	require.NotNil(t, verr)
	got := map[string]bool{}
	for _, f := range verr.Fields {
		got[f.Field] = true
	}
	for _, want := range []string{
		"vehicle", "customerName", "customerEmail", "customerPhone",
		"passengers", "vehicleType", "startDate", "endDate",
		"totalAmount", "paymentMethod",
	} {
		assert.True(t, got[want], "expected a violation for %s", want)
	}
}

func TestBooking_OptionalStatusFieldsNormalized(t *testing.T) {
	req := validRequest()
	req.Status = " Confirmed "
	req.PaymentStatus = "COMPLETED"

	got, verr := validate.Booking(req)

	require.Nil(t, verr)
	assert.Equal(t, "confirmed", got.Status)
	assert.Equal(t, "completed", got.PaymentStatus)
}

func TestBooking_OmittedStatusFieldsStayEmpty(t *testing.T) {
	got, verr := validate.Booking(validRequest())

	require.Nil(t, verr)
	assert.Empty(t, got.Status)
	assert.Empty(t, got.PaymentStatus)
}

func TestBooking_UnknownStatusValues(t *testing.T) {
	req := validRequest()
	req.Status = "parked"
	req.PaymentStatus = "eventually"

	_, verr := validate.Booking(req)

	require.NotNil(t, verr)
	got := map[string]bool{}
	for _, f := range verr.Fields {
		got[f.Field] = true
	}
	assert.True(t, got["status"])
	assert.True(t, got["paymentStatus"])
}

func TestBooking_EndNotAfterStart(t *testing.T) {
	req := validRequest()
	req.StartDate = "2025-01-12"
	req.EndDate = "2025-01-12"

	_, verr := validate.Booking(req)

	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "endDate", verr.Fields[0].Field)
}

func TestBooking_PassengerBounds(t *testing.T) {
	for _, tc := range []struct {
		passengers int
		ok         bool
	}{
		{0, false},
		{1, true},
		{20, true},
		{21, false},
	} {
		req := validRequest()
		req.Passengers = tc.passengers
		_, verr := validate.Booking(req)
		if tc.ok {
			assert.Nil(t, verr, "passengers=%d should be valid", tc.passengers)
		} else {
			assert.NotNil(t, verr, "passengers=%d should be rejected", tc.passengers)
		}
	}
}

func TestBooking_PhoneFormats(t *testing.T) {
	for phone, ok := range map[string]bool{
		"+919876543210": true,
		"919876543210":  true,
		"+1":            false,
		"0123456789":    false,
		"abcdefghij":    false,
	} {
		req := validRequest()
		req.CustomerPhone = phone
		_, verr := validate.Booking(req)
		if ok {
			assert.Nil(t, verr, "phone %q should be valid", phone)
		} else {
			assert.NotNil(t, verr, "phone %q should be rejected", phone)
		}
	}
}

func TestBooking_Idempotent(t *testing.T) {
	req := &entities.BookingRequest{
		CustomerEmail: "broken",
		StartDate:     "not a date",
		PaymentMethod: "iou",
	}

	_, first := validate.Booking(req)
	_, second := validate.Booking(req)

	require.NotNil(t, first)
	require.NotNil(t, second)
	// Same malformed input always yields the identical set of field errors.
	assert.Equal(t, first.Fields, second.Fields)
}

func TestWindow_Valid(t *testing.T) {
	start, end, verr := validate.Window("2025-10-01", "2025-10-03")

	require.Nil(t, verr)
	assert.True(t, end.After(start))
}

func TestWindow_Inverted(t *testing.T) {
	_, _, verr := validate.Window("2025-10-03", "2025-10-01")

	require.NotNil(t, verr)
}

func TestOnlinePaymentMethod(t *testing.T) {
	assert.True(t, validate.OnlinePaymentMethod("card"))
	assert.True(t, validate.OnlinePaymentMethod("upi"))
	assert.False(t, validate.OnlinePaymentMethod("cash"))
}
