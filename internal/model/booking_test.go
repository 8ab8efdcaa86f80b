package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]BookingStatus{
		"pending":   StatusPending,
		"PENDING":   StatusPending,
		"paid":      StatusConfirmed,
		"confirmed": StatusConfirmed,
		"canceled":  StatusCancelled,
		"cancelled": StatusCancelled,
		" Pending ": StatusPending,
		"refunded":  BookingStatus("REFUNDED"), // unknown values pass through uppercased
	}
	for wire, want := range cases {
		assert.Equal(t, want, NormalizeStatus(wire), "wire value %q", wire)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestBookingDecodeNormalizesWireStatus(t *testing.T) {
	raw := `{
		"id": 12,
		"user_id": 3,
		"status": "paid",
		"time": "2025-06-01T09:30:00",
		"booking_details": [
			{"ticket_type": {"id": 1, "name": "Standard", "price": 10.0}, "quantity": 2},
			{"ticket_type": {"id": 2, "name": "VIP", "price": 25.0}, "quantity": 1}
		]
	}`
	var b Booking
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, 2025, b.Time.Year())
	require.Len(t, b.Details, 2)
	assert.Equal(t, int64(4500), b.TotalCents())
}

func TestBookingDecodeWithoutDetails(t *testing.T) {
	var b Booking
	require.NoError(t, json.Unmarshal([]byte(`{"id": 5, "status": "pending", "time": ""}`), &b))
	assert.Empty(t, b.Details)
	assert.Equal(t, int64(0), b.TotalCents())
}

func TestTimestampLayouts(t *testing.T) {
	cases := []string{
		`"2025-06-01T09:30:00"`,          // backend's naive serialization
		`"2025-06-01T09:30:00.123456"`,   // naive with microseconds
		`"2025-06-01T09:30:00Z"`,         // RFC 3339
		`"2025-06-01T09:30:00+02:00"`,    // RFC 3339 with offset
		`"2025-06-01T09:30:00.5-07:00"`,  // RFC 3339 fractional
	}
	for _, raw := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), "input %s", raw)
		assert.Equal(t, time.June, ts.Month(), "input %s", raw)
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestCentsFromPrice(t *testing.T) {
	assert.Equal(t, int64(1000), CentsFromPrice(10.0))
	assert.Equal(t, int64(2500), CentsFromPrice(25.0))
	assert.Equal(t, int64(1999), CentsFromPrice(19.99))
	// 4.35 is not exactly representable; rounding must still land on 435.
	assert.Equal(t, int64(435), CentsFromPrice(4.35))
	assert.Equal(t, int64(0), CentsFromPrice(0))
}

func TestStatusWire(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.Wire())
	assert.Equal(t, "paid", StatusConfirmed.Wire())
	assert.Equal(t, "canceled", StatusCancelled.Wire())
}
