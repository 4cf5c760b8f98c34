package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() Request {
	return Request{
		GuestID:  "guest-1",
		UnitID:   "unit-1",
		HostID:   "host-1",
		CheckIn:  time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Guests:   2,
		AddOns:   []string{"early_checkin", "spa_package"},
	}
}

func TestNaturalKey_NormalizesIncidentalFormatting(t *testing.T) {
	canonical := NaturalKey(baseRequest())
	require.Len(t, canonical, 64, "hex-encoded sha256")

	testCases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"uppercase guest id", func(r *Request) { r.GuestID = "GUEST-1" }},
		{"whitespace around unit id", func(r *Request) { r.UnitID = "  unit-1  " }},
		{"time-of-day on check-in", func(r *Request) {
			r.CheckIn = time.Date(2026, 6, 10, 15, 4, 5, 0, time.UTC)
		}},
		{"add-on order reversed", func(r *Request) {
			r.AddOns = []string{"spa_package", "early_checkin"}
		}},
		{"different guest count", func(r *Request) { r.Guests = 4 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)
			assert.Equal(t, canonical, NaturalKey(req))
		})
	}
}

func TestNaturalKey_ChangesWithBookingIdentity(t *testing.T) {
	canonical := NaturalKey(baseRequest())

	testCases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"different guest", func(r *Request) { r.GuestID = "guest-2" }},
		{"different unit", func(r *Request) { r.UnitID = "unit-2" }},
		{"different check-in", func(r *Request) { r.CheckIn = r.CheckIn.AddDate(0, 0, 1) }},
		{"different check-out", func(r *Request) { r.CheckOut = r.CheckOut.AddDate(0, 0, 1) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)
			assert.NotEqual(t, canonical, NaturalKey(req))
		})
	}
}

func TestSignature_InvariantUnderAddOnPresentation(t *testing.T) {
	canonical := Signature(baseRequest())

	req := baseRequest()
	req.AddOns = []string{"spa_package", "early_checkin", "spa_package", " EARLY_CHECKIN "}
	assert.Equal(t, canonical, Signature(req), "order, case and duplicates must not matter")
}

func TestSignature_ChangesWithPayload(t *testing.T) {
	canonical := Signature(baseRequest())

	guests := baseRequest()
	guests.Guests = 3
	assert.NotEqual(t, canonical, Signature(guests), "guest count is part of the payload")

	addOns := baseRequest()
	addOns.AddOns = []string{"early_checkin"}
	assert.NotEqual(t, canonical, Signature(addOns), "add-on set is part of the payload")

	// Total price is derived and advisory: a repriced retry is still the
	// same request.
	priced := baseRequest()
	priced.TotalPrice = 999
	assert.Equal(t, canonical, Signature(priced))
}

func TestNormalizeAddOns(t *testing.T) {
	got := NormalizeAddOns([]string{" Spa_Package", "early_checkin", "spa_package", "", "  "})
	assert.Equal(t, []string{"early_checkin", "spa_package"}, got)

	assert.Nil(t, NormalizeAddOns(nil))
}
