package main

import (
	"alx_travel_app/pkg/models"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingParams(id uuid.UUID) gin.Params {
	return gin.Params{gin.Param{Key: "bookingId", Value: id.String()}}
}

func TestCreateBooking(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")

	requestBody := map[string]interface{}{
		"listing":     listing.ID.String(),
		"start_date":  "2025-06-01",
		"end_date":    "2025-06-05",
		"total_price": "600.00",
	}
	c, w := newTestContext("POST", "/api/bookings", requestBody, "bob")
	createBooking(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	response := decodeObject(t, w)
	assert.Equal(t, "PENDING", response["status"])
	assert.Equal(t, "600.00", response["total_price"])
	assert.Equal(t, "2025-06-01", response["start_date"])
	assert.Equal(t, listing.ID.String(), response["listing"])
	assert.Nil(t, response["payment"])
}

func TestCreateBookingListingRequired(t *testing.T) {
	setupTestDB(t)

	c, w := newTestContext("POST", "/api/bookings", map[string]interface{}{"total_price": "600.00"}, "bob")
	createBooking(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Listing ID is required", decodeObject(t, w)["error"])
}

func TestCreateBookingUnknownListing(t *testing.T) {
	setupTestDB(t)

	for _, listing := range []string{"nope", uuid.NewString()} {
		requestBody := map[string]interface{}{
			"listing":     listing,
			"start_date":  "2025-06-01",
			"end_date":    "2025-06-05",
			"total_price": "600.00",
		}
		c, w := newTestContext("POST", "/api/bookings", requestBody, "bob")
		createBooking(c)
		assert.Equal(t, http.StatusNotFound, w.Code, listing)
	}
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing dates", body: map[string]interface{}{"total_price": "600.00"}},
		{name: "bad date", body: map[string]interface{}{"start_date": "June 1", "end_date": "2025-06-05", "total_price": "600.00"}},
		{name: "unknown status", body: map[string]interface{}{"start_date": "2025-06-01", "end_date": "2025-06-05", "total_price": "600.00", "status": "ARCHIVED"}},
		{name: "too many decimals", body: map[string]interface{}{"start_date": "2025-06-01", "end_date": "2025-06-05", "total_price": "600.001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.body["listing"] = listing.ID.String()
			c, w := newTestContext("POST", "/api/bookings", tt.body, "bob")
			createBooking(c)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	var n int64
	testDB.Model(&models.Booking{}).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestGetBookingsScopedToCaller(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")
	bob := seedUser(t, testDB, "bob")
	booking := seedBooking(t, testDB, listing, bob)

	c, w := newTestContext("GET", "/api/bookings", nil, "bob")
	getBookings(c)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeList(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, booking.ID.String(), items[0]["booking_id"])

	c, w = newTestContext("GET", "/api/bookings", nil, "carol")
	getBookings(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	c, w = newTestContext("GET", "/api/bookings/"+booking.ID.String(), nil, "carol")
	c.Params = bookingParams(booking.ID)
	getBooking(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingWithPayment(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")
	booking := seedBooking(t, testDB, listing, seedUser(t, testDB, "bob"))

	c, w := newTestContext("GET", "/api/bookings/"+booking.ID.String()+"/payment", nil, "bob")
	c.Params = bookingParams(booking.ID)
	getBookingPayment(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	payment := models.Payment{BookingID: booking.ID, Amount: booking.TotalPrice, TransactionReference: "TXN123"}
	require.NoError(t, testDB.Create(&payment).Error)

	c, w = newTestContext("GET", "/api/bookings/"+booking.ID.String(), nil, "bob")
	c.Params = bookingParams(booking.ID)
	getBooking(c)
	require.Equal(t, http.StatusOK, w.Code)
	nested := jsonField[map[string]interface{}](t, decodeObject(t, w), "payment")
	assert.Equal(t, "TXN123", nested["transaction_reference"])
	assert.Equal(t, "600.00", nested["amount"])

	c, w = newTestContext("GET", "/api/bookings/"+booking.ID.String()+"/payment", nil, "bob")
	c.Params = bookingParams(booking.ID)
	getBookingPayment(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payment.ID.String(), decodeObject(t, w)["payment_id"])
}

func TestPatchBookingStatus(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")
	booking := seedBooking(t, testDB, listing, seedUser(t, testDB, "bob"))

	for _, status := range []string{"CONFIRMED", "PENDING", "CANCELLED"} {
		c, w := newTestContext("PATCH", "/api/bookings/"+booking.ID.String(), map[string]interface{}{"status": status}, "bob")
		c.Params = bookingParams(booking.ID)
		updateBooking(true)(c)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, status, decodeObject(t, w)["status"])
	}

	var stored models.Booking
	require.NoError(t, testDB.Where("booking_id = ?", booking.ID).First(&stored).Error)
	assert.Equal(t, models.BookingCancelled, stored.Status)
	assert.True(t, stored.TotalPrice.Equal(decimal.RequireFromString("600")))
}

func TestUpdateBookingDanglingListing(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")
	booking := seedBooking(t, testDB, listing, seedUser(t, testDB, "bob"))

	c, w := newTestContext("PATCH", "/api/bookings/"+booking.ID.String(), map[string]interface{}{"listing": uuid.NewString()}, "bob")
	c.Params = bookingParams(booking.ID)
	updateBooking(true)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestPutBookingRequiresAllFields(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")
	booking := seedBooking(t, testDB, listing, seedUser(t, testDB, "bob"))

	c, w := newTestContext("PUT", "/api/bookings/"+booking.ID.String(), map[string]interface{}{"status": "CONFIRMED"}, "bob")
	c.Params = bookingParams(booking.ID)
	updateBooking(false)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBooking(t *testing.T) {
	testDB := setupTestDB(t)
	listing := seedListing(t, testDB, seedUser(t, testDB, "alice"), "Cottage")
	booking := seedBooking(t, testDB, listing, seedUser(t, testDB, "bob"))
	require.NoError(t, testDB.Create(&models.Payment{BookingID: booking.ID, Amount: booking.TotalPrice, TransactionReference: "TXN123"}).Error)

	c, w := newTestContext("DELETE", "/api/bookings/"+booking.ID.String(), nil, "bob")
	c.Params = bookingParams(booking.ID)
	deleteBooking(c)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var n int64
	testDB.Model(&models.Payment{}).Count(&n)
	assert.Equal(t, int64(0), n)
}
