package main

import (
	"alx_travel_app/pkg/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type bookingRequest struct {
	Listing    *string          `json:"listing"`
	StartDate  *string          `json:"start_date"`
	EndDate    *string          `json:"end_date"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	Status     *string          `json:"status"`
}

func (r bookingRequest) missing() []string {
	var fields []string
	if r.StartDate == nil {
		fields = append(fields, "start_date")
	}
	if r.EndDate == nil {
		fields = append(fields, "end_date")
	}
	if r.TotalPrice == nil {
		fields = append(fields, "total_price")
	}
	return fields
}

func (r bookingRequest) apply(booking *models.Booking) error {
	if r.StartDate != nil {
		date, err := parseDate(*r.StartDate)
		if err != nil {
			return err
		}
		booking.StartDate = date
	}
	if r.EndDate != nil {
		date, err := parseDate(*r.EndDate)
		if err != nil {
			return err
		}
		booking.EndDate = date
	}
	if r.TotalPrice != nil {
		booking.TotalPrice = *r.TotalPrice
	}
	if r.Status != nil {
		booking.Status = models.BookingStatus(*r.Status)
	}
	return nil
}

func bookingJSON(booking models.Booking) gin.H {
	response := gin.H{
		"booking_id":  booking.ID,
		"listing":     booking.ListingID,
		"user":        booking.UserID,
		"start_date":  formatDate(booking.StartDate),
		"end_date":    formatDate(booking.EndDate),
		"total_price": booking.TotalPrice.StringFixed(models.MoneyPlaces),
		"status":      booking.Status,
		"created_at":  booking.CreatedAt,
		"payment":     nil,
	}
	if booking.Payment != nil {
		response["payment"] = paymentJSON(*booking.Payment, nil)
	}
	return response
}

// findBooking loads a booking of the calling user together with its payment.
func findBooking(c *gin.Context) (*models.Booking, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	id, ok := uuidParam(c, "bookingId", "Booking")
	if !ok {
		return nil, false
	}
	var booking models.Booking
	err := db.Preload("Payment").
		Where("booking_id = ? AND user_id = ?", id, user.ID).
		First(&booking).Error
	if err != nil {
		respondError(c, err, "Booking")
		return nil, false
	}
	return &booking, true
}

func getBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var bookings []models.Booking
	err := db.Preload("Payment").
		Where("user_id = ?", user.ID).
		Order("created_at").
		Find(&bookings).Error
	if err != nil {
		respondError(c, err, "Booking")
		return
	}
	items := make([]gin.H, len(bookings))
	for i, booking := range bookings {
		items[i] = bookingJSON(booking)
	}
	c.JSON(http.StatusOK, items)
}

func getBooking(c *gin.Context) {
	booking, ok := findBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bookingJSON(*booking))
}

func getBookingPayment(c *gin.Context) {
	booking, ok := findBooking(c)
	if !ok {
		return
	}
	if booking.Payment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	c.JSON(http.StatusOK, paymentJSON(*booking.Payment, nil))
}

func createBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var request bookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidRequest(c, err)
		return
	}
	if request.Listing == nil || *request.Listing == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing ID is required"})
		return
	}
	listingID, err := uuid.Parse(*request.Listing)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	var listing models.Listing
	if err := db.Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		respondError(c, err, "Listing")
		return
	}
	if missing := request.missing(); len(missing) > 0 {
		missingFields(c, missing)
		return
	}

	booking := models.Booking{ListingID: listing.ID, UserID: user.ID}
	if err := request.apply(&booking); err != nil {
		invalidRequest(c, err)
		return
	}
	if err := db.Omit(clause.Associations).Create(&booking).Error; err != nil {
		respondError(c, err, "Booking")
		return
	}
	c.JSON(http.StatusCreated, bookingJSON(booking))
}

// updateBooking serves PUT (partial=false) and PATCH. The listing may be
// moved; a dangling listing id is rejected by the foreign key.
func updateBooking(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, ok := findBooking(c)
		if !ok {
			return
		}
		var request bookingRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			invalidRequest(c, err)
			return
		}
		if missing := request.missing(); !partial && len(missing) > 0 {
			missingFields(c, missing)
			return
		}
		if request.Listing != nil {
			listingID, err := uuid.Parse(*request.Listing)
			if err != nil {
				invalidRequest(c, err)
				return
			}
			booking.ListingID = listingID
		}
		if err := request.apply(booking); err != nil {
			invalidRequest(c, err)
			return
		}
		if err := db.Omit(clause.Associations).Save(booking).Error; err != nil {
			respondError(c, err, "Booking")
			return
		}
		c.JSON(http.StatusOK, bookingJSON(*booking))
	}
}

func deleteBooking(c *gin.Context) {
	booking, ok := findBooking(c)
	if !ok {
		return
	}
	if err := db.Where("booking_id = ?", booking.ID).Delete(&models.Booking{}).Error; err != nil {
		respondError(c, err, "Booking")
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}
