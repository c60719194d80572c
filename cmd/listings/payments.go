package main

import (
	"alx_travel_app/pkg/models"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// paymentJSON renders a payment, nesting its booking when one is given.
func paymentJSON(payment models.Payment, booking *models.Booking) gin.H {
	response := gin.H{
		"payment_id":            payment.ID,
		"booking_id":            payment.BookingID,
		"amount":                payment.Amount.StringFixed(models.MoneyPlaces),
		"status":                payment.Status,
		"transaction_reference": payment.TransactionReference,
		"chapa_transaction_id":  payment.ChapaTransactionID,
		"created_at":            payment.CreatedAt,
		"updated_at":            payment.UpdatedAt,
	}
	if booking != nil {
		response["booking"] = bookingJSON(*booking)
	}
	return response
}

func newTransactionReference() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// createPayment opens the payment record of a booking. Status and reference
// are assigned here; the gateway reports back through updatePaymentStatus.
func createPayment(c *gin.Context) {
	var request struct {
		BookingID string           `json:"booking_id" binding:"required"`
		Amount    *decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidRequest(c, err)
		return
	}
	bookingID, err := uuid.Parse(request.BookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	var booking models.Booking
	if err := db.Where("booking_id = ?", bookingID).First(&booking).Error; err != nil {
		respondError(c, err, "Booking")
		return
	}

	payment := models.Payment{
		BookingID:            booking.ID,
		Amount:               *request.Amount,
		TransactionReference: newTransactionReference(),
	}
	if err := db.Omit(clause.Associations).Create(&payment).Error; err != nil {
		respondError(c, err, "Payment")
		return
	}
	c.JSON(http.StatusCreated, paymentJSON(payment, &booking))
}

func getPayment(c *gin.Context) {
	id, ok := uuidParam(c, "paymentId", "Payment")
	if !ok {
		return
	}
	var payment models.Payment
	if err := db.Where("payment_id = ?", id).First(&payment).Error; err != nil {
		respondError(c, err, "Payment")
		return
	}
	var booking models.Booking
	if err := db.Where("booking_id = ?", payment.BookingID).First(&booking).Error; err != nil {
		respondError(c, err, "Booking")
		return
	}
	c.JSON(http.StatusOK, paymentJSON(payment, &booking))
}

// updatePaymentStatus records what the payment gateway reported. Any status
// value of the enumeration is accepted in any order.
func updatePaymentStatus(c *gin.Context) {
	id, ok := uuidParam(c, "paymentId", "Payment")
	if !ok {
		return
	}
	var request struct {
		Status             string  `json:"status" binding:"required"`
		ChapaTransactionID *string `json:"chapa_transaction_id"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidRequest(c, err)
		return
	}

	var payment models.Payment
	if err := db.Where("payment_id = ?", id).First(&payment).Error; err != nil {
		respondError(c, err, "Payment")
		return
	}
	payment.Status = models.PaymentStatus(request.Status)
	if request.ChapaTransactionID != nil {
		payment.ChapaTransactionID = request.ChapaTransactionID
	}
	if err := db.Omit(clause.Associations).Save(&payment).Error; err != nil {
		respondError(c, err, "Payment")
		return
	}
	c.JSON(http.StatusOK, paymentJSON(payment, nil))
}
