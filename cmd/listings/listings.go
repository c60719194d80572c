package main

import (
	"alx_travel_app/pkg/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type listingRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Location      *string          `json:"location"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
}

func (r listingRequest) missing() []string {
	var fields []string
	if r.Name == nil {
		fields = append(fields, "name")
	}
	if r.Description == nil {
		fields = append(fields, "description")
	}
	if r.Location == nil {
		fields = append(fields, "location")
	}
	if r.PricePerNight == nil {
		fields = append(fields, "price_per_night")
	}
	return fields
}

func (r listingRequest) apply(listing *models.Listing) {
	if r.Name != nil {
		listing.Name = *r.Name
	}
	if r.Description != nil {
		listing.Description = *r.Description
	}
	if r.Location != nil {
		listing.Location = *r.Location
	}
	if r.PricePerNight != nil {
		listing.PricePerNight = *r.PricePerNight
	}
}

func listingJSON(listing models.Listing) gin.H {
	return gin.H{
		"listing_id":      listing.ID,
		"host":            listing.HostID,
		"name":            listing.Name,
		"description":     listing.Description,
		"location":        listing.Location,
		"price_per_night": listing.PricePerNight.StringFixed(models.MoneyPlaces),
		"created_at":      listing.CreatedAt,
		"updated_at":      listing.UpdatedAt,
	}
}

func getListings(c *gin.Context) {
	query := db.Model(&models.Listing{})
	if host := c.Query("host"); host != "" {
		query = query.Joins("JOIN users ON users.user_id = listings.host_id").
			Where("users.username = ?", host)
	}

	var listings []models.Listing
	if err := query.Order("listings.created_at").Find(&listings).Error; err != nil {
		respondError(c, err, "Listing")
		return
	}
	items := make([]gin.H, len(listings))
	for i, listing := range listings {
		items[i] = listingJSON(listing)
	}
	c.JSON(http.StatusOK, items)
}

func getListing(c *gin.Context) {
	id, ok := uuidParam(c, "listingId", "Listing")
	if !ok {
		return
	}
	var listing models.Listing
	if err := db.Where("listing_id = ?", id).First(&listing).Error; err != nil {
		respondError(c, err, "Listing")
		return
	}
	c.JSON(http.StatusOK, listingJSON(listing))
}

func createListing(c *gin.Context) {
	host, ok := currentUser(c)
	if !ok {
		return
	}
	var request listingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidRequest(c, err)
		return
	}
	if missing := request.missing(); len(missing) > 0 {
		missingFields(c, missing)
		return
	}

	listing := models.Listing{HostID: host.ID}
	request.apply(&listing)
	if err := db.Omit(clause.Associations).Create(&listing).Error; err != nil {
		respondError(c, err, "Listing")
		return
	}
	c.JSON(http.StatusCreated, listingJSON(listing))
}

// updateListing serves PUT (partial=false, every field required) and PATCH.
func updateListing(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "listingId", "Listing")
		if !ok {
			return
		}
		var request listingRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			invalidRequest(c, err)
			return
		}
		if missing := request.missing(); !partial && len(missing) > 0 {
			missingFields(c, missing)
			return
		}

		var listing models.Listing
		if err := db.Where("listing_id = ?", id).First(&listing).Error; err != nil {
			respondError(c, err, "Listing")
			return
		}
		request.apply(&listing)
		if err := db.Omit(clause.Associations).Save(&listing).Error; err != nil {
			respondError(c, err, "Listing")
			return
		}
		c.JSON(http.StatusOK, listingJSON(listing))
	}
}

func deleteListing(c *gin.Context) {
	id, ok := uuidParam(c, "listingId", "Listing")
	if !ok {
		return
	}
	result := db.Where("listing_id = ?", id).Delete(&models.Listing{})
	if result.Error != nil {
		respondError(c, result.Error, "Listing")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}
