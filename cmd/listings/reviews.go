package main

import (
	"alx_travel_app/pkg/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type reviewRequest struct {
	Listing *string `json:"listing"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (r reviewRequest) missing() []string {
	var fields []string
	if r.Rating == nil {
		fields = append(fields, "rating")
	}
	if r.Comment == nil {
		fields = append(fields, "comment")
	}
	return fields
}

func (r reviewRequest) apply(review *models.Review) {
	if r.Rating != nil {
		review.Rating = *r.Rating
	}
	if r.Comment != nil {
		review.Comment = *r.Comment
	}
}

func reviewJSON(review models.Review) gin.H {
	return gin.H{
		"review_id":  review.ID,
		"listing":    review.ListingID,
		"user":       review.UserID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"created_at": review.CreatedAt,
	}
}

func reviewsJSON(reviews []models.Review) []gin.H {
	items := make([]gin.H, len(reviews))
	for i, review := range reviews {
		items[i] = reviewJSON(review)
	}
	return items
}

func getReviews(c *gin.Context) {
	query := db.Model(&models.Review{})
	if listing := c.Query("listing_id"); listing != "" {
		listingID, err := uuid.Parse(listing)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "listing_id must be a UUID"})
			return
		}
		query = query.Where("listing_id = ?", listingID)
	}

	var reviews []models.Review
	if err := query.Order("created_at").Find(&reviews).Error; err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusOK, reviewsJSON(reviews))
}

func getMyReviews(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var reviews []models.Review
	if err := db.Where("user_id = ?", user.ID).Order("created_at").Find(&reviews).Error; err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusOK, reviewsJSON(reviews))
}

func getReview(c *gin.Context) {
	id, ok := uuidParam(c, "reviewId", "Review")
	if !ok {
		return
	}
	var review models.Review
	if err := db.Where("review_id = ?", id).First(&review).Error; err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusOK, reviewJSON(review))
}

func createReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var request reviewRequest
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

	review := models.Review{ListingID: listing.ID, UserID: user.ID}
	request.apply(&review)
	if err := db.Omit(clause.Associations).Create(&review).Error; err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusCreated, reviewJSON(review))
}

func updateReview(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "reviewId", "Review")
		if !ok {
			return
		}
		var request reviewRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			invalidRequest(c, err)
			return
		}
		if missing := request.missing(); !partial && len(missing) > 0 {
			missingFields(c, missing)
			return
		}

		var review models.Review
		if err := db.Where("review_id = ?", id).First(&review).Error; err != nil {
			respondError(c, err, "Review")
			return
		}
		request.apply(&review)
		if err := db.Omit(clause.Associations).Save(&review).Error; err != nil {
			respondError(c, err, "Review")
			return
		}
		c.JSON(http.StatusOK, reviewJSON(review))
	}
}

func deleteReview(c *gin.Context) {
	id, ok := uuidParam(c, "reviewId", "Review")
	if !ok {
		return
	}
	result := db.Where("review_id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		respondError(c, result.Error, "Review")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}
