package main

import (
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/models"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var db *gorm.DB

func main() {
	log.Println("Starting listings service...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var err error
	db, err = database.Open(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("%v", err)
	}

	if getEnv("SEED_DATA", "false") == "true" {
		seedTestData()
	}

	server := setupRouter(newRelicApp())

	port := getEnv("PORT", "8000")
	log.Printf("Listings service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func setupRouter(app *newrelic.Application) *gin.Engine {
	server := gin.Default()
	if app != nil {
		server.Use(nrgin.Middleware(app))
	}
	server.Use(cors.New(corsConfig()))

	server.GET("/api/", apiRoot)

	server.GET("/api/listings", getListings)
	server.POST("/api/listings", createListing)
	server.GET("/api/listings/:listingId", getListing)
	server.PUT("/api/listings/:listingId", updateListing(false))
	server.PATCH("/api/listings/:listingId", updateListing(true))
	server.DELETE("/api/listings/:listingId", deleteListing)

	server.GET("/api/bookings", getBookings)
	server.POST("/api/bookings", createBooking)
	server.GET("/api/bookings/:bookingId", getBooking)
	server.PUT("/api/bookings/:bookingId", updateBooking(false))
	server.PATCH("/api/bookings/:bookingId", updateBooking(true))
	server.DELETE("/api/bookings/:bookingId", deleteBooking)
	server.GET("/api/bookings/:bookingId/payment", getBookingPayment)

	server.GET("/api/reviews", getReviews)
	server.GET("/api/reviews/my_reviews", getMyReviews)
	server.POST("/api/reviews", createReview)
	server.GET("/api/reviews/:reviewId", getReview)
	server.PUT("/api/reviews/:reviewId", updateReview(false))
	server.PATCH("/api/reviews/:reviewId", updateReview(true))
	server.DELETE("/api/reviews/:reviewId", deleteReview)

	server.POST("/api/payments", createPayment)
	server.GET("/api/payments/:paymentId", getPayment)
	server.PATCH("/api/payments/:paymentId/status", updatePaymentStatus)

	server.GET("/manage/health", healthCheck)
	return server
}

func corsConfig() cors.Config {
	origins := strings.Split(getEnv("CORS_ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-User-Name"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
}

func newRelicApp() *newrelic.Application {
	license := os.Getenv("NEW_RELIC_LICENSE_KEY")
	if license == "" {
		return nil
	}
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(getEnv("NEW_RELIC_APP_NAME", "alx-travel-app")),
		newrelic.ConfigLicense(license),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		log.Printf("Warning: failed to initialize New Relic: %v", err)
		return nil
	}
	return app
}

func apiRoot(c *gin.Context) {
	base := "http://" + c.Request.Host + "/api/"
	c.JSON(http.StatusOK, gin.H{
		"listings": base + "listings",
		"bookings": base + "bookings",
		"reviews":  base + "reviews",
		"payments": base + "payments",
	})
}

func seedTestData() {
	var host models.User
	if err := db.Where(models.User{Username: "alice"}).FirstOrCreate(&host).Error; err != nil {
		log.Printf("Failed to create seed host: %v", err)
		return
	}
	var guest models.User
	if err := db.Where(models.User{Username: "bob"}).FirstOrCreate(&guest).Error; err != nil {
		log.Printf("Failed to create seed guest: %v", err)
		return
	}

	var listing models.Listing
	if err := db.Where("name = ? AND host_id = ?", "Seaside Cottage", host.ID).First(&listing).Error; err != nil {
		listing = models.Listing{
			HostID:        host.ID,
			Name:          "Seaside Cottage",
			Description:   "Two bedroom cottage a short walk from the beach.",
			Location:      "Mombasa",
			PricePerNight: decimal.RequireFromString("150.00"),
		}
		if err := db.Omit(clause.Associations).Create(&listing).Error; err != nil {
			log.Printf("Failed to create seed listing: %v", err)
			return
		}
		log.Printf("Created seed listing: %s", listing.Name)
	}

	var booking models.Booking
	if err := db.Where("listing_id = ? AND user_id = ?", listing.ID, guest.ID).First(&booking).Error; err != nil {
		start, _ := parseDate("2025-06-01")
		end, _ := parseDate("2025-06-05")
		booking = models.Booking{
			ListingID:  listing.ID,
			UserID:     guest.ID,
			StartDate:  start,
			EndDate:    end,
			TotalPrice: decimal.RequireFromString("600.00"),
		}
		if err := db.Omit(clause.Associations).Create(&booking).Error; err != nil {
			log.Printf("Failed to create seed booking: %v", err)
			return
		}
	}

	var payment models.Payment
	if err := db.Where("transaction_reference = ?", "TXN123").First(&payment).Error; err != nil {
		payment = models.Payment{
			BookingID:            booking.ID,
			Amount:               booking.TotalPrice,
			TransactionReference: "TXN123",
		}
		if err := db.Omit(clause.Associations).Create(&payment).Error; err != nil {
			log.Printf("Failed to create seed payment: %v", err)
			return
		}
	}
	log.Println("Listings test data seeded")
}

func healthCheck(ctx *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Host " + ctx.Request.Host + " is active",
	})
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
