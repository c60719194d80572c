package main

import (
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/models"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

func respondError(c *gin.Context, err error, resource string) {
	err = database.Translate(err)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, models.ErrConstraintViolation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid write", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// currentUser resolves X-User-Name to an identity row, registering the
// username on first sight.
func currentUser(c *gin.Context) (*models.User, bool) {
	username := c.GetHeader("X-User-Name")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-Name header is required"})
		return nil, false
	}
	user, err := registerUser(username)
	if err != nil {
		respondError(c, err, "User")
		return nil, false
	}
	return user, true
}

// registerUser finds or creates the user row. A concurrent request may insert
// the same username first; the unique index rejects ours and the row is read back.
func registerUser(username string) (*models.User, error) {
	var user models.User
	err := db.Where(models.User{Username: username}).FirstOrCreate(&user).Error
	if errors.Is(database.Translate(err), models.ErrConstraintViolation) {
		var existing models.User
		if db.Where("username = ?", username).First(&existing).Error == nil {
			return &existing, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func uuidParam(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
	}
	return datatypes.Date(t), nil
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"details": err.Error(),
	})
}

func missingFields(c *gin.Context, fields []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "missing required fields",
		"fields": fields,
	})
}
