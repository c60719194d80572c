package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// User is the identity row owned by the auth subsystem. It is kept here only
// as the parent of the cascading foreign keys below.
type User struct {
	ID        uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" validate:"required,max=150"`
	Email     string    `gorm:"size:254" validate:"omitempty,max=254,email"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Listings []Listing `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE" validate:"-"`
	Bookings []Booking `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" validate:"-"`
	Reviews  []Review  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" validate:"-"`
}

type Listing struct {
	ID            uuid.UUID       `gorm:"column:listing_id;type:uuid;primaryKey"`
	HostID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"size:100;not null" validate:"required,max=100"`
	Description   string          `gorm:"type:text;not null" validate:"required"`
	Location      string          `gorm:"size:100;not null" validate:"required,max=100"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(9,2);not null" validate:"money"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`

	Bookings []Booking `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" validate:"-"`
	Reviews  []Review  `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" validate:"-"`
}

type Booking struct {
	ID         uuid.UUID       `gorm:"column:booking_id;type:uuid;primaryKey"`
	ListingID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartDate  datatypes.Date  `gorm:"not null" validate:"required"`
	EndDate    datatypes.Date  `gorm:"not null" validate:"required"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(9,2);not null" validate:"money"`
	Status     BookingStatus   `gorm:"size:15;not null;default:'PENDING';check:chk_bookings_status,status IN ('PENDING','CONFIRMED','CANCELLED')" validate:"oneof=PENDING CONFIRMED CANCELLED"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`

	Payment *Payment `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" validate:"-"`
}

type Review struct {
	ID        uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" validate:"min=1,max=5"`
	Comment   string    `gorm:"type:text;not null" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type Payment struct {
	ID                   uuid.UUID       `gorm:"column:payment_id;type:uuid;primaryKey"`
	BookingID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount               decimal.Decimal `gorm:"type:decimal(9,2);not null" validate:"money"`
	Status               PaymentStatus   `gorm:"size:15;not null;default:'PENDING';check:chk_payments_status,status IN ('PENDING','COMPLETED','FAILED')" validate:"oneof=PENDING COMPLETED FAILED"`
	TransactionReference string          `gorm:"size:100;not null;uniqueIndex" validate:"required,max=100"`
	ChapaTransactionID   *string         `gorm:"size:100" validate:"omitempty,max=100"`
	CreatedAt            time.Time       `gorm:"autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime"`
}

// All returns the schema in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Listing{}, &Booking{}, &Review{}, &Payment{}}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return validate(u)
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	return validateUpdate(tx, u)
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return validate(l)
}

func (l *Listing) BeforeUpdate(tx *gorm.DB) error {
	return validateUpdate(tx, l)
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return validate(b)
}

func (b *Booking) BeforeUpdate(tx *gorm.DB) error {
	return validateUpdate(tx, b)
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return validate(r)
}

func (r *Review) BeforeUpdate(tx *gorm.DB) error {
	return validateUpdate(tx, r)
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return validate(p)
}

func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	return validateUpdate(tx, p)
}
