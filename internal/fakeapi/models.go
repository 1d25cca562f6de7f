package fakeapi

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents a salon account
type User struct {
	BaseModel
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	Blocked      bool      `json:"blocked" gorm:"not null;default:false"`
	UpdatedAt    time.Time `json:"-" gorm:"autoUpdateTime"`
}

// Service is a bookable treatment in the catalog
type Service struct {
	BaseModel
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
}

// Appointment is a booking of one service by one user
type Appointment struct {
	BaseModel
	UserID    string `gorm:"not null;index"`
	ServiceID string `gorm:"not null"`
	Date      string `gorm:"not null;index:idx_slot"` // YYYY-MM-DD
	Time      string `gorm:"not null;index:idx_slot"` // HH:MM
	Status    string `gorm:"not null;default:pending"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Service Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

// Review is a rating left by a user for a service
type Review struct {
	BaseModel
	UserID    string `gorm:"not null"`
	ServiceID string `gorm:"not null;index"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Favorite marks a service for a user
type Favorite struct {
	BaseModel
	UserID    string `gorm:"not null;uniqueIndex:idx_favorite"`
	ServiceID string `gorm:"not null;uniqueIndex:idx_favorite"`

	Service Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

// WorkingHours is the opening window of one weekday
type WorkingHours struct {
	BaseModel
	Day                    string `gorm:"not null;unique"`
	OpenTime               string `gorm:"not null"`
	CloseTime              string `gorm:"not null"`
	MaxAppointmentsPerSlot int    `gorm:"not null;default:5"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Service{}, &Appointment{}, &Review{}, &Favorite{}, &WorkingHours{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}

// FindByIDWithPreload finds a record by ID with preloading
func FindByIDWithPreload[T any](db *gorm.DB, id string, model *T, preloads ...string) error {
	query := db
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	return query.Where("id = ?", id).First(model).Error
}
