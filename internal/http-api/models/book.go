package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Condition values a book listing may carry.
var BookConditions = []string{"New", "Like New", "Good", "Fair", "Poor"}

// Exchange types a book listing may carry.
var ExchangeTypes = []string{"Sell", "Exchange", "Free", "Rent"}

type Book struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title         string    `gorm:"not null;size:100" json:"title"`
	Author        string    `gorm:"not null;size:50" json:"author"`
	Description   string    `gorm:"size:2000" json:"description,omitempty"`
	ImageURL      string    `gorm:"default:'default-book.jpg'" json:"image_url"`
	Condition     string    `gorm:"default:'Good';not null" json:"condition"`
	Price         float64   `gorm:"default:0;not null" json:"price"`
	Category      string    `gorm:"not null;index" json:"category"`
	ExchangeType  string    `gorm:"default:'Sell';not null" json:"exchange_type"`
	Department    string    `json:"department,omitempty"`
	CourseCode    string    `json:"course_code,omitempty"`
	OwnerID       string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	ISBN          string    `json:"isbn,omitempty"`
	Language      string    `gorm:"default:'English'" json:"language"`
	Publisher     string    `json:"publisher,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Availability  bool      `gorm:"default:true;not null" json:"availability"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Associations
	Owner   *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Ratings []Rating `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"ratings"`

	// Derived, never persisted
	AverageRating float64 `gorm:"-" json:"average_rating"`
}

// BeforeCreate hook to set UUID before creating a Book
func (book *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	return
}

// AfterFind recomputes the derived average so every loaded book carries it.
func (book *Book) AfterFind(tx *gorm.DB) (err error) {
	book.RecalculateAverageRating()
	return
}

// RecalculateAverageRating sets AverageRating to the mean of the loaded
// ratings rounded to one decimal, 0 when there are none.
func (book *Book) RecalculateAverageRating() {
	if len(book.Ratings) == 0 {
		book.AverageRating = 0
		return
	}
	sum := 0
	for _, r := range book.Ratings {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(book.Ratings))
	book.AverageRating = math.Round(avg*10) / 10
}

func (Book) TableName() string {
	return "books"
}
