package dto

import (
	"emurebook/internal/http-api/models"
)

// CreateBookDTO used for POST /api/books. The owner never comes from the
// payload; it is forced to the authenticated caller.
type CreateBookDTO struct {
	Title         string  `json:"title" binding:"required,max=100"`
	Author        string  `json:"author" binding:"required,max=50"`
	Description   string  `json:"description,omitempty" binding:"max=2000"`
	ImageURL      string  `json:"image_url,omitempty"`
	Condition     string  `json:"condition,omitempty" binding:"omitempty,oneof=New 'Like New' Good Fair Poor"`
	Price         float64 `json:"price,omitempty" binding:"gte=0"`
	Category      string  `json:"category" binding:"required"`
	ExchangeType  string  `json:"exchange_type,omitempty" binding:"omitempty,oneof=Sell Exchange Free Rent"`
	Department    string  `json:"department,omitempty"`
	CourseCode    string  `json:"course_code,omitempty"`
	ISBN          string  `json:"isbn,omitempty"`
	Language      string  `json:"language,omitempty"`
	Publisher     string  `json:"publisher,omitempty"`
	PublishedYear *int    `json:"published_year,omitempty"`
	Availability  *bool   `json:"availability,omitempty"`
}

// ToModel fills in the documented defaults where the payload is silent.
func (d CreateBookDTO) ToModel() models.Book {
	book := models.Book{
		Title:         d.Title,
		Author:        d.Author,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		Condition:     d.Condition,
		Price:         d.Price,
		Category:      d.Category,
		ExchangeType:  d.ExchangeType,
		Department:    d.Department,
		CourseCode:    d.CourseCode,
		ISBN:          d.ISBN,
		Language:      d.Language,
		Publisher:     d.Publisher,
		PublishedYear: d.PublishedYear,
		Availability:  true,
	}
	if book.ImageURL == "" {
		book.ImageURL = "default-book.jpg"
	}
	if book.Condition == "" {
		book.Condition = "Good"
	}
	if book.ExchangeType == "" {
		book.ExchangeType = "Sell"
	}
	if book.Language == "" {
		book.Language = "English"
	}
	if d.Availability != nil {
		book.Availability = *d.Availability
	}
	return book
}

// UpdateBookDTO used for PATCH /api/books/:id (partial updates allowed)
type UpdateBookDTO struct {
	Title         *string  `json:"title,omitempty" binding:"omitempty,max=100"`
	Author        *string  `json:"author,omitempty" binding:"omitempty,max=50"`
	Description   *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Condition     *string  `json:"condition,omitempty" binding:"omitempty,oneof=New 'Like New' Good Fair Poor"`
	Price         *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Category      *string  `json:"category,omitempty"`
	ExchangeType  *string  `json:"exchange_type,omitempty" binding:"omitempty,oneof=Sell Exchange Free Rent"`
	Department    *string  `json:"department,omitempty"`
	CourseCode    *string  `json:"course_code,omitempty"`
	ISBN          *string  `json:"isbn,omitempty"`
	Language      *string  `json:"language,omitempty"`
	Publisher     *string  `json:"publisher,omitempty"`
	PublishedYear *int     `json:"published_year,omitempty"`
	Availability  *bool    `json:"availability,omitempty"`
}

// ApplyTo merges the set fields onto the stored book.
func (d UpdateBookDTO) ApplyTo(b *models.Book) {
	if d.Title != nil {
		b.Title = *d.Title
	}
	if d.Author != nil {
		b.Author = *d.Author
	}
	if d.Description != nil {
		b.Description = *d.Description
	}
	if d.ImageURL != nil {
		b.ImageURL = *d.ImageURL
	}
	if d.Condition != nil {
		b.Condition = *d.Condition
	}
	if d.Price != nil {
		b.Price = *d.Price
	}
	if d.Category != nil {
		b.Category = *d.Category
	}
	if d.ExchangeType != nil {
		b.ExchangeType = *d.ExchangeType
	}
	if d.Department != nil {
		b.Department = *d.Department
	}
	if d.CourseCode != nil {
		b.CourseCode = *d.CourseCode
	}
	if d.ISBN != nil {
		b.ISBN = *d.ISBN
	}
	if d.Language != nil {
		b.Language = *d.Language
	}
	if d.Publisher != nil {
		b.Publisher = *d.Publisher
	}
	if d.PublishedYear != nil {
		b.PublishedYear = d.PublishedYear
	}
	if d.Availability != nil {
		b.Availability = *d.Availability
	}
}

// RateBookDTO for POST /api/books/:id/rating. Range is checked by the
// service so an out-of-range value surfaces as a business-rule failure.
type RateBookDTO struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review,omitempty"`
}
