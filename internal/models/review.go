package models

import "time"

// ReviewUser is the public profile shown next to a review.
type ReviewUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Review is a shopper's rating of a product.
type Review struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(64)"`
	ProductID string     `json:"productId" gorm:"index;type:varchar(64)"`
	UserID    string     `json:"userId" gorm:"type:varchar(64)"`
	User      ReviewUser `json:"user" gorm:"embedded;embeddedPrefix:user_"`
	Rating    int        `json:"rating"`
	Title     string     `json:"title"`
	Comment   string     `json:"comment"`
	Verified  bool       `json:"verified"`
	Helpful   int        `json:"helpful"`
	CreatedAt time.Time  `json:"createdAt" gorm:"index"`
}

// NewReview is the payload for submitting a review.
type NewReview struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,min=3,max=100"`
	Comment string `json:"comment" validate:"required,max=2000"`
}
