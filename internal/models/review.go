package models

import "time"

// Review 영화 리뷰 (배틀 관점에서는 votes 외에 읽기 전용)
type Review struct {
	ID          int       `json:"id"`
	MovieID     string    `json:"movieId"`
	AuthorID    string    `json:"authorId"`
	Rating      float64   `json:"rating"`
	ReviewTitle string    `json:"reviewTitle"`
	ReviewBody  string    `json:"reviewBody"`
	Flagged     bool      `json:"flagged"`
	Votes       int       `json:"votes"`
	Date        time.Time `json:"date"`
	Visible     bool      `json:"visible"`
}

type CreateReviewRequest struct {
	MovieID     string  `json:"movieId" binding:"required"`
	Rating      float64 `json:"rating" binding:"required,min=0,max=5"`
	ReviewTitle string  `json:"reviewTitle" binding:"required,max=200"`
	ReviewBody  string  `json:"reviewBody" binding:"required"`
}

type UpdateReviewRequest struct {
	Rating      float64 `json:"rating" binding:"required,min=0,max=5"`
	ReviewTitle string  `json:"reviewTitle" binding:"required,max=200"`
	ReviewBody  string  `json:"reviewBody" binding:"required"`
}
