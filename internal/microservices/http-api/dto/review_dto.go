package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// ReviewCreateRequest for POST /titles/:title_id/reviews
type ReviewCreateRequest struct {
	Text  string `json:"text" binding:"required,max=200"`
	Score *int   `json:"score" binding:"required"`
}

// ReviewPatchRequest for PATCH .../reviews/:review_id
type ReviewPatchRequest struct {
	Text  *string `json:"text,omitempty" binding:"omitempty,min=1,max=200"`
	Score *int    `json:"score,omitempty"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

// CommentCreateRequest for creating a comment
type CommentCreateRequest struct {
	Text string `json:"text" binding:"required,max=200"`
}

// CommentPatchRequest for updating a comment
type CommentPatchRequest struct {
	Text *string `json:"text,omitempty" binding:"omitempty,min=1,max=200"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author.Username,
		PubDate: c.PubDate,
	}
}
