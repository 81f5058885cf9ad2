package dto

import "yamdb/internal/microservices/http-api/models"

// TitleCreateRequest used for POST /titles and PUT /titles/:title_id.
// Genres and category are referenced by slug.
type TitleCreateRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category,omitempty"`
}

// TitlePatchRequest used for PATCH /titles/:title_id (partial updates allowed).
// A non-nil empty Genre clears the genres; an empty Category clears the category.
type TitlePatchRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Genre       []string `json:"genre,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// ToPatch turns a full replacement into a patch that sets every field.
func (d TitleCreateRequest) ToPatch() TitlePatchRequest {
	name := d.Name
	genres := d.Genre
	if genres == nil {
		genres = []string{}
	}
	category := ""
	if d.Category != nil {
		category = *d.Category
	}
	return TitlePatchRequest{
		Name:        &name,
		Year:        d.Year,
		Description: d.Description,
		Genre:       genres,
		Category:    &category,
	}
}

// TitleResponse DTO for responses
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func FromModelToTitleResponse(t *models.Title) TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for i := range t.Genres {
		genres = append(genres, FromModelToGenreResponse(&t.Genres[i]))
	}
	var category *CategoryResponse
	if t.Category != nil {
		c := FromModelToCategoryResponse(t.Category)
		category = &c
	}
	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
		Category:    category,
	}
}
