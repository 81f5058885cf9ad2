package models

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;not null"`
	Year        int     `json:"year" gorm:"not null;index;check:year >= 1"`
	Description *string `json:"description" gorm:"size:2000"`
	CategoryID  *int64  `json:"-" gorm:"index"`

	// a deleted category leaves its titles uncategorised
	Category *Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE;"`

	// computed from reviews on every read, never stored
	Rating *float64 `json:"rating" gorm:"-"`
}

func (Title) TableName() string {
	return "titles"
}

// GenreTitle is the explicit join row of the title/genre association.
type GenreTitle struct {
	TitleID int64 `gorm:"primaryKey"`
	GenreID int64 `gorm:"primaryKey"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
