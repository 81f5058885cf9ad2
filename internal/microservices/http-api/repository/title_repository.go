package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/models"
)

// TitleFilter narrows a title listing; zero fields are ignored.
type TitleFilter struct {
	Genre    string // genre slug
	Category string // category slug
	Name     string
	Year     *int
}

type TitleRepository interface {
	List(ctx context.Context, f TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) List(ctx context.Context, f TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	q := r.filtered(ctx, f)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	if err := q.Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset(page, pageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	if err := r.attachRatings(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// filtered builds the WHERE part of a listing. Every word of Name must appear
// in the title name, e.g. "the ring" -> name ILIKE '%the%' AND name ILIKE '%ring%'.
func (r *titleRepository) filtered(ctx context.Context, f TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Title{})
	if f.Genre != "" {
		q = q.Where("EXISTS (SELECT 1 FROM genre_titles gt JOIN genres g ON g.id = gt.genre_id WHERE gt.title_id = titles.id AND g.slug = ?)", f.Genre)
	}
	if f.Category != "" {
		q = q.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", f.Category)
	}
	for _, token := range strings.Fields(f.Name) {
		q = q.Where("titles.name ILIKE ?", "%"+token+"%")
	}
	if f.Year != nil {
		q = q.Where("titles.year = ?", *f.Year)
	}
	return q
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&t, id).Error; err != nil {
		return nil, translate("get title", err, nil)
	}

	titles := []models.Title{t}
	if err := r.attachRatings(ctx, titles); err != nil {
		return nil, err
	}
	return &titles[0], nil
}

type ratingRow struct {
	TitleID int64
	Total   int64
	Votes   int64
}

// attachRatings fills Rating from the reviews as they are right now.
func (r *titleRepository) attachRatings(ctx context.Context, titles []models.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}

	var rows []ratingRow
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, SUM(score) AS total, COUNT(*) AS votes").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("aggregate ratings: %w", err)
	}

	byTitle := make(map[int64]ratingRow, len(rows))
	for _, row := range rows {
		byTitle[row.TitleID] = row
	}
	for i := range titles {
		row := byTitle[titles[i].ID]
		titles[i].Rating = domain.Mean(row.Total, row.Votes)
	}
	return nil
}

func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return fmt.Errorf("create title: %w", err)
		}
		return replaceGenres(tx, t)
	})
}

// Update writes every column and replaces the genre set.
func (r *titleRepository) Update(ctx context.Context, t *models.Title) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(t).Error; err != nil {
			return fmt.Errorf("update title: %w", err)
		}
		return replaceGenres(tx, t)
	})
}

func replaceGenres(tx *gorm.DB, t *models.Title) error {
	if err := tx.Where("title_id = ?", t.ID).Delete(&models.GenreTitle{}).Error; err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}
	if len(t.Genres) == 0 {
		return nil
	}
	rows := make([]models.GenreTitle, 0, len(t.Genres))
	for _, g := range t.Genres {
		rows = append(rows, models.GenreTitle{TitleID: t.ID, GenreID: g.ID})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("link genres: %w", err)
	}
	return nil
}

// Delete removes the title with its reviews, their comments and its genre links.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := tx.Model(&models.Review{}).Select("id").Where("title_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete title comments: %w", err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete title reviews: %w", err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("delete title genres: %w", err)
		}

		result := tx.Delete(&models.Title{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete title: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete title: %w", domain.ErrNotFound)
		}
		return nil
	})
}
