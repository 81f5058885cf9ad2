package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.TitleCreateRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.TitlePatchRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	clock        domain.Clock
	log          logrus.FieldLogger
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	clock domain.Clock,
	log logrus.FieldLogger,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		clock:        clock,
		log:          log,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	return s.titleRepo.GetByID(ctx, id)
}

func (s *titleService) Create(ctx context.Context, req dto.TitleCreateRequest) (*models.Title, error) {
	t := &models.Title{}
	if err := s.apply(ctx, t, req.ToPatch()); err != nil {
		return nil, err
	}
	if err := s.titleRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	// reload with category, genres and rating
	return s.titleRepo.GetByID(ctx, t.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.TitlePatchRequest) (*models.Title, error) {
	t, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, t, req); err != nil {
		return nil, err
	}
	if err := s.titleRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.titleRepo.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("title_id", id).Info("title deleted")
	return nil
}

// apply validates the patch and copies it onto t, resolving slugs to rows.
func (s *titleService) apply(ctx context.Context, t *models.Title, req dto.TitlePatchRequest) error {
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Year != nil {
		if err := domain.ValidateYear(*req.Year, s.clock); err != nil {
			return err
		}
		t.Year = *req.Year
	}
	if req.Description != nil {
		t.Description = req.Description
	}

	if req.Category != nil {
		if *req.Category == "" {
			t.Category = nil
			t.CategoryID = nil
		} else {
			category, err := s.categoryRepo.FindBySlug(ctx, *req.Category)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUnknownCategory
			}
			if err != nil {
				return err
			}
			t.Category = category
			t.CategoryID = &category.ID
		}
	}

	if req.Genre != nil {
		slugs := uniqueStrings(req.Genre)
		genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
		if err != nil {
			return err
		}
		if len(genres) != len(slugs) {
			return domain.ErrUnknownGenre
		}
		t.Genres = genres
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
