package service

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Submit(ctx context.Context, actor domain.Actor, titleID int64, text string, score int) (*models.Review, error)
	Update(ctx context.Context, actor domain.Actor, titleID, reviewID int64, req dto.ReviewPatchRequest) (*models.Review, error)
	Delete(ctx context.Context, actor domain.Actor, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	log        logrus.FieldLogger
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, log logrus.FieldLogger) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo, log: log}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, titleID, reviewID)
}

// Submit creates the author's only review of the title.
func (s *reviewService) Submit(ctx context.Context, actor domain.Actor, titleID int64, text string, score int) (*models.Review, error) {
	if !domain.CanAttempt(actor, http.MethodPost) {
		return nil, domain.ErrForbidden
	}
	if err := domain.ValidateScore(score); err != nil {
		return nil, err
	}
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.Exists(ctx, titleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateReview
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor domain.Actor, titleID, reviewID int64, req dto.ReviewPatchRequest) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !domain.IsAdminOrModeratorOrAuthor(actor, http.MethodPatch, review.AuthorID) {
		return nil, domain.ErrForbidden
	}

	if req.Score != nil {
		if err := domain.ValidateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !domain.IsAdminOrModeratorOrAuthor(actor, http.MethodDelete, review.AuthorID) {
		return domain.ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"review_id": review.ID,
		"title_id":  titleID,
		"by":        actor.Username,
	}).Info("review deleted")
	return nil
}
