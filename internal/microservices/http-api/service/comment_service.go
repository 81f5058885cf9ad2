package service

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, actor domain.Actor, titleID, reviewID int64, text string) (*models.Comment, error)
	Update(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID int64, text *string) (*models.Comment, error)
	Delete(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	log         logrus.FieldLogger
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository, log logrus.FieldLogger) CommentService {
	return &commentService{commentRepo: commentRepo, reviewRepo: reviewRepo, log: log}
}

// review resolves the parent path; a review under another title is not found.
func (s *commentService) review(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, titleID, reviewID)
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, reviewID, commentID)
}

func (s *commentService) Create(ctx context.Context, actor domain.Actor, titleID, reviewID int64, text string) (*models.Comment, error) {
	if !domain.CanAttempt(actor, http.MethodPost) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	// Reload with author
	return s.commentRepo.GetByID(ctx, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID int64, text *string) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !domain.IsAdminOrModeratorOrAuthor(actor, http.MethodPatch, comment.AuthorID) {
		return nil, domain.ErrForbidden
	}
	if text != nil {
		comment.Text = *text
		if err := s.commentRepo.Update(ctx, comment); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !domain.IsAdminOrModeratorOrAuthor(actor, http.MethodDelete, comment.AuthorID) {
		return domain.ErrForbidden
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"comment_id": comment.ID, "by": actor.Username}).Info("comment deleted")
	return nil
}
