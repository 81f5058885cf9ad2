package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.UserCreateRequest) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UserPatchRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	GetMe(ctx context.Context, actor domain.Actor) (*models.User, error)
	UpdateMe(ctx context.Context, actor domain.Actor, req dto.UserPatchRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      logrus.FieldLogger
}

func NewUserService(userRepo repository.UserRepository, log logrus.FieldLogger) UserService {
	return &userService{userRepo: userRepo, log: log}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page, pageSize)
}

// Create is the admin path: the account is usable right away and only needs
// a confirmation code to obtain a token.
func (s *userService) Create(ctx context.Context, req dto.UserCreateRequest) (*models.User, error) {
	if err := domain.ValidateSignupUsername(req.Username); err != nil {
		return nil, err
	}
	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	user := &models.User{
		Username:  req.Username,
		Email:     domain.NormalizeEmail(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

func (s *userService) Update(ctx context.Context, username string, req dto.UserPatchRequest) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := applyUserPatch(user, req, true); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user deleted")
	return nil
}

func (s *userService) GetMe(ctx context.Context, actor domain.Actor) (*models.User, error) {
	return s.userRepo.FindByID(ctx, actor.UserID)
}

// UpdateMe applies a self-service patch; the role field is ignored.
func (s *userService) UpdateMe(ctx context.Context, actor domain.Actor, req dto.UserPatchRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := applyUserPatch(user, req, false); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func applyUserPatch(user *models.User, req dto.UserPatchRequest, allowRole bool) error {
	if req.Username != nil {
		if err := domain.ValidateUsername(*req.Username); err != nil {
			return err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = domain.NormalizeEmail(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if allowRole && req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return domain.ErrInvalidRole
		}
		user.Role = role
	}
	return nil
}
