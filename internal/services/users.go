package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"
	"civilregistry/internal/repository"
	"civilregistry/internal/utils"

	"github.com/sirupsen/logrus"
)

type TokenGenerator interface {
	Generate(userID uint, email, role string) (string, error)
}

type UserService struct {
	repo   repository.UserRepository
	tokens TokenGenerator
	stats  StatsInvalidator
	log    logrus.FieldLogger
}

func NewUserService(repo repository.UserRepository, tokens TokenGenerator, stats StatsInvalidator, log logrus.FieldLogger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		stats:  orNoop(stats),
		log:    log.WithField("component", "users"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePassword trims surrounding whitespace. The length rule applies to
// the trimmed value, which is also what gets hashed and compared.
func normalizePassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if utf8.RuneCountInString(password) < utils.MinPasswordLength {
		return "", apperrors.ErrPasswordTooShort
	}
	return password, nil
}

// Register creates a Reviewer account.
func (s *UserService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	in.Role = models.RoleReviewer
	return s.create(ctx, in)
}

// Create is the admin path; the requested role must be valid.
func (s *UserService) Create(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleReviewer
	}
	if !in.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	return s.create(ctx, in)
}

func (s *UserService) create(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	password, err := normalizePassword(in.Password)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, username, email, 0); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		FullName: strings.TrimSpace(in.FullName),
		Role:     in.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateRecord) {
			return nil, s.conflictCause(ctx, username, email, 0)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user created")
	invalidateStats(ctx, s.stats, s.log)
	return user, nil
}

// checkUnique reports which of username and email is already in use.
func (s *UserService) checkUnique(ctx context.Context, username, email string, excludeID uint) error {
	if email != "" {
		taken, err := s.repo.EmailTaken(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrEmailTaken
		}
	}
	if username != "" {
		taken, err := s.repo.UsernameTaken(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrUsernameTaken
		}
	}
	return nil
}

// conflictCause runs after a unique-index violation raced past checkUnique.
func (s *UserService) conflictCause(ctx context.Context, username, email string, excludeID uint) error {
	if err := s.checkUnique(ctx, username, email, excludeID); err != nil {
		return err
	}
	return apperrors.ErrEmailTaken
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !utils.CheckPassword(strings.TrimSpace(password), user.Password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, in models.ProfileInput) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	if err := s.checkUnique(ctx, "", email, id); err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(in.FullName)
	user.Email = email
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateRecord) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uint, in models.ChangePasswordInput) error {
	newPassword, err := normalizePassword(in.NewPassword)
	if err != nil {
		return err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(strings.TrimSpace(in.CurrentPassword), user.Password) {
		return apperrors.ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.log.WithField("user_id", id).Info("password changed")
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id uint, in models.UserUpdateInput) (*models.User, error) {
	if in.Role != "" && !in.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if err := s.checkUnique(ctx, username, email, id); err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		user.FullName = name
	}
	if in.Role != "" {
		user.Role = in.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateRecord) {
			return nil, s.conflictCause(ctx, username, email, id)
		}
		return nil, err
	}
	invalidateStats(ctx, s.stats, s.log)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("user_id", id).Info("user deleted")
	invalidateStats(ctx, s.stats, s.log)
	return nil
}
