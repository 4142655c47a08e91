package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to its active user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	CleanExpiredSessions(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("check email", err)
	}
	if existing != nil {
		return nil, apperror.InvalidInput("Email already exist!")
	}

	existing, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Internal("check username", err)
	}
	if existing != nil {
		return nil, apperror.InvalidInput("Username already taken!")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Internal("hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	var session *entity.Session
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.User.Create(ctx, user); err != nil {
			return err
		}
		session, err = s.createSession(ctx, user.ID)
		return err
	})
	if errors.Is(err, repository.ErrDuplicateUser) {
		return nil, apperror.InvalidInput("Email or username already exist!")
	}
	if err != nil {
		s.log.Error("Failed to register user", zap.Error(err), zap.String("username", user.Username))
		return nil, apperror.Internal("register user", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Username)
	if err != nil {
		return nil, apperror.Internal("find user by email", err)
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, apperror.Internal("find user by username", err)
		}
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("identifier", req.Username))
		return nil, apperror.Unauthorized("Wrong username or password!")
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperror.Unauthorized("Account is deactivated")
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal("create session", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return apperror.Unauthorized("Invalid session token")
	}

	revoked, err := s.repo.Session.Revoke(ctx, tokenID)
	if err != nil {
		return apperror.Internal("revoke session", err)
	}
	if !revoked {
		return apperror.Unauthorized("Session already ended")
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired session")
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenID)
	if err != nil {
		return nil, apperror.Internal("find session", err)
	}
	if session == nil {
		return nil, apperror.Unauthorized("Invalid or expired session")
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperror.Internal("find session user", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperror.Unauthorized("Invalid or expired session")
	}

	return user, nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) error {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	expiry := s.config.Session.ExpiryHours
	if expiry <= 0 {
		expiry = 24
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(expiry) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
