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

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, caller entity.Caller) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, caller entity.Caller, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, caller entity.Caller) (*response.UserResponse, error) {
	return us.getUser(ctx, caller.UserID.String())
}

func (us *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	return us.getUser(ctx, userID)
}

func (us *userService) getUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseID(userID, "Invalid user id!")
	if err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found!")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("list users", err)
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		return nil, apperror.Internal("count users", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

// UpdateUser lets users edit their own profile and admins edit anyone's.
func (us *userService) UpdateUser(ctx context.Context, caller entity.Caller, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	id, err := parseID(userID, "Invalid user id!")
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && caller.UserID != id {
		return nil, apperror.NotFound("User not found!")
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found!")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	user.UpdatedAt = time.Now()

	err = us.repo.User.Update(ctx, user)
	switch {
	case errors.Is(err, repository.ErrDuplicateUser):
		return nil, apperror.InvalidInput("Email or username already exist!")
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperror.NotFound("User not found!")
	case err != nil:
		return nil, apperror.Internal("update user", err)
	}

	us.log.Info("User updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// DeleteUser soft-deletes the account and ends all of its sessions.
func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseID(userID, "Invalid user id!")
	if err != nil {
		return err
	}

	err = us.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		deleted, err := us.repo.User.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.NotFound("User not found!")
		}
		return us.repo.Session.RevokeAllUserSessions(ctx, id)
	})
	if err != nil {
		return passThrough("delete user", err)
	}

	us.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
