package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/crypto"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Signup(context.Context, *model.SignupRequest) (*model.SignupResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{userRepo: userRepo}
}

func (d *authDomain) Signup(
	ctx context.Context, req *model.SignupRequest,
) (*model.SignupResponse, error) {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Email, username and password are required")
	}

	if err := checkIdentityAvailable(ctx, d.userRepo, "", email, username); err != nil {
		return nil, err
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:       entity.Base{ID: uuid.NewString()},
		Email:      email,
		Username:   username,
		Password:   hashed,
		Reputation: entity.DefaultReputation,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.AlreadyExists, "User already exists")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SignupResponse{User: model.ConvertUser(user)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Email and password are required")
	}

	user, err := d.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	ok, err := crypto.ComparePassword(user.Password, req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compare password: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, xcontext.AccessToken{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		User:        model.ConvertProfile(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{}, nil
}

func (d *authDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user))
	return &resp, nil
}

// checkIdentityAvailable returns AlreadyExists if the email or the username
// is used by a user other than selfID. Empty values are not checked.
func checkIdentityAvailable(
	ctx context.Context, userRepo repository.UserRepository, selfID, email, username string,
) error {
	if email != "" {
		user, err := userRepo.GetByEmail(ctx, email)
		if err == nil && user.ID != selfID {
			return errorx.New(errorx.AlreadyExists, "Email is already registered")
		}

		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
			return errorx.Unknown
		}
	}

	if username != "" {
		user, err := userRepo.GetByUsername(ctx, username)
		if err == nil && user.ID != selfID {
			return errorx.New(errorx.AlreadyExists, "Username is already taken")
		}

		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
