package service

import (
	"context"
	"errors"
	"strings"

	"instime/cmd/internal/domain/entity"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, user *entity.User) error
}

type TokenIssuer interface {
	Issue(userID int) (string, error)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64,hasletter,hasdigit,nospaces"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=64"`
}

type UserResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UserLoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type DefaultUserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Tokens   TokenIssuer
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, tokens TokenIssuer) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo, Validate: validate, Tokens: tokens}
}

// CreateUser registers a new account with a bcrypt hashed password and
// returns a token for it, so registering also logs the user in.
func (u *DefaultUserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserLoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.UserAlreadyExistsError
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}

	err = u.UserRepo.Save(ctx, user)
	if errors.Is(err, entity.ErrEmailTaken) {
		return nil, apierror.UserAlreadyExistsError
	}
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}

	log.Infof("registered user %d", user.ID)
	return u.loginResponse(user)
}

func (u *DefaultUserService) Login(ctx context.Context, req *UserLoginRequest) (*UserLoginResponse, apierror.ErrorResponse) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil || !utils.CheckPassword(user.Password, req.Password) {
		return nil, apierror.CredentialsMismatchError
	}
	return u.loginResponse(user)
}

func (u *DefaultUserService) GetUser(ctx context.Context, userID int) (*UserResponse, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindByID(ctx, userID)
	if err != nil {
		log.Errorf("failed to find user (%d) by id: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.NotFoundError
	}
	return toUserResponse(user), nil
}

// DeleteUser removes the account along with all of its tasks and freetimes.
func (u *DefaultUserService) DeleteUser(ctx context.Context, userID int) apierror.ErrorResponse {
	user, err := u.UserRepo.FindByID(ctx, userID)
	if err != nil {
		log.Errorf("failed to find user (%d) by id: %v", userID, err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.NotFoundError
	}

	if err := u.UserRepo.Delete(ctx, user); err != nil {
		log.Errorf("failed to delete user (%d): %v", userID, err)
		return apierror.InternalServerError
	}

	log.Infof("deleted user %d", userID)
	return nil
}

func (u *DefaultUserService) loginResponse(user *entity.User) (*UserLoginResponse, apierror.ErrorResponse) {
	token, err := u.Tokens.Issue(user.ID)
	if err != nil {
		log.Errorf("failed to issue token for user (%d): %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &UserLoginResponse{AccessToken: token, User: toUserResponse(user)}, nil
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
		UpdatedAt: utils.FormatEpoch(user.UpdatedAt),
	}
}
