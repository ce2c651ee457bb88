package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	bcryptCost   int
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	bcryptCost int,
	logger *logger.Logger,
) *Auth {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		bcryptCost:   bcryptCost,
		logger:       logger,
	}
}

// Register creates a user with a unique username and email. The returned
// user never carries the password hash.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	username := strings.TrimSpace(params.Username)
	email := strings.TrimSpace(params.Email)

	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(params.Password) == "" {
		missing = append(missing, "password")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return model.User{}, model.NewValidationError(missing[0], "missing field(s): "+strings.Join(missing, ", "))
	}
	if utf8.RuneCountInString(username) > model.MaxUsernameLength {
		return model.User{}, model.NewValidationError("username", fmt.Sprintf("username must be at most %d characters", model.MaxUsernameLength))
	}
	if utf8.RuneCountInString(email) > model.MaxEmailLength {
		return model.User{}, model.NewValidationError("email", fmt.Sprintf("email must be at most %d characters", model.MaxEmailLength))
	}

	if err := a.ensureAvailable(ctx, "username", username, a.userStore.GetByUsername); err != nil {
		return model.User{}, err
	}
	if err := a.ensureAvailable(ctx, "email", email, a.userStore.GetByEmail); err != nil {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return model.User{}, model.NewValidationError("password", "password is too long")
		}
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", user.ID,
		"username", username)

	user.PasswordHash = ""

	return user, nil
}

// Authenticate checks the credentials and issues an access token.
// Unknown users and wrong passwords fail the same way.
func (a *Auth) Authenticate(ctx context.Context, username, password string) (model.Session, error) {
	username = strings.TrimSpace(username)

	a.logger.Debug("Auth service: starting user login",
		"username", username)

	if username == "" || password == "" {
		return model.Session{}, ErrInvalidCredentials
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown user",
			"username", username)
		return model.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"user_id", user.ID)
		return model.Session{}, ErrInvalidCredentials
	}

	token, err := a.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to generate access token",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	a.logger.Info("Auth service: user login completed successfully",
		"user_id", user.ID)

	user.PasswordHash = ""

	return model.Session{User: user, AccessToken: token}, nil
}

func (a *Auth) ensureAvailable(ctx context.Context, field, value string, lookup func(context.Context, string) (model.User, error)) error {
	_, err := lookup(ctx, value)
	if err == nil {
		a.logger.Info("Auth service: "+field+" already taken",
			field, value)
		return &model.ConflictError{Field: field, Value: value}
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to check "+field,
			field, value,
			"error", err.Error())
		return fmt.Errorf("failed to get user by %s: %w", field, err)
	}
	return nil
}
