package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/constants"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

// TokenIssuer mints and resolves bearer credentials.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
	Resolve(token string) (auth.Principal, error)
}

// AuthService handles registration, login and credential resolution.
type AuthService struct {
	store  repository.Store
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	FullName string
	Password string
	Weight   *int
	Height   *int
}

// Register creates a new user with a bcrypt password hash.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if (input.Weight != nil && *input.Weight < 0) || (input.Height != nil && *input.Height < 0) {
		return nil, ErrNegativeMeasure
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	} else if err != nil {
		return nil, internalFailure("hash password", err)
	}

	user := &models.User{
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: string(hashedPassword),
		Weight:       input.Weight,
		Height:       input.Height,
	}

	err = inTransaction(s.store, func(tx repository.Store) error {
		if _, err := tx.Users().FindByUsername(username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return storeFailure("check username", err)
		}

		if err := tx.Users().Create(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return storeFailure("create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is an authenticated user and a bearer token for it.
type LoginResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.store.Users().FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		return nil, lookupFailure("find user", err, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// IssueToken mints an access token for user.
func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.Issue(auth.Principal{ID: user.ID, Username: user.Username})
	if err != nil {
		return "", time.Time{}, storeFailure("issue token", err)
	}
	return token, expiresAt, nil
}

// Resolve turns a bearer credential into a principal.
func (s *AuthService) Resolve(credential string) (auth.Principal, error) {
	p, err := s.tokens.Resolve(credential)
	if err != nil {
		return auth.Principal{}, ErrUnauthenticated
	}
	return p, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.store.Users().FindByID(id)
	if err != nil {
		return nil, lookupFailure("find user", err, ErrUserNotFound)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *AuthService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.store.Users().FindByUsername(username)
	if err != nil {
		return nil, lookupFailure("find user", err, ErrUserNotFound)
	}
	return user, nil
}
