package services

import (
	"errors"
	"fmt"

	"blogicum/app/models"
	"blogicum/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt fails. The
// message does not say which of the two fields was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService handles registration, login checks and profile updates
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(username, email, firstName, lastName, password string) (*models.User, error) {
	if password == "" {
		return nil, fmt.Errorf("invalid user: password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair and returns the user on
// success.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetByUsername retrieves a user by username
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// UpdateProfile saves changes to a user's profile fields. The password
// hash is preserved; changing the password is not part of profile
// editing.
func (s *UserService) UpdateProfile(user *models.User) error {
	existing, err := s.userRepo.GetByID(user.ID)
	if err != nil {
		return err
	}
	user.PasswordHash = existing.PasswordHash
	user.CreatedAt = existing.CreatedAt

	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	return s.userRepo.Update(user)
}
