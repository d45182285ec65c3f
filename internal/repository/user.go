// Package repository implements the data access layer for the application.
//
// Repositories return structured results and never render responses:
// validation failures carry the full ordered message list, missing entities
// map to NOT_FOUND, ownership violations to FORBIDDEN, and infrastructure
// failures are wrapped so the cause is logged but never shown to callers.
package repository

import (
	"context"
	"crypto/sha256"
	"errors"
	"log/slog"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is a valid bcrypt hash compared against when the user does not
// exist, keeping the login timing profile close to the wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	DoesEmailExist(ctx context.Context, email string) bool
	Register(ctx context.Context, in validation.RegistrationInput) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// passwordKey collapses a password to a fixed-length digest. bcrypt rejects
// inputs over 72 bytes; the digest keeps the whole validated length range
// (up to 100 characters) hashable.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordKey(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// FindByUsername resolves a username case-insensitively. Stored usernames
// are lowercase, so the lookup lowercases its input.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, models.NewNotFoundError("User")
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, internalError(ctx, err)
	}
	user.ResolveAvatar()
	return &user, nil
}

// DoesEmailExist reports whether an account uses the given email address.
// It fails open to false on any error so registration is never blocked by
// an infrastructure hiccup here; the schema's unique index is the backstop.
func (r *userRepository) DoesEmailExist(ctx context.Context, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		middleware.Logger.ErrorContext(ctx, "email existence check failed", slog.String("error", err.Error()))
		return false
	}
	return count > 0
}

// Register cleans and validates the input, collecting every applicable
// message, then hashes the password and persists the user. Nothing is
// persisted on a validation failure.
func (r *userRepository) Register(ctx context.Context, in validation.RegistrationInput) (*models.User, error) {
	defer observability.TrackQuery("register", "users")()

	cleaned := validation.CleanRegistration(in)
	errs := validation.ValidateRegistration(cleaned)

	// Uniqueness is only looked up for fields that passed their format
	// checks. This is a deliberate check-then-act: two concurrent
	// registrations can both pass, and the unique index merely narrows
	// that window.
	if validation.UsernameWellFormed(cleaned.Username) {
		taken, err := r.usernameTaken(ctx, cleaned.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, "That username is already taken.")
		}
	}
	if validation.EmailWellFormed(cleaned.Email) && r.DoesEmailExist(ctx, cleaned.Email) {
		errs = append(errs, "That email is already being used.")
	}

	if len(errs) > 0 {
		return nil, models.NewValidationError(errs...)
	}

	hashed, err := HashPassword(cleaned.Password)
	if err != nil {
		return nil, internalError(ctx, err)
	}

	user := &models.User{
		Username: cleaned.Username,
		Email:    cleaned.Email,
		Password: hashed,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, internalError(ctx, err)
	}

	user.ResolveAvatar()
	return user, nil
}

// Authenticate verifies a username/password pair. Any mismatch yields the
// same generic error so callers cannot enumerate accounts.
func (r *userRepository) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	invalid := models.NewUnauthorizedError("Invalid username/password.")

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), passwordKey(password))
			return nil, invalid
		}
		return nil, internalError(ctx, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordKey(password)); err != nil {
		return nil, invalid
	}

	user.ResolveAvatar()
	return &user, nil
}

func (r *userRepository) usernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, internalError(ctx, err)
	}
	return count > 0, nil
}
