package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

const (
	// MaxAvatarSize bounds uploaded avatar images.
	MaxAvatarSize = 2 << 20

	passwordRules = "required,min=8,max=72"
	// bcrypt rejects inputs longer than this many bytes.
	maxPasswordBytes = 72
	dummyPassword = "tasktracker-dummy-password"
)

var errAvatarStorageDisabled = &model.Error{Kind: model.KindNotFound, Message: "avatar storage is not configured"}

// Auth is the credential store: registration, login, profile and password changes.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	sessions  *Session
	storage   model.Storage
	validate  *validator.Validate
	logger    *logger.Logger
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuth creates the auth service. storage may be nil, which disables avatars.
func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	sessions *Session,
	storage model.Storage,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		sessions:  sessions,
		storage:   storage,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and logs them in.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.Session, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = normalizeEmail(params.Email)

	if err := a.validate.Struct(params); err != nil {
		return model.Session{}, validationError(err)
	}
	if len(params.Password) > maxPasswordBytes {
		return model.Session{}, errPasswordTooLong("password")
	}
	if strings.ContainsRune(params.Name, 0) {
		return model.Session{}, model.NewValidationError("name must not contain NUL characters")
	}

	a.logger.Debug("Auth service: starting user registration", "email", params.Email)

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: email already registered", "email", params.Email)
		return model.Session{}, model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email", "email", params.Email, "error", err)
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user", "email", params.Email, "error", err)
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.sessions.Issue(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user registered", "user_id", user.ID)

	return session, nil
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = normalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		// Burn a comparison so unknown emails take as long as wrong passwords.
		_ = a.hasher.Compare(a.getDummyHash(), password)
		a.logger.Info("Auth service: login failed", "email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		a.logger.Info("Auth service: login failed", "email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}

	session, err := a.sessions.Issue(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return session, nil
}

// Me returns the current user.
func (a *Auth) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.NewNotFoundError("user", userID)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// ChangePassword rotates the password. Tokens issued earlier stay valid until they expire.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := a.validate.Var(newPassword, passwordRules); err != nil {
		return model.NewValidationError("new password must be between 8 and 72 characters")
	}
	if len(newPassword) > maxPasswordBytes {
		return errPasswordTooLong("new password")
	}

	user, err := a.Me(ctx, userID)
	if err != nil {
		return err
	}

	if err := a.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return model.ErrInvalidCredentials
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash, a.now().UTC()); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password changed", "user_id", userID)

	return nil
}

// UpdateProfile applies a partial update of name and email.
func (a *Auth) UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.User, error) {
	user, err := a.Me(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := a.validate.Var(name, "required,max=100"); err != nil {
			return model.User{}, model.NewValidationError("name is required and must be at most 100 characters")
		}
		if strings.ContainsRune(name, 0) {
			return model.User{}, model.NewValidationError("name must not contain NUL characters")
		}
		user.Name = name
	}

	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if err := a.validate.Var(email, "required,email,max=255"); err != nil {
			return model.User{}, model.NewValidationError("email %q is not valid", *update.Email)
		}

		if email != user.Email {
			existing, err := a.userStore.GetByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return model.User{}, model.ErrDuplicateEmail
			}
			if err != nil && !errors.Is(err, model.ErrNotFound) {
				return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
			}
		}
		user.Email = email
	}

	user.UpdatedAt = a.now().UTC()
	user, err = a.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	a.logger.Info("Auth service: profile updated", "user_id", userID)

	return user, nil
}

// AvatarsEnabled reports whether avatar uploads are backed by object storage.
func (a *Auth) AvatarsEnabled() bool {
	return a.storage != nil
}

// AvatarURL is the public URL of the user's uploaded avatar, or empty when none exists.
func (a *Auth) AvatarURL(user model.User) string {
	if a.storage == nil || user.AvatarKey == "" {
		return ""
	}
	return "/api/users/" + user.ID.String() + "/avatar"
}

func (a *Auth) UploadAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (model.User, error) {
	if a.storage == nil {
		return model.User{}, errAvatarStorageDisabled
	}
	if size <= 0 || size > MaxAvatarSize {
		return model.User{}, model.NewValidationError("avatar must be between 1 byte and %d bytes", MaxAvatarSize)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return model.User{}, model.NewValidationError("avatar must be an image, got %q", contentType)
	}

	user, err := a.Me(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	key := "avatars/" + userID.String()
	if err := a.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		a.logger.Error("Auth service: failed to upload avatar", "user_id", userID, "error", err)
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user.AvatarKey = key
	user.UpdatedAt = a.now().UTC()
	user, err = a.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetAvatar opens the user's uploaded avatar. The caller closes the reader.
func (a *Auth) GetAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	if a.storage == nil {
		return nil, errAvatarStorageDisabled
	}

	user, err := a.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AvatarKey == "" {
		return nil, model.NewNotFoundError("avatar of user", userID)
	}

	reader, err := a.storage.Download(ctx, user.AvatarKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	return reader, nil
}

func (a *Auth) getDummyHash() []byte {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.Hash(dummyPassword)
	})
	return a.dummyHash
}

func errPasswordTooLong(field string) error {
	return model.NewValidationError("%s must be at most %d bytes", field, maxPasswordBytes)
}

// validationError turns validator failures into a user-facing validation error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return model.NewValidationError("invalid input")
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return model.NewValidationError("%s is required", field)
	case "email":
		return model.NewValidationError("%s must be a valid email address", field)
	case "min":
		return model.NewValidationError("%s must be at least %s characters", field, fe.Param())
	case "max":
		return model.NewValidationError("%s must be at most %s characters", field, fe.Param())
	}
	return model.NewValidationError("%s is invalid", field)
}
