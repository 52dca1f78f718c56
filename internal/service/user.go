package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ledger/internal/model"
	"ledger/internal/record"
	"ledger/internal/repository"
	"ledger/internal/storage"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrInvalidID    = errors.New("invalid user id")
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidInput = errors.New("invalid user data")
	ErrReaderNil    = errors.New("reader is nil")
	ErrNoAvatar     = errors.New("user has no avatar")
)

var tracer = otel.Tracer("ledger/internal/service")

// newID is swapped in tests.
var newID = uuid.New

// RegisterInput is the payload accepted when creating a user.
type RegisterInput struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
}

// UserListResult is the service-level DTO for a page of users.
type UserListResult struct {
	Items []model.User `json:"data"`
	Page  int          `json:"page"`
	Count int          `json:"count"`
}

// UserService defines the use cases for handling users.
type UserService interface {
	// Register validates the input, checks that the email is free and stores a new user with a fresh UUID.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Get returns a single user by its ID.
	Get(ctx context.Context, id string) (*model.User, error)

	// GetByEmail returns a single user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns one page of users, newest first.
	List(ctx context.Context, page, size int) (*UserListResult, error)

	// Update applies a partial update after validating the merged result.
	Update(ctx context.Context, id string, upd model.UpdateUser) (*model.User, error)

	// Delete removes a user and its avatar object.
	Delete(ctx context.Context, id string) error

	// UploadAvatar stores an avatar image and records its key on the user, rolling the object back if the DB write fails.
	UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.User, error)

	// AvatarURL returns a time-limited download URL for the user's avatar.
	AvatarURL(ctx context.Context, id string) (string, error)

	// IsUnique reports whether neither the ID nor the email is in use.
	IsUnique(ctx context.Context, id, email string) (bool, error)
}

// userService is a concrete implementation of UserService.
type userService struct {
	store        storage.Storage
	repo         repository.UserRepository
	avatarExpiry time.Duration
}

// NewUserService constructs a new UserService.
func NewUserService(store storage.Storage, repo repository.UserRepository, avatarExpiry time.Duration) UserService {
	return &userService{store: store, repo: repo, avatarExpiry: avatarExpiry}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer func() { finish(span, err) }()

	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validate(in.Email, in.FirstName, in.LastName); err != nil {
		return nil, err
	}

	id := newID()
	span.SetAttributes(attribute.String("user.uuid", id.String()))

	unique, err := s.repo.IsUnique(ctx, id, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check uniqueness: %w", err)
	}
	if !unique {
		return nil, ErrEmailTaken
	}

	u, err := s.repo.Create(ctx, model.CreateUser{
		UUID:      id,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "UserService.Get")
	defer func() { finish(span, err) }()

	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, uid)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "UserService.GetByEmail")
	defer func() { finish(span, err) }()

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// List drains one page of the repository listing.
func (s *userService) List(ctx context.Context, page, size int) (_ *UserListResult, err error) {
	ctx, span := tracer.Start(ctx, "UserService.List")
	defer func() { finish(span, err) }()

	items := make([]model.User, 0)
	for u, err := range s.repo.List(ctx, repository.PageQuery{Page: page, Size: size}) {
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if page < 0 {
		page = 0
	}
	return &UserListResult{Items: items, Page: page, Count: len(items)}, nil
}

func (s *userService) Update(ctx context.Context, id string, upd model.UpdateUser) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "UserService.Update")
	defer func() { finish(span, err) }()

	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.find(ctx, uid)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return current, nil
	}
	upd.Email = trimmed(upd.Email)
	upd.FirstName = trimmed(upd.FirstName)
	upd.LastName = trimmed(upd.LastName)
	upd.Phone = trimmed(upd.Phone)

	// Validate what the row would look like after the update.
	merged, err := record.Patch(model.UserSchema, *current, model.UpdateUserSchema, upd)
	if err != nil {
		return nil, fmt.Errorf("merge update: %w", err)
	}
	if err := validate(merged.Email, merged.FirstName, merged.LastName); err != nil {
		return nil, err
	}

	if merged.Email != current.Email {
		other, err := s.repo.FindByEmail(ctx, merged.Email)
		switch {
		case err == nil && other.UUID != uid:
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	u, err := s.repo.Update(ctx, uid, upd)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, notFound(err)
	}
	return u, nil
}

// Delete removes the row, then the avatar object. A failed object delete leaves an orphan
// that is recorded on the span; the user is still gone.
func (s *userService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "UserService.Delete")
	defer func() { finish(span, err) }()

	uid, err := parseID(id)
	if err != nil {
		return err
	}
	u, err := s.find(ctx, uid)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	if u.AvatarKey != nil {
		if err := s.store.Delete(ctx, *u.AvatarKey); err != nil {
			span.RecordError(fmt.Errorf("delete avatar %s: %w", *u.AvatarKey, err))
		}
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (_ *model.User, err error) {
	ctx, span := tracer.Start(ctx, "UserService.UploadAvatar")
	defer func() { finish(span, err) }()

	if r == nil {
		return nil, ErrReaderNil
	}
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.find(ctx, uid)
	if err != nil {
		return nil, err
	}

	key := filepath.ToSlash(filepath.Join("avatars", uid.String()+strings.ToLower(filepath.Ext(filename))))
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	stored, err := s.repo.Update(ctx, uid, model.UpdateUser{AvatarKey: &objInfo.Key})
	if err != nil {
		// The row still points at a replaced object under the same key.
		if current.AvatarKey != nil && *current.AvatarKey == objInfo.Key {
			return nil, fmt.Errorf("db save failed: %w", err)
		}
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// A previous avatar with another extension is now unreferenced.
	if current.AvatarKey != nil && *current.AvatarKey != objInfo.Key {
		if err := s.store.Delete(ctx, *current.AvatarKey); err != nil {
			span.RecordError(fmt.Errorf("delete stale avatar %s: %w", *current.AvatarKey, err))
		}
	}
	return stored, nil
}

func (s *userService) AvatarURL(ctx context.Context, id string) (_ string, err error) {
	ctx, span := tracer.Start(ctx, "UserService.AvatarURL")
	defer func() { finish(span, err) }()

	uid, err := parseID(id)
	if err != nil {
		return "", err
	}
	u, err := s.find(ctx, uid)
	if err != nil {
		return "", err
	}
	if u.AvatarKey == nil {
		return "", ErrNoAvatar
	}
	url, err := s.store.PresignGet(ctx, *u.AvatarKey, s.avatarExpiry)
	if err != nil {
		return "", fmt.Errorf("presign avatar: %w", err)
	}
	return url, nil
}

func (s *userService) IsUnique(ctx context.Context, id, email string) (_ bool, err error) {
	ctx, span := tracer.Start(ctx, "UserService.IsUnique")
	defer func() { finish(span, err) }()

	uid, err := parseID(id)
	if err != nil {
		return false, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return false, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.repo.IsUnique(ctx, uid, email)
}

func (s *userService) find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func parseID(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.Nil, ErrIDRequired
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return uid, nil
}

// notFound translates the repository miss into the service error.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// trimmed strips surrounding whitespace from an optional string field.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func validate(email, firstName, lastName string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: email %q is malformed", ErrInvalidInput, email)
	}
	if firstName == "" || lastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	return nil
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
