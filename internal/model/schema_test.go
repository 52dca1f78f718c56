package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger/internal/record"
)

func ptr[T any](v T) *T { return &v }

func TestUserSchema_Columns(t *testing.T) {
	assert.Equal(t,
		[]string{"uuid", "email", "first_name", "last_name", "phone", "avatar_key", "verified", "created_at"},
		UserSchema.Columns(),
	)
}

func TestUserSchema_RoundTrip(t *testing.T) {
	u := User{
		UUID:          uuid.New(),
		Email:         "a@x.com",
		FirstName:     "Ann",
		LastName:      "Lee",
		Phone:         ptr("555-0100"),
		AvatarKey:     ptr("avatars/a.png"),
		EmailVerified: true,
		CreatedAt:     time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	got, err := UserSchema.ToObject(UserSchema.ToRecord(u))
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestCreateUserSchema_ToRecord(t *testing.T) {
	id := uuid.New()
	rec := CreateUserSchema.ToRecord(CreateUser{UUID: id, Email: "a@x.com", FirstName: "Ann", LastName: "Lee"})

	assert.Equal(t, record.Record{
		"uuid":       id,
		"email":      "a@x.com",
		"first_name": "Ann",
		"last_name":  "Lee",
	}, rec)
}

func TestUpdateUserSchema_ToRecord(t *testing.T) {
	rec := UpdateUserSchema.ToRecord(UpdateUser{Email: ptr("b@x.com"), EmailVerified: ptr(false)})

	assert.Equal(t, record.Record{"email": "b@x.com", "verified": false}, rec)
	assert.Empty(t, UpdateUserSchema.ToRecord(UpdateUser{}))
}

func TestUserSchema_MissingRequired(t *testing.T) {
	_, err := UserSchema.ToObject(record.Record{
		"uuid":       uuid.NewString(),
		"first_name": "Ann",
		"last_name":  "Lee",
		"verified":   false,
		"created_at": time.Now(),
	})
	assert.ErrorIs(t, err, record.ErrConstruction)
}

func TestPatchUser(t *testing.T) {
	u := User{
		UUID:      uuid.New(),
		Email:     "a@x.com",
		FirstName: "Ann",
		LastName:  "Lee",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	got, err := record.Patch(UserSchema, u, UpdateUserSchema, UpdateUser{
		Email:         ptr("b@x.com"),
		EmailVerified: ptr(true),
		Phone:         ptr("555"),
	})
	require.NoError(t, err)

	assert.Equal(t, "b@x.com", got.Email)
	assert.True(t, got.EmailVerified)
	assert.Equal(t, "Ann", got.FirstName)
	// phone was null on the stored user, so the merge drops it
	assert.Nil(t, got.Phone)
}

func TestUpdateUser_IsEmpty(t *testing.T) {
	assert.True(t, UpdateUser{}.IsEmpty())
	assert.False(t, UpdateUser{FirstName: ptr("x")}.IsEmpty())
}
