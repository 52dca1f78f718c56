package model

import (
	"time"

	"github.com/google/uuid"

	"ledger/internal/record"
)

// UsersTable is the table backing User.
const UsersTable = "users"

// UserSchema maps User to users rows.
var UserSchema = record.Schema[User]{
	Type: "User",
	Fields: []record.Field[User]{
		{Name: "uuid", Kind: record.KindUUID, Value: func(u User) any { return u.UUID }},
		{Name: "email", Kind: record.KindString, Value: func(u User) any { return u.Email }},
		{Name: "firstName", Kind: record.KindString, Value: func(u User) any { return u.FirstName }},
		{Name: "lastName", Kind: record.KindString, Value: func(u User) any { return u.LastName }},
		{Name: "phone", Kind: record.KindString, Nullable: true, Value: func(u User) any { return record.Opt(u.Phone) }},
		{Name: "avatarKey", Kind: record.KindString, Nullable: true, Value: func(u User) any { return record.Opt(u.AvatarKey) }},
		{Name: "emailVerified", Column: "verified", Kind: record.KindBool, Value: func(u User) any { return u.EmailVerified }},
		{Name: "createdAt", Kind: record.KindTime, Value: func(u User) any { return u.CreatedAt }},
	},
	New: func(a record.Args) (User, error) {
		return User{
			UUID:          record.Arg[uuid.UUID](a, 0),
			Email:         record.Arg[string](a, 1),
			FirstName:     record.Arg[string](a, 2),
			LastName:      record.Arg[string](a, 3),
			Phone:         record.OptArg[string](a, 4),
			AvatarKey:     record.OptArg[string](a, 5),
			EmailVerified: record.Arg[bool](a, 6),
			CreatedAt:     record.Arg[time.Time](a, 7),
		}, nil
	},
}

// CreateUserSchema maps CreateUser to the columns of an insert.
var CreateUserSchema = record.Schema[CreateUser]{
	Type: "CreateUser",
	Fields: []record.Field[CreateUser]{
		{Name: "uuid", Kind: record.KindUUID, Value: func(u CreateUser) any { return u.UUID }},
		{Name: "email", Kind: record.KindString, Value: func(u CreateUser) any { return u.Email }},
		{Name: "firstName", Kind: record.KindString, Value: func(u CreateUser) any { return u.FirstName }},
		{Name: "lastName", Kind: record.KindString, Value: func(u CreateUser) any { return u.LastName }},
		{Name: "phone", Kind: record.KindString, Nullable: true, Value: func(u CreateUser) any { return record.Opt(u.Phone) }},
	},
	New: func(a record.Args) (CreateUser, error) {
		return CreateUser{
			UUID:      record.Arg[uuid.UUID](a, 0),
			Email:     record.Arg[string](a, 1),
			FirstName: record.Arg[string](a, 2),
			LastName:  record.Arg[string](a, 3),
			Phone:     record.OptArg[string](a, 4),
		}, nil
	},
}

// UpdateUserSchema maps UpdateUser onto the same columns as UserSchema.
var UpdateUserSchema = record.Schema[UpdateUser]{
	Type: "UpdateUser",
	Fields: []record.Field[UpdateUser]{
		{Name: "email", Kind: record.KindString, Nullable: true, Value: func(u UpdateUser) any { return record.Opt(u.Email) }},
		{Name: "firstName", Kind: record.KindString, Nullable: true, Value: func(u UpdateUser) any { return record.Opt(u.FirstName) }},
		{Name: "lastName", Kind: record.KindString, Nullable: true, Value: func(u UpdateUser) any { return record.Opt(u.LastName) }},
		{Name: "phone", Kind: record.KindString, Nullable: true, Value: func(u UpdateUser) any { return record.Opt(u.Phone) }},
		{Name: "avatarKey", Kind: record.KindString, Nullable: true, Value: func(u UpdateUser) any { return record.Opt(u.AvatarKey) }},
		{Name: "emailVerified", Column: "verified", Kind: record.KindBool, Nullable: true, Value: func(u UpdateUser) any { return record.Opt(u.EmailVerified) }},
	},
	New: func(a record.Args) (UpdateUser, error) {
		return UpdateUser{
			Email:         record.OptArg[string](a, 0),
			FirstName:     record.OptArg[string](a, 1),
			LastName:      record.OptArg[string](a, 2),
			Phone:         record.OptArg[string](a, 3),
			AvatarKey:     record.OptArg[string](a, 4),
			EmailVerified: record.OptArg[bool](a, 5),
		}, nil
	},
}
