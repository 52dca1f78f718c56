package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	base := Record{"email": "a@x.com", "name": "Ann"}

	t.Run("update wins on present key", func(t *testing.T) {
		got := Merge(base, Record{"email": "b@x.com"})
		assert.Equal(t, Record{"email": "b@x.com", "name": "Ann"}, got)
	})

	t.Run("keys absent from base are dropped", func(t *testing.T) {
		got := Merge(base, Record{"phone": "555"})
		assert.Equal(t, Record{"email": "a@x.com", "name": "Ann"}, got)
		assert.NotContains(t, got, "phone")
	})

	t.Run("empty update", func(t *testing.T) {
		assert.Equal(t, base, Merge(base, nil))
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		upd := Record{"email": "b@x.com", "phone": "555"}
		_ = Merge(base, upd)
		assert.Equal(t, Record{"email": "a@x.com", "name": "Ann"}, base)
		assert.Len(t, upd, 2)
	})
}

func TestRecord_Keys(t *testing.T) {
	r := Record{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
}

func TestRecord_Clone(t *testing.T) {
	r := Record{"a": 1}
	c := r.Clone()
	c["a"] = 2
	assert.Equal(t, 1, r["a"])
}

type accountUpdate struct {
	Email    *string
	Nickname *string
	Note     *string
}

var accountUpdateSchema = Schema[accountUpdate]{
	Type: "accountUpdate",
	Fields: []Field[accountUpdate]{
		{Name: "email", Kind: KindString, Nullable: true, Value: func(u accountUpdate) any { return Opt(u.Email) }},
		{Name: "nickname", Kind: KindString, Nullable: true, Value: func(u accountUpdate) any { return Opt(u.Nickname) }},
		{Name: "note", Kind: KindString, Nullable: true, Value: func(u accountUpdate) any { return Opt(u.Note) }},
	},
}

func TestPatch(t *testing.T) {
	a := sampleAccount()
	a.Nickname = nil

	got, err := Patch(accountSchema, a, accountUpdateSchema, accountUpdate{
		Email:    strPtr("b@x.com"),
		Nickname: strPtr("annie"),
		Note:     strPtr("dropped"),
	})
	require.NoError(t, err)

	assert.Equal(t, "b@x.com", got.Email)
	// nickname was null on the base object, so the base record has no key for it
	assert.Nil(t, got.Nickname)
	assert.Equal(t, a.FullName, got.FullName)
	assert.Equal(t, a.Balance, got.Balance)
}
