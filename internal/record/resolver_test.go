package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "uuid", want: "uuid"},
		{in: "firstName", want: "first_name"},
		{in: "emailVerifiedAt", want: "email_verified_at"},
		{in: "ID", want: "_i_d"},
		{in: "Name", want: "_name"},
		{in: "userID", want: "user_i_d"},
		{in: "already_snake", want: "already_snake"},
		{in: "addr2Line", want: "addr2_line"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "first_name", ColumnName("firstName", ""))
	assert.Equal(t, "verified", ColumnName("emailVerified", "verified"))
	// overrides are not transformed
	assert.Equal(t, "LegacyCol", ColumnName("legacy", "LegacyCol"))
}

func TestColumnName_Deterministic(t *testing.T) {
	f := Field[struct{}]{Name: "createdAt"}
	first := f.Key()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, f.Key())
	}
	assert.Equal(t, "created_at", first)
}
