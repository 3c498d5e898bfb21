package session_test

import (
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestIdentityComplete(t *testing.T) {
	tests := []struct {
		name     string
		identity session.Identity
		expected bool
	}{
		{"all fields", session.Identity{ID: "1", Email: "a@x.com", Name: "A"}, true},
		{"missing id", session.Identity{Email: "a@x.com", Name: "A"}, false},
		{"missing email", session.Identity{ID: "1", Name: "A"}, false},
		{"missing name", session.Identity{ID: "1", Email: "a@x.com"}, false},
		{"empty", session.Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.identity.Complete())
		})
	}
}

func TestIdentitySanitized(t *testing.T) {
	identity := session.Identity{ID: "1", Email: "a@x.com", Name: "A", Password: "hunter2"}

	clean := identity.Sanitized()
	assert.Empty(t, clean.Password)
	assert.Equal(t, "1", clean.ID)

	// the receiver is untouched
	assert.Equal(t, "hunter2", identity.Password)
}
