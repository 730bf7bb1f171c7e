package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUndeliverableEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"普通邮箱", "user@example.com", false},
		{"GitHub noreply 合成邮箱", "12345+octocat@users.noreply.github.com", true},
		{"Gmail", "someone@gmail.com", false},
		{"主域名不同", "user@users.noreply.github.com.evil.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUndeliverableEmail(tt.email))
		})
	}
}
