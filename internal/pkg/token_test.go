package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNumericCode(t *testing.T) {
	code, err := GenerateNumericCode(6)
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestGenerateState(t *testing.T) {
	state1, err := GenerateState()
	assert.NoError(t, err)
	assert.NotEmpty(t, state1)

	state2, err := GenerateState()
	assert.NoError(t, err)
	assert.NotEqual(t, state1, state2)
}
