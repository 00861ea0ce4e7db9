package fill

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePassword(t *testing.T) {
	p1 := GeneratePassword()
	p2 := GeneratePassword()

	assert.True(t, strings.HasPrefix(p1, "Aa1@"))
	assert.Len(t, p1, 14)
	assert.NotEqual(t, p1, p2, "credentials must not repeat across runs")
}
