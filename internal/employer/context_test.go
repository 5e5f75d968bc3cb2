package employer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContext(t *testing.T) {
	_, ok := IDFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithID(context.Background(), "  employer_acme ")
	id, ok := IDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "employer_acme", id)
}

func TestIDOrDefault(t *testing.T) {
	assert.Equal(t, "employer_demo", IDOrDefault(context.Background(), "employer_demo"))
	assert.Equal(t, "employer_demo", IDOrDefault(WithID(context.Background(), ""), "employer_demo"))
	assert.Equal(t, "employer_x", IDOrDefault(WithID(context.Background(), "employer_x"), "employer_demo"))
}
