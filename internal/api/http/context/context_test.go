package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager()
	userID := uuid.New()

	ctx := m.SetUserIDToContext(context.Background(), userID)
	got, ok := m.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestManager_Missing(t *testing.T) {
	t.Parallel()

	m := NewManager()

	_, ok := m.GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = m.GetUserIDFromContext(m.SetUserIDToContext(context.Background(), uuid.Nil))
	assert.False(t, ok)

	//nolint:staticcheck // a foreign string key must not collide with the manager key
	ctx := context.WithValue(context.Background(), "user_id", uuid.New())
	_, ok = m.GetUserIDFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_Overwrite(t *testing.T) {
	t.Parallel()

	m := NewManager()
	first, second := uuid.New(), uuid.New()

	ctx := m.SetUserIDToContext(m.SetUserIDToContext(context.Background(), first), second)
	got, ok := m.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, second, got)
}
