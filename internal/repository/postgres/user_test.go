package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewTaskRepository(t *testing.T) {
	db := &Connection{}
	repo := NewTaskRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestConnection_WithTimeout(t *testing.T) {
	c := &Connection{queryTimeout: 50 * time.Millisecond}
	ctx, cancel := c.withTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 20*time.Millisecond)

	zero := &Connection{}
	ctx, cancel = zero.withTimeout(context.Background())
	defer cancel()
	deadline, ok = ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(defaultQueryTimeout), deadline, 20*time.Millisecond)
}

func TestConnection_PingNilPool(t *testing.T) {
	assert.Error(t, (&Connection{}).Ping(context.Background()))
}
