//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/tasktracker-server/internal/model"
	repo "github.com/dtroode/tasktracker-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "tasktracker_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/tasktracker_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: []byte("$2a$10$hash"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.Ping(ctx))

	ur := repo.NewUserRepository(conn)
	u := newUser("user@example.com")

	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)

	_, err = ur.Create(ctx, newUser("USER@example.com"))
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	byEmail, err := ur.GetByEmail(ctx, "User@Example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)

	byID.Name = "Renamed"
	byID.AvatarKey = "avatars/" + u.ID.String()
	byID.UpdatedAt = time.Now().UTC()
	updated, err := ur.Update(ctx, byID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, byID.AvatarKey, updated.AvatarKey)

	require.NoError(t, ur.UpdatePassword(ctx, u.ID, []byte("new-hash"), time.Now().UTC()))
	byID, err = ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []byte("new-hash"), byID.PasswordHash)

	require.ErrorIs(t, ur.UpdatePassword(ctx, uuid.New(), []byte("x"), time.Now()), model.ErrNotFound)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	tr := repo.NewTaskRepository(conn)

	owner, err := ur.Create(ctx, newUser("owner@example.com"))
	require.NoError(t, err)
	other, err := ur.Create(ctx, newUser("other@example.com"))
	require.NoError(t, err)

	due := model.Date{Year: 2024, Month: time.March, Day: 1}
	now := time.Now().UTC().Truncate(time.Microsecond)

	var ids []uuid.UUID
	for i, title := range []string{"first", "second", "third"} {
		task := model.Task{
			ID:        uuid.New(),
			OwnerID:   owner.ID,
			Title:     title,
			Priority:  model.PriorityMedium,
			CreatedAt: now.Add(time.Duration(-i) * time.Minute),
			UpdatedAt: now.Add(time.Duration(-i) * time.Minute),
		}
		if i == 0 {
			task.DueDate = &due
		}
		saved, err := tr.Create(ctx, task)
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	_, err = tr.Create(ctx, model.Task{
		ID: uuid.New(), OwnerID: other.ID, Title: "foreign", Priority: model.PriorityLow,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	list, err := tr.GetByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, task := range list {
		require.Equal(t, ids[i], task.ID, "tasks come back in insertion order")
		require.Equal(t, owner.ID, task.OwnerID)
	}

	got, err := tr.GetByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	require.Equal(t, due, *got.DueDate)

	got.Completed = true
	got.DueDate = nil
	got.Priority = model.PriorityHigh
	got.UpdatedAt = now.Add(time.Hour)
	updated, err := tr.Update(ctx, got)
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Nil(t, updated.DueDate)
	require.Equal(t, model.PriorityHigh, updated.Priority)
	require.True(t, updated.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, tr.Delete(ctx, ids[1]))
	require.ErrorIs(t, tr.Delete(ctx, ids[1]), model.ErrNotFound)

	_, err = tr.GetByID(ctx, ids[1])
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = tr.Update(ctx, model.Task{ID: uuid.New(), Title: "x", Priority: model.PriorityLow, UpdatedAt: now})
	require.ErrorIs(t, err, model.ErrNotFound)
}
