package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthurv/ticketd/pkg/model"
)

func TestSetGet(t *testing.T) {
	id := FromUser(&model.User{ID: 7, Handle: "alice", Role: model.RoleAdministrator})

	ctx := Set(context.Background(), id)
	got, ok := Get(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "alice", got.Handle)
	assert.True(t, got.IsAdmin())
}

func TestGetAnonymous(t *testing.T) {
	got, ok := Get(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestContextsAreIsolated(t *testing.T) {
	base := context.Background()
	a := Set(base, FromUser(&model.User{ID: 1, Handle: "a", Role: model.RoleStandard}))
	b := Set(base, FromUser(&model.User{ID: 2, Handle: "b", Role: model.RoleStandard}))

	idA, _ := Get(a)
	idB, _ := Get(b)
	assert.Equal(t, "a", idA.Handle)
	assert.Equal(t, "b", idB.Handle)

	_, ok := Get(base)
	assert.False(t, ok)
}
