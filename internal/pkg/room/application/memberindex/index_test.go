package memberindex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	room "go-parley/internal/pkg/room/domain"
)

type staticLister struct {
	memberships []room.Membership
	err         error
}

func (s staticLister) AllMemberships(context.Context) ([]room.Membership, error) {
	return s.memberships, s.err
}

func TestLoadAllBuildsIndex(t *testing.T) {
	idx := New()
	err := idx.LoadAll(context.Background(), staticLister{memberships: []room.Membership{
		{RoomID: "r1", UserID: "alice"},
		{RoomID: "r1", UserID: "bob"},
		{RoomID: "r2", UserID: "alice"},
	}})
	require.NoError(t, err)

	assert.True(t, idx.IsMember("r1", "alice"))
	assert.True(t, idx.IsMember("r1", "bob"))
	assert.False(t, idx.IsMember("r2", "bob"))
	assert.Equal(t, 2, idx.Count("r1"))
	assert.ElementsMatch(t, []string{"r1", "r2"}, idx.RoomsOf("alice"))
}

func TestLoadAllReplacesPreviousContents(t *testing.T) {
	idx := New()
	idx.Join("stale", "alice")

	require.NoError(t, idx.LoadAll(context.Background(), staticLister{memberships: []room.Membership{
		{RoomID: "fresh", UserID: "alice"},
	}}))

	assert.False(t, idx.IsMember("stale", "alice"))
	assert.True(t, idx.IsMember("fresh", "alice"))
}

func TestLoadAllError(t *testing.T) {
	idx := New()
	err := idx.LoadAll(context.Background(), staticLister{err: errors.New("db down")})
	assert.Error(t, err)
}

func TestJoinLeave(t *testing.T) {
	idx := New()
	idx.Join("r1", "alice")
	assert.True(t, idx.IsMember("r1", "alice"))

	idx.Leave("r1", "alice")
	assert.False(t, idx.IsMember("r1", "alice"))
	assert.Equal(t, 0, idx.Count("r1"))
}

func TestLeaveUnknownRoomIsNoop(t *testing.T) {
	idx := New()
	idx.Leave("ghost", "alice")
	assert.Equal(t, 0, idx.Count("ghost"))
}

func TestDropRoom(t *testing.T) {
	idx := New()
	idx.Join("r1", "alice")
	idx.Join("r1", "bob")

	idx.DropRoom("r1")

	assert.False(t, idx.IsMember("r1", "alice"))
	assert.Empty(t, idx.Members("r1"))
	assert.Empty(t, idx.RoomsOf("bob"))
}
