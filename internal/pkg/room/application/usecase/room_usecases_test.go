package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-parley/internal/pkg/room/application/memberindex"
	room "go-parley/internal/pkg/room/domain"
)

// fakeRoomRepo is an in-memory room repository for use case tests.
type fakeRoomRepo struct {
	rooms   map[string]room.Room
	members map[string]map[string]time.Time // roomID -> userID -> joinedAt
	nextID  int

	failCreate    bool
	failAddMember bool
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:   make(map[string]room.Room),
		members: make(map[string]map[string]time.Time),
	}
}

func (f *fakeRoomRepo) CreateWithCreator(_ context.Context, r room.Room) (*room.Room, error) {
	if f.failCreate {
		return nil, errors.New("insert failed")
	}
	f.nextID++
	r.ID = "room-" + string(rune('0'+f.nextID))
	f.rooms[r.ID] = r
	f.members[r.ID] = map[string]time.Time{r.CreatedBy: r.CreatedAt}
	return &r, nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id string) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRoomRepo) DeleteCascade(_ context.Context, roomID string) error {
	delete(f.rooms, roomID)
	delete(f.members, roomID)
	return nil
}

func (f *fakeRoomRepo) AddMember(_ context.Context, roomID, userID string) error {
	if f.failAddMember {
		return errors.New("insert failed")
	}
	set := f.members[roomID]
	if set == nil {
		set = make(map[string]time.Time)
		f.members[roomID] = set
	}
	if _, ok := set[userID]; ok {
		return room.ErrAlreadyMember
	}
	set[userID] = time.Now()
	return nil
}

func (f *fakeRoomRepo) RemoveMember(_ context.Context, roomID, userID string) error {
	set := f.members[roomID]
	if _, ok := set[userID]; !ok {
		return room.ErrNotMember
	}
	delete(set, userID)
	return nil
}

func (f *fakeRoomRepo) Members(_ context.Context, roomID string) ([]room.Member, error) {
	var out []room.Member
	for userID, joined := range f.members[roomID] {
		out = append(out, room.Member{UserID: userID, Username: userID, JoinedAt: joined})
	}
	return out, nil
}

func (f *fakeRoomRepo) MemberCount(_ context.Context, roomID string) (int, error) {
	return len(f.members[roomID]), nil
}

func (f *fakeRoomRepo) AllMemberships(_ context.Context) ([]room.Membership, error) {
	var out []room.Membership
	for roomID, set := range f.members {
		for userID, joined := range set {
			out = append(out, room.Membership{RoomID: roomID, UserID: userID, JoinedAt: joined})
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) RoomsForUser(_ context.Context, userID string) ([]room.Summary, error) {
	var out []room.Summary
	for roomID, set := range f.members {
		if _, ok := set[userID]; ok {
			out = append(out, room.Summary{Room: f.rooms[roomID], MemberCount: len(set)})
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) SearchByName(_ context.Context, q string) ([]room.Summary, error) {
	var out []room.Summary
	for id, r := range f.rooms {
		_ = q
		out = append(out, room.Summary{Room: r, MemberCount: len(f.members[id])})
	}
	return out, nil
}

func TestCreateRoomMakesCreatorAMember(t *testing.T) {
	repo := newFakeRoomRepo()
	idx := memberindex.New()
	uc := NewCreateRoomUseCase(repo, idx)

	created, err := uc.Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	require.NoError(t, err)

	count, err := repo.MemberCount(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, idx.IsMember(created.ID, "alice"))
}

func TestCreateRoomEmptyName(t *testing.T) {
	uc := NewCreateRoomUseCase(newFakeRoomRepo(), memberindex.New())

	_, err := uc.Execute(context.Background(), CreateRoomInput{Name: "   ", CreatorID: "alice"})
	assert.ErrorIs(t, err, room.ErrEmptyName)
}

func TestCreateRoomFailureLeavesIndexUntouched(t *testing.T) {
	repo := newFakeRoomRepo()
	repo.failCreate = true
	idx := memberindex.New()
	uc := NewCreateRoomUseCase(repo, idx)

	_, err := uc.Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, idx.RoomsOf("alice"))
}

func TestJoinRoom(t *testing.T) {
	repo := newFakeRoomRepo()
	idx := memberindex.New()
	created, err := NewCreateRoomUseCase(repo, idx).Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	require.NoError(t, err)

	uc := NewJoinRoomUseCase(repo, idx)
	require.NoError(t, uc.Execute(context.Background(), JoinRoomInput{RoomID: created.ID, UserID: "bob"}))
	assert.True(t, idx.IsMember(created.ID, "bob"))

	err = uc.Execute(context.Background(), JoinRoomInput{RoomID: created.ID, UserID: "bob"})
	assert.ErrorIs(t, err, room.ErrAlreadyMember)
}

func TestJoinUnknownRoom(t *testing.T) {
	uc := NewJoinRoomUseCase(newFakeRoomRepo(), memberindex.New())

	err := uc.Execute(context.Background(), JoinRoomInput{RoomID: "ghost", UserID: "bob"})
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestJoinFailureLeavesIndexUntouched(t *testing.T) {
	repo := newFakeRoomRepo()
	idx := memberindex.New()
	created, err := NewCreateRoomUseCase(repo, idx).Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	require.NoError(t, err)

	repo.failAddMember = true
	err = NewJoinRoomUseCase(repo, idx).Execute(context.Background(), JoinRoomInput{RoomID: created.ID, UserID: "bob"})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, idx.IsMember(created.ID, "bob"))
}

func TestCreatorCannotLeave(t *testing.T) {
	repo := newFakeRoomRepo()
	idx := memberindex.New()
	created, err := NewCreateRoomUseCase(repo, idx).Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	require.NoError(t, err)

	err = NewLeaveRoomUseCase(repo, idx).Execute(context.Background(), LeaveRoomInput{RoomID: created.ID, UserID: "alice"})
	assert.ErrorIs(t, err, room.ErrCreatorCannotLeave)
	assert.True(t, idx.IsMember(created.ID, "alice"))
}

func TestLeaveRoom(t *testing.T) {
	repo := newFakeRoomRepo()
	idx := memberindex.New()
	created, err := NewCreateRoomUseCase(repo, idx).Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	require.NoError(t, err)
	require.NoError(t, NewJoinRoomUseCase(repo, idx).Execute(context.Background(), JoinRoomInput{RoomID: created.ID, UserID: "bob"}))

	uc := NewLeaveRoomUseCase(repo, idx)
	require.NoError(t, uc.Execute(context.Background(), LeaveRoomInput{RoomID: created.ID, UserID: "bob"}))
	assert.False(t, idx.IsMember(created.ID, "bob"))

	err = uc.Execute(context.Background(), LeaveRoomInput{RoomID: created.ID, UserID: "bob"})
	assert.ErrorIs(t, err, room.ErrNotMember)
}

func TestOnlyCreatorDeletes(t *testing.T) {
	repo := newFakeRoomRepo()
	idx := memberindex.New()
	created, err := NewCreateRoomUseCase(repo, idx).Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	require.NoError(t, err)
	require.NoError(t, NewJoinRoomUseCase(repo, idx).Execute(context.Background(), JoinRoomInput{RoomID: created.ID, UserID: "bob"}))

	uc := NewDeleteRoomUseCase(repo, idx)
	err = uc.Execute(context.Background(), DeleteRoomInput{RoomID: created.ID, UserID: "bob"})
	assert.ErrorIs(t, err, room.ErrNotCreator)

	require.NoError(t, uc.Execute(context.Background(), DeleteRoomInput{RoomID: created.ID, UserID: "alice"}))
	count, err := repo.MemberCount(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, idx.IsMember(created.ID, "alice"))

	err = uc.Execute(context.Background(), DeleteRoomInput{RoomID: created.ID, UserID: "alice"})
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestGetRoomDetails(t *testing.T) {
	repo := newFakeRoomRepo()
	idx := memberindex.New()
	created, err := NewCreateRoomUseCase(repo, idx).Execute(context.Background(), CreateRoomInput{Name: "general", CreatorID: "alice"})
	require.NoError(t, err)

	details, err := NewGetRoomDetailsUseCase(repo).Execute(context.Background(), GetRoomDetailsInput{RoomID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "general", details.Name)
	require.Len(t, details.Members, 1)
	assert.Equal(t, "alice", details.Members[0].UserID)
}
