// ABOUTME: Tests for the unary ChatRoomService handlers
// ABOUTME: Covers registration, chat membership, invitations and posts

package room

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/migchat/migchat-server/internal/ident"
	"github.com/migchat/migchat-server/internal/store"
	"github.com/migchat/migchat-server/proto/migchat"
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st, nil)
}

func register(t *testing.T, r *Room, name, short string) uint64 {
	t.Helper()
	info, err := r.Register(context.Background(), &migchat.UserInfo{Name: name, ShortName: short})
	require.NoError(t, err)
	require.NotNil(t, info.Registration)
	return info.Registration.UserID
}

func TestRegister_NewUser(t *testing.T) {
	r := newTestRoom(t)

	info, err := r.Register(context.Background(), &migchat.UserInfo{Name: "Alice Arkham", ShortName: "alice"})
	require.NoError(t, err)
	assert.Equal(t, ident.UserID("Alice Arkham", "alice"), info.Registration.UserID)
	assert.NotZero(t, info.Created)

	u, err := r.store.ReadUser(info.Registration.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Arkham", u.Name)
	assert.True(t, r.presence.contains(u.ID))
}

func TestRegister_Idempotent(t *testing.T) {
	r := newTestRoom(t)

	first, err := r.Register(context.Background(), &migchat.UserInfo{Name: "Alice", ShortName: "a"})
	require.NoError(t, err)
	second, err := r.Register(context.Background(), &migchat.UserInfo{Name: "Alice", ShortName: "a"})
	require.NoError(t, err)

	assert.Equal(t, first.Registration.UserID, second.Registration.UserID)
	assert.Equal(t, first.Created, second.Created, "re-registration keeps the original creation time")
}

func TestRegister_NotifiesSubscribers(t *testing.T) {
	r := newTestRoom(t)
	sub := r.users.attach(999)

	id := register(t, r, "Alice", "a")

	ev := <-sub.ch
	require.NotNil(t, ev.Info)
	assert.Equal(t, id, ev.Info.ID)

	// Second registration of the same user is a presence flip, not an add.
	register(t, r, "Alice", "a")
	ev = <-sub.ch
	assert.Nil(t, ev.Info)
	assert.Equal(t, id, ev.Online)
}

func TestLogout(t *testing.T) {
	r := newTestRoom(t)
	id := register(t, r, "Alice", "a")

	invSub := r.invitations.attach(id)
	watcher := r.users.attach(999)

	res, err := r.Logout(context.Background(), &migchat.Registration{UserID: id})
	require.NoError(t, err)
	assert.True(t, res.OK)

	assert.False(t, r.presence.contains(id))
	select {
	case <-invSub.stop:
	default:
		t.Fatal("logout must cancel the user's subscriptions")
	}

	ev := <-watcher.ch
	assert.Equal(t, id, ev.Offline)
}

func TestCreateChat_Dialog(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	// Both sides propose the same dialog; the member-set hash converges.
	c1, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, AutoEnter: true, DesiredUsers: []uint64{bob},
	})
	require.NoError(t, err)
	c2, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: bob, AutoEnter: true, DesiredUsers: []uint64{alice},
	})
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)
	assert.ElementsMatch(t, []uint64{alice, bob}, c2.Users)
	assert.Empty(t, c2.Description)
}

func TestCreateChat_Named(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")

	c, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Permanent: true, Description: "lobby",
	})
	require.NoError(t, err)
	assert.Equal(t, ident.ChatID("lobby", nil), c.ID)
	assert.True(t, c.Permanent)
	assert.Empty(t, c.Users, "without auto_enter the creator stays outside")

	// Rediscovery by description does not duplicate the chat.
	again, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Description: "lobby",
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
}

func TestCreateChat_AutoEnterJoinsExisting(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	c, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Description: "lobby", AutoEnter: true,
	})
	require.NoError(t, err)

	joined, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: bob, Description: "lobby", AutoEnter: true,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, joined.ID)
	assert.ElementsMatch(t, []uint64{alice, bob}, joined.Users)
}

func TestInviteUser(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	chat, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Description: "lobby", AutoEnter: true,
	})
	require.NoError(t, err)

	inv := &migchat.Invitation{ChatID: chat.ID, FromUserID: alice, ToUserID: bob}

	t.Run("unknown chat", func(t *testing.T) {
		_, err := r.InviteUser(context.Background(), &migchat.Invitation{ChatID: 999, FromUserID: alice, ToUserID: bob})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := r.InviteUser(context.Background(), &migchat.Invitation{ChatID: chat.ID, FromUserID: alice, ToUserID: 999})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("recipient not subscribed", func(t *testing.T) {
		_, err := r.InviteUser(context.Background(), inv)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("delivered", func(t *testing.T) {
		sub := r.invitations.attach(bob)
		res, err := r.InviteUser(context.Background(), inv)
		require.NoError(t, err)
		assert.True(t, res.OK)

		got := <-sub.ch
		assert.Equal(t, chat.ID, got.ChatID)
		assert.Equal(t, alice, got.FromUserID)
	})
}

func TestEnterChat(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	chat, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Description: "lobby", AutoEnter: true,
	})
	require.NoError(t, err)

	_, err = r.EnterChat(context.Background(), &migchat.ChatReference{UserID: bob, ChatID: 999})
	assert.Equal(t, codes.NotFound, status.Code(err))

	res, err := r.EnterChat(context.Background(), &migchat.ChatReference{UserID: bob, ChatID: chat.ID})
	require.NoError(t, err)
	assert.True(t, res.OK)

	// Entering again succeeds without duplicating the member.
	_, err = r.EnterChat(context.Background(), &migchat.ChatReference{UserID: bob, ChatID: chat.ID})
	require.NoError(t, err)

	stored, err := r.store.ReadChat(chat.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{alice, bob}, stored.Users)
}

func TestLeaveChat_EphemeralClosesWhenEmpty(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")

	chat, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Description: "scratch", AutoEnter: true,
	})
	require.NoError(t, err)

	watcher := r.chats.attach(999)

	res, err := r.LeaveChat(context.Background(), &migchat.ChatReference{UserID: alice, ChatID: chat.ID})
	require.NoError(t, err)
	assert.True(t, res.OK)

	_, err = r.store.ReadChat(chat.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	ev := <-watcher.ch
	assert.Equal(t, chat.ID, ev.Closed)
}

func TestLeaveChat_PermanentSurvivesEmpty(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")

	chat, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Permanent: true, Description: "lobby", AutoEnter: true,
	})
	require.NoError(t, err)

	_, err = r.LeaveChat(context.Background(), &migchat.ChatReference{UserID: alice, ChatID: chat.ID})
	require.NoError(t, err)

	stored, err := r.store.ReadChat(chat.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Users)
}

func TestCreatePost(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")
	eve := register(t, r, "Eve", "e")

	chat, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, AutoEnter: true, DesiredUsers: []uint64{bob},
	})
	require.NoError(t, err)

	t.Run("rejects client-supplied id", func(t *testing.T) {
		_, err := r.CreatePost(context.Background(), &migchat.Post{ID: 7, ChatID: chat.ID, UserID: alice})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("persists and fans out to members only", func(t *testing.T) {
		bobSub := r.posts.attach(bob)
		eveSub := r.posts.attach(eve)

		res, err := r.CreatePost(context.Background(), &migchat.Post{
			ChatID: chat.ID, UserID: alice, Text: "hello",
		})
		require.NoError(t, err)
		assert.True(t, res.OK)

		got := <-bobSub.ch
		assert.NotZero(t, got.ID)
		assert.NotZero(t, got.Created)
		assert.Equal(t, "hello", got.Text)

		select {
		case p := <-eveSub.ch:
			t.Fatalf("non-member received post %d", p.ID)
		default:
		}

		posts, err := r.store.ReadChatPosts(chat.ID, 0, -1)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, got.ID, posts[0].ID)
	})
}

func TestMemberSet(t *testing.T) {
	assert.Equal(t, []uint64{5}, memberSet(5, nil))
	assert.Equal(t, []uint64{1, 2, 5}, memberSet(5, []uint64{2, 1}))
	assert.Equal(t, []uint64{1, 5}, memberSet(5, []uint64{5, 1, 1}))
	assert.Equal(t, memberSet(1, []uint64{2}), memberSet(2, []uint64{1}))
}
