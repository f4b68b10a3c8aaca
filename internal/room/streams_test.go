// ABOUTME: Tests for the server-streaming ChatRoomService handlers
// ABOUTME: Covers replay, live deltas, visibility and stream replacement

package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/migchat/migchat-server/proto/migchat"
)

// fakeStream implements grpc.ServerStreamingServer[T] for handler tests.
// Only Send and Context are exercised by the handlers.
type fakeStream[T any] struct {
	grpc.ServerStream
	ctx context.Context
	ch  chan *T
}

func newFakeStream[T any](ctx context.Context) *fakeStream[T] {
	return &fakeStream[T]{ctx: ctx, ch: make(chan *T, 16)}
}

func (f *fakeStream[T]) Context() context.Context { return f.ctx }

func (f *fakeStream[T]) Send(m *T) error {
	f.ch <- m
	return nil
}

func recv[T any](t *testing.T, f *fakeStream[T]) *T {
	t.Helper()
	select {
	case m := <-f.ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream message")
		return nil
	}
}

func expectSilent[T any](t *testing.T, f *fakeStream[T]) {
	t.Helper()
	select {
	case m := <-f.ch:
		t.Fatalf("unexpected stream message: %+v", m)
	case <-time.After(50 * time.Millisecond):
	}
}

func waitDone(t *testing.T, done chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not return")
	}
}

func TestGetUsers(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")
	_, err := r.Logout(context.Background(), &migchat.Registration{UserID: bob})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeStream[migchat.UpdateUsers](ctx)

	done := make(chan error, 1)
	go func() {
		done <- r.GetUsers(&migchat.Registration{UserID: alice}, stream)
	}()

	// Initial update: everyone but the caller, classified by presence.
	initial := recv(t, stream)
	require.Len(t, initial.Added, 1)
	assert.Equal(t, bob, initial.Added[0].ID)
	assert.Empty(t, initial.Online)
	assert.Equal(t, []uint64{bob}, initial.Offline)

	// New registration arrives as a delta.
	carol := register(t, r, "Carol", "c")
	delta := recv(t, stream)
	require.Len(t, delta.Added, 1)
	assert.Equal(t, carol, delta.Added[0].ID)
	assert.Equal(t, []uint64{carol}, delta.Online)

	// Presence flips of the caller itself are suppressed.
	register(t, r, "Alice", "a")
	expectSilent(t, stream)

	cancel()
	waitDone(t, done)
}

func TestGetUsers_InitialUpdateAlwaysSent(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeStream[migchat.UpdateUsers](ctx)

	done := make(chan error, 1)
	go func() {
		done <- r.GetUsers(&migchat.Registration{UserID: alice}, stream)
	}()

	initial := recv(t, stream)
	assert.Empty(t, initial.Added, "alone in the room, but the update still arrives")

	cancel()
	waitDone(t, done)
}

func TestGetChats_Visibility(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")
	carol := register(t, r, "Carol", "c")

	lobby, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: bob, Permanent: true, Description: "lobby", AutoEnter: true,
	})
	require.NoError(t, err)
	_, err = r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: bob, AutoEnter: true, DesiredUsers: []uint64{carol},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeStream[migchat.UpdateChats](ctx)

	done := make(chan error, 1)
	go func() {
		done <- r.GetChats(&migchat.Registration{UserID: alice}, stream)
	}()

	// The bob/carol dialog is invisible to alice; the named lobby is not.
	initial := recv(t, stream)
	require.Len(t, initial.Updated, 1)
	assert.Equal(t, lobby.ID, initial.Updated[0].ID)

	// Alice's own dialog is visible despite the empty description.
	dialog, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: bob, AutoEnter: true, DesiredUsers: []uint64{alice},
	})
	require.NoError(t, err)
	delta := recv(t, stream)
	require.Len(t, delta.Updated, 1)
	assert.Equal(t, dialog.ID, delta.Updated[0].ID)

	// A change to the invisible dialog stays invisible.
	_, err = r.CreatePost(context.Background(), &migchat.Post{ChatID: lobby.ID, UserID: bob, Text: "x"})
	require.NoError(t, err)
	_, err = r.EnterChat(context.Background(), &migchat.ChatReference{UserID: carol, ChatID: lobby.ID})
	require.NoError(t, err)
	visible := recv(t, stream)
	require.Len(t, visible.Updated, 1)
	assert.Equal(t, lobby.ID, visible.Updated[0].ID)

	cancel()
	waitDone(t, done)
}

func TestGetChats_GoneOnClose(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	scratch, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: bob, Description: "scratch", AutoEnter: true,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeStream[migchat.UpdateChats](ctx)

	done := make(chan error, 1)
	go func() {
		done <- r.GetChats(&migchat.Registration{UserID: alice}, stream)
	}()
	recv(t, stream) // initial

	_, err = r.LeaveChat(context.Background(), &migchat.ChatReference{UserID: bob, ChatID: scratch.ID})
	require.NoError(t, err)

	delta := recv(t, stream)
	assert.Empty(t, delta.Updated)
	assert.Equal(t, []uint64{scratch.ID}, delta.Gone)

	cancel()
	waitDone(t, done)
}

func TestGetInvitations(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	chat, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Description: "lobby", AutoEnter: true,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeStream[migchat.Invitation](ctx)

	done := make(chan error, 1)
	go func() {
		done <- r.GetInvitations(&migchat.Registration{UserID: bob}, stream)
	}()

	// Wait until the handler has attached its subscription.
	require.Eventually(t, func() bool {
		_, ok := r.invitations.get(bob)
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	_, err = r.InviteUser(context.Background(), &migchat.Invitation{ChatID: chat.ID, FromUserID: alice, ToUserID: bob})
	require.NoError(t, err)

	inv := recv(t, stream)
	assert.Equal(t, chat.ID, inv.ChatID)
	assert.Equal(t, alice, inv.FromUserID)

	cancel()
	waitDone(t, done)
}

func TestGetPosts_ReplayThenLive(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	chat, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, AutoEnter: true, DesiredUsers: []uint64{bob},
	})
	require.NoError(t, err)
	for _, text := range []string{"one", "two"} {
		_, err := r.CreatePost(context.Background(), &migchat.Post{ChatID: chat.ID, UserID: alice, Text: text})
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeStream[migchat.Post](ctx)

	done := make(chan error, 1)
	go func() {
		done <- r.GetPosts(&migchat.Registration{UserID: bob}, stream)
	}()

	assert.Equal(t, "one", recv(t, stream).Text)
	assert.Equal(t, "two", recv(t, stream).Text)

	require.Eventually(t, func() bool {
		_, ok := r.posts.get(bob)
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	_, err = r.CreatePost(context.Background(), &migchat.Post{ChatID: chat.ID, UserID: alice, Text: "three"})
	require.NoError(t, err)
	assert.Equal(t, "three", recv(t, stream).Text)

	cancel()
	waitDone(t, done)
}

func TestGetPosts_ExcludesForeignChats(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")
	bob := register(t, r, "Bob", "b")

	foreign, err := r.CreateChat(context.Background(), &migchat.ChatInfo{
		UserID: alice, Description: "private notes", AutoEnter: true,
	})
	require.NoError(t, err)
	_, err = r.CreatePost(context.Background(), &migchat.Post{ChatID: foreign.ID, UserID: alice, Text: "secret"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeStream[migchat.Post](ctx)

	done := make(chan error, 1)
	go func() {
		done <- r.GetPosts(&migchat.Registration{UserID: bob}, stream)
	}()

	expectSilent(t, stream)
	cancel()
	waitDone(t, done)
}

func TestStream_ReplacedByNewerStream(t *testing.T) {
	r := newTestRoom(t)
	alice := register(t, r, "Alice", "a")

	ctx := context.Background()
	first := newFakeStream[migchat.Invitation](ctx)
	done := make(chan error, 1)
	go func() {
		done <- r.GetInvitations(&migchat.Registration{UserID: alice}, first)
	}()

	require.Eventually(t, func() bool {
		_, ok := r.invitations.get(alice)
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	// A reconnect replaces the prior stream, which must exit cleanly.
	second := newFakeStream[migchat.Invitation](ctx)
	secondDone := make(chan error, 1)
	go func() {
		secondDone <- r.GetInvitations(&migchat.Registration{UserID: alice}, second)
	}()

	waitDone(t, done)
}
