// ABOUTME: Server-streaming RPC handlers: users, chats, invitations and
// ABOUTME: posts, each replaying current state and then forwarding live events

package room

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/migchat/migchat-server/internal/store"
	"github.com/migchat/migchat-server/proto/migchat"
)

// GetUsers streams the user directory to the caller. The first message
// carries everyone already known (classified online/offline against the
// current presence set, the caller itself excluded); every message after
// that is a delta. The initial update is sent even when empty so clients
// can tell "nobody else is here" from "still waiting".
func (r *Room) GetUsers(in *migchat.Registration, stream grpc.ServerStreamingServer[migchat.UpdateUsers]) error {
	logger := r.logger.With("stream_id", uuid.New().String(), "user_id", in.UserID, "kind", "users")
	logger.Debug("stream opened")
	defer logger.Debug("stream closed")

	sub := r.users.attach(in.UserID)
	defer r.users.release(in.UserID, sub)

	all, err := r.store.ReadAllUsers()
	if err != nil {
		return status.Errorf(codes.Internal, "failed to read users: %v", err)
	}
	initial := &migchat.UpdateUsers{}
	for _, u := range all {
		if u.ID == in.UserID {
			continue
		}
		initial.Added = append(initial.Added, u)
		if r.presence.contains(u.ID) {
			initial.Online = append(initial.Online, u.ID)
		} else {
			initial.Offline = append(initial.Offline, u.ID)
		}
	}
	if err := stream.Send(initial); err != nil {
		return err
	}

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.stop:
			return nil
		case ev := <-sub.ch:
			update := &migchat.UpdateUsers{}
			switch {
			case ev.Info != nil:
				if ev.Info.ID == in.UserID {
					continue
				}
				update.Added = []*migchat.User{ev.Info}
				update.Online = []uint64{ev.Info.ID}
			case ev.Online != migchat.NotUserID:
				if ev.Online == in.UserID {
					continue
				}
				update.Online = []uint64{ev.Online}
			case ev.Offline != migchat.NotUserID:
				if ev.Offline == in.UserID {
					continue
				}
				update.Offline = []uint64{ev.Offline}
			default:
				continue
			}
			if err := stream.Send(update); err != nil {
				return err
			}
		}
	}
}

// GetChats streams the chat catalog to the caller. The first message
// carries every chat visible to the caller; later messages carry updated
// chats (still subject to visibility) and the ids of removed ones.
func (r *Room) GetChats(in *migchat.Registration, stream grpc.ServerStreamingServer[migchat.UpdateChats]) error {
	logger := r.logger.With("stream_id", uuid.New().String(), "user_id", in.UserID, "kind", "chats")
	logger.Debug("stream opened")
	defer logger.Debug("stream closed")

	sub := r.chats.attach(in.UserID)
	defer r.chats.release(in.UserID, sub)

	all, err := r.store.ReadAllChats()
	if err != nil {
		return status.Errorf(codes.Internal, "failed to read chats: %v", err)
	}
	initial := &migchat.UpdateChats{}
	for _, c := range all {
		if chatVisibleTo(c, in.UserID) {
			initial.Updated = append(initial.Updated, c)
		}
	}
	if err := stream.Send(initial); err != nil {
		return err
	}

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.stop:
			return nil
		case ev := <-sub.ch:
			update := &migchat.UpdateChats{}
			switch {
			case ev.Updated != nil:
				if !chatVisibleTo(ev.Updated, in.UserID) {
					continue
				}
				update.Updated = []*migchat.Chat{ev.Updated}
			case ev.Closed != migchat.NotChatID:
				update.Gone = []uint64{ev.Closed}
			default:
				continue
			}
			if err := stream.Send(update); err != nil {
				return err
			}
		}
	}
}

// GetInvitations streams invitations addressed to the caller. There is no
// history to replay: invitations live only as long as this stream.
func (r *Room) GetInvitations(in *migchat.Registration, stream grpc.ServerStreamingServer[migchat.Invitation]) error {
	logger := r.logger.With("stream_id", uuid.New().String(), "user_id", in.UserID, "kind", "invitations")
	logger.Debug("stream opened")
	defer logger.Debug("stream closed")

	sub := r.invitations.attach(in.UserID)
	defer r.invitations.release(in.UserID, sub)

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.stop:
			return nil
		case inv := <-sub.ch:
			if err := stream.Send(inv); err != nil {
				return err
			}
		}
	}
}

// GetPosts streams posts of the chats the caller is a member of: first the
// stored history of each such chat in insertion order, then live posts as
// they arrive. The subscription is attached before the replay, so a post
// created mid-replay is not lost; it may however be seen twice, and
// clients deduplicate by post id.
func (r *Room) GetPosts(in *migchat.Registration, stream grpc.ServerStreamingServer[migchat.Post]) error {
	logger := r.logger.With("stream_id", uuid.New().String(), "user_id", in.UserID, "kind", "posts")
	logger.Debug("stream opened")
	defer logger.Debug("stream closed")

	sub := r.posts.attach(in.UserID)
	defer r.posts.release(in.UserID, sub)

	chats, err := r.store.ReadAllChats()
	if err != nil {
		return status.Errorf(codes.Internal, "failed to read chats: %v", err)
	}
	for _, c := range chats {
		if !slices.Contains(c.Users, in.UserID) {
			continue
		}
		posts, err := r.store.ReadChatPosts(c.ID, 0, -1)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return status.Errorf(codes.Internal, "failed to read posts of chat %d: %v", c.ID, err)
		}
		for _, p := range posts {
			if err := stream.Send(p); err != nil {
				return err
			}
		}
	}

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.stop:
			return nil
		case p := <-sub.ch:
			if err := stream.Send(p); err != nil {
				return err
			}
		}
	}
}

// chatVisibleTo reports whether user may see the chat: named chats are
// public, while a chat with an empty description (a dialog) is visible to
// its members only.
func chatVisibleTo(c *migchat.Chat, user uint64) bool {
	return c.Description != "" || slices.Contains(c.Users, user)
}
