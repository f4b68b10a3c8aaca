// ABOUTME: Unary RPC handlers of ChatRoomService: register, logout, chat
// ABOUTME: membership operations, invitations and post creation

package room

import (
	"context"
	"errors"
	"slices"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/migchat/migchat-server/internal/ident"
	"github.com/migchat/migchat-server/internal/store"
	"github.com/migchat/migchat-server/proto/migchat"
)

// Register derives the caller's id from the supplied names, marks it
// online and creates the account on first contact. Re-registration with
// the same names is idempotent and keeps the original creation time.
func (r *Room) Register(ctx context.Context, in *migchat.UserInfo) (*migchat.RegistrationInfo, error) {
	id := ident.UserID(in.Name, in.ShortName)
	r.logger.Debug("register", "user_id", id, "name", in.Name, "short_name", in.ShortName)

	r.presence.add(id)

	existing, err := r.store.ReadUser(id)
	switch {
	case err == nil:
		r.logger.Debug("already registered", "user_id", id, "short_name", existing.ShortName)
		r.notifyUserChanged(UserChange{Online: id})
		return &migchat.RegistrationInfo{
			Registration: &migchat.Registration{UserID: id},
			Created:      existing.Created,
		}, nil
	case errors.Is(err, store.ErrNotFound):
		// first contact, fall through to create
	default:
		return nil, status.Errorf(codes.Internal, "reading user: %v", err)
	}

	user := &migchat.User{
		ID:        id,
		Name:      in.Name,
		ShortName: in.ShortName,
		Created:   now(),
	}
	if err := r.store.WriteUser(user); err != nil {
		return nil, status.Errorf(codes.Internal, "writing user: %v", err)
	}
	r.notifyUserChanged(UserChange{Info: user})
	return &migchat.RegistrationInfo{
		Registration: &migchat.Registration{UserID: id},
		Created:      user.Created,
	}, nil
}

// Logout tears down all of the caller's subscriptions, removes it from the
// online set and announces the departure. Idempotent.
func (r *Room) Logout(ctx context.Context, in *migchat.Registration) (*migchat.Result, error) {
	id := in.UserID
	r.logger.Debug("logout", "user_id", id)

	r.users.detach(id)
	r.chats.detach(id)
	r.invitations.detach(id)
	r.posts.detach(id)
	r.presence.remove(id)

	r.notifyUserChanged(UserChange{Offline: id})
	return &migchat.Result{OK: true, Description: "logout successful"}, nil
}

// CreateChat creates or rediscovers a chat. The id is deterministic (see
// ident.ChatID), so two members proposing the same dialog converge on one
// chat; with auto_enter the caller is appended to an existing chat's
// members if absent.
func (r *Room) CreateChat(ctx context.Context, in *migchat.ChatInfo) (*migchat.Chat, error) {
	var users []uint64
	if in.AutoEnter {
		users = memberSet(in.UserID, in.DesiredUsers)
	}
	id := ident.ChatID(in.Description, users)
	r.logger.Debug("create_chat", "chat_id", id, "user_id", in.UserID, "auto_enter", in.AutoEnter)

	chat, err := r.store.UpdateChat(id, func(c *migchat.Chat) bool {
		if in.AutoEnter && !slices.Contains(c.Users, in.UserID) {
			c.Users = append(c.Users, in.UserID)
			return true
		}
		return false
	})
	switch {
	case err == nil:
		r.notifyChatChanged(ChatChange{Updated: chat})
		return chat, nil
	case errors.Is(err, store.ErrNotFound):
		// no such chat yet, fall through to create
	default:
		return nil, status.Errorf(codes.Internal, "failed to access chats: %v", err)
	}

	chat = &migchat.Chat{
		ID:          id,
		Permanent:   in.Permanent,
		Description: in.Description,
		Users:       users,
		Created:     now(),
	}
	if err := r.store.WriteChat(chat); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to create chat: %v", err)
	}
	r.notifyChatChanged(ChatChange{Updated: chat})
	return chat, nil
}

// InviteUser hands the invitation to the recipient's open invitation
// stream. Nothing is persisted: if the recipient does not currently
// subscribe, the sender learns immediately.
func (r *Room) InviteUser(ctx context.Context, in *migchat.Invitation) (*migchat.Result, error) {
	r.logger.Debug("invite_user", "chat_id", in.ChatID, "from", in.FromUserID, "to", in.ToUserID)

	if _, err := r.store.ReadChat(in.ChatID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "chat %d does not exist", in.ChatID)
		}
		return nil, status.Errorf(codes.Internal, "failed to read chats: %v", err)
	}
	if _, err := r.store.ReadUser(in.ToUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "user %d is not registered", in.ToUserID)
		}
		return nil, status.Errorf(codes.Internal, "failed to read users: %v", err)
	}

	sub, ok := r.invitations.get(in.ToUserID)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "%d did not subscribe to invitations", in.ToUserID)
	}
	if !sub.send(in) {
		return nil, status.Error(codes.Internal, "failed to send invitation")
	}
	return &migchat.Result{OK: true, Description: "invitation has been sent"}, nil
}

// EnterChat appends the caller to the chat's members; entering a chat one
// is already in is a no-op that still succeeds.
func (r *Room) EnterChat(ctx context.Context, in *migchat.ChatReference) (*migchat.Result, error) {
	r.logger.Debug("enter_chat", "chat_id", in.ChatID, "user_id", in.UserID)

	chat, err := r.store.UpdateChat(in.ChatID, func(c *migchat.Chat) bool {
		if !slices.Contains(c.Users, in.UserID) {
			c.Users = append(c.Users, in.UserID)
			return true
		}
		return false
	})
	switch {
	case err == nil:
		r.notifyChatChanged(ChatChange{Updated: chat})
		return &migchat.Result{OK: true, Description: "entered the chat"}, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, status.Error(codes.NotFound, "chat does not exist")
	default:
		return nil, status.Errorf(codes.Internal, "failed to access chats: %v", err)
	}
}

// LeaveChat removes the caller from the chat's members. A non-permanent
// chat whose last member leaves is removed together with its posts.
func (r *Room) LeaveChat(ctx context.Context, in *migchat.ChatReference) (*migchat.Result, error) {
	r.logger.Debug("leave_chat", "chat_id", in.ChatID, "user_id", in.UserID)

	chat, err := r.store.UpdateChat(in.ChatID, func(c *migchat.Chat) bool {
		i := slices.Index(c.Users, in.UserID)
		if i < 0 {
			return false
		}
		c.Users = slices.Delete(c.Users, i, i+1)
		return true
	})
	switch {
	case err == nil:
		// handled below
	case errors.Is(err, store.ErrNotFound):
		return nil, status.Error(codes.NotFound, "chat does not exist")
	default:
		return nil, status.Errorf(codes.Internal, "failed to access chats: %v", err)
	}

	if !chat.Permanent && len(chat.Users) == 0 {
		if err := r.store.RemoveChat(in.ChatID); err != nil {
			return nil, status.Errorf(codes.Internal, "failed to remove chat: %v", err)
		}
		r.notifyChatChanged(ChatChange{Closed: in.ChatID})
	} else {
		r.notifyChatChanged(ChatChange{Updated: chat})
	}
	return &migchat.Result{OK: true, Description: "left the chat"}, nil
}

// CreatePost persists the post with a server-assigned id and fans it out
// to the chat's members. Clients must send id 0; anything else is
// rejected before any side effect.
func (r *Room) CreatePost(ctx context.Context, in *migchat.Post) (*migchat.Result, error) {
	if in.ID != migchat.NotPostID {
		return nil, status.Errorf(codes.InvalidArgument, "id must be %d", migchat.NotPostID)
	}
	post := &migchat.Post{
		ID:          ident.NewPostID(),
		ChatID:      in.ChatID,
		UserID:      in.UserID,
		Text:        in.Text,
		Attachments: in.Attachments,
		Created:     now(),
	}
	r.logger.Debug("create_post", "post_id", post.ID, "chat_id", post.ChatID, "user_id", post.UserID)

	if err := r.store.WritePost(post); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to save post: %v", err)
	}
	r.notifyNewPost(post)
	return &migchat.Result{OK: true, Description: "accepted"}, nil
}

// memberSet builds the initial member list of a chat: the creator plus the
// desired users, deduplicated and sorted ascending. The sort is a
// correctness requirement, not cosmetics: the chat id of a dialog is the
// hash of this list, and {A,B} must equal {B,A}.
func memberSet(creator uint64, desired []uint64) []uint64 {
	set := make([]uint64, 0, len(desired)+1)
	set = append(set, creator)
	set = append(set, desired...)
	slices.Sort(set)
	return slices.Compact(set)
}
