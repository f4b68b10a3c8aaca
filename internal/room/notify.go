// ABOUTME: Tagged change events and their fan-out to interested subscribers
// ABOUTME: User and chat changes broadcast; posts target chat members only

package room

import (
	"errors"

	"github.com/migchat/migchat-server/internal/store"
	"github.com/migchat/migchat-server/proto/migchat"
)

// UserChange is one user directory event. Exactly one variant is set:
// Info for a new registration (implicitly online), Online or Offline for a
// presence flip of a known user.
type UserChange struct {
	Info    *migchat.User
	Online  uint64
	Offline uint64
}

// ChatChange is one chat directory event: Updated carries the new chat
// state, Closed names a removed chat.
type ChatChange struct {
	Updated *migchat.Chat
	Closed  uint64
}

// notifyUserChanged pushes ev to every user-directory subscriber. A failed
// send means a dead stream, so the registry is compacted.
func (r *Room) notifyUserChanged(ev UserChange) {
	if !r.users.broadcast(ev) {
		r.users.actualize()
	}
}

func (r *Room) notifyChatChanged(ev ChatChange) {
	if !r.chats.broadcast(ev) {
		r.chats.actualize()
	}
}

// notifyNewPost delivers the post to the current post subscribers among the
// chat's members. Unlike user and chat fan-out this is targeted: a post
// must never reach a non-member.
func (r *Room) notifyNewPost(post *migchat.Post) {
	chat, err := r.store.ReadChat(post.ChatID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.logger.Error("failed to read chat for post fan-out", "chat_id", post.ChatID, "error", err)
		}
		return
	}
	all := true
	for _, sub := range r.posts.snapshotOf(chat.Users) {
		if !sub.send(post) {
			all = false
		}
	}
	if !all {
		r.posts.actualize()
	}
}
