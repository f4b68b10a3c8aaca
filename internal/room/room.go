// ABOUTME: ChatRoom core state: storage handle, presence set and the four
// ABOUTME: subscription registries shared by all RPC handlers

package room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/migchat/migchat-server/internal/store"
	"github.com/migchat/migchat-server/proto/migchat"
)

// Room is the chat room server: one process-wide instance owns the
// persistent catalog, the online set and the push channels of every open
// subscription. It implements migchat.ChatRoomServiceServer; handlers run
// concurrently and share state only through these fields.
type Room struct {
	migchat.UnimplementedChatRoomServiceServer

	store  *store.Store
	logger *slog.Logger

	presence *presence

	users       *registry[UserChange]
	chats       *registry[ChatChange]
	invitations *registry[*migchat.Invitation]
	posts       *registry[*migchat.Post]
}

// New creates a Room on top of an opened store. Pass nil logger for the
// default.
func New(st *store.Store, logger *slog.Logger) *Room {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "room")
	return &Room{
		store:       st,
		logger:      logger,
		presence:    newPresence(),
		users:       newRegistry[UserChange]("users", logger),
		chats:       newRegistry[ChatChange]("chats", logger),
		invitations: newRegistry[*migchat.Invitation]("invitations", logger),
		posts:       newRegistry[*migchat.Post]("posts", logger),
	}
}

func now() uint64 {
	return uint64(time.Now().Unix())
}

// presence is the set of currently connected user ids. Reads dominate
// (every get_users replay classifies against it); writes happen only on
// register and logout.
type presence struct {
	mu     sync.RWMutex
	online map[uint64]struct{}
}

func newPresence() *presence {
	return &presence{online: make(map[uint64]struct{})}
}

func (p *presence) add(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[id] = struct{}{}
}

func (p *presence) remove(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.online, id)
}

func (p *presence) contains(id uint64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.online[id]
	return ok
}
