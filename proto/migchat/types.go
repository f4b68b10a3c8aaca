// ABOUTME: Message types for the migchat.ChatRoomService wire contract
// ABOUTME: Mirrors migchat.proto; encoding lives in wire.go

package migchat

// Zero is the reserved sentinel in every id space. A client-supplied post
// with a nonzero id is rejected; the server never assigns zero.
const (
	NotUserID uint64 = 0
	NotChatID uint64 = 0
	NotPostID uint64 = 0
)

// UserInfo identifies a user by the pair of names the user id is derived from.
type UserInfo struct {
	Name      string
	ShortName string
}

// Registration carries the caller's user id on every follow-up call.
type Registration struct {
	UserID uint64
}

// RegistrationInfo is the Register reply: the assigned id plus the moment
// the account was first created (unix seconds).
type RegistrationInfo struct {
	Registration *Registration
	Created      uint64
}

// User is a registered account. Users live for the lifetime of the server.
type User struct {
	ID        uint64
	Name      string
	ShortName string
	Created   uint64
}

// Chat is a group of users who receive each other's posts. A chat with an
// empty description is a dialog, visible only to its members.
type Chat struct {
	ID          uint64
	Permanent   bool
	Description string
	Users       []uint64
	Created     uint64
}

// ChatInfo is the CreateChat request.
type ChatInfo struct {
	UserID       uint64
	Permanent    bool
	AutoEnter    bool
	Description  string
	DesiredUsers []uint64
}

// ChatReference names a (user, chat) pair for enter/leave operations.
type ChatReference struct {
	UserID uint64
	ChatID uint64
}

// Invitation asks one user to join a chat. Invitations are never persisted;
// delivery requires the recipient to hold an open invitation stream.
type Invitation struct {
	ChatID     uint64
	FromUserID uint64
	ToUserID   uint64
}

// Post is a single message within a chat. Attachments are carried opaquely.
type Post struct {
	ID          uint64
	ChatID      uint64
	UserID      uint64
	Text        string
	Attachments [][]byte
	Created     uint64
}

// Result is the generic unary reply.
type Result struct {
	OK          bool
	Description string
}

// UpdateUsers is one delta of the user directory stream.
type UpdateUsers struct {
	Added   []*User
	Online  []uint64
	Offline []uint64
}

// UpdateChats is one delta of the chat directory stream.
type UpdateChats struct {
	Updated []*Chat
	Gone    []uint64
}
