// ABOUTME: bbolt-backed persistence for users, chats and per-chat post logs
// ABOUTME: Single database file; values are protowire-encoded migchat records

package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/migchat/migchat-server/proto/migchat"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Top-level buckets. posts holds one child bucket per chat, keyed by the
// chat id; inside, posts are keyed by a monotone sequence number, which
// preserves their insertion order.
var (
	bucketUsers = []byte("users")
	bucketChats = []byte("chats")
	bucketPosts = []byte("posts")
)

// Store persists the chat room catalog. All methods are safe for concurrent
// use; bbolt serializes write transactions and runs reads in parallel.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
}

// Open opens (or creates) the database file at path and ensures the
// top-level buckets exist. Parent directories are created if needed.
func Open(path string) (*Store, error) {
	logger := slog.Default().With("component", "store")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketUsers, bucketChats, bucketPosts} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("store initialized", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is still reachable. Used by readiness checks.
func (s *Store) Ping() error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketUsers) == nil {
			return errors.New("users bucket missing")
		}
		return nil
	})
}

// key renders an id the way every bucket is keyed: little-endian u64.
func key(id uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], id)
	return b[:]
}

func decodeUser(raw []byte) (*migchat.User, error) {
	u := new(migchat.User)
	if err := u.UnmarshalWire(raw); err != nil {
		return nil, fmt.Errorf("decoding user record: %w", err)
	}
	return u, nil
}

func decodeChat(raw []byte) (*migchat.Chat, error) {
	c := new(migchat.Chat)
	if err := c.UnmarshalWire(raw); err != nil {
		return nil, fmt.Errorf("decoding chat record: %w", err)
	}
	return c, nil
}

func decodePost(raw []byte) (*migchat.Post, error) {
	p := new(migchat.Post)
	if err := p.UnmarshalWire(raw); err != nil {
		return nil, fmt.Errorf("decoding post record: %w", err)
	}
	return p, nil
}

// ReadUser returns the user with the given id, or ErrNotFound.
func (s *Store) ReadUser(id uint64) (*migchat.User, error) {
	var user *migchat.User
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketUsers).Get(key(id))
		if raw == nil {
			return ErrNotFound
		}
		var err error
		user, err = decodeUser(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// WriteUser stores the user under its id.
func (s *Store) WriteUser(u *migchat.User) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketUsers).Put(key(u.ID), u.AppendWire(nil)); err != nil {
			return fmt.Errorf("writing user %d: %w", u.ID, err)
		}
		return nil
	})
}

// ReadAllUsers returns every user, in id (key) order.
func (s *Store) ReadAllUsers() ([]*migchat.User, error) {
	var users []*migchat.User
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(_, raw []byte) error {
			u, err := decodeUser(raw)
			if err != nil {
				return err
			}
			users = append(users, u)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// RemoveUser deletes the user and purges it from the member list of every
// chat, all in one transaction.
func (s *Store) RemoveUser(id uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketUsers).Delete(key(id)); err != nil {
			return fmt.Errorf("deleting user %d: %w", id, err)
		}
		chats := tx.Bucket(bucketChats)
		// Collect first: bbolt forbids mutating a bucket mid-iteration.
		var dirty []*migchat.Chat
		err := chats.ForEach(func(_, raw []byte) error {
			c, err := decodeChat(raw)
			if err != nil {
				return err
			}
			if removeMember(c, id) {
				dirty = append(dirty, c)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, c := range dirty {
			if err := chats.Put(key(c.ID), c.AppendWire(nil)); err != nil {
				return fmt.Errorf("updating chat %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

func removeMember(c *migchat.Chat, id uint64) bool {
	for i, u := range c.Users {
		if u == id {
			c.Users = append(c.Users[:i], c.Users[i+1:]...)
			return true
		}
	}
	return false
}

// ReadChat returns the chat with the given id, or ErrNotFound.
func (s *Store) ReadChat(id uint64) (*migchat.Chat, error) {
	var chat *migchat.Chat
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketChats).Get(key(id))
		if raw == nil {
			return ErrNotFound
		}
		var err error
		chat, err = decodeChat(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// WriteChat stores the chat under its id.
func (s *Store) WriteChat(c *migchat.Chat) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketChats).Put(key(c.ID), c.AppendWire(nil)); err != nil {
			return fmt.Errorf("writing chat %d: %w", c.ID, err)
		}
		return nil
	})
}

// ReadAllChats returns every chat, in id (key) order.
func (s *Store) ReadAllChats() ([]*migchat.Chat, error) {
	var chats []*migchat.Chat
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChats).ForEach(func(_, raw []byte) error {
			c, err := decodeChat(raw)
			if err != nil {
				return err
			}
			chats = append(chats, c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// UpdateChat runs updater against the stored chat inside one write
// transaction. The updater reports whether it changed the chat; the record
// is rewritten only then. Returns the (possibly updated) chat, or
// ErrNotFound when no such chat exists. Concurrent updates of the same chat
// serialize on the write transaction.
func (s *Store) UpdateChat(id uint64, updater func(*migchat.Chat) bool) (*migchat.Chat, error) {
	var chat *migchat.Chat
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketChats)
		raw := b.Get(key(id))
		if raw == nil {
			return ErrNotFound
		}
		var err error
		chat, err = decodeChat(raw)
		if err != nil {
			return err
		}
		if !updater(chat) {
			return nil
		}
		if err := b.Put(key(id), chat.AppendWire(nil)); err != nil {
			return fmt.Errorf("updating chat %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// RemoveChat deletes the chat and its whole post log.
func (s *Store) RemoveChat(id uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketChats).Delete(key(id)); err != nil {
			return fmt.Errorf("deleting chat %d: %w", id, err)
		}
		err := tx.Bucket(bucketPosts).DeleteBucket(key(id))
		if err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("deleting posts of chat %d: %w", id, err)
		}
		return nil
	})
}

// WritePost appends the post to its chat's log. The position is assigned by
// the store and is monotone within the chat; the chat's log bucket is
// created on first use.
func (s *Store) WritePost(p *migchat.Post) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		chatBucket, err := tx.Bucket(bucketPosts).CreateBucketIfNotExists(key(p.ChatID))
		if err != nil {
			return fmt.Errorf("creating post log for chat %d: %w", p.ChatID, err)
		}
		seq, err := chatBucket.NextSequence()
		if err != nil {
			return fmt.Errorf("sequencing post for chat %d: %w", p.ChatID, err)
		}
		if err := chatBucket.Put(key(seq), p.AppendWire(nil)); err != nil {
			return fmt.Errorf("writing post %d: %w", p.ID, err)
		}
		return nil
	})
}

// ChatPostsCount reports how many posts the chat's log holds. A chat with
// no log counts as zero.
func (s *Store) ChatPostsCount(chatID uint64) (int, error) {
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		chatBucket := tx.Bucket(bucketPosts).Bucket(key(chatID))
		if chatBucket == nil {
			return nil
		}
		count = chatBucket.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReadChatPosts returns up to count posts of the chat starting at position
// idxFrom (in insertion order). A negative count reads to the end. A chat
// with no log yields an empty result, not an error.
//
// The walk goes by sequence number, not cursor order: little-endian keys do
// not sort numerically and positions are contiguous from 1.
func (s *Store) ReadChatPosts(chatID uint64, idxFrom, count int) ([]*migchat.Post, error) {
	var posts []*migchat.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		chatBucket := tx.Bucket(bucketPosts).Bucket(key(chatID))
		if chatBucket == nil {
			return nil
		}
		last := chatBucket.Sequence()
		for seq := uint64(idxFrom) + 1; seq <= last; seq++ {
			if count >= 0 && len(posts) >= count {
				break
			}
			raw := chatBucket.Get(key(seq))
			if raw == nil {
				continue
			}
			p, err := decodePost(raw)
			if err != nil {
				return err
			}
			posts = append(posts, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
