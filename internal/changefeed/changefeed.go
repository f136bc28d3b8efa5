// Package changefeed listens for post insert/update/delete notifications
// published over Redis Pub/Sub and applies them to the in-memory
// database, keeping it in sync with the upstream relational store between
// full reloads.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edirooss/booru-index/internal/booru"
	"github.com/edirooss/booru-index/internal/db"
	"github.com/edirooss/booru-index/internal/diag"
)

const (
	// ChannelInsert carries newly created posts.
	ChannelInsert = "posts:insert"
	// ChannelUpdate carries {old, new} pairs for changed posts.
	ChannelUpdate = "posts:update"
	// ChannelDelete carries removed posts.
	ChannelDelete = "posts:delete"
)

type updatePayload struct {
	Old json.RawMessage `json:"old"`
	New json.RawMessage `json:"new"`
}

// Listener subscribes to the three change channels and mutates Database
// under mu, translating each row's external PostID to the dense id the
// database assigned it at load time.
type Listener struct {
	rdb *redis.Client
	log *zap.Logger

	mu    *sync.RWMutex
	store *db.Database[booru.Post]
	index *postIDIndex
}

// postIDIndex is the external-id->dense-id translation the listener
// needs to turn a PostID-keyed row event into a Database.Update/Remove
// call; it is maintained by the listener itself as insert/delete events
// arrive, seeded from the initial bulk load.
type postIDIndex struct {
	mu      sync.RWMutex
	idOf    map[int64]uint32
}

// NewPostIDIndex seeds the translation table from the initially loaded
// posts.
func NewPostIDIndex(posts []booru.Post) *postIDIndex {
	idx := &postIDIndex{idOf: make(map[int64]uint32, len(posts))}
	for i, p := range posts {
		idx.idOf[p.PostID] = uint32(i)
	}
	return idx
}

func (idx *postIDIndex) lookup(postID int64) (uint32, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, ok := idx.idOf[postID]
	return id, ok
}

func (idx *postIDIndex) set(postID int64, denseID uint32) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.idOf[postID] = denseID
}

func (idx *postIDIndex) drop(postID int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.idOf, postID)
}

// NewListener returns a Listener guarding store under mu, using
// postIDIndex for external-id translation.
func NewListener(rdb *redis.Client, log *zap.Logger, mu *sync.RWMutex, store *db.Database[booru.Post], index *postIDIndex) *Listener {
	return &Listener{rdb: rdb, log: log.Named("changefeed"), mu: mu, store: store, index: index}
}

// Run subscribes and processes events until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	sub := l.rdb.Subscribe(ctx, ChannelInsert, ChannelUpdate, ChannelDelete)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("changefeed: subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			l.handle(msg)
		}
	}
}

func (l *Listener) handle(msg *redis.Message) {
	start := time.Now()
	var err error
	switch msg.Channel {
	case ChannelInsert:
		err = l.handleInsert(msg.Payload)
	case ChannelUpdate:
		err = l.handleUpdate(msg.Payload)
	case ChannelDelete:
		err = l.handleDelete(msg.Payload)
	}
	if err != nil {
		l.log.Error("event handling failed", zap.String("channel", msg.Channel), zap.Error(err),
			zap.String("chain", diag.ErrChain(err)))
		l.log.Debug("failed payload", zap.String("channel", msg.Channel), zap.String("dump", diag.DumpPayload(msg.Payload)))
		return
	}
	l.log.Debug("event applied", zap.String("channel", msg.Channel), zap.Duration("elapsed", time.Since(start)))
}

func (l *Listener) handleInsert(payload string) error {
	var raw booru.RawPost
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return fmt.Errorf("decode insert: %w", err)
	}
	post := raw.ToPost()

	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.store.Insert(post)
	l.index.set(post.PostID, uint32(id))
	return nil
}

func (l *Listener) handleDelete(payload string) error {
	var raw booru.RawPost
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return fmt.Errorf("decode delete: %w", err)
	}

	denseID, ok := l.index.lookup(raw.PostID)
	if !ok {
		return fmt.Errorf("delete: unknown post_id %d", raw.PostID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Remove(denseID)
	l.index.drop(raw.PostID)
	return nil
}

func (l *Listener) handleUpdate(payload string) error {
	var pair updatePayload
	if err := json.Unmarshal([]byte(payload), &pair); err != nil {
		return fmt.Errorf("decode update envelope: %w", err)
	}
	var oldRaw, newRaw booru.RawPost
	if err := json.Unmarshal(pair.Old, &oldRaw); err != nil {
		return fmt.Errorf("decode update.old: %w", err)
	}
	if err := json.Unmarshal(pair.New, &newRaw); err != nil {
		return fmt.Errorf("decode update.new: %w", err)
	}
	if oldRaw.PostID != newRaw.PostID {
		return fmt.Errorf("update: post_id changed %d -> %d", oldRaw.PostID, newRaw.PostID)
	}

	denseID, ok := l.index.lookup(oldRaw.PostID)
	if !ok {
		return fmt.Errorf("update: unknown post_id %d", oldRaw.PostID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Update(denseID, newRaw.ToPost())
	return nil
}
