// Package state holds the durable mapping from source post id to the
// destination page and the set of replies already merged into it.
package state

import (
	"sort"

	"github.com/iudanet/mastopress/internal/models"
)

// TrackedState is the in-memory form of the mapping.
// It is owned by a single sync pass at a time and is not safe for concurrent use.
type TrackedState struct {
	entries map[string]*trackedEntry
}

type trackedEntry struct {
	pageID  string
	replies []string            // порядок слияния
	merged  map[string]struct{} // индекс для проверки принадлежности
}

// New returns an empty mapping
func New() *TrackedState {
	return &TrackedState{entries: make(map[string]*trackedEntry)}
}

// FromEntries builds a mapping from a decoded snapshot.
// Duplicate reply ids inside an entry are collapsed, first occurrence wins.
func FromEntries(entries map[string]models.TrackedEntry) *TrackedState {
	s := New()
	for postID, entry := range entries {
		s.Put(postID, entry)
	}
	return s
}

// Has reports whether a page was created for the post
func (s *TrackedState) Has(postID string) bool {
	_, ok := s.entries[postID]
	return ok
}

// Get returns a copy of the entry for the post
func (s *TrackedState) Get(postID string) (models.TrackedEntry, bool) {
	e, ok := s.entries[postID]
	if !ok {
		return models.TrackedEntry{}, false
	}
	return e.snapshot(), true
}

// Put records (or replaces) the entry for the post
func (s *TrackedState) Put(postID string, entry models.TrackedEntry) {
	e := &trackedEntry{
		pageID:  entry.PageID,
		replies: make([]string, 0, len(entry.Replies)),
		merged:  make(map[string]struct{}, len(entry.Replies)),
	}
	e.add(entry.Replies)
	s.entries[postID] = e
}

// AddMergedReplies adds reply ids to the merged set of the post.
// Already present ids are skipped. Returns how many ids were actually added;
// an untracked post is left untouched and 0 is returned.
func (s *TrackedState) AddMergedReplies(postID string, replyIDs ...string) int {
	e, ok := s.entries[postID]
	if !ok {
		return 0
	}
	return e.add(replyIDs)
}

// HasReply reports whether the reply was already merged into the post page
func (s *TrackedState) HasReply(postID, replyID string) bool {
	e, ok := s.entries[postID]
	if !ok {
		return false
	}
	_, merged := e.merged[replyID]
	return merged
}

// PostIDs returns tracked post ids in lexical order
func (s *TrackedState) PostIDs() []string {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of tracked posts
func (s *TrackedState) Len() int {
	return len(s.entries)
}

// Entries returns a deep copy of the mapping, used by the persistence backends
func (s *TrackedState) Entries() map[string]models.TrackedEntry {
	out := make(map[string]models.TrackedEntry, len(s.entries))
	for id, e := range s.entries {
		out[id] = e.snapshot()
	}
	return out
}

func (e *trackedEntry) add(ids []string) int {
	added := 0
	for _, id := range ids {
		if _, ok := e.merged[id]; ok {
			continue
		}
		e.merged[id] = struct{}{}
		e.replies = append(e.replies, id)
		added++
	}
	return added
}

func (e *trackedEntry) snapshot() models.TrackedEntry {
	return models.TrackedEntry{PageID: e.pageID, Replies: e.replies}.Clone()
}
