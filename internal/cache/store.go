package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"orm-generator/internal/analyze"
	"orm-generator/internal/model"
)

// ErrClosed is returned by Resolve after Close.
var ErrClosed = errors.New("cache: store is closed")

// EmitFunc produces the artifact of a descriptor.
type EmitFunc[A any] func(ctx context.Context, desc *model.Descriptor) (A, error)

// entry is the committed state of one key.
type entry[A any] struct {
	desc     *model.Descriptor
	depsKey  string
	artifact A
}

// slot serializes resolution of one key.
type slot[A any] struct {
	mu    sync.Mutex
	entry *entry[A]
}

// Store maps model identities to their last descriptor and artifact.
type Store[A any] struct {
	slots  sync.Map // analyze.TypeID -> *slot[A]
	closed atomic.Bool
	hits   atomic.Int64
	misses atomic.Int64
}

// NewStore returns an empty store.
func NewStore[A any]() *Store[A] {
	return &Store[A]{}
}

func (s *Store[A]) slot(id analyze.TypeID) *slot[A] {
	v, _ := s.slots.LoadOrStore(id, &slot[A]{})
	return v.(*slot[A])
}

// Resolve returns the artifact for desc. When the cached descriptor and
// depsKey are structurally equal to the given ones the cached artifact is
// returned and fresh is false. Otherwise emit runs under the key lock and
// its result replaces the entry, but only if emit succeeded and ctx is
// still live; nothing is written before that.
func (s *Store[A]) Resolve(
	ctx context.Context,
	desc *model.Descriptor,
	depsKey string,
	emit EmitFunc[A],
) (artifact A, fresh bool, err error) {
	var zero A

	if s.closed.Load() {
		return zero, false, ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	sl := s.slot(desc.ID)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if e := sl.entry; e != nil && e.depsKey == depsKey && e.desc.Equal(desc) {
		s.hits.Add(1)
		return e.artifact, false, nil
	}

	s.misses.Add(1)

	out, err := emit(ctx, desc)
	if err != nil {
		return zero, false, err
	}

	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	sl.entry = &entry[A]{desc: desc, depsKey: depsKey, artifact: out}

	return out, true, nil
}

// Lookup returns the cached descriptor and artifact of id.
func (s *Store[A]) Lookup(id analyze.TypeID) (*model.Descriptor, A, bool) {
	var zero A

	v, ok := s.slots.Load(id)
	if !ok {
		return nil, zero, false
	}

	sl := v.(*slot[A])
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.entry == nil {
		return nil, zero, false
	}

	return sl.entry.desc, sl.entry.artifact, true
}

// Prune drops every entry whose identity keep rejects and returns the
// artifacts of the dropped entries. It must not run concurrently with
// Resolve calls for the keys it drops.
func (s *Store[A]) Prune(keep func(analyze.TypeID) bool) []A {
	var retired []A

	s.slots.Range(func(k, v any) bool {
		id := k.(analyze.TypeID)
		if keep(id) {
			return true
		}

		sl := v.(*slot[A])
		sl.mu.Lock()
		if sl.entry != nil {
			retired = append(retired, sl.entry.artifact)
			sl.entry = nil
		}
		s.slots.Delete(id)
		sl.mu.Unlock()

		return true
	})

	return retired
}

// Len returns the number of committed entries.
func (s *Store[A]) Len() int {
	n := 0

	s.slots.Range(func(_, v any) bool {
		sl := v.(*slot[A])
		sl.mu.Lock()
		if sl.entry != nil {
			n++
		}
		sl.mu.Unlock()

		return true
	})

	return n
}

// Stats holds hit and miss counters.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns the counters accumulated since NewStore.
func (s *Store[A]) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// Close clears the store. Later calls to Resolve fail with ErrClosed.
func (s *Store[A]) Close() {
	s.closed.Store(true)
	s.slots.Clear()
}
