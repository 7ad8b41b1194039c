package tracker

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Entry // clientID -> id -> entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]map[string]Entry)}
}

func (r *MemoryRepo) Create(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := r.data[e.ClientID]
	if !ok {
		entries = make(map[string]Entry)
		r.data[e.ClientID] = entries
	}
	entries[e.ID] = e
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, clientID, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.data[clientID][id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) List(ctx context.Context, clientID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.data[clientID]))
	for _, e := range r.data[clientID] {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sortNewestFirst(entries)
	return entries, nil
}

func (r *MemoryRepo) Update(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[e.ClientID][e.ID]; !ok {
		return ErrNotFound
	}
	r.data[e.ClientID][e.ID] = e
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, clientID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[clientID][id]; !ok {
		return ErrNotFound
	}
	delete(r.data[clientID], id)
	return nil
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
