package tracker

import "context"

// Repo stores tracker entries namespaced by client ID.
type Repo interface {
	Create(ctx context.Context, e Entry) error
	Get(ctx context.Context, clientID, id string) (Entry, error)
	// List returns the client's entries, newest first.
	List(ctx context.Context, clientID string) ([]Entry, error)
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, clientID, id string) error
}
