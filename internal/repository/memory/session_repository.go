package memory

import (
	"time"

	"ai-code-debugger/pkg/store"

	"github.com/patrickmn/go-cache"
)

type WorkspaceRepository struct {
	cache *cache.Cache
}

func NewWorkspaceRepository() *WorkspaceRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &WorkspaceRepository{
		cache: c,
	}
}

func (r *WorkspaceRepository) Save(ws *store.Workspace) {
	r.cache.Set(ws.ClientID, ws, cache.DefaultExpiration)
}

func (r *WorkspaceRepository) Get(clientID string) (*store.Workspace, bool) {
	if x, found := r.cache.Get(clientID); found {
		return x.(*store.Workspace), true
	}
	return nil, false
}

func (r *WorkspaceRepository) Delete(clientID string) {
	r.cache.Delete(clientID)
}
