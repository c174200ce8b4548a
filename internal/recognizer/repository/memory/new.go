package memory

import (
	"github.com/hashicorp/golang-lru/v2/expirable"

	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
	"nlu-router/pkg/log"
)

type implRepository struct {
	cache *expirable.LRU[string, recognizer.Context]
	l     log.Logger
}

// New creates an in-memory context store bounded by opt.Size and opt.TTL.
// A zero TTL keeps entries until they are evicted by size.
func New(opt repository.Options, l log.Logger) repository.Repository {
	opt = opt.WithDefaults()
	return &implRepository{
		cache: expirable.NewLRU[string, recognizer.Context](opt.Size, nil, opt.TTL),
		l:     l,
	}
}
