package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Vileyy/admin-halora-sub001/internal/modules/catalog"
)

// Service defines inventory business logic for the admin dashboard.
//
// Subscribe registers a callback that receives the full current enriched
// list on every inventory change (a resync, not a delta). Callbacks run
// synchronously on the notifying goroutine; there is no ordering guarantee
// between independent subscriptions. The returned function unsubscribes.
type Service interface {
	ListEnriched(ctx context.Context) ([]EnrichedItem, error)
	Get(ctx context.Context, productID, variantID string) (*Item, error)
	AdjustStock(ctx context.Context, productID, variantID string, delta int) error
	Subscribe(fn func([]EnrichedItem)) (unsubscribe func())
	NotifyChanged(ctx context.Context)
}

type service struct {
	repo    Repository
	catalog catalog.Repository

	mu     sync.Mutex
	subs   map[int]func([]EnrichedItem)
	nextID int
}

// NewService creates a new inventory service.
func NewService(repo Repository, catalogRepo catalog.Repository) Service {
	return &service{
		repo:    repo,
		catalog: catalogRepo,
		subs:    map[int]func([]EnrichedItem){},
	}
}

// ListEnriched joins each inventory record with a fresh catalog snapshot to
// fill the display fields. The snapshot is re-read on every call; at the SKU
// counts this dashboard manages that costs less than cache invalidation
// would. A record whose product is gone gets placeholder display values
// instead of failing the whole list.
func (s *service) ListEnriched(ctx context.Context) ([]EnrichedItem, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	enriched := make([]EnrichedItem, 0, len(items))
	for _, item := range items {
		e := EnrichedItem{Item: *item}
		if p, ok := byID[item.ProductID]; ok {
			e.ProductName = p.Name
			e.ProductImage = p.FirstImage()
			e.ProductCategory = p.Category
		} else {
			e.ProductName = UnknownProductName
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

func (s *service) Get(ctx context.Context, productID, variantID string) (*Item, error) {
	return s.repo.Get(ctx, productID, variantID)
}

func (s *service) AdjustStock(ctx context.Context, productID, variantID string, delta int) error {
	if err := s.repo.AdjustStock(ctx, productID, variantID, delta); err != nil {
		return err
	}
	s.NotifyChanged(ctx)
	return nil
}

func (s *service) Subscribe(fn func([]EnrichedItem)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// NotifyChanged re-reads the inventory and delivers the full enriched list
// to every subscriber. Called after local writes and by the Postgres
// notification watcher for writes made elsewhere.
func (s *service) NotifyChanged(ctx context.Context) {
	s.mu.Lock()
	n := len(s.subs)
	s.mu.Unlock()
	if n == 0 {
		return
	}

	items, err := s.ListEnriched(ctx)
	if err != nil {
		log.Error().Err(err).Msg("inventory: snapshot for subscribers failed")
		return
	}

	s.mu.Lock()
	fns := make([]func([]EnrichedItem), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(items)
	}
}
