package sync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-sub001/internal/modules/catalog"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/inventory"
)

// ── In-memory fakes ───────────────────────────────────────────────────────────

type fakeCatalogRepo struct {
	products []*catalog.Product
	listErr  error
}

func (f *fakeCatalogRepo) Create(ctx context.Context, p *catalog.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	for _, p := range f.products {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", id)
}

func (f *fakeCatalogRepo) List(ctx context.Context, category string) ([]*catalog.Product, error) {
	return f.ListAll(ctx)
}

func (f *fakeCatalogRepo) ListAll(ctx context.Context) ([]*catalog.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, p *catalog.Product) error { return nil }
func (f *fakeCatalogRepo) Delete(ctx context.Context, id string) error          { return nil }

type fakeInventoryRepo struct {
	items    map[string]*inventory.Item
	order    []string
	failKeys map[string]bool // Upsert fails for these "productID/variantID" pairs
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[string]*inventory.Item{}, failKeys: map[string]bool{}}
}

func invKey(productID, variantID string) string { return productID + "/" + variantID }

func (f *fakeInventoryRepo) Upsert(ctx context.Context, item *inventory.Item) error {
	key := invKey(item.ProductID.String(), item.VariantID.String())
	if f.failKeys[key] {
		return fmt.Errorf("simulated write failure")
	}
	if _, exists := f.items[key]; !exists {
		f.order = append(f.order, key)
	}
	clone := *item
	f.items[key] = &clone
	return nil
}

func (f *fakeInventoryRepo) Get(ctx context.Context, productID, variantID string) (*inventory.Item, error) {
	item, ok := f.items[invKey(productID, variantID)]
	if !ok {
		return nil, fmt.Errorf("inventory record %s/%s not found", productID, variantID)
	}
	return item, nil
}

func (f *fakeInventoryRepo) ListAll(ctx context.Context) ([]*inventory.Item, error) {
	items := make([]*inventory.Item, 0, len(f.order))
	for _, key := range f.order {
		items = append(items, f.items[key])
	}
	return items, nil
}

func (f *fakeInventoryRepo) AdjustStock(ctx context.Context, productID, variantID string, delta int) error {
	item, err := f.Get(ctx, productID, variantID)
	if err != nil {
		return err
	}
	item.StockQty += delta
	return nil
}

type fakeRunRepo struct{ runs []*Run }

func (f *fakeRunRepo) CreateRun(ctx context.Context, run *Run) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	return f.runs, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func newProduct(name string, variants ...*catalog.Variant) *catalog.Product {
	p := &catalog.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: "skincare",
		Supplier: "Halora Distribution",
	}
	for _, v := range variants {
		v.ProductID = p.ID
		p.Variants = append(p.Variants, v)
	}
	return p
}

func newVariant(name string, stock int, price float64) *catalog.Variant {
	return &catalog.Variant{ID: uuid.New(), Name: name, StockQty: stock, Price: price, ImportPrice: price / 2}
}

// ── Reconciliation engine ────────────────────────────────────────────────────

func TestSyncInitialRun(t *testing.T) {
	v1 := newVariant("50ml", 5, 100)
	p1 := newProduct("Rose Serum", v1)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	res, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.SyncedCount)
	assert.Empty(t, res.Errors)

	item, err := invRepo.Get(context.Background(), p1.ID.String(), v1.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 5, item.StockQty)
	assert.Equal(t, 100.0, item.Price)
	assert.Equal(t, 50.0, item.ImportPrice)
	assert.Equal(t, "50ml", item.VariantName)
	assert.Equal(t, "Halora Distribution", item.Supplier)
}

func TestSyncCompleteness(t *testing.T) {
	p1 := newProduct("Rose Serum", newVariant("30ml", 3, 80), newVariant("50ml", 7, 120))
	p2 := newProduct("Matte Lipstick", newVariant("Ruby", 12, 45))
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1, p2}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	res, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.SyncedCount)

	for _, p := range []*catalog.Product{p1, p2} {
		for _, v := range p.Variants {
			item, err := invRepo.Get(context.Background(), p.ID.String(), v.ID.String())
			require.NoError(t, err)
			assert.Equal(t, v.StockQty, item.StockQty)
			assert.Equal(t, v.Price, item.Price)
			assert.Equal(t, v.ImportPrice, item.ImportPrice)
		}
	}
}

func TestSyncZeroVariantProduct(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{newProduct("Empty Gift Box")}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	res, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.SyncedCount)
	assert.Empty(t, invRepo.items)
}

func TestSyncIdempotent(t *testing.T) {
	p1 := newProduct("Rose Serum", newVariant("50ml", 5, 100))
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	first, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.SyncedCount)

	cmp, err := svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, cmp.TotalDifferences)

	second, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.SyncedCount)

	cmp, err = svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, cmp.TotalDifferences)
}

func TestSyncDoesNotDeleteOrphans(t *testing.T) {
	keep := newVariant("50ml", 5, 100)
	drop := newVariant("30ml", 2, 70)
	p1 := newProduct("Rose Serum", keep, drop)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	_, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)

	// variant removed from the catalog; its inventory record must survive
	p1.Variants = []*catalog.Variant{keep}
	res, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.SyncedCount)

	orphan, err := invRepo.Get(context.Background(), p1.ID.String(), drop.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, orphan.StockQty)

	cmp, err := svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cmp.TotalDifferences)
	assert.Equal(t, DiffOrphanInventory, cmp.Differences[0].Kind)
	assert.Equal(t, drop.ID.String(), cmp.Differences[0].VariantID)
	assert.Equal(t, 0, cmp.Differences[0].CatalogValue)
	assert.Equal(t, 2, cmp.Differences[0].InventoryValue)
}

func TestSyncPartialFailureIsolation(t *testing.T) {
	v1 := newVariant("30ml", 3, 80)
	v2 := newVariant("50ml", 7, 120)
	v3 := newVariant("100ml", 1, 200)
	p1 := newProduct("Rose Serum", v1, v2, v3)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	invRepo := newFakeInventoryRepo()
	invRepo.failKeys[invKey(p1.ID.String(), v2.ID.String())] = true
	svc := NewService(catalogRepo, invRepo, nil)

	res, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.SyncedCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, p1.ID.String(), res.Errors[0].ProductID)
	assert.Equal(t, v2.ID.String(), res.Errors[0].VariantID)
	assert.Contains(t, res.Errors[0].Error, "simulated write failure")

	// the variants around the failure still synced
	_, err = invRepo.Get(context.Background(), p1.ID.String(), v1.ID.String())
	assert.NoError(t, err)
	_, err = invRepo.Get(context.Background(), p1.ID.String(), v3.ID.String())
	assert.NoError(t, err)
}

func TestSyncAccumulatesErrorsInEncounterOrder(t *testing.T) {
	v1 := newVariant("30ml", 3, 80)
	v2 := newVariant("50ml", 7, 120)
	p1 := newProduct("Rose Serum", v1, v2)
	v3 := newVariant("Ruby", 12, 45)
	p2 := newProduct("Matte Lipstick", v3)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1, p2}}
	invRepo := newFakeInventoryRepo()
	invRepo.failKeys[invKey(p1.ID.String(), v1.ID.String())] = true
	invRepo.failKeys[invKey(p2.ID.String(), v3.ID.String())] = true
	svc := NewService(catalogRepo, invRepo, nil)

	res, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.SyncedCount)

	// failures are listed in the order the variants were walked
	require.Len(t, res.Errors, 2)
	assert.Equal(t, v1.ID.String(), res.Errors[0].VariantID)
	assert.Equal(t, p1.ID.String(), res.Errors[0].ProductID)
	assert.Equal(t, v3.ID.String(), res.Errors[1].VariantID)
	assert.Equal(t, p2.ID.String(), res.Errors[1].ProductID)
}

func TestSyncCatalogFetchFailureIsFatal(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{listErr: fmt.Errorf("connection refused")}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	res, err := svc.SyncProductsToInventory(context.Background())
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch catalog")
	assert.Empty(t, invRepo.items)
}

func TestSyncRecordsRun(t *testing.T) {
	p1 := newProduct("Rose Serum", newVariant("50ml", 5, 100))
	runs := &fakeRunRepo{}
	svc := NewService(&fakeCatalogRepo{products: []*catalog.Product{p1}}, newFakeInventoryRepo(), runs)

	_, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, 1, runs.runs[0].SyncedCount)
	assert.Equal(t, 0, runs.runs[0].ErrorCount)
	assert.WithinDuration(t, time.Now(), runs.runs[0].RanAt, time.Minute)
}

// ── Drift comparator ─────────────────────────────────────────────────────────

func TestCompareDetectsStockDrift(t *testing.T) {
	v1 := newVariant("50ml", 5, 100)
	p1 := newProduct("Rose Serum", v1)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	_, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)

	// an order-fulfillment write diverges the projection
	require.NoError(t, invRepo.AdjustStock(context.Background(), p1.ID.String(), v1.ID.String(), -2))

	cmp, err := svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cmp.TotalDifferences)
	d := cmp.Differences[0]
	assert.Equal(t, DiffStockMismatch, d.Kind)
	assert.Equal(t, 5, d.CatalogValue)
	assert.Equal(t, 3, d.InventoryValue)
	assert.Equal(t, "50ml", d.VariantName)
}

func TestCompareReportsMissingInventory(t *testing.T) {
	v2 := newVariant("Ruby", 4, 45)
	p2 := newProduct("Matte Lipstick", v2)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p2}}
	svc := NewService(catalogRepo, newFakeInventoryRepo(), nil)

	cmp, err := svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cmp.TotalDifferences)
	d := cmp.Differences[0]
	assert.Equal(t, DiffMissingInventory, d.Kind)
	assert.Equal(t, p2.ID.String(), d.ProductID)
	assert.Equal(t, v2.ID.String(), d.VariantID)
	assert.Equal(t, 4, d.CatalogValue)
	assert.Equal(t, 0, d.InventoryValue)
}

func TestCompareKeepsCatalogOrder(t *testing.T) {
	a := newVariant("A", 1, 10)
	b := newVariant("B", 2, 10)
	c := newVariant("C", 3, 10)
	p1 := newProduct("Ordered", a, b, c)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	svc := NewService(catalogRepo, newFakeInventoryRepo(), nil)

	cmp, err := svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, cmp.TotalDifferences)
	assert.Equal(t, "A", cmp.Differences[0].VariantName)
	assert.Equal(t, "B", cmp.Differences[1].VariantName)
	assert.Equal(t, "C", cmp.Differences[2].VariantName)
}

func TestCompareDoesNotConflateOrphansWithMismatches(t *testing.T) {
	v1 := newVariant("50ml", 5, 100)
	p1 := newProduct("Rose Serum", v1)
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	// a record whose catalog counterpart never existed
	stray := &inventory.Item{ProductID: uuid.New(), VariantID: uuid.New(), VariantName: "Gone", StockQty: 9}
	require.NoError(t, invRepo.Upsert(context.Background(), stray))

	_, err := svc.SyncProductsToInventory(context.Background())
	require.NoError(t, err)
	require.NoError(t, invRepo.AdjustStock(context.Background(), p1.ID.String(), v1.ID.String(), -1))

	cmp, err := svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, cmp.TotalDifferences)
	// catalog-driven differences come first, orphans after
	assert.Equal(t, DiffStockMismatch, cmp.Differences[0].Kind)
	assert.Equal(t, DiffOrphanInventory, cmp.Differences[1].Kind)
	assert.Equal(t, 9, cmp.Differences[1].InventoryValue)
}

func TestCompareIsReadOnly(t *testing.T) {
	p1 := newProduct("Rose Serum", newVariant("50ml", 5, 100))
	catalogRepo := &fakeCatalogRepo{products: []*catalog.Product{p1}}
	invRepo := newFakeInventoryRepo()
	svc := NewService(catalogRepo, invRepo, nil)

	_, err := svc.CompareInventoryWithProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invRepo.items)
}
