package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/catalog"
	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/domain/trade"
)

// ---------------------------------------------------------------------------
// Fake Clock
// ---------------------------------------------------------------------------

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) sleepLog() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// ---------------------------------------------------------------------------
// Fake Guard and Credentials
// ---------------------------------------------------------------------------

type openGuard struct{}

func (openGuard) Acquire(context.Context, integration.PlatformCode, Job) (func(), error) {
	return func() {}, nil
}

type closedGuard struct{}

func (closedGuard) Acquire(context.Context, integration.PlatformCode, Job) (func(), error) {
	return nil, ErrSyncAlreadyRunning
}

type fakeCredentials struct {
	cred *integration.Credential
	err  error
}

func activeCredentials() *fakeCredentials {
	return &fakeCredentials{cred: &integration.Credential{
		Platform:  integration.PlatformCodeTrendyol,
		APIKey:    "key",
		APISecret: "secret",
		SellerID:  "102483",
		Status:    integration.CredentialStatusActive,
	}}
}

func (f *fakeCredentials) FindByPlatform(context.Context, integration.PlatformCode) (*integration.Credential, error) {
	return f.cred, f.err
}

func (f *fakeCredentials) FindActiveByPlatform(context.Context, integration.PlatformCode) (*integration.Credential, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cred, nil
}

func (f *fakeCredentials) Save(context.Context, *integration.Credential) error { return nil }

func (f *fakeCredentials) Delete(context.Context, integration.PlatformCode) error { return nil }

// ---------------------------------------------------------------------------
// Fake Marketplace
// ---------------------------------------------------------------------------

type fakeMarketplace struct {
	integration.Marketplace

	brandPages     [][]integration.RemoteBrand
	brandErr       map[int]error
	categoryTree   []integration.RemoteCategoryNode
	categoryErr    error
	categoryErrs   []error // consumed one per call, ahead of categoryErr
	categoryCalls  int
	attributes     map[int64][]integration.RemoteCategoryAttribute
	attributeErr   map[int64]error
	attributeErrs  map[int64][]error // consumed one per call, ahead of attributeErr
	attributeCalls map[int64]int
	addresses      []integration.RemoteAddress
	addressErr     error
	productPages   [][]integration.RemoteProduct
	orderPages     [][]integration.RemoteOrder
	orderErr       map[int]error
	orderRequests  []integration.OrderPageRequest
	brandCalls     map[int]int
	statusUpdates  []integration.PackageStatusUpdate
	statusErr      error
	cargoUpdates   []integration.CargoProviderUpdate
	cargoErr       error
}

func newFakeMarketplace() *fakeMarketplace {
	return &fakeMarketplace{
		brandErr:       map[int]error{},
		orderErr:       map[int]error{},
		brandCalls:     map[int]int{},
		attributeErrs:  map[int64][]error{},
		attributeCalls: map[int64]int{},
	}
}

func (m *fakeMarketplace) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeTrendyol
}

func (m *fakeMarketplace) FetchBrandPage(_ context.Context, _ *integration.Credential, req integration.PageRequest) (*integration.BrandPage, error) {
	m.brandCalls[req.Page]++
	if err := m.brandErr[req.Page]; err != nil {
		return nil, err
	}
	if req.Page >= len(m.brandPages) {
		return &integration.BrandPage{}, nil
	}
	return &integration.BrandPage{Items: m.brandPages[req.Page]}, nil
}

func (m *fakeMarketplace) FetchCategoryTree(context.Context, *integration.Credential) ([]integration.RemoteCategoryNode, error) {
	m.categoryCalls++
	if len(m.categoryErrs) > 0 {
		err := m.categoryErrs[0]
		m.categoryErrs = m.categoryErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.categoryTree, m.categoryErr
}

func (m *fakeMarketplace) FetchCategoryAttributes(_ context.Context, _ *integration.Credential, categoryID int64) ([]integration.RemoteCategoryAttribute, error) {
	m.attributeCalls[categoryID]++
	if errs := m.attributeErrs[categoryID]; len(errs) > 0 {
		m.attributeErrs[categoryID] = errs[1:]
		if errs[0] != nil {
			return nil, errs[0]
		}
	}
	if err := m.attributeErr[categoryID]; err != nil {
		return nil, err
	}
	return m.attributes[categoryID], nil
}

func (m *fakeMarketplace) FetchAddresses(context.Context, *integration.Credential) ([]integration.RemoteAddress, error) {
	return m.addresses, m.addressErr
}

func (m *fakeMarketplace) FetchProductPage(_ context.Context, _ *integration.Credential, req integration.PageRequest) (*integration.ProductPage, error) {
	if req.Page >= len(m.productPages) {
		return &integration.ProductPage{}, nil
	}
	return &integration.ProductPage{Items: m.productPages[req.Page]}, nil
}

func (m *fakeMarketplace) FetchOrderPage(_ context.Context, _ *integration.Credential, req integration.OrderPageRequest) (*integration.OrderPage, error) {
	m.orderRequests = append(m.orderRequests, req)
	if err := m.orderErr[req.Page]; err != nil {
		return nil, err
	}
	if req.Page >= len(m.orderPages) {
		return &integration.OrderPage{}, nil
	}
	return &integration.OrderPage{Items: m.orderPages[req.Page]}, nil
}

func (m *fakeMarketplace) UpdatePackageStatus(_ context.Context, _ *integration.Credential, update *integration.PackageStatusUpdate) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.statusUpdates = append(m.statusUpdates, *update)
	return nil
}

func (m *fakeMarketplace) UpdateCargoProvider(_ context.Context, _ *integration.Credential, update *integration.CargoProviderUpdate) error {
	if m.cargoErr != nil {
		return m.cargoErr
	}
	m.cargoUpdates = append(m.cargoUpdates, *update)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory Repositories
// ---------------------------------------------------------------------------

type memBrandRepo struct {
	rows map[int64]integration.BrandMirror
	err  error
}

func newMemBrandRepo() *memBrandRepo {
	return &memBrandRepo{rows: map[int64]integration.BrandMirror{}}
}

func (r *memBrandRepo) UpsertBatch(_ context.Context, brands []integration.BrandMirror) error {
	if r.err != nil {
		return r.err
	}
	for _, b := range brands {
		r.rows[b.RemoteID] = b
	}
	return nil
}

func (r *memBrandRepo) FindByRemoteID(_ context.Context, _ integration.PlatformCode, remoteID int64) (*integration.BrandMirror, error) {
	b, ok := r.rows[remoteID]
	if !ok {
		return nil, integration.ErrMirrorNotFound
	}
	return &b, nil
}

func (r *memBrandRepo) Count(context.Context, integration.PlatformCode) (int64, error) {
	return int64(len(r.rows)), nil
}

type memCategoryRepo struct {
	rows map[int64]integration.CategoryMirror
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{rows: map[int64]integration.CategoryMirror{}}
}

func (r *memCategoryRepo) UpsertBatch(_ context.Context, categories []integration.CategoryMirror) error {
	for _, c := range categories {
		r.rows[c.RemoteID] = c
	}
	return nil
}

func (r *memCategoryRepo) FindByRemoteID(_ context.Context, _ integration.PlatformCode, remoteID int64) (*integration.CategoryMirror, error) {
	c, ok := r.rows[remoteID]
	if !ok {
		return nil, integration.ErrMirrorNotFound
	}
	return &c, nil
}

func (r *memCategoryRepo) FindChildren(_ context.Context, _ integration.PlatformCode, parentID int64) ([]integration.CategoryMirror, error) {
	var out []integration.CategoryMirror
	for _, c := range r.rows {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) FindRoots(context.Context, integration.PlatformCode) ([]integration.CategoryMirror, error) {
	var out []integration.CategoryMirror
	for _, c := range r.rows {
		if c.ParentID == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) FindLeaves(context.Context, integration.PlatformCode) ([]integration.CategoryMirror, error) {
	var out []integration.CategoryMirror
	for _, c := range r.rows {
		if c.Leaf {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) Count(context.Context, integration.PlatformCode) (int64, error) {
	return int64(len(r.rows)), nil
}

type memAttributeRepo struct {
	rows map[string]integration.CategoryAttributeMirror
	err  error
}

func newMemAttributeRepo() *memAttributeRepo {
	return &memAttributeRepo{rows: map[string]integration.CategoryAttributeMirror{}}
}

func attrKey(categoryID, attributeID int64) string {
	return fmt.Sprintf("%d/%d", categoryID, attributeID)
}

func (r *memAttributeRepo) Upsert(_ context.Context, a *integration.CategoryAttributeMirror) error {
	if r.err != nil {
		return r.err
	}
	r.rows[attrKey(a.CategoryID, a.AttributeID)] = *a
	return nil
}

func (r *memAttributeRepo) UpsertBatch(ctx context.Context, attrs []integration.CategoryAttributeMirror) error {
	for i := range attrs {
		if err := r.Upsert(ctx, &attrs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memAttributeRepo) FindByCategory(_ context.Context, _ integration.PlatformCode, categoryID int64) ([]integration.CategoryAttributeMirror, error) {
	var out []integration.CategoryAttributeMirror
	for _, a := range r.rows {
		if a.CategoryID == categoryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAttributeRepo) Find(_ context.Context, _ integration.PlatformCode, categoryID, attributeID int64) (*integration.CategoryAttributeMirror, error) {
	a, ok := r.rows[attrKey(categoryID, attributeID)]
	if !ok {
		return nil, integration.ErrMirrorNotFound
	}
	return &a, nil
}

func (r *memAttributeRepo) Count(context.Context, integration.PlatformCode) (int64, error) {
	return int64(len(r.rows)), nil
}

type memAddressRepo struct {
	rows []integration.AddressMirror
}

func (r *memAddressRepo) ReplaceAll(_ context.Context, _ integration.PlatformCode, addresses []integration.AddressMirror) error {
	r.rows = addresses
	return nil
}

func (r *memAddressRepo) FindAll(context.Context, integration.PlatformCode) ([]integration.AddressMirror, error) {
	return r.rows, nil
}

type memProductMirrorRepo struct {
	rows map[string]integration.ProductMirror
}

func newMemProductMirrorRepo() *memProductMirrorRepo {
	return &memProductMirrorRepo{rows: map[string]integration.ProductMirror{}}
}

func (r *memProductMirrorRepo) UpsertBatch(_ context.Context, products []integration.ProductMirror) error {
	for _, p := range products {
		r.rows[p.Barcode] = p
	}
	return nil
}

func (r *memProductMirrorRepo) FindByBarcode(_ context.Context, _ integration.PlatformCode, barcode string) (*integration.ProductMirror, error) {
	p, ok := r.rows[barcode]
	if !ok {
		return nil, integration.ErrMirrorNotFound
	}
	return &p, nil
}

func (r *memProductMirrorRepo) Count(context.Context, integration.PlatformCode) (int64, error) {
	return int64(len(r.rows)), nil
}

type memCatalogRepo struct {
	products map[string]*catalog.Product
	cached   int64
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{products: map[string]*catalog.Product{}}
}

func (r *memCatalogRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.Barcode] = p
	return nil
}

func (r *memCatalogRepo) FindByBarcode(_ context.Context, barcode string) (*catalog.Product, error) {
	p, ok := r.products[barcode]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (r *memCatalogRepo) List(context.Context, catalog.ProductQuery) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memCatalogRepo) Count(context.Context, catalog.ProductQuery) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *memCatalogRepo) CacheListings(_ context.Context, platform integration.PlatformCode, listings []integration.RemoteProduct) (int64, error) {
	var n int64
	for i := range listings {
		if p, ok := r.products[listings[i].Barcode]; ok {
			p.CacheListing(platform, &listings[i])
			n++
		}
	}
	r.cached += n
	return n, nil
}

type memOrderRepo struct {
	rows map[string]*trade.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{rows: map[string]*trade.Order{}}
}

func orderKey(orderNumber string, packageID int64) string {
	return fmt.Sprintf("%s/%d", orderNumber, packageID)
}

func (r *memOrderRepo) Upsert(_ context.Context, order *trade.Order) error {
	r.rows[orderKey(order.OrderNumber, order.ShipmentPackageID)] = order
	return nil
}

func (r *memOrderRepo) FindByNumberAndPackage(_ context.Context, _ integration.PlatformCode, orderNumber string, packageID int64) (*trade.Order, error) {
	o, ok := r.rows[orderKey(orderNumber, packageID)]
	if !ok {
		return nil, trade.ErrOrderNotFound
	}
	return o, nil
}

func (r *memOrderRepo) FindByOrderNumber(_ context.Context, _ integration.PlatformCode, orderNumber string) ([]*trade.Order, error) {
	var out []*trade.Order
	for _, o := range r.rows {
		if o.OrderNumber == orderNumber {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) List(context.Context, trade.OrderQuery) ([]*trade.Order, error) {
	var out []*trade.Order
	for _, o := range r.rows {
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) Count(context.Context, trade.OrderQuery) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *memOrderRepo) Save(ctx context.Context, order *trade.Order) error {
	return r.Upsert(ctx, order)
}

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

func testPagerConfig() PagerConfig {
	cfg := DefaultPagerConfig()
	cfg.PageSize = 2
	return cfg
}

func testPager(clock Clock) *Pager {
	return NewPager(testPagerConfig(), clock, zap.NewNop())
}
