package sales

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/register"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory stand-in for the persistence layer. Execute
// serializes transactions through one mutex, which models row locking at the
// coarsest grain, and restores a deep snapshot on error so rollback semantics
// match the real transaction scope.
type memoryStore struct {
	mu sync.Mutex

	products    map[uuid.UUID]*catalog.Product
	combos      []catalog.ComboComponent
	priceLists  map[uuid.UUID]*catalog.PriceList
	customers   map[uuid.UUID]*partner.Customer
	outstanding map[uuid.UUID]decimal.Decimal
	overdue     map[uuid.UUID]bool
	warehouses  map[uuid.UUID]*partner.Warehouse
	users       map[uuid.UUID]*identity.User
	sessions    map[uuid.UUID]*register.CashSession
	stock       map[string]*inventory.StockLevel
	movements   []inventory.StockMovement
	serialUnits map[string]*inventory.SerializedUnit
	sales       map[uuid.UUID]*sales.Sale
	accruals    []sales.CommissionAccrual
	nextNumber  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products:    make(map[uuid.UUID]*catalog.Product),
		priceLists:  make(map[uuid.UUID]*catalog.PriceList),
		customers:   make(map[uuid.UUID]*partner.Customer),
		outstanding: make(map[uuid.UUID]decimal.Decimal),
		overdue:     make(map[uuid.UUID]bool),
		warehouses:  make(map[uuid.UUID]*partner.Warehouse),
		users:       make(map[uuid.UUID]*identity.User),
		sessions:    make(map[uuid.UUID]*register.CashSession),
		stock:       make(map[string]*inventory.StockLevel),
		serialUnits: make(map[string]*inventory.SerializedUnit),
		sales:       make(map[uuid.UUID]*sales.Sale),
	}
}

func stockKey(productID, warehouseID uuid.UUID) string {
	return productID.String() + "/" + warehouseID.String()
}

// snapshot deep-copies every mutable aggregate so a rolled-back transaction
// leaves no trace, even though domain methods mutate aggregates in place.
func (m *memoryStore) snapshot() *memoryStore {
	s := newMemoryStore()
	for k, v := range m.products {
		cp := *v
		s.products[k] = &cp
	}
	s.combos = append([]catalog.ComboComponent(nil), m.combos...)
	for k, v := range m.priceLists {
		cp := *v
		cp.Items = append([]catalog.PriceListItem(nil), v.Items...)
		s.priceLists[k] = &cp
	}
	for k, v := range m.customers {
		cp := *v
		s.customers[k] = &cp
	}
	for k, v := range m.outstanding {
		s.outstanding[k] = v
	}
	for k, v := range m.overdue {
		s.overdue[k] = v
	}
	for k, v := range m.warehouses {
		cp := *v
		s.warehouses[k] = &cp
	}
	for k, v := range m.users {
		cp := *v
		s.users[k] = &cp
	}
	for k, v := range m.sessions {
		cp := *v
		s.sessions[k] = &cp
	}
	for k, v := range m.stock {
		cp := *v
		s.stock[k] = &cp
	}
	s.movements = append([]inventory.StockMovement(nil), m.movements...)
	for k, v := range m.serialUnits {
		cp := *v
		s.serialUnits[k] = &cp
	}
	for k, v := range m.sales {
		cp := *v
		cp.Lines = append([]sales.SaleLine(nil), v.Lines...)
		cp.Payments = append([]sales.SalePayment(nil), v.Payments...)
		s.sales[k] = &cp
	}
	s.accruals = append([]sales.CommissionAccrual(nil), m.accruals...)
	s.nextNumber = m.nextNumber
	return s
}

func (m *memoryStore) restore(s *memoryStore) {
	m.products = s.products
	m.combos = s.combos
	m.priceLists = s.priceLists
	m.customers = s.customers
	m.outstanding = s.outstanding
	m.overdue = s.overdue
	m.warehouses = s.warehouses
	m.users = s.users
	m.sessions = s.sessions
	m.stock = s.stock
	m.movements = s.movements
	m.serialUnits = s.serialUnits
	m.sales = s.sales
	m.accruals = s.accruals
	m.nextNumber = s.nextNumber
}

// memoryScope implements TransactionScope over a memoryStore
type memoryScope struct {
	store *memoryStore
}

func (s *memoryScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	snap := s.store.snapshot()
	if err := fn(&memoryRepos{store: s.store}); err != nil {
		s.store.restore(snap)
		return err
	}
	return nil
}

// memoryRepos exposes the store through the repository interfaces
type memoryRepos struct {
	store *memoryStore
}

func (r *memoryRepos) Products() catalog.ProductRepository           { return &fakeProductRepo{r.store} }
func (r *memoryRepos) Combos() catalog.ComboComponentRepository      { return &fakeComboRepo{r.store} }
func (r *memoryRepos) PriceLists() catalog.PriceListRepository       { return &fakePriceListRepo{r.store} }
func (r *memoryRepos) Customers() partner.CustomerRepository         { return &fakeCustomerRepo{r.store} }
func (r *memoryRepos) Warehouses() partner.WarehouseRepository       { return &fakeWarehouseRepo{r.store} }
func (r *memoryRepos) Users() identity.UserRepository                { return &fakeUserRepo{r.store} }
func (r *memoryRepos) Sessions() register.SessionRepository          { return &fakeSessionRepo{r.store} }
func (r *memoryRepos) Stock() inventory.StockLevelRepository         { return &fakeStockRepo{r.store} }
func (r *memoryRepos) Movements() inventory.StockMovementRepository  { return &fakeMovementRepo{r.store} }
func (r *memoryRepos) Serials() inventory.SerializedUnitRepository   { return &fakeSerialRepo{r.store} }
func (r *memoryRepos) Sales() sales.SaleRepository                   { return &fakeSaleRepo{r.store} }
func (r *memoryRepos) Commissions() sales.CommissionAccrualRepository { return &fakeCommissionRepo{r.store} }

type fakeProductRepo struct{ store *memoryStore }

func (r *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.store.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	r.store.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.products, id)
	return nil
}

type fakeComboRepo struct{ store *memoryStore }

func (r *fakeComboRepo) FindByParent(ctx context.Context, parentProductID uuid.UUID) ([]catalog.ComboComponent, error) {
	var out []catalog.ComboComponent
	for _, c := range r.store.combos {
		if c.ParentProductID == parentProductID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeComboRepo) Save(ctx context.Context, component *catalog.ComboComponent) error {
	r.store.combos = append(r.store.combos, *component)
	return nil
}

type fakePriceListRepo struct{ store *memoryStore }

func (r *fakePriceListRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PriceList, error) {
	return r.store.priceLists[id], nil
}

func (r *fakePriceListRepo) FindItem(ctx context.Context, priceListID, productID uuid.UUID) (*catalog.PriceListItem, error) {
	list, ok := r.store.priceLists[priceListID]
	if !ok {
		return nil, nil
	}
	for i := range list.Items {
		if list.Items[i].ProductID == productID {
			return &list.Items[i], nil
		}
	}
	return nil, nil
}

func (r *fakePriceListRepo) Save(ctx context.Context, list *catalog.PriceList) error {
	r.store.priceLists[list.ID] = list
	return nil
}

type fakeCustomerRepo struct{ store *memoryStore }

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return r.store.customers[id], nil
}

func (r *fakeCustomerRepo) OutstandingBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return r.store.outstanding[customerID], nil
}

func (r *fakeCustomerRepo) HasOverdueInvoices(ctx context.Context, customerID uuid.UUID, now time.Time) (bool, error) {
	return r.store.overdue[customerID], nil
}

func (r *fakeCustomerRepo) Save(ctx context.Context, customer *partner.Customer) error {
	r.store.customers[customer.ID] = customer
	return nil
}

type fakeWarehouseRepo struct{ store *memoryStore }

func (r *fakeWarehouseRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Warehouse, error) {
	return r.store.warehouses[id], nil
}

func (r *fakeWarehouseRepo) FindMain(ctx context.Context) (*partner.Warehouse, error) {
	for _, w := range r.store.warehouses {
		if w.IsMain && w.IsActive() {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) FindFirstActive(ctx context.Context) (*partner.Warehouse, error) {
	var best *partner.Warehouse
	for _, w := range r.store.warehouses {
		if !w.IsActive() {
			continue
		}
		if best == nil || w.Code < best.Code {
			best = w
		}
	}
	return best, nil
}

func (r *fakeWarehouseRepo) Save(ctx context.Context, warehouse *partner.Warehouse) error {
	r.store.warehouses[warehouse.ID] = warehouse
	return nil
}

type fakeUserRepo struct{ store *memoryStore }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.store.users[id], nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, user *identity.User) error {
	r.store.users[user.ID] = user
	return nil
}

type fakeSessionRepo struct{ store *memoryStore }

func (r *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*register.CashSession, error) {
	return r.store.sessions[id], nil
}

func (r *fakeSessionRepo) FindOpen(ctx context.Context) (*register.CashSession, error) {
	for _, s := range r.store.sessions {
		if s.IsOpen() {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *register.CashSession) error {
	r.store.sessions[session.ID] = session
	return nil
}

type fakeStockRepo struct{ store *memoryStore }

func (r *fakeStockRepo) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.StockLevel, error) {
	return r.store.stock[stockKey(productID, warehouseID)], nil
}

func (r *fakeStockRepo) FindForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.StockLevel, error) {
	return r.store.stock[stockKey(productID, warehouseID)], nil
}

func (r *fakeStockRepo) Save(ctx context.Context, level *inventory.StockLevel) error {
	r.store.stock[stockKey(level.ProductID, level.WarehouseID)] = level
	return nil
}

type fakeMovementRepo struct{ store *memoryStore }

func (r *fakeMovementRepo) Append(ctx context.Context, movement *inventory.StockMovement) error {
	r.store.movements = append(r.store.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	for i := len(r.store.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.store.movements[i].ProductID == productID {
			out = append(out, r.store.movements[i])
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) FindBySource(ctx context.Context, sourceID uuid.UUID) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	for _, m := range r.store.movements {
		if m.SourceID != nil && *m.SourceID == sourceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSerialRepo struct{ store *memoryStore }

func (r *fakeSerialRepo) FindBySerial(ctx context.Context, serial string) (*inventory.SerializedUnit, error) {
	return r.store.serialUnits[serial], nil
}

func (r *fakeSerialRepo) FindBySerialsForUpdate(ctx context.Context, serials []string) ([]inventory.SerializedUnit, error) {
	var out []inventory.SerializedUnit
	for _, s := range serials {
		if u, ok := r.store.serialUnits[s]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeSerialRepo) Save(ctx context.Context, unit *inventory.SerializedUnit) error {
	r.store.serialUnits[unit.Serial] = unit
	return nil
}

func (r *fakeSerialRepo) SaveBatch(ctx context.Context, units []*inventory.SerializedUnit) error {
	for _, u := range units {
		r.store.serialUnits[u.Serial] = u
	}
	return nil
}

type fakeSaleRepo struct{ store *memoryStore }

func (r *fakeSaleRepo) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	return r.store.sales[id], nil
}

func (r *fakeSaleRepo) FindByIdempotencyKey(ctx context.Context, key string) (*sales.Sale, error) {
	for _, s := range r.store.sales {
		if s.IdempotencyKey == key {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Save(ctx context.Context, sale *sales.Sale) error {
	if sale.IdempotencyKey != "" {
		for _, existing := range r.store.sales {
			if existing.ID != sale.ID && existing.IdempotencyKey == sale.IdempotencyKey {
				return shared.NewDomainError(shared.ErrDuplicateBasket.Code,
					"a sale with idempotency key "+sale.IdempotencyKey+" already exists")
			}
		}
	}
	r.store.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GenerateNumber(ctx context.Context) (string, error) {
	r.store.nextNumber++
	return fmt.Sprintf("V-%d-%05d", time.Now().Year(), r.store.nextNumber), nil
}

type fakeCommissionRepo struct{ store *memoryStore }

func (r *fakeCommissionRepo) Append(ctx context.Context, accrual *sales.CommissionAccrual) error {
	r.store.accruals = append(r.store.accruals, *accrual)
	return nil
}

func (r *fakeCommissionRepo) FindBySale(ctx context.Context, saleID uuid.UUID) ([]sales.CommissionAccrual, error) {
	var out []sales.CommissionAccrual
	for _, a := range r.store.accruals {
		if a.SaleID == saleID {
			out = append(out, a)
		}
	}
	return out, nil
}

// recordingPublisher captures events handed over after commit
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) byType(eventType string) []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []shared.DomainEvent
	for _, e := range p.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// recordingIdempotencyStore is a map-backed idempotency store hint
type recordingIdempotencyStore struct {
	mu     sync.Mutex
	marked map[string]bool
}

func newRecordingIdempotencyStore() *recordingIdempotencyStore {
	return &recordingIdempotencyStore{marked: make(map[string]bool)}
}

func (s *recordingIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.marked[key] {
		return false, nil
	}
	s.marked[key] = true
	return true, nil
}

func (s *recordingIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked[key], nil
}

func (s *recordingIdempotencyStore) Close() error { return nil }
