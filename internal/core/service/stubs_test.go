package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	nextID    int64
	existsErr error
	createErr error
	findErr   error
	touchErr  error
	touched   map[int64]time.Time
	// hideExisting makes ExistsByUsername miss so Create hits the constraint.
	hideExisting bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), touched: make(map[int64]time.Time)}
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	if r.hideExisting {
		return false, nil
	}
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrDuplicateEntry
	}
	r.nextID++
	clone := *user
	clone.ID = r.nextID
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	if r.touchErr != nil {
		return r.touchErr
	}
	r.touched[id] = at
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttls     map[string]time.Duration
	saveErr  error
	findErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session), ttls: make(map[string]time.Duration)}
}

func (s *stubSessionStore) Save(_ context.Context, sess domain.Session, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	s.ttls[sess.Token] = ttl
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, token string) (*domain.Session, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// ---------------------------------------------------------------------------
// Activity
// ---------------------------------------------------------------------------

type recordingActivity struct {
	records []domain.ActivityRecord
}

func (r *recordingActivity) Record(_ context.Context, rec domain.ActivityRecord) {
	r.records = append(r.records, rec)
}

func (r *recordingActivity) ofType(t domain.ActivityType) []domain.ActivityRecord {
	var out []domain.ActivityRecord
	for _, rec := range r.records {
		if rec.Type == t {
			out = append(out, rec)
		}
	}
	return out
}

type stubActivityRepo struct {
	appendErr    error
	invLogErr    error
	recentErr    error
	appended     []domain.ActivityRecord
	invLogs      []string
	recent       []domain.ActivityRecord
	recentLimits []int
}

func (r *stubActivityRepo) Append(_ context.Context, rec domain.ActivityRecord) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, rec)
	return nil
}

func (r *stubActivityRepo) AppendInventoryLog(_ context.Context, _, _ int64, action string) error {
	if r.invLogErr != nil {
		return r.invLogErr
	}
	r.invLogs = append(r.invLogs, action)
	return nil
}

func (r *stubActivityRepo) Recent(_ context.Context, limit int) ([]domain.ActivityRecord, error) {
	r.recentLimits = append(r.recentLimits, limit)
	if r.recentErr != nil {
		return nil, r.recentErr
	}
	return r.recent, nil
}

func (r *stubActivityRepo) RecentInventoryLogs(_ context.Context, _ int) ([]domain.InventoryLog, error) {
	return []domain.InventoryLog{}, nil
}

// ---------------------------------------------------------------------------
// Inventory
// ---------------------------------------------------------------------------

type stubInventoryRepo struct {
	items     map[int64]domain.InventoryItem
	order     []int64
	nextID    int64
	err       error
	deleteErr error
}

func newStubInventoryRepo(items ...domain.InventoryItem) *stubInventoryRepo {
	r := &stubInventoryRepo{items: make(map[int64]domain.InventoryItem)}
	for _, it := range items {
		if it.ID == 0 {
			r.nextID++
			it.ID = r.nextID
		} else if it.ID > r.nextID {
			r.nextID = it.ID
		}
		r.items[it.ID] = it
		r.order = append(r.order, it.ID)
	}
	return r
}

func (r *stubInventoryRepo) all() []domain.InventoryItem {
	out := []domain.InventoryItem{}
	for _, id := range r.order {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

func (r *stubInventoryRepo) Create(_ context.Context, item *domain.InventoryItem) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = *item
	r.order = append(r.order, item.ID)
	return item.ID, nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id int64) (*domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

func (r *stubInventoryRepo) Delete(_ context.Context, id int64) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

func (r *stubInventoryRepo) List(context.Context) ([]domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.all(), nil
}

func (r *stubInventoryRepo) ListBelow(_ context.Context, q int) ([]domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.InventoryItem{}
	for _, it := range r.all() {
		if it.Quantity < q {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) ListAbove(_ context.Context, q int) ([]domain.InventoryItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.InventoryItem{}
	for _, it := range r.all() {
		if it.Quantity > q {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) Names(context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []string{}
	for _, it := range r.all() {
		out = append(out, it.Name)
	}
	return out, nil
}

func (r *stubInventoryRepo) distinct(field func(domain.InventoryItem) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, it := range r.all() {
		v := field(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func (r *stubInventoryRepo) DistinctSuppliers(context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.distinct(func(it domain.InventoryItem) string { return it.Supplier }), nil
}

func (r *stubInventoryRepo) DistinctCategories(context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.distinct(func(it domain.InventoryItem) string { return it.Category }), nil
}

func newItem(name string, qty int, price, category, supplier string) domain.InventoryItem {
	return domain.InventoryItem{
		Name:     name,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
		Category: category,
		Supplier: supplier,
	}
}
