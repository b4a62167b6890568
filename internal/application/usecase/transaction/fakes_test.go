// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// In-memory fakes for the adapter interfaces. They mirror the repository
// contracts closely enough that use case behavior under test matches what
// the real store would produce.

type fakeTransactionRepo struct {
	byID map[uuid.UUID]*entity.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byID: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Insert(_ context.Context, txn *entity.Transaction) error {
	copied := *txn
	r.byID[txn.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *txn
	return &copied, nil
}

func (r *fakeTransactionRepo) UpdateCategory(_ context.Context, id, categoryID uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	txn.CategoryID = categoryID
	txn.UpdatedAt = time.Now().UTC()
	copied := *txn
	return &copied, nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	delete(r.byID, id)
	return txn, nil
}

func (r *fakeTransactionRepo) FindByUserAndDateRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, txn := range r.byID {
		if txn.UserID == userID && !txn.Date.Before(start) && !txn.Date.After(end) {
			copied := *txn
			result = append(result, &copied)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeTransactionRepo) FindByUserAndCategory(_ context.Context, userID, categoryID uuid.UUID) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, txn := range r.byID {
		if txn.UserID == userID && txn.CategoryID == categoryID {
			copied := *txn
			result = append(result, &copied)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeTransactionRepo) FindByUserAndDescription(_ context.Context, userID uuid.UUID, substring string) ([]*entity.Transaction, error) {
	needle := strings.ToLower(substring)
	var result []*entity.Transaction
	for _, txn := range r.byID {
		if txn.UserID == userID && strings.Contains(strings.ToLower(txn.Description), needle) {
			copied := *txn
			result = append(result, &copied)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeTransactionRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, txn := range r.byID {
		if txn.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func sortNewestFirst(txns []*entity.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}

type fakeCategoryRepo struct {
	byID map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	copied := *category
	r.byID[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) FindByUserAndName(_ context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	for _, category := range r.byID {
		if category.UserID == userID && category.Name == name {
			copied := *category
			return &copied, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, category := range r.byID {
		if category.UserID == userID {
			copied := *category
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeCategoryRepo) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	_, err := r.FindByUserAndName(ctx, userID, name)
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeUserRepo struct {
	byID map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, domainerror.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

type fakeLimitRepo struct {
	byUser map[uuid.UUID]*entity.MonthlyLimit
	deltas []int64
}

func newFakeLimitRepo() *fakeLimitRepo {
	return &fakeLimitRepo{byUser: make(map[uuid.UUID]*entity.MonthlyLimit)}
}

func (r *fakeLimitRepo) Create(_ context.Context, limit *entity.MonthlyLimit) error {
	copied := *limit
	r.byUser[limit.UserID] = &copied
	return nil
}

func (r *fakeLimitRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MonthlyLimit, error) {
	for _, limit := range r.byUser {
		if limit.ID == id {
			copied := *limit
			return &copied, nil
		}
	}
	return nil, domainerror.ErrLimitNotFound
}

func (r *fakeLimitRepo) FindByUser(_ context.Context, userID uuid.UUID) (*entity.MonthlyLimit, error) {
	limit, ok := r.byUser[userID]
	if !ok {
		return nil, domainerror.ErrLimitNotFound
	}
	copied := *limit
	return &copied, nil
}

func (r *fakeLimitRepo) UpdateLimitAmount(_ context.Context, id uuid.UUID, limitAmount int64) (*entity.MonthlyLimit, error) {
	for _, limit := range r.byUser {
		if limit.ID == id {
			limit.LimitAmount = limitAmount
			copied := *limit
			return &copied, nil
		}
	}
	return nil, domainerror.ErrLimitNotFound
}

func (r *fakeLimitRepo) ApplyDelta(_ context.Context, userID uuid.UUID, delta int64) (*entity.MonthlyLimit, error) {
	r.deltas = append(r.deltas, delta)
	limit, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	limit.TotalExpenses += delta
	copied := *limit
	return &copied, nil
}

func (r *fakeLimitRepo) Delete(_ context.Context, id uuid.UUID) (*entity.MonthlyLimit, error) {
	for userID, limit := range r.byUser {
		if limit.ID == id {
			delete(r.byUser, userID)
			return limit, nil
		}
	}
	return nil, domainerror.ErrLimitNotFound
}

type cacheEntry struct {
	payload []byte
	ttl     time.Duration
}

// fakeViewCache records puts with their TTLs and counts invalidations. When
// failing is set every operation errors, exercising the degradation paths.
type fakeViewCache struct {
	mu      sync.Mutex
	entries map[adapter.ViewKey]cacheEntry
	failing bool
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{entries: make(map[adapter.ViewKey]cacheEntry)}
}

var errCacheUnavailable = errors.New("cache unavailable")

func (c *fakeViewCache) Get(_ context.Context, key adapter.ViewKey) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, false, errCacheUnavailable
	}
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (c *fakeViewCache) Put(_ context.Context, key adapter.ViewKey, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errCacheUnavailable
	}
	c.entries[key] = cacheEntry{payload: payload, ttl: ttl}
	return nil
}

func (c *fakeViewCache) Invalidate(_ context.Context, keys ...adapter.ViewKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errCacheUnavailable
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeViewCache) has(key adapter.ViewKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func (c *fakeViewCache) ttlOf(key adapter.ViewKey) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry.ttl, ok
}

type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) SendLimitReachedEmail(_ context.Context, _, email string) error {
	n.sent = append(n.sent, email)
	return nil
}

// ledgerFixture bundles the fakes plus a seeded owner and category so each
// test starts from a consistent world.
type ledgerFixture struct {
	transactionRepo *fakeTransactionRepo
	categoryRepo    *fakeCategoryRepo
	userRepo        *fakeUserRepo
	limitRepo       *fakeLimitRepo
	cache           *fakeViewCache
	notifier        *fakeNotifier

	user     *entity.User
	category *entity.Category
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		transactionRepo: newFakeTransactionRepo(),
		categoryRepo:    newFakeCategoryRepo(),
		userRepo:        newFakeUserRepo(),
		limitRepo:       newFakeLimitRepo(),
		cache:           newFakeViewCache(),
		notifier:        &fakeNotifier{},
	}

	f.user = entity.NewUser("alice@example.com", "Alice", "hash")
	_ = f.userRepo.Create(context.Background(), f.user)

	f.category = entity.NewCategory(f.user.ID, "PETS")
	_ = f.categoryRepo.Create(context.Background(), f.category)

	return f
}

func (f *ledgerFixture) createUseCase() *CreateTransactionUseCase {
	return NewCreateTransactionUseCase(f.transactionRepo, f.categoryRepo, f.userRepo, f.limitRepo, f.cache, f.notifier)
}

func (f *ledgerFixture) seedTransaction(txnType entity.TransactionType, amount int64, description string) *entity.Transaction {
	txn := entity.NewTransaction(f.user.ID, f.category.ID, txnType, amount, description)
	_ = f.transactionRepo.Insert(context.Background(), txn)
	return txn
}

func (f *ledgerFixture) setLimit(amount int64) *entity.MonthlyLimit {
	limit := entity.NewMonthlyLimit(f.user.ID, amount)
	_ = f.limitRepo.Create(context.Background(), limit)
	return limit
}
