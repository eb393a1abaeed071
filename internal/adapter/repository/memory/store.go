// Package memory is an in-process BudgetStore. Transactions run one at a
// time against a cloned state that replaces the live state on commit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
)

type state struct {
	requests      map[int64]model.BudgetRequest
	items         map[int64]model.BudgetItem
	files         map[int64]model.FileAttachment
	nextRequestID int64
	nextItemID    int64
	nextFileID    int64
}

func newState() *state {
	return &state{
		requests: map[int64]model.BudgetRequest{},
		items:    map[int64]model.BudgetItem{},
		files:    map[int64]model.FileAttachment{},
	}
}

func (s *state) clone() *state {
	c := &state{
		requests:      make(map[int64]model.BudgetRequest, len(s.requests)),
		items:         make(map[int64]model.BudgetItem, len(s.items)),
		files:         make(map[int64]model.FileAttachment, len(s.files)),
		nextRequestID: s.nextRequestID,
		nextItemID:    s.nextItemID,
		nextFileID:    s.nextFileID,
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.files {
		c.files[k] = v
	}
	return c
}

// Store implements repository.BudgetStore in memory.
type Store struct {
	mu    *sync.Mutex
	state *state
	inTx  bool
	now   func() time.Time
}

var _ domainRepo.BudgetStore = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		mu:    &sync.Mutex{},
		state: newState(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// lock is a no-op inside a transaction, which already holds the mutex.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTransaction runs fn on a cloned state and commits it when fn
// succeeds. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx domainRepo.BudgetStore) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	tx := &Store{mu: s.mu, state: working, inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	*s.state = *working
	return nil
}

func (s *Store) CreateRequest(ctx context.Context, req *model.BudgetRequest) error {
	defer s.lock()()

	s.state.nextRequestID++
	req.ID = s.state.nextRequestID
	now := s.now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	if req.UpdatedAt.IsZero() {
		req.UpdatedAt = req.CreatedAt
	}
	s.state.requests[req.ID] = stripRelations(*req)
	return nil
}

func (s *Store) GetRequest(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	defer s.lock()()

	req, ok := s.state.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

// GetRequestForUpdate is GetRequest; the transaction mutex already
// serializes writers.
func (s *Store) GetRequestForUpdate(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	return s.GetRequest(ctx, id)
}

func (s *Store) SaveRequest(ctx context.Context, req *model.BudgetRequest) error {
	defer s.lock()()

	if _, ok := s.state.requests[req.ID]; !ok {
		return fmt.Errorf("failed to save budget request %d: row does not exist", req.ID)
	}
	s.state.requests[req.ID] = stripRelations(*req)
	return nil
}

func (s *Store) DeleteRequest(ctx context.Context, id int64) error {
	defer s.lock()()

	delete(s.state.requests, id)
	for itemID, item := range s.state.items {
		if item.BudgetRequestID == id {
			delete(s.state.items, itemID)
		}
	}
	for fileID, file := range s.state.files {
		if file.BudgetRequestID == id {
			delete(s.state.files, fileID)
		}
	}
	return nil
}

func (s *Store) ListRequests(ctx context.Context, filters dto.RequestFilters) ([]model.BudgetRequest, error) {
	defer s.lock()()

	matched := s.filterRequests(filters)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if filters.Offset >= len(matched) {
		return []model.BudgetRequest{}, nil
	}
	end := len(matched)
	if filters.Limit > 0 && filters.Offset+filters.Limit < end {
		end = filters.Offset + filters.Limit
	}
	return matched[filters.Offset:end], nil
}

func (s *Store) CountRequests(ctx context.Context, filters dto.RequestFilters) (int64, error) {
	defer s.lock()()

	return int64(len(s.filterRequests(filters))), nil
}

func (s *Store) filterRequests(f dto.RequestFilters) []model.BudgetRequest {
	out := make([]model.BudgetRequest, 0, len(s.state.requests))
	for _, req := range s.state.requests {
		if f.DepartmentName != nil && req.DepartmentName != *f.DepartmentName {
			continue
		}
		if f.FiscalYear != nil && req.FiscalYear != *f.FiscalYear {
			continue
		}
		if f.Status != nil && req.Status != *f.Status {
			continue
		}
		if f.PriorityLevel != nil && req.PriorityLevel != *f.PriorityLevel {
			continue
		}
		out = append(out, req)
	}
	return out
}

func (s *Store) CreateItem(ctx context.Context, item *model.BudgetItem) error {
	defer s.lock()()

	if _, ok := s.state.requests[item.BudgetRequestID]; !ok {
		return fmt.Errorf("failed to create budget item: budget request %d does not exist", item.BudgetRequestID)
	}
	s.state.nextItemID++
	item.ID = s.state.nextItemID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = s.now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}
	s.state.items[item.ID] = *item
	return nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*model.BudgetItem, error) {
	defer s.lock()()

	item, ok := s.state.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store) SaveItem(ctx context.Context, item *model.BudgetItem) error {
	defer s.lock()()

	if _, ok := s.state.items[item.ID]; !ok {
		return fmt.Errorf("failed to save budget item %d: row does not exist", item.ID)
	}
	s.state.items[item.ID] = *item
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	defer s.lock()()

	delete(s.state.items, id)
	return nil
}

func (s *Store) ListItems(ctx context.Context, requestID int64) ([]model.BudgetItem, error) {
	defer s.lock()()

	items := make([]model.BudgetItem, 0)
	for _, item := range s.state.items {
		if item.BudgetRequestID == requestID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) SumItemCosts(ctx context.Context, requestID int64) (decimal.Decimal, int64, error) {
	defer s.lock()()

	total := decimal.Zero
	var count int64
	for _, item := range s.state.items {
		if item.BudgetRequestID == requestID {
			total = total.Add(item.TotalCost)
			count++
		}
	}
	return total, count, nil
}

func (s *Store) CreateFile(ctx context.Context, file *model.FileAttachment) error {
	defer s.lock()()

	if _, ok := s.state.requests[file.BudgetRequestID]; !ok {
		return fmt.Errorf("failed to create file attachment: budget request %d does not exist", file.BudgetRequestID)
	}
	s.state.nextFileID++
	file.ID = s.state.nextFileID
	if file.UploadedAt.IsZero() {
		file.UploadedAt = s.now()
	}
	s.state.files[file.ID] = *file
	return nil
}

func (s *Store) GetFile(ctx context.Context, id int64) (*model.FileAttachment, error) {
	defer s.lock()()

	file, ok := s.state.files[id]
	if !ok {
		return nil, nil
	}
	return &file, nil
}

func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	defer s.lock()()

	delete(s.state.files, id)
	return nil
}

func (s *Store) ListFiles(ctx context.Context, requestID int64) ([]model.FileAttachment, error) {
	defer s.lock()()

	files := make([]model.FileAttachment, 0)
	for _, file := range s.state.files {
		if file.BudgetRequestID == requestID {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

func stripRelations(req model.BudgetRequest) model.BudgetRequest {
	req.Items = nil
	req.Files = nil
	return req
}
