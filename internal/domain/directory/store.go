package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"payslip/internal/platform/kv"
)

// Sealer protects the stored blob at rest. Open must accept unsealed input.
type Sealer interface {
	Seal(value string) (string, error)
	Open(value string) (string, error)
}

type Store struct {
	kv     kv.Store
	sealer Sealer
	mu     sync.Mutex
}

func NewStore(store kv.Store, sealer Sealer) *Store {
	return &Store{kv: store, sealer: sealer}
}

func (s *Store) Get(ctx context.Context, id string) (Employee, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Employee{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.load(ctx)
	if err != nil {
		return Employee{}, false, err
	}
	rec, ok := b.Employees[id]
	if !ok {
		return Employee{}, false, nil
	}
	return rec.Employee, true, nil
}

// FindByName matches names case-insensitively. When several records share a
// name the most recently written one wins.
func (s *Store) FindByName(ctx context.Context, name string) (Employee, bool, error) {
	folder := cases.Fold()
	want := folder.String(strings.TrimSpace(name))
	if want == "" {
		return Employee{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.load(ctx)
	if err != nil {
		return Employee{}, false, err
	}
	var (
		best  storedEmployee
		found bool
	)
	for _, rec := range b.Employees {
		if folder.String(strings.TrimSpace(rec.Name)) != want {
			continue
		}
		if !found || rec.Seq > best.Seq || (rec.Seq == best.Seq && rec.ID < best.ID) {
			best = rec
			found = true
		}
	}
	return best.Employee, found, nil
}

func (s *Store) Put(ctx context.Context, emp Employee) error {
	emp.ID = strings.TrimSpace(emp.ID)
	emp.Name = strings.TrimSpace(emp.Name)
	if emp.ID == "" {
		return ErrInvalidEmployee
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.load(ctx)
	if err != nil {
		return err
	}
	b.Seq++
	b.Employees[emp.ID] = storedEmployee{Employee: emp, Seq: b.Seq}
	return s.save(ctx, b)
}

// List returns every record, most recently written first.
func (s *Store) List(ctx context.Context) ([]Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	recs := make([]storedEmployee, 0, len(b.Employees))
	for _, rec := range b.Employees {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Seq != recs[j].Seq {
			return recs[i].Seq > recs[j].Seq
		}
		return recs[i].ID < recs[j].ID
	})
	out := make([]Employee, len(recs))
	for i, rec := range recs {
		out[i] = rec.Employee
	}
	return out, nil
}

func (s *Store) load(ctx context.Context) (blob, error) {
	raw, ok, err := s.kv.Get(ctx, StoreKey)
	if err != nil {
		return blob{}, fmt.Errorf("read employee directory: %w", err)
	}
	if !ok {
		return s.loadLegacy(ctx)
	}
	plain, err := s.open(raw)
	if err != nil {
		return blob{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var b blob
	if err := json.Unmarshal([]byte(plain), &b); err != nil {
		return blob{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if b.Version > SchemaVersion {
		return blob{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, b.Version)
	}
	if b.Employees == nil {
		b.Employees = map[string]storedEmployee{}
	}
	b.Version = SchemaVersion
	return b, nil
}

// loadLegacy reads the unversioned id -> employee map. Records get sequence
// numbers in ascending id order.
func (s *Store) loadLegacy(ctx context.Context) (blob, error) {
	b := blob{Version: SchemaVersion, Employees: map[string]storedEmployee{}}
	raw, ok, err := s.kv.Get(ctx, LegacyStoreKey)
	if err != nil {
		return blob{}, fmt.Errorf("read legacy employee directory: %w", err)
	}
	if !ok || raw == "" {
		return b, nil
	}
	var legacy map[string]Employee
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return blob{}, fmt.Errorf("%w: legacy: %v", ErrCorrupt, err)
	}
	ids := make([]string, 0, len(legacy))
	for id := range legacy {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		emp := legacy[id]
		if emp.ID == "" {
			emp.ID = id
		}
		b.Seq++
		b.Employees[id] = storedEmployee{Employee: emp, Seq: b.Seq}
	}
	return b, nil
}

func (s *Store) save(ctx context.Context, b blob) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	value := string(data)
	if s.sealer != nil {
		if value, err = s.sealer.Seal(value); err != nil {
			return fmt.Errorf("seal employee directory: %w", err)
		}
	}
	if err := s.kv.Set(ctx, StoreKey, value); err != nil {
		return fmt.Errorf("write employee directory: %w", err)
	}
	return nil
}

func (s *Store) open(raw string) (string, error) {
	if s.sealer == nil {
		return raw, nil
	}
	return s.sealer.Open(raw)
}
