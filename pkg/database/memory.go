package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryStore keeps JSON encoded documents in process memory.
type memoryStore struct {
	mu    sync.Mutex
	colls map[string]*memoryCollection
}

func NewMemoryStore() Store {
	return &memoryStore{colls: make(map[string]*memoryCollection)}
}

func (s *memoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colls[name]
	if !ok {
		c = &memoryCollection{
			name:   name,
			docs:   make(map[string][]byte),
			unique: make(map[string]bool),
		}
		s.colls[name] = c
	}
	return c
}

func (s *memoryStore) Ping(ctx context.Context) error  { return nil }
func (s *memoryStore) Close(ctx context.Context) error { return nil }
func (s *memoryStore) Driver() string                  { return "memory" }

type memoryCollection struct {
	mu     sync.RWMutex
	name   string
	docs   map[string][]byte
	unique map[string]bool
}

type memoryDoc struct {
	id     string
	fields map[string]any
	raw    []byte
}

func decodeFields(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// normalize turns a Go value into the shape it has after a JSON round trip.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *memoryCollection) conflicts(id string, fields map[string]any) bool {
	for field := range c.unique {
		value, ok := fields[field]
		if !ok || value == nil {
			continue
		}
		for otherID, raw := range c.docs {
			if otherID == id {
				continue
			}
			other, err := decodeFields(raw)
			if err != nil {
				continue
			}
			if reflect.DeepEqual(other[field], value) {
				return true
			}
		}
	}
	return false
}

func (c *memoryCollection) Insert(ctx context.Context, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, id, err)
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[id]; exists || c.conflicts(id, fields) {
		return fmt.Errorf("insert %s/%s: %w", c.name, id, ErrDuplicate)
	}
	c.docs[id] = raw
	return nil
}

func (c *memoryCollection) FindByID(ctx context.Context, id string, out any) error {
	c.mu.RLock()
	raw, ok := c.docs[id]
	c.mu.RUnlock()

	if !ok {
		return ErrNoDocument
	}
	return json.Unmarshal(raw, out)
}

func (c *memoryCollection) match(filter Filter) ([]memoryDoc, error) {
	want := make(map[string]any, len(filter))
	for k, v := range filter {
		n, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("encode filter %s: %w", k, err)
		}
		want[k] = n
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var docs []memoryDoc
	for id, raw := range c.docs {
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
		}

		ok := true
		for k, v := range want {
			if !reflect.DeepEqual(fields[k], v) {
				ok = false
				break
			}
		}
		if ok {
			docs = append(docs, memoryDoc{id: id, fields: fields, raw: raw})
		}
	}
	return docs, nil
}

func (c *memoryCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	docs, err := c.match(filter)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrNoDocument
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].id < docs[j].id })
	return json.Unmarshal(docs[0].raw, out)
}

func (c *memoryCollection) Find(ctx context.Context, filter Filter, opts FindOptions, out any) error {
	docs, err := c.match(filter)
	if err != nil {
		return err
	}

	isTime := strings.HasSuffix(opts.SortBy, "_at")
	sort.SliceStable(docs, func(i, j int) bool {
		cmp := 0
		if opts.SortBy != "" {
			cmp = compareValues(docs[i].fields[opts.SortBy], docs[j].fields[opts.SortBy], isTime)
		}
		if cmp == 0 {
			cmp = strings.Compare(docs[i].id, docs[j].id)
		}
		if opts.Desc {
			return cmp > 0
		}
		return cmp < 0
	})

	start := opts.Skip
	if start > int64(len(docs)) {
		start = int64(len(docs))
	}
	end := int64(len(docs))
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}

	page := make([]json.RawMessage, 0, end-start)
	for _, d := range docs[start:end] {
		page = append(page, json.RawMessage(d.raw))
	}

	all, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return json.Unmarshal(all, out)
}

func compareValues(a, b any, isTime bool) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		if isTime {
			at, errA := time.Parse(time.RFC3339Nano, av)
			bt, errB := time.Parse(time.RFC3339Nano, bv)
			if errA == nil && errB == nil {
				return at.Compare(bt)
			}
		}
		return strings.Compare(av, bv)
	case json.Number:
		bv, _ := b.(json.Number)
		af, _ := av.Float64()
		bf, _ := bv.Float64()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	return 0
}

func (c *memoryCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	docs, err := c.match(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (c *memoryCollection) Update(ctx context.Context, id string, set map[string]any) (UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.docs[id]
	if !ok {
		return UpdateResult{}, nil
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}
	before, err := json.Marshal(fields)
	if err != nil {
		return UpdateResult{}, err
	}

	for k, v := range set {
		n, err := normalize(v)
		if err != nil {
			return UpdateResult{}, fmt.Errorf("encode %s: %w", k, err)
		}
		fields[k] = n
	}

	after, err := json.Marshal(fields)
	if err != nil {
		return UpdateResult{}, err
	}
	if bytes.Equal(before, after) {
		return UpdateResult{Matched: true}, nil
	}
	if c.conflicts(id, fields) {
		return UpdateResult{}, fmt.Errorf("update %s/%s: %w", c.name, id, ErrDuplicate)
	}

	c.docs[id] = after
	return UpdateResult{Matched: true, Modified: true}, nil
}

func (c *memoryCollection) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	return true, nil
}

func (c *memoryCollection) EnsureUnique(ctx context.Context, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unique[field] = true
	return nil
}
