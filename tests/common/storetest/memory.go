//go:build unit || e2e

package storetest

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"property-revenue-sync/internal/infra"
	"property-revenue-sync/internal/infra/store"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Memory is an in-memory shared.RecordStore. Failure hooks return an error for the matching
// call; records are stamped with increasing creation times so newest-first ordering is stable.
type Memory struct {
	mu     sync.Mutex
	tables map[string][]store.Record
	seq    int

	ListErr    error
	FailCreate func(table string, fields map[string]string) error
	FailUpdate func(table, id string) error
	FailDelete func(table, id string) error

	Creates int
	Updates int
	Deletes int
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string][]store.Record)}
}

// Seed inserts rows directly, bypassing hooks and counters.
func (m *Memory) Seed(table string, rows ...map[string]string) []store.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]store.Record, 0, len(rows))
	for _, fields := range rows {
		out = append(out, m.insertLocked(table, fields))
	}
	return out
}

// Records returns a table's rows newest first.
func (m *Memory) Records(table string) []store.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(table)
}

func (m *Memory) ResetCounters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Creates, m.Updates, m.Deletes = 0, 0, 0
}

func (m *Memory) ListAll(_ context.Context, table store.TableRef, opts store.ListOptions) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	records := m.snapshotLocked(table.ID)
	if opts.MaxRecords > 0 && len(records) > opts.MaxRecords {
		records = records[:opts.MaxRecords]
	}
	return records, nil
}

func (m *Memory) Create(_ context.Context, table store.TableRef, fields map[string]string) (store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCreate != nil {
		if err := m.FailCreate(table.ID, fields); err != nil {
			return store.Record{}, err
		}
	}
	m.Creates++
	return m.insertLocked(table.ID, fields), nil
}

func (m *Memory) Update(_ context.Context, table store.TableRef, id string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpdate != nil {
		if err := m.FailUpdate(table.ID, id); err != nil {
			return err
		}
	}
	rows := m.tables[table.ID]
	for i := range rows {
		if rows[i].ID != id {
			continue
		}
		for k, v := range fields {
			rows[i].Fields[k] = v
		}
		m.Updates++
		return nil
	}
	return infra.NewHTTPError(http.StatusNotFound, "PATCH "+id, "record not found")
}

func (m *Memory) Delete(_ context.Context, table store.TableRef, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailDelete != nil {
		if err := m.FailDelete(table.ID, id); err != nil {
			return err
		}
	}
	rows := m.tables[table.ID]
	for i := range rows {
		if rows[i].ID == id {
			m.tables[table.ID] = append(rows[:i], rows[i+1:]...)
			m.Deletes++
			return nil
		}
	}
	// absent counts as deleted, like the real client's 404 handling
	return nil
}

func (m *Memory) insertLocked(table string, fields map[string]string) store.Record {
	m.seq++
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	rec := store.Record{
		ID:          fmt.Sprintf("rec%04d", m.seq),
		CreatedTime: baseTime.Add(time.Duration(m.seq) * time.Second),
		Fields:      copied,
	}
	m.tables[table] = append(m.tables[table], rec)
	return cloneRecord(rec)
}

func (m *Memory) snapshotLocked(table string) []store.Record {
	rows := m.tables[table]
	out := make([]store.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, cloneRecord(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedTime.After(out[j].CreatedTime)
	})
	return out
}

func cloneRecord(r store.Record) store.Record {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	r.Fields = fields
	return r
}
