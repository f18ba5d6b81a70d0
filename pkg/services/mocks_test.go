package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

// Mock implementations for testing

type mockTransport struct {
	executeFunc func(ctx context.Context, op swapi.Operation) (*swapi.Response, error)
	calls       atomic.Int32
}

func (m *mockTransport) Name() string { return "mock" }

func (m *mockTransport) Execute(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
	m.calls.Add(1)
	if m.executeFunc != nil {
		return m.executeFunc(ctx, op)
	}
	return &swapi.Response{Operation: op}, nil
}

type mockSource struct {
	fetchCategoryFunc func(host *loader.Host, loadID int, category swapi.Category, cb Callback[data.CategoryItems])
	fetchItemFunc     func(host *loader.Host, loadID int, category swapi.Category, itemID string, cb Callback[data.ItemDetail])
	calls             int
}

func (m *mockSource) FetchCategory(host *loader.Host, loadID int, category swapi.Category, cb Callback[data.CategoryItems]) {
	m.calls++
	if m.fetchCategoryFunc != nil {
		m.fetchCategoryFunc(host, loadID, category, cb)
	}
}

func (m *mockSource) FetchItem(host *loader.Host, loadID int, category swapi.Category, itemID string, cb Callback[data.ItemDetail]) {
	m.calls++
	if m.fetchItemFunc != nil {
		m.fetchItemFunc(host, loadID, category, itemID, cb)
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	errors []error
}

func (r *recordingObserver) LogError(context string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recordingObserver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

// uiThread collects loader deliveries so tests run them on the test
// goroutine, the way the TUI runs them on its event loop.
type uiThread struct {
	fns chan func()
}

func newUIThread() *uiThread {
	return &uiThread{fns: make(chan func(), 16)}
}

func (u *uiThread) exec(fn func()) { u.fns <- fn }

func (u *uiThread) runOne(t *testing.T) {
	t.Helper()
	select {
	case fn := <-u.fns:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a delivery on the UI thread")
	}
}

func (u *uiThread) idle(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case <-u.fns:
		t.Fatal("Expected no delivery on the UI thread")
	case <-time.After(wait):
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func films(n int) []data.SummaryRecord {
	out := make([]data.SummaryRecord, n)
	for i := range out {
		out[i] = data.SummaryRecord{ID: fmt.Sprint(i + 1), Name: fmt.Sprintf("Film %d", i+1)}
	}
	return out
}
