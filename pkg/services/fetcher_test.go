package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

func TestFetcher_FailureLogsOnceAndDeliversNil(t *testing.T) {
	ui := newUIThread()
	l := loader.New(loader.WithExecutor(ui.exec))
	defer l.Close()

	boom := errors.New("boom")
	transport := &mockTransport{
		executeFunc: func(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
			return nil, boom
		},
	}
	observer := &recordingObserver{}
	fetcher := NewFetcher(swapi.NewClient(transport), observer, 0)

	var results []*data.CategoryItems
	fetcher.FetchCategory(l.Attach("category/film"), CategoryLoadID, swapi.Film,
		CallbackFunc[data.CategoryItems](func(r *data.CategoryItems) { results = append(results, r) }))
	ui.runOne(t)
	ui.idle(t, 20*time.Millisecond)

	require.Len(t, results, 1)
	assert.Nil(t, results[0])
	require.Equal(t, 1, observer.count())
	assert.ErrorIs(t, observer.errors[0], boom)
}

func TestFetcher_MissingItemDeliversNilWithoutLogging(t *testing.T) {
	ui := newUIThread()
	l := loader.New(loader.WithExecutor(ui.exec))
	defer l.Close()

	transport := &mockTransport{
		executeFunc: func(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
			assert.Equal(t, swapi.GetByID, op.Kind)
			assert.Equal(t, "99", op.ID)
			return &swapi.Response{Operation: op}, nil
		},
	}
	observer := &recordingObserver{}
	fetcher := NewFetcher(swapi.NewClient(transport), observer, 0)

	calls := 0
	var got *data.ItemDetail
	fetcher.FetchItem(l.Attach("item/planet/99"), ItemLoadID, swapi.Planet, "99",
		CallbackFunc[data.ItemDetail](func(r *data.ItemDetail) {
			calls++
			got = r
		}))
	ui.runOne(t)

	assert.Equal(t, 1, calls)
	assert.Nil(t, got)
	assert.Equal(t, 0, observer.count())
}

func TestFetcher_RESTNotFoundDeliversNilWithoutLogging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/planets/99/" {
			t.Errorf("Expected path /planets/99/, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found"}`))
	}))
	defer srv.Close()

	ui := newUIThread()
	l := loader.New(loader.WithExecutor(ui.exec))
	defer l.Close()

	observer := &recordingObserver{}
	client := swapi.NewClient(swapi.NewREST(srv.URL, srv.Client()))
	fetcher := NewFetcher(client, observer, 0)

	calls := 0
	var got *data.ItemDetail
	fetcher.FetchItem(l.Attach("item/planet/99"), ItemLoadID, swapi.Planet, "99",
		CallbackFunc[data.ItemDetail](func(r *data.ItemDetail) {
			calls++
			got = r
		}))
	ui.runOne(t)

	assert.Equal(t, 1, calls)
	assert.Nil(t, got)
	assert.Equal(t, 0, observer.count())
	assert.Equal(t, loader.Delivered, l.State(loader.Token{Host: "item/planet/99", ID: ItemLoadID}))
}

func TestFetcher_FailureLoggedWhenNeverDelivered(t *testing.T) {
	ui := newUIThread()
	l := loader.New(loader.WithExecutor(ui.exec), loader.WithRetention(20*time.Millisecond))
	defer l.Close()

	release := make(chan struct{})
	transport := &mockTransport{
		executeFunc: func(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
			<-release
			return nil, errors.New("connection refused")
		},
	}
	observer := &recordingObserver{}
	fetcher := NewFetcher(swapi.NewClient(transport), observer, 0)

	host := l.Attach("category/planet")
	fetcher.FetchCategory(host, CategoryLoadID, swapi.Planet,
		CallbackFunc[data.CategoryItems](func(*data.CategoryItems) { t.Error("Expected no delivery to a detached host") }))
	host.Detach()
	close(release)

	require.Eventually(t, func() bool { return l.Stats().Expired == 1 }, 2*time.Second, 5*time.Millisecond)
	ui.idle(t, 20*time.Millisecond)
	assert.Equal(t, 1, observer.count())
	assert.Equal(t, 1, l.Stats().Retained)
}

func TestFetcher_CancelledCallIsNotLogged(t *testing.T) {
	l := loader.New()
	defer l.Close()

	started := make(chan struct{})
	transport := &mockTransport{
		executeFunc: func(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	observer := &recordingObserver{}
	fetcher := NewFetcher(swapi.NewClient(transport), observer, 0)

	host := l.Attach("item/film/1")
	fetcher.FetchItem(host, ItemLoadID, swapi.Film, "1",
		CallbackFunc[data.ItemDetail](func(*data.ItemDetail) { t.Error("Expected no delivery after Finish") }))
	<-started
	host.Finish()

	require.Eventually(t, func() bool { return l.Stats().Superseded == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, observer.count())
}

func TestFetcher_ItemDetail(t *testing.T) {
	ui := newUIThread()
	l := loader.New(loader.WithExecutor(ui.exec))
	defer l.Close()

	transport := &mockTransport{
		executeFunc: func(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
			return &swapi.Response{Operation: op, Detail: &data.ItemDetail{ID: op.ID, Name: "X-wing"}}, nil
		},
	}
	fetcher := NewFetcher(swapi.NewClient(transport), nil, 0)

	var got *data.ItemDetail
	fetcher.FetchItem(l.Attach("item/starship/12"), ItemLoadID, swapi.Starship, "12",
		CallbackFunc[data.ItemDetail](func(r *data.ItemDetail) { got = r }))
	ui.runOne(t)

	require.NotNil(t, got)
	assert.Equal(t, "X-wing", got.Name)
}

func TestFetcher_DelayIsCancellable(t *testing.T) {
	ui := newUIThread()
	l := loader.New(loader.WithExecutor(ui.exec))
	defer l.Close()

	transport := &mockTransport{}
	fetcher := NewFetcher(swapi.NewClient(transport), nil, time.Hour)

	host := l.Attach("category/vehicle")
	fetcher.FetchCategory(host, CategoryLoadID, swapi.Vehicle,
		CallbackFunc[data.CategoryItems](func(*data.CategoryItems) { t.Error("Expected no delivery after Finish") }))
	host.Finish()

	require.Eventually(t, func() bool { return l.Stats().Superseded == 1 }, time.Second, time.Millisecond)
	ui.idle(t, 20*time.Millisecond)
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestFetcher_SurvivesDetach(t *testing.T) {
	ui := newUIThread()
	l := loader.New(loader.WithExecutor(ui.exec))
	defer l.Close()

	release := make(chan struct{})
	transport := &mockTransport{
		executeFunc: func(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
			<-release
			return &swapi.Response{Operation: op, Items: films(6)}, nil
		},
	}
	fetcher := NewFetcher(swapi.NewClient(transport), nil, 0)

	first := l.Attach("category/film")
	firstCalls := 0
	fetcher.FetchCategory(first, CategoryLoadID, swapi.Film,
		CallbackFunc[data.CategoryItems](func(*data.CategoryItems) { firstCalls++ }))
	first.Detach()

	second := l.Attach("category/film")
	var got *data.CategoryItems
	fetcher.FetchCategory(second, CategoryLoadID, swapi.Film,
		CallbackFunc[data.CategoryItems](func(r *data.CategoryItems) { got = r }))

	close(release)
	ui.runOne(t)

	assert.Equal(t, 0, firstCalls)
	require.NotNil(t, got)
	assert.Equal(t, 6, got.Len())
	assert.Equal(t, int32(1), transport.calls.Load())
}
