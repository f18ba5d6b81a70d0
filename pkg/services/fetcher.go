package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

// Source is what the presentation controllers fetch from.
type Source interface {
	FetchCategory(host *loader.Host, loadID int, category swapi.Category, cb Callback[data.CategoryItems])
	FetchItem(host *loader.Host, loadID int, category swapi.Category, itemID string, cb Callback[data.ItemDetail])
}

// Fetcher runs SWAPI operations through the loader on behalf of a host and
// hands the adapted result to a callback.
type Fetcher struct {
	client   *swapi.Client
	observer Observer
	delay    time.Duration
}

func NewFetcher(client *swapi.Client, observer Observer, delay time.Duration) *Fetcher {
	if observer == nil {
		observer = ObserverFunc(func(string, error) {})
	}
	return &Fetcher{client: client, observer: observer, delay: delay}
}

func (f *Fetcher) FetchCategory(host *loader.Host, loadID int, category swapi.Category, cb Callback[data.CategoryItems]) {
	op := swapi.ResolveListOperation(category)
	call := func(ctx context.Context) (any, error) {
		resp, err := f.execute(ctx, op)
		if err != nil {
			f.logFailure(ctx, fmt.Sprintf("fetch %s category", category.Key()), err)
			return nil, err
		}
		return &data.CategoryItems{
			Category: category.Key(),
			Label:    category.Label(),
			Items:    resp.Items,
		}, nil
	}
	host.Load(loadID, call, func(o loader.Outcome) {
		if o.Err != nil {
			cb.OnResponse(nil)
			return
		}
		items, _ := o.Value.(*data.CategoryItems)
		cb.OnResponse(items)
	})
}

// FetchItem delivers nil without reporting an error when the server has no
// record for itemID.
func (f *Fetcher) FetchItem(host *loader.Host, loadID int, category swapi.Category, itemID string, cb Callback[data.ItemDetail]) {
	op := swapi.ResolveItemOperation(category, itemID)
	call := func(ctx context.Context) (any, error) {
		resp, err := f.execute(ctx, op)
		if errors.Is(err, swapi.ErrNotFound) {
			return (*data.ItemDetail)(nil), nil
		}
		if err != nil {
			f.logFailure(ctx, fmt.Sprintf("fetch %s item %s", category.Key(), itemID), err)
			return nil, err
		}
		return resp.Detail, nil
	}
	host.Load(loadID, call, func(o loader.Outcome) {
		if o.Err != nil {
			cb.OnResponse(nil)
			return
		}
		detail, _ := o.Value.(*data.ItemDetail)
		cb.OnResponse(detail)
	})
}

// logFailure reports a failed call when it fails, whether or not a host ever
// takes delivery. Calls cancelled by the loader are not failures.
func (f *Fetcher) logFailure(ctx context.Context, what string, err error) {
	if ctx.Err() != nil {
		return
	}
	f.observer.LogError(what, err)
}

func (f *Fetcher) execute(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.client.Dispatch(op).Execute(ctx)
}
