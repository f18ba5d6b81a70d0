package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/integrations"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

const DefaultExportConcurrency = 3

// ExportProgress represents the progress of an export
type ExportProgress struct {
	Category string
	Current  int
	Total    int
	Status   string // "listing", "fetching", "processing", "complete", "error"
	Item     string
	Path     string
	Error    error
}

// Exporter fetches every record of a category and compiles them into a book.
type Exporter struct {
	client       *swapi.Client
	newBuilder   func() integrations.Builder
	observer     Observer
	concurrency  int
	progressChan chan ExportProgress
	closeOnce    sync.Once
}

func NewExporter(client *swapi.Client, newBuilder func() integrations.Builder, observer Observer, concurrency int) *Exporter {
	if concurrency <= 0 {
		concurrency = DefaultExportConcurrency
	}
	if observer == nil {
		observer = ObserverFunc(func(string, error) {})
	}
	return &Exporter{
		client:       client,
		newBuilder:   newBuilder,
		observer:     observer,
		concurrency:  concurrency,
		progressChan: make(chan ExportProgress, 100),
	}
}

// GetProgressChannel returns the channel for receiving export progress updates
func (e *Exporter) GetProgressChannel() <-chan ExportProgress {
	return e.progressChan
}

// Export writes a book of category and returns its path. Items whose detail
// cannot be fetched are skipped and reported as errors on the progress channel.
func (e *Exporter) Export(ctx context.Context, category swapi.Category) (string, error) {
	key := category.Key()
	e.sendProgress(ExportProgress{Category: key, Status: "listing"})

	resp, err := e.client.Dispatch(swapi.ResolveListOperation(category)).Execute(ctx)
	if err != nil {
		e.fail(key, err)
		return "", fmt.Errorf("failed to list %s: %w", key, err)
	}
	if len(resp.Items) == 0 {
		err := fmt.Errorf("no %s to export", key)
		e.fail(key, err)
		return "", err
	}
	items := &data.CategoryItems{Category: key, Label: category.Label(), Items: resp.Items}
	total := len(items.Items)

	details := make([]*data.ItemDetail, total)
	var done atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, item := range items.Items {
		g.Go(func() error {
			resp, err := e.client.Dispatch(swapi.ResolveItemOperation(category, item.ID)).Execute(gctx)
			current := int(done.Add(1))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				e.observer.LogError(fmt.Sprintf("export %s item %s", key, item.ID), err)
				e.sendProgress(ExportProgress{Category: key, Current: current, Total: total, Status: "error", Item: item.Name, Error: err})
				return nil
			}
			details[i] = resp.Detail
			e.sendProgress(ExportProgress{Category: key, Current: current, Total: total, Status: "fetching", Item: item.Name})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.fail(key, err)
		return "", err
	}

	e.sendProgress(ExportProgress{Category: key, Current: total, Total: total, Status: "processing"})
	builder := e.newBuilder()
	if err := builder.Init(items); err != nil {
		e.fail(key, err)
		return "", fmt.Errorf("failed to initialize builder: %w", err)
	}
	added := 0
	for _, detail := range details {
		if detail == nil {
			continue
		}
		if err := builder.Add(detail); err != nil {
			e.fail(key, err)
			return "", fmt.Errorf("failed to add %s: %w", detail.Name, err)
		}
		added++
	}
	if added == 0 {
		err := fmt.Errorf("no %s details could be fetched", key)
		e.fail(key, err)
		return "", err
	}

	path, err := builder.Done()
	if err != nil {
		e.fail(key, err)
		return "", fmt.Errorf("failed to finalize book: %w", err)
	}
	e.sendProgress(ExportProgress{Category: key, Current: total, Total: total, Status: "complete", Path: path})
	return path, nil
}

func (e *Exporter) fail(category string, err error) {
	e.sendProgress(ExportProgress{Category: category, Status: "error", Error: err})
}

// sendProgress sends a progress update (non-blocking)
func (e *Exporter) sendProgress(progress ExportProgress) {
	select {
	case e.progressChan <- progress:
	default:
	}
}

// Close closes the progress channel. Export must not be called afterwards.
func (e *Exporter) Close() {
	e.closeOnce.Do(func() { close(e.progressChan) })
}
