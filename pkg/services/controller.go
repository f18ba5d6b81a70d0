package services

import (
	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

const (
	CategoryLoadID = 89
	ItemLoadID     = 90
)

const (
	MsgNoConnection = "No internet connection"
	MsgFetchFailed  = "Error getting data"
)

type ControllerState int

const (
	NotLoaded ControllerState = iota
	Loading
	Loaded
	Error
)

func (s ControllerState) String() string {
	switch s {
	case NotLoaded:
		return "not loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	}
	return "unknown"
}

// LoadFunc starts one fetch and reports its result to cb.
type LoadFunc[T any] func(cb Callback[T])

type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	status *StatusMessage
}

func WithStatus(s *StatusMessage) ControllerOption {
	return func(o *controllerOptions) { o.status = s }
}

// Controller drives one screen through NotLoaded, Loading, Loaded and Error.
// It is not safe for concurrent use; results must be delivered on the
// goroutine that calls its methods.
type Controller[T any] struct {
	load         LoadFunc[T]
	titleOf      func(*T) string
	connectivity Connectivity
	status       *StatusMessage

	state          ControllerState
	data           *T
	title          string
	retryVisible   bool
	retryAttention int
	scroll         int
	fetches        int
	generation     int
	listeners      []func(loading bool)
}

func NewController[T any](load LoadFunc[T], titleOf func(*T) string, conn Connectivity, opts ...ControllerOption) *Controller[T] {
	o := controllerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.status == nil {
		o.status = NewStatusMessage(nil)
	}
	if conn == nil {
		conn = StaticConnectivity(true)
	}
	return &Controller[T]{
		load:         load,
		titleOf:      titleOf,
		connectivity: conn,
		status:       o.status,
	}
}

// NewCategoryController binds a controller to the list of one category.
func NewCategoryController(src Source, host *loader.Host, category swapi.Category, conn Connectivity, opts ...ControllerOption) *Controller[data.CategoryItems] {
	load := func(cb Callback[data.CategoryItems]) {
		src.FetchCategory(host, CategoryLoadID, category, cb)
	}
	title := func(*data.CategoryItems) string { return category.Label() }
	return NewController(load, title, conn, opts...)
}

// NewItemController binds a controller to one record.
func NewItemController(src Source, host *loader.Host, category swapi.Category, itemID string, conn Connectivity, opts ...ControllerOption) *Controller[data.ItemDetail] {
	load := func(cb Callback[data.ItemDetail]) {
		src.FetchItem(host, ItemLoadID, category, itemID, cb)
	}
	title := func(d *data.ItemDetail) string { return d.Name }
	return NewController(load, title, conn, opts...)
}

// OnLoading registers a listener told when a fetch starts and ends.
func (c *Controller[T]) OnLoading(fn func(loading bool)) {
	c.listeners = append(c.listeners, fn)
}

// Start restores a saved payload without touching the network, or loads.
func (c *Controller[T]) Start(restored *T, scroll int) {
	if restored != nil {
		c.state = Loaded
		c.data = restored
		c.title = c.titleOf(restored)
		c.retryVisible = false
		c.scroll = max(scroll, 0)
		return
	}
	c.Load()
}

// Load fetches unless a fetch is already running.
func (c *Controller[T]) Load() {
	if c.state == Loading {
		return
	}
	if !c.connectivity.IsNetworkAvailable() {
		c.state = Error
		c.status.Show(MsgNoConnection)
		c.showRetry()
		return
	}

	c.state = Loading
	c.retryVisible = false
	c.status.Hide()
	c.fetches++
	c.generation++
	gen := c.generation
	c.notify(true)
	c.load(CallbackFunc[T](func(result *T) { c.onResult(gen, result) }))
}

// Retry reloads after an error. It reports whether a load was attempted.
func (c *Controller[T]) Retry() bool {
	if c.state != Error || !c.retryVisible {
		return false
	}
	c.Load()
	return true
}

func (c *Controller[T]) onResult(gen int, result *T) {
	if gen != c.generation || c.state != Loading {
		return
	}
	if result != nil {
		c.state = Loaded
		c.data = result
		c.title = c.titleOf(result)
		c.retryVisible = false
		c.scroll = 0
	} else {
		c.state = Error
		c.status.Show(MsgFetchFailed)
		c.showRetry()
	}
	c.notify(false)
}

func (c *Controller[T]) showRetry() {
	c.retryVisible = true
	c.retryAttention++
}

func (c *Controller[T]) notify(loading bool) {
	for _, fn := range c.listeners {
		fn(loading)
	}
}

// SaveState returns the payload and scroll position to snapshot. The payload
// is nil unless the controller is Loaded.
func (c *Controller[T]) SaveState() (*T, int) {
	if c.state != Loaded {
		return nil, 0
	}
	return c.data, c.scroll
}

func (c *Controller[T]) SetScroll(n int) { c.scroll = max(n, 0) }

func (c *Controller[T]) Scroll() int { return c.scroll }

func (c *Controller[T]) State() ControllerState { return c.state }

func (c *Controller[T]) Title() string { return c.title }

func (c *Controller[T]) Data() *T { return c.data }

func (c *Controller[T]) RetryVisible() bool { return c.retryVisible }

// RetryAttention increases every time the retry control should draw attention.
func (c *Controller[T]) RetryAttention() int { return c.retryAttention }

func (c *Controller[T]) Fetches() int { return c.fetches }

func (c *Controller[T]) Status() *StatusMessage { return c.status }
