package services

// Callback receives the result of a fetch. A nil result means the fetch
// failed; the error has already been reported to the Observer.
type Callback[T any] interface {
	OnResponse(result *T)
}

type CallbackFunc[T any] func(result *T)

func (f CallbackFunc[T]) OnResponse(result *T) { f(result) }

// Observer receives fetch failures. Implementations must not block.
type Observer interface {
	LogError(context string, err error)
}

type ObserverFunc func(context string, err error)

func (f ObserverFunc) LogError(context string, err error) { f(context, err) }
