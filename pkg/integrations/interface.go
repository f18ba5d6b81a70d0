package integrations

import "github.com/kerbaras/starwarspedia/pkg/data"

// Builder assembles a reference book for one category, one item at a time.
type Builder interface {
	Init(items *data.CategoryItems) error
	Add(detail *data.ItemDetail) error
	Done() (string, error)
}
