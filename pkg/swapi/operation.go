package swapi

import (
	"errors"
	"fmt"

	"github.com/kerbaras/starwarspedia/pkg/data"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExecuted = errors.New("call already executed")
	ErrTooManyPages    = errors.New("too many pages")
)

type OperationKind int

const (
	ListAll OperationKind = iota
	GetByID
)

func (k OperationKind) String() string {
	switch k {
	case ListAll:
		return "list"
	case GetByID:
		return "item"
	}
	return fmt.Sprintf("OperationKind(%d)", int(k))
}

// Operation is a request to fetch every record of a category or one record by id.
type Operation struct {
	Kind     OperationKind
	Category Category
	ID       string
}

// ResolveListOperation returns the list-all operation of c.
func ResolveListOperation(c Category) Operation {
	c.info()
	return Operation{Kind: ListAll, Category: c}
}

// ResolveItemOperation returns the get-by-id operation for id in c.
func ResolveItemOperation(c Category, id string) Operation {
	c.info()
	return Operation{Kind: GetByID, Category: c, ID: id}
}

// Query is the GraphQL document of the operation.
func (o Operation) Query() string {
	if o.Kind == GetByID {
		return o.Category.ItemQuery()
	}
	return o.Category.ListQuery()
}

// Variables are the GraphQL variables of the operation.
func (o Operation) Variables() map[string]any {
	if o.Kind == GetByID {
		return map[string]any{"id": o.ID}
	}
	return nil
}

// Path is the REST path of the operation.
func (o Operation) Path() string {
	if o.Kind == GetByID {
		return o.Category.ItemPath(o.ID)
	}
	return o.Category.ListPath()
}

func (o Operation) String() string {
	if o.Kind == GetByID {
		return fmt.Sprintf("%s %s/%s", o.Kind, o.Category.Key(), o.ID)
	}
	return fmt.Sprintf("%s %s", o.Kind, o.Category.Key())
}

// Response is the normalized answer to an Operation. List operations fill
// Items; item operations fill Detail, which stays nil when the server
// answered without a record.
type Response struct {
	Operation Operation
	Items     []data.SummaryRecord
	Detail    *data.ItemDetail
}
