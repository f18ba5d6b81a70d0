package swapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/utils"
)

const DefaultRESTURL = "https://swapi.dev/api/"

// maxPages bounds paging through a collection whose "next" link never ends.
const maxPages = 50

type page struct {
	Count   int      `json:"count"`
	Next    *string  `json:"next"`
	Results []record `json:"results"`
}

// REST talks to the paginated SWAPI REST API.
type REST struct {
	api *utils.API
}

func NewREST(baseURL string, client *http.Client) *REST {
	if baseURL == "" {
		baseURL = DefaultRESTURL
	}
	return &REST{api: utils.NewAPI(baseURL, client)}
}

func (r *REST) Name() string { return "rest" }

func (r *REST) Execute(ctx context.Context, op Operation) (*Response, error) {
	switch op.Kind {
	case ListAll:
		items, err := r.listAll(ctx, op.Category)
		if err != nil {
			return nil, err
		}
		return &Response{Operation: op, Items: items}, nil
	case GetByID:
		detail, err := r.get(ctx, op.Category, op.ID)
		if err != nil {
			return nil, err
		}
		return &Response{Operation: op, Detail: detail}, nil
	}
	return nil, fmt.Errorf("unsupported operation %s", op.Kind)
}

func (r *REST) listAll(ctx context.Context, c Category) ([]data.SummaryRecord, error) {
	var out []data.SummaryRecord
	for n := 1; n <= maxPages; n++ {
		var p page
		params := url.Values{"page": {strconv.Itoa(n)}}
		if err := r.api.Get(ctx, c.ListPath(), params, &p); err != nil {
			return nil, translate(err)
		}
		for _, rec := range p.Results {
			out = append(out, rec.ToSummary(c, dialectREST))
		}
		if p.Next == nil || *p.Next == "" {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s still has a next page after %d", ErrTooManyPages, c.ListPath(), maxPages)
}

func (r *REST) get(ctx context.Context, c Category, id string) (*data.ItemDetail, error) {
	var rec record
	if err := r.api.Get(ctx, c.ItemPath(id), nil, &rec); err != nil {
		return nil, translate(err)
	}
	if len(rec) == 0 {
		return nil, nil
	}
	return rec.ToDetail(c, dialectREST), nil
}

func translate(err error) error {
	var se *utils.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, se.URL)
	}
	return err
}
