package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filmsServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/films/":
			var next any
			results := []map[string]any{}
			switch r.URL.Query().Get("page") {
			case "1":
				next = srv.URL + "/films/?page=2"
				for i := 1; i <= 3; i++ {
					results = append(results, map[string]any{
						"title": fmt.Sprintf("Film %d", i), "episode_id": float64(i + 3),
						"url": fmt.Sprintf("%s/films/%d/", srv.URL, i),
					})
				}
			case "2":
				for i := 4; i <= 6; i++ {
					results = append(results, map[string]any{
						"title": fmt.Sprintf("Film %d", i), "episode_id": float64(i - 3),
						"url": fmt.Sprintf("%s/films/%d/", srv.URL, i),
					})
				}
			}
			json.NewEncoder(w).Encode(map[string]any{"count": 6, "next": next, "results": results})
		case "/films/1/":
			json.NewEncoder(w).Encode(map[string]any{
				"title": "A New Hope", "episode_id": 4, "director": "George Lucas",
				"producer": "Gary Kurtz, Rick McCallum", "release_date": "1977-05-25",
				"opening_crawl": "It is a period of civil war.\r\nRebel spaceships",
				"url": srv.URL + "/films/1/",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestREST_ListAllFollowsPages(t *testing.T) {
	srv := filmsServer(t)
	rest := NewREST(srv.URL, srv.Client())

	resp, err := rest.Execute(context.Background(), ResolveListOperation(Film))
	require.NoError(t, err)
	require.Len(t, resp.Items, 6)
	assert.Equal(t, "1", resp.Items[0].ID)
	assert.Equal(t, "Film 1", resp.Items[0].Name)
	assert.Equal(t, "Episode 4", resp.Items[0].Subtitle)
	assert.Equal(t, "6", resp.Items[5].ID)
}

func TestREST_ListAllStopsAtPageLimit(t *testing.T) {
	var pages atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := pages.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"count":   1000,
			"next":    fmt.Sprintf("%s/people/?page=%d", srv.URL, n+1),
			"results": []map[string]any{{"name": fmt.Sprintf("Clone %d", n)}},
		})
	}))
	defer srv.Close()
	rest := NewREST(srv.URL, srv.Client())

	resp, err := rest.Execute(context.Background(), ResolveListOperation(People))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrTooManyPages)
	assert.Equal(t, int32(maxPages), pages.Load())
}

func TestREST_GetByID(t *testing.T) {
	srv := filmsServer(t)
	rest := NewREST(srv.URL, srv.Client())

	resp, err := rest.Execute(context.Background(), ResolveItemOperation(Film, "1"))
	require.NoError(t, err)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, "A New Hope", resp.Detail.Name)
	assert.Equal(t, "Films", resp.Detail.Label)

	director, ok := resp.Detail.Value("Director")
	assert.True(t, ok)
	assert.Equal(t, "George Lucas", director)
	crawl, _ := resp.Detail.Value("Opening crawl")
	assert.Equal(t, "It is a period of civil war.\nRebel spaceships", crawl)
}

func TestREST_NotFound(t *testing.T) {
	srv := filmsServer(t)
	rest := NewREST(srv.URL, srv.Client())

	_, err := rest.Execute(context.Background(), ResolveItemOperation(Film, "99"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGraphQL_ListAll(t *testing.T) {
	var received graphQLRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"data":{"allPeople":{"people":[
			{"id":"cGVvcGxlOjE=","name":"Luke Skywalker","birthYear":"19BBY"},
			{"id":"cGVvcGxlOjI=","name":"C-3PO","birthYear":null}
		]}}}`))
	}))
	defer srv.Close()

	gql := NewGraphQL(srv.URL, srv.Client())
	resp, err := gql.Execute(context.Background(), ResolveListOperation(People))
	require.NoError(t, err)

	assert.Equal(t, People.ListQuery(), received.Query)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "cGVvcGxlOjE=", resp.Items[0].ID)
	assert.Equal(t, "Born 19BBY", resp.Items[0].Subtitle)
	assert.Equal(t, "", resp.Items[1].Subtitle)
}

func TestGraphQL_GetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Variables["id"] == "missing" {
			w.Write([]byte(`{"data":{"planet":null}}`))
			return
		}
		w.Write([]byte(`{"data":{"planet":{"id":"cGxhbmV0czox","name":"Tatooine",
			"climates":["arid"],"terrains":["desert"],"population":200000,"diameter":10465}}}`))
	}))
	defer srv.Close()

	gql := NewGraphQL(srv.URL, srv.Client())
	resp, err := gql.Execute(context.Background(), ResolveItemOperation(Planet, "cGxhbmV0czox"))
	require.NoError(t, err)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, "Tatooine", resp.Detail.Name)
	pop, _ := resp.Detail.Value("Population")
	assert.Equal(t, "200000", pop)

	resp, err = gql.Execute(context.Background(), ResolveItemOperation(Planet, "missing"))
	require.NoError(t, err)
	assert.Nil(t, resp.Detail)
}

func TestGraphQL_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"boom"},{"message":"again"}]}`))
	}))
	defer srv.Close()

	_, err := NewGraphQL(srv.URL, srv.Client()).Execute(context.Background(), ResolveListOperation(Vehicle))
	var gqlErr *GraphQLError
	require.True(t, errors.As(err, &gqlErr))
	assert.Equal(t, "graphql: boom; again", gqlErr.Error())
}

type countingTransport struct {
	calls atomic.Int32
	err   error
}

func (c *countingTransport) Name() string { return "counting" }

func (c *countingTransport) Execute(ctx context.Context, op Operation) (*Response, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &Response{Operation: op}, nil
}

func TestPendingCall_ExecutesOnce(t *testing.T) {
	transport := &countingTransport{}
	call := NewClient(transport).Dispatch(ResolveListOperation(Species))

	_, err := call.Execute(context.Background())
	require.NoError(t, err)
	_, err = call.Execute(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyExecuted)
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestPendingCall_WrapsErrors(t *testing.T) {
	transport := &countingTransport{err: ErrNotFound}
	call := NewClient(transport).Dispatch(ResolveItemOperation(Film, "7"))

	_, err := call.Execute(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "item film/7 via counting: not found", err.Error())
}

func TestDispatch_NoIO(t *testing.T) {
	transport := &countingTransport{}
	NewClient(transport).Dispatch(ResolveListOperation(Film))
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "unknown", formatValue(nil))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "a, b", formatValue([]any{"a", "b"}))
	assert.Equal(t, "Tatooine", formatValue(map[string]any{"name": "Tatooine"}))
	assert.Equal(t, "true", formatValue(true))
}
