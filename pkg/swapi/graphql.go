package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kerbaras/starwarspedia/pkg/utils"
)

const DefaultGraphQLURL = "https://swapi-graphql.netlify.app/.netlify/functions/index"

// GraphQLError carries the error messages of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GraphQL talks to the SWAPI GraphQL wrapper.
type GraphQL struct {
	api *utils.API
}

func NewGraphQL(endpoint string, client *http.Client) *GraphQL {
	if endpoint == "" {
		endpoint = DefaultGraphQLURL
	}
	return &GraphQL{api: utils.NewAPI(endpoint, client)}
}

func (g *GraphQL) Name() string { return "graphql" }

func (g *GraphQL) Execute(ctx context.Context, op Operation) (*Response, error) {
	var resp graphQLResponse
	req := graphQLRequest{Query: op.Query(), Variables: op.Variables()}
	if err := g.api.Post(ctx, "", req, &resp); err != nil {
		return nil, translate(err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return nil, &GraphQLError{Messages: msgs}
	}

	info := op.Category.info()
	switch op.Kind {
	case ListAll:
		raw, ok := resp.Data[info.listRoot]
		if !ok {
			return nil, fmt.Errorf("graphql: missing %s in response", info.listRoot)
		}
		var conn map[string][]record
		if err := json.Unmarshal(raw, &conn); err != nil {
			return nil, fmt.Errorf("graphql: decode %s: %w", info.listRoot, err)
		}
		out := &Response{Operation: op}
		for _, rec := range conn[info.connection] {
			out.Items = append(out.Items, rec.ToSummary(op.Category, dialectGraphQL))
		}
		return out, nil
	case GetByID:
		out := &Response{Operation: op}
		raw, ok := resp.Data[info.itemRoot]
		if !ok || string(raw) == "null" {
			return out, nil
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("graphql: decode %s: %w", info.itemRoot, err)
		}
		out.Detail = rec.ToDetail(op.Category, dialectGraphQL)
		return out, nil
	}
	return nil, fmt.Errorf("unsupported operation %s", op.Kind)
}
