package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/starwarspedia/pkg/config"
	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/services"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

func TestBuildClient(t *testing.T) {
	tests := []struct {
		transport string
		want      string
	}{
		{config.TransportREST, "rest"},
		{config.TransportGraphQL, "graphql"},
		{"", "rest"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.transport, func(t *testing.T) {
			client, err := BuildClient(config.APIConfig{Transport: tt.transport, Timeout: time.Second})
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.Transport().Name())
		})
	}
}

func TestBuildClient_Unknown(t *testing.T) {
	_, err := BuildClient(config.APIConfig{Transport: "soap"})
	assert.Error(t, err)
}

func TestConnectivity(t *testing.T) {
	offline := Connectivity(config.UIConfig{Offline: true})
	assert.False(t, offline.IsNetworkAvailable())

	if _, ok := Connectivity(config.UIConfig{}).(*services.InterfaceConnectivity); !ok {
		t.Error("Expected interface-based connectivity when not forced offline")
	}
}

func TestNewExporterFactory(t *testing.T) {
	dir := t.TempDir()
	client := swapi.NewClient(stubTransport{})
	newExporter := NewExporterFactory(client, config.ExportConfig{Dir: dir, Concurrency: 2}, nil)

	exporter := newExporter()
	defer exporter.Close()

	path, err := exporter.Export(context.Background(), swapi.Planet)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

type stubTransport struct{}

func (stubTransport) Name() string { return "stub" }

func (stubTransport) Execute(ctx context.Context, op swapi.Operation) (*swapi.Response, error) {
	resp := &swapi.Response{Operation: op}
	switch op.Kind {
	case swapi.ListAll:
		resp.Items = []data.SummaryRecord{{ID: "1", Name: "Tatooine"}, {ID: "2", Name: "Alderaan"}}
	case swapi.GetByID:
		resp.Detail = &data.ItemDetail{ID: op.ID, Name: "Planet " + op.ID,
			Fields: []data.Field{{Label: "Climate", Value: "arid"}}}
	}
	return resp, nil
}
