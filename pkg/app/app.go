package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kerbaras/starwarspedia/pkg/app/screens"
	"github.com/kerbaras/starwarspedia/pkg/config"
	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/integrations"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/logging"
	"github.com/kerbaras/starwarspedia/pkg/services"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

type App struct {
	cfg config.Config
	log *zap.Logger
}

func NewApp(cfg config.Config, log *zap.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{cfg: cfg, log: log}
}

// BuildClient returns the SWAPI client for the configured transport.
func BuildClient(cfg config.APIConfig) (*swapi.Client, error) {
	httpClient := swapi.NewHTTPClient(cfg.Timeout)
	switch cfg.Transport {
	case config.TransportREST, "":
		return swapi.NewClient(swapi.NewREST(cfg.RESTURL, httpClient)), nil
	case config.TransportGraphQL:
		return swapi.NewClient(swapi.NewGraphQL(cfg.GraphQLURL, httpClient)), nil
	}
	return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
}

// Connectivity returns the connectivity check the controllers use.
func Connectivity(cfg config.UIConfig) services.Connectivity {
	if cfg.Offline {
		return services.StaticConnectivity(false)
	}
	return services.NewInterfaceConnectivity()
}

// NewExporterFactory returns a constructor for EPUB exporters writing to
// cfg.Dir.
func NewExporterFactory(client *swapi.Client, cfg config.ExportConfig, observer services.Observer) func() *services.Exporter {
	return func() *services.Exporter {
		return services.NewExporter(client, func() integrations.Builder {
			return integrations.NewEPubBuilder(cfg.Dir)
		}, observer, cfg.Concurrency)
	}
}

func (a *App) Run() error {
	client, err := BuildClient(a.cfg.API)
	if err != nil {
		return err
	}
	a.log.Info("starting",
		zap.String("transport", client.Transport().Name()),
		zap.Bool("offline", a.cfg.UI.Offline))

	var (
		store    screens.SnapshotStore
		restored []*data.Snapshot
	)
	if a.cfg.State.Persist {
		repo, err := data.NewDuckDBRepository(a.cfg.State.Path)
		if err != nil {
			return fmt.Errorf("failed to open state store: %w", err)
		}
		defer repo.Close()
		store = repo
		if restored, err = repo.ListSnapshots(); err != nil {
			a.log.Warn("failed to restore snapshots", zap.Error(err))
		}
		// Each snapshot is restored once.
		if _, err := repo.ClearSnapshots(); err != nil {
			a.log.Warn("failed to clear snapshots", zap.Error(err))
		}
	}

	var program *tea.Program
	l := loader.New(
		loader.WithRetention(a.cfg.Loader.Retention),
		loader.WithLogger(a.log.Named("loader")),
		loader.WithExecutor(screens.Executor(func(m tea.Msg) { program.Send(m) })),
	)
	defer l.Close()

	observer := logging.NewErrorObserver(a.log)
	deps := &screens.Deps{
		Loader:       l,
		Source:       services.NewFetcher(client, observer, a.cfg.UI.FetchDelay),
		Connectivity: Connectivity(a.cfg.UI),
		NewExporter:  NewExporterFactory(client, a.cfg.Export, observer),
		Log:          a.log,
	}

	root := screens.NewRootScreen(deps, store, restored)
	program = tea.NewProgram(root, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
