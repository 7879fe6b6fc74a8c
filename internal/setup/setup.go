package setup

import (
	"context"
	"fmt"

	"github.com/go-sod/bnelim/internal/database"
	"github.com/go-sod/bnelim/internal/driver"
	"github.com/go-sod/bnelim/internal/elimination"
	"github.com/go-sod/bnelim/internal/export"
	"github.com/go-sod/bnelim/internal/geom"
	"github.com/go-sod/bnelim/internal/logging"
	"github.com/go-sod/bnelim/internal/metrics"
	"github.com/go-sod/bnelim/internal/sample"
	snapshotDb "github.com/go-sod/bnelim/internal/snapshot/database"
	"github.com/go-sod/bnelim/internal/srvenv"
	"github.com/kelseyhightower/envconfig"
)

type DriverConfigProvider interface {
	DriverConfig() *driver.Config
}

type EliminationConfigProvider interface {
	EliminationConfig() *elimination.Config
}

type SampleConfigProvider interface {
	SampleConfig() *sample.Config
}

type ExportConfigProvider interface {
	ExportConfig() *export.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type MetricsConfigProvider interface {
	MetricsAddress() string
}

func Setup(ctx context.Context, config interface{}) (env *srvenv.SrvEnv, err error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	exportConfigProvider, ok := config.(ExportConfigProvider)
	if !ok {
		return nil, fmt.Errorf("unable read export config")
	}
	exportCfg := exportConfigProvider.ExportConfig()

	var db *database.DB
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && exportCfg.Store {
		logger.Info("Configuring snapshot db")
		opened, err := database.Open(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open database: %w", err)
		}
		db = opened
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
		defer func() {
			if err != nil {
				_ = db.Close(ctx)
			}
		}()
	}

	logger.Info("Configuring exporter")
	exporter, err := ProvideExporterFor(exportCfg, db)
	if err != nil {
		return nil, fmt.Errorf("unable create exporter: %w", err)
	}
	serverEnvOpts = append(serverEnvOpts, srvenv.WithExporter(exporter))

	if sampleConfigProvider, ok := config.(SampleConfigProvider); ok {
		logger.Info("Configuring point generator")
		provideFn, err := sample.ProvideFor(sampleConfigProvider.SampleConfig().Source)
		if err != nil {
			return nil, fmt.Errorf("unable create generator provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithGenerator(provideFn))
	}

	if eliminationConfigProvider, ok := config.(EliminationConfigProvider); ok {
		logger.Info("Configuring eliminator")
		provideFn, err := ProvideEliminatorFor(eliminationConfigProvider.EliminationConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create eliminator provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithEliminator(provideFn))
	}

	if metricsConfigProvider, ok := config.(MetricsConfigProvider); ok && metricsConfigProvider.MetricsAddress() != "" {
		logger.Info("Configuring metrics")
		if err := metrics.Register(); err != nil {
			return nil, err
		}
		handler, err := metrics.NewHandler()
		if err != nil {
			return nil, err
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithMetricsHandler(handler))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvideEliminatorFor(cfg *elimination.Config) (elimination.ProvideFn, error) {
	distFunc, err := geom.DistanceFuncFor(cfg.MetricFuncType)
	if err != nil {
		return nil, fmt.Errorf("unable provide distance function: %w", err)
	}
	return func(opts ...elimination.Option) (*elimination.Eliminator, error) {
		scorer := elimination.NewScorer(
			elimination.WithWorkers(cfg.ScoreWorkers),
			elimination.WithDistance(distFunc),
		)
		return elimination.New(append([]elimination.Option{elimination.WithScorer(scorer)}, opts...)...), nil
	}, nil
}

func ProvideExporterFor(cfg *export.Config, db *database.DB) (export.Exporter, error) {
	var sinks []export.Sink
	if cfg.Image {
		raster, err := export.NewRasterSink(cfg.Dir, cfg.ImageSize)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, raster)
	}
	if cfg.Text {
		sinks = append(sinks, export.NewTextSink(cfg.Dir))
	}
	if cfg.Store {
		if db == nil {
			return nil, fmt.Errorf("snapshot store requires a database")
		}
		sinks = append(sinks, export.NewStoreSink(snapshotDb.New(db), cfg.MaxSnapshots))
	}
	return export.New(export.WithSinks(sinks...)), nil
}
