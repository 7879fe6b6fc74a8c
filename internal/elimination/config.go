package elimination

import "github.com/go-sod/bnelim/internal/geom"

type Config struct {
	ScoreWorkers   int                   `envconfig:"BNELIM_SCORE_WORKERS" default:"0"`
	MetricFuncType geom.DistanceFuncType `envconfig:"BNELIM_METRIC" default:"TOROIDAL"`
}
