package driver

type Config struct {
	RunsFile          string `envconfig:"BNELIM_RUNS_FILE"`
	Seed              uint32 `envconfig:"BNELIM_SEED" default:"1337"`
	MaxConcurrentRuns int    `envconfig:"BNELIM_MAX_CONCURRENT_RUNS" default:"1"`
	Progress          bool   `envconfig:"BNELIM_PROGRESS" default:"true"`
}
