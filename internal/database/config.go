package database

import "time"

type Config struct {
	FileName    string        `envconfig:"BNELIM_DB_FILE" default:"bnelim.db"`
	OpenTimeout time.Duration `envconfig:"BNELIM_DB_OPEN_TIMEOUT" default:"5s"`
}
