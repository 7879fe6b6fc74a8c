package export

type Config struct {
	Dir          string `envconfig:"BNELIM_OUT_DIR" default:"out"`
	ImageSize    int    `envconfig:"BNELIM_IMAGE_SIZE" default:"128"`
	Image        bool   `envconfig:"BNELIM_EXPORT_IMAGE" default:"true"`
	Text         bool   `envconfig:"BNELIM_EXPORT_TEXT" default:"true"`
	Store        bool   `envconfig:"BNELIM_EXPORT_STORE" default:"false"`
	MaxSnapshots int    `envconfig:"BNELIM_DB_MAX_SNAPSHOTS" default:"0"`
}
