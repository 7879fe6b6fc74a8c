package sample

type SourceType string

const (
	SourceTypeXorShift SourceType = "XORSHIFT"
	SourceTypeMath     SourceType = "MATH"
)

type Config struct {
	Source SourceType `envconfig:"BNELIM_RNG" default:"XORSHIFT"`
}
