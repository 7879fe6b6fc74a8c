package buildinfo

import "fmt"

const Graffiti = " _                _ _           \n| |__  _ __   ___| (_)_ __ ___  \n| '_ \\| '_ \\ / _ \\ | | '_ ` _ \\ \n| |_) | | | |  __/ | | | | | | |\n|_.__/|_| |_|\\___|_|_|_| |_| |_|\n\n"

// Set with -ldflags "-X github.com/go-sod/bnelim/internal/buildinfo.BuildTag=..."
var (
	BuildTag = "v0.0.0"
	Name     = "BNELIM"
	Time     = "unknown"
)

var Info buildinfo

type buildinfo struct{}

func (buildinfo) Tag() string  { return BuildTag }
func (buildinfo) Name() string { return Name }
func (buildinfo) Time() string { return Time }

func (b buildinfo) String() string {
	return fmt.Sprintf("%s %s, built %s", b.Name(), b.Tag(), b.Time())
}
