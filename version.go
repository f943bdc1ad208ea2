package quorum

import "fmt"

// Release of this build. GitCommit is set with -ldflags at build time.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

var GitCommit = ""

// Version returns the release string, followed by the commit when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
