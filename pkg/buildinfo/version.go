// Package buildinfo carries version information stamped in at build time:
//
//	go build -ldflags "-X github.com/matzehuels/umlayout/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/umlayout/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/umlayout/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/umlayout
//
// Version also scopes the layout cache and is reported by the HTTP health
// endpoint.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
