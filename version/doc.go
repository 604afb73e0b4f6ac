// Package version reports build information for the fscan binaries.
//
// Values come from -ldflags when set:
//
//	go build -ldflags "-X github.com/dendrascience/fscan/version.Version=v1.2.0 \
//	  -X github.com/dendrascience/fscan/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/dendrascience/fscan/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Otherwise they fall back to the module version and VCS stamps embedded by
// the go tool, and finally to "development" / "unknown".
package version
