// Package version provides build version information embedding for
// harbor services, plus the fixed Tag appended to remote log shipments.
//
// Version, git commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/bkocaman/harbor/version.Version=0.1.0"
package version
