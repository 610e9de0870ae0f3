// Package version carries the build information every promptprobe tool
// prints for --version and serves on the mock server's /version endpoint.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/promptprobe/version.Version=1.0.0" ./cmd/fanout
package version
