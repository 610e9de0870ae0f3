// Package util holds the small helpers shared by the config loader, the
// server middleware, and the tools' startup logging.
package util
