// Package web bundles the single-page frontend so the binary ships as one
// self-contained artifact.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
