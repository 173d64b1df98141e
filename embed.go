package folio

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains the client assets shipped with the binary:
// folio.css, folio.js, wasm_exec.js and favicon.svg.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// embeddedAssets is EmbeddedAssets rooted at the embedded directory.
var embeddedAssets, _ = fs.Sub(EmbeddedAssets, "embedded")

// embeddedPublic are the embedded files published under /public/.
var embeddedPublic = []string{"folio.css", "folio.js", "wasm_exec.js"}
