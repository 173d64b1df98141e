// Package scaffold provides the starter files written by "folio new".
package scaffold

import "embed"

// Templates holds the starter site. Files ending in .tmpl are executed as
// text/template with the site name; "dotenv" becomes ".env.example".
//
//go:embed all:templates
var Templates embed.FS
