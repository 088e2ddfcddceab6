package web

import "embed"

// Templates holds the server-rendered pages: layout.html plus one file per page.
//
//go:embed templates
var Templates embed.FS

//go:embed static
var Static embed.FS
