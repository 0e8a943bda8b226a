package config

import (
	"embed"
	"io/fs"
)

//go:embed pages/*
var embeddedPages embed.FS

// EmbeddedFS returns the bundled page definitions. Pass it to LoadFS to use
// the default signup page.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedPages, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}
