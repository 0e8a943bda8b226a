package listedit

import (
	"io/fs"

	"github.com/goliatone/go-listedit/pkg/config"
	"github.com/goliatone/go-listedit/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// StylesheetFS exposes the default stylesheet so applications can serve it
// without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(listedit.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return html.AssetsFS()
}

// LoadPages reads page definitions from fsys; nil loads the embedded signup
// page.
func LoadPages(fsys fs.FS) (*config.Store, error) {
	if fsys == nil {
		fsys = config.EmbeddedFS()
	}
	return config.LoadFS(fsys)
}
