// Package client embeds the browser runtime and stylesheet served to
// every live page and the dashboard.
package client

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed src/vero.js src/vero.css
var assets embed.FS

// Assets returns the embedded asset filesystem rooted at src/.
func Assets() fs.FS {
	fsys, err := fs.Sub(assets, "src")
	if err != nil {
		panic(err)
	}
	return fsys
}

// Handler serves the embedded assets over HTTP.
func Handler() http.Handler {
	return http.FileServer(http.FS(Assets()))
}

// Runtime returns the browser runtime script.
func Runtime() []byte {
	return mustRead("src/vero.js")
}

// Stylesheet returns the shared stylesheet.
func Stylesheet() []byte {
	return mustRead("src/vero.css")
}

func mustRead(name string) []byte {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return data
}
