package scene

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// ExtensionLoader dispatches to a Loader chosen by the URL's file
// extension, falling back to Default.
type ExtensionLoader struct {
	ByExt   map[string]Loader
	Default Loader
}

func NewExtensionLoader(def Loader) *ExtensionLoader {
	return &ExtensionLoader{ByExt: map[string]Loader{}, Default: def}
}

// Register maps ext (with or without the dot, any case) to l.
func (e *ExtensionLoader) Register(ext string, l Loader) {
	e.ByExt[normalizeExt(ext)] = l
}

func (e *ExtensionLoader) LoadFromURL(ctx context.Context, url string) (*Node, error) {
	l, err := e.loaderFor(url)
	if err != nil {
		return nil, err
	}
	return l.LoadFromURL(ctx, url)
}

// Fetch runs the chosen loader's Fetch. A loader that cannot split its
// work does all of it in the returned BuildFunc.
func (e *ExtensionLoader) Fetch(ctx context.Context, url string) (BuildFunc, error) {
	l, err := e.loaderFor(url)
	if err != nil {
		return nil, err
	}
	if f, ok := l.(Fetcher); ok {
		return f.Fetch(ctx, url)
	}
	return func() (*Node, error) { return l.LoadFromURL(ctx, url) }, nil
}

func (e *ExtensionLoader) loaderFor(url string) (Loader, error) {
	u := url
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if l, ok := e.ByExt[normalizeExt(path.Ext(u))]; ok {
		return l, nil
	}
	if e.Default == nil {
		return nil, fmt.Errorf("no loader for %q", url)
	}
	return e.Default, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
