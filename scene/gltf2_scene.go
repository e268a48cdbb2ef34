package scene

import (
	"context"
	"fmt"
)

// GLTF2Scene is a scene whose content is a single glTF asset.
type GLTF2Scene struct {
	*Scene
	URL string

	// GLTFNode is the attached asset root; nil until Load succeeds.
	GLTFNode *Node

	loader Loader
}

func NewGLTF2Scene(url string, loader Loader) *GLTF2Scene {
	return &GLTF2Scene{
		Scene:  NewScene(),
		URL:    url,
		loader: loader,
	}
}

type fetchResult struct {
	build BuildFunc
	err   error
}

// Load attaches the asset at URL. When the loader is a Fetcher, fetching
// and decoding run on a separate goroutine while renderer uploads run on
// the caller's goroutine once the fetch resolves; other loaders run
// entirely on the caller's goroutine. If ctx ends first, or the loader
// fails, nothing is uploaded, GLTFNode stays nil and the error is returned.
func (s *GLTF2Scene) Load(ctx context.Context) error {
	f, ok := s.loader.(Fetcher)
	if !ok {
		node, err := s.loader.LoadFromURL(ctx, s.URL)
		return s.attach(node, err)
	}

	done := make(chan fetchResult, 1)
	go func() {
		build, err := f.Fetch(ctx, s.URL)
		done <- fetchResult{build: build, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("load scene %q: %w", s.URL, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("load scene %q: %w", s.URL, res.err)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("load scene %q: %w", s.URL, err)
		}
		return s.attach(res.build())
	}
}

func (s *GLTF2Scene) attach(node *Node, err error) error {
	if err != nil {
		return fmt.Errorf("load scene %q: %w", s.URL, err)
	}
	if node == nil {
		return fmt.Errorf("load scene %q: %w", s.URL, ErrNoScene)
	}
	s.GLTFNode = node
	s.AddNode(s.GLTFNode)
	return nil
}
