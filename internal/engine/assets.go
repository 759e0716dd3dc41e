package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// LoadError is a failed sprite sheet or image load.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("engine: error loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ImageLoader starts an image load and reports the outcome through callbacks.
// A loader may call onLoad, onError, or both, from any goroutine; LoadImage
// resolves on whichever arrives first.
type ImageLoader interface {
	Load(source string, onLoad func(image.Image), onError func(error))
}

type loadResult struct {
	img image.Image
	err error
}

// completion is a take-once slot holding the send half of a one-shot channel.
// The first caller of take gets the channel; every later caller gets nil.
type completion struct {
	mu sync.Mutex
	tx chan<- loadResult
}

func (c *completion) take() chan<- loadResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := c.tx
	c.tx = nil
	return tx
}

// LoadImage issues a single load and waits for it to resolve. It never times
// out on its own; ctx is the only way to stop waiting.
func LoadImage(ctx context.Context, loader ImageLoader, source string) (image.Image, error) {
	rx := make(chan loadResult, 1)
	slot := &completion{tx: rx}

	onLoad := func(img image.Image) {
		if tx := slot.take(); tx != nil {
			tx <- loadResult{img: img}
		}
	}
	onError := func(err error) {
		if tx := slot.take(); tx != nil {
			tx <- loadResult{err: err}
		}
	}
	loader.Load(source, onLoad, onError)

	select {
	case res := <-rx:
		if res.err != nil {
			return nil, &LoadError{Source: source, Err: res.err}
		}
		return res.img, nil
	case <-ctx.Done():
		return nil, &LoadError{Source: source, Err: ctx.Err()}
	}
}

// Cell is one sprite sheet entry.
type Cell struct {
	Frame core.SheetRect `json:"frame"`
}

// Sheet maps frame names ("Run (3).png") to their region in the sheet image.
// It is loaded once and never modified.
type Sheet struct {
	Frames map[string]Cell `json:"frames"`
}

// Cell looks up a frame by name.
func (s Sheet) Cell(name string) (Cell, bool) {
	c, ok := s.Frames[name]
	return c, ok
}

// FetchJSON reads path from fsys and decodes it into v.
func FetchJSON(ctx context.Context, fsys fs.FS, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return &LoadError{Source: path, Err: err}
	}

	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return &LoadError{Source: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &LoadError{Source: path, Err: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}

// LoadSheet fetches and decodes a sprite sheet description.
func LoadSheet(ctx context.Context, fsys fs.FS, path string) (Sheet, error) {
	var sheet Sheet
	if err := FetchJSON(ctx, fsys, path, &sheet); err != nil {
		return Sheet{}, err
	}
	if len(sheet.Frames) == 0 {
		return Sheet{}, &LoadError{Source: path, Err: fmt.Errorf("sheet has no frames")}
	}
	return sheet, nil
}
