package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// PageFetcher materializes the raw bytes for a page source.
type PageFetcher func(src PageSource) ([]byte, error)

// LoadStatus is the loader's knowledge about one page.
type LoadStatus int

const (
	LoadIdle LoadStatus = iota
	LoadPending
	LoadReady
	LoadFailed
)

type loadRequest struct {
	key string
	src PageSource
}

// PageLoader turns page sources into displayable images asynchronously.
// Navigation is never gated on it: Get returns immediately with the current
// status and the caller renders a placeholder until the image arrives.
// Decoded images live in an LRU cache whose eviction releases the GPU-side
// resource, so every exit path (navigated away, unloaded, evicted, stopped)
// deterministically frees what was acquired.
type PageLoader struct {
	fetch PageFetcher
	cache *lru.Cache[string, *ebiten.Image]

	mu      sync.Mutex
	pending map[string]bool
	failed  map[string]error

	requests chan loadRequest
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPageLoader creates a loader with the given cache size and starts its
// worker goroutine.
func NewPageLoader(cacheSize int, fetch PageFetcher) *PageLoader {
	if cacheSize < 1 {
		cacheSize = 16
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		// Only reachable with a non-positive size, which is guarded above.
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &PageLoader{
		fetch:    fetch,
		cache:    cache,
		pending:  make(map[string]bool),
		failed:   make(map[string]error),
		requests: make(chan loadRequest, 64),
		ctx:      ctx,
		cancel:   cancel,
	}
	go l.worker()
	return l
}

// Stop shuts the worker down and releases every cached image.
func (l *PageLoader) Stop() {
	l.cancel()
	l.cache.Purge()
}

// Get returns the decoded image for a source if available, together with
// the load status. A failed page returns a nil image and LoadFailed; the
// caller renders an inline failure indicator and the rest of the chapter is
// unaffected.
func (l *PageLoader) Get(src PageSource) (*ebiten.Image, LoadStatus) {
	key := src.Key()
	if img, ok := l.cache.Get(key); ok {
		return img, LoadReady
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.failed[key]; ok {
		return nil, LoadFailed
	}
	if l.pending[key] {
		return nil, LoadPending
	}
	return nil, LoadIdle
}

// FailureFor returns the recorded error for a failed page, if any.
func (l *PageLoader) FailureFor(src PageSource) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failed[src.Key()]
}

// Request queues an asynchronous load unless the page is already cached,
// in flight, or known failed. Safe to call every frame.
func (l *PageLoader) Request(src PageSource) {
	key := src.Key()
	if l.cache.Contains(key) {
		return
	}

	l.mu.Lock()
	if l.pending[key] {
		l.mu.Unlock()
		return
	}
	if _, ok := l.failed[key]; ok {
		l.mu.Unlock()
		return
	}
	l.pending[key] = true
	l.mu.Unlock()

	select {
	case l.requests <- loadRequest{key: key, src: src}:
	default:
		// Queue full; drop and let a later frame retry.
		l.mu.Lock()
		delete(l.pending, key)
		l.mu.Unlock()
		debugLog("load queue full, dropping request for %s", key)
	}
}

// Retain evicts every cached page whose key is not in keep, releasing the
// underlying images. Vertical mode uses this to unload pages that scrolled
// out of the preload margin.
func (l *PageLoader) Retain(keep map[string]bool) {
	for _, key := range l.cache.Keys() {
		if !keep[key] {
			l.cache.Remove(key)
		}
	}

	l.mu.Lock()
	for key := range l.failed {
		if !keep[key] {
			delete(l.failed, key)
		}
	}
	l.mu.Unlock()
}

// CachedCount reports how many pages are currently held.
func (l *PageLoader) CachedCount() int {
	return l.cache.Len()
}

func (l *PageLoader) worker() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case req := <-l.requests:
			l.process(req)
		}
	}
}

func (l *PageLoader) process(req loadRequest) {
	data, err := l.fetch(req.src)
	var img *ebiten.Image
	if err == nil {
		img, err = decodePageImage(data, req.key)
	}

	l.mu.Lock()
	delete(l.pending, req.key)
	if err != nil {
		l.failed[req.key] = err
	}
	l.mu.Unlock()

	if err != nil {
		debugLog("page load failed for %s: %v", req.key, err)
		return
	}
	l.cache.Add(req.key, img)
}

func decodePageImage(data []byte, name string) (*ebiten.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// defaultFetcher reads local-binary pages from disk or archives and remote
// pages through the backend client.
func defaultFetcher(client *Client) PageFetcher {
	return func(src PageSource) ([]byte, error) {
		switch src.Kind {
		case SourceLocalBinary:
			return readLocalPage(src)
		case SourceRemoteURL:
			return client.PageBytes(context.Background(), src.URL)
		default:
			return nil, fmt.Errorf("unknown page source kind %d", src.Kind)
		}
	}
}
