package catalog

// sprite.go fetches and caches bitmap resources for image-backed assets.
// A sprite is in exactly one of three states: pending (fetch in flight or
// not started), ready (decoded frame available) or failed.  Pending and
// failed sprites contribute a zero footprint; the renderer skips them
// without erroring, and a later successful refresh can still promote a
// failed animated sprite to ready.

import (
	"bytes"
	"context"
	"image"
	"sync"
	"time"

	_ "image/gif"  // register GIF decoding for animated assets
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// LoadState is the explicit lifecycle of a sprite resource.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	LoadFailed
)

type sprite struct {
	state LoadState
	img   image.Image
	w, h  float64
}

// SpriteLoader fetches image resources over HTTP and caches the decoded
// frames by URL.  It is safe for concurrent use by the renderer and the
// refresh loops.
type SpriteLoader struct {
	client *resty.Client
	log    *zap.Logger

	mu      sync.RWMutex
	sprites map[string]*sprite
}

// NewSpriteLoader builds a loader with a short request timeout; a slow
// CDN should delay one sprite, not wedge a render.
func NewSpriteLoader(log *zap.Logger) *SpriteLoader {
	return &SpriteLoader{
		client:  resty.New().SetTimeout(10 * time.Second),
		log:     log,
		sprites: make(map[string]*sprite),
	}
}

// Fetch starts an asynchronous fetch+decode of the URL unless one is
// already in flight or completed.  Completion order relative to object
// placement is deliberately unspecified.
func (l *SpriteLoader) Fetch(url string) {
	l.mu.Lock()
	if _, ok := l.sprites[url]; ok {
		l.mu.Unlock()
		return
	}
	l.sprites[url] = &sprite{state: LoadPending}
	l.mu.Unlock()

	go l.fetchNow(url)
}

// fetchNow performs one blocking fetch+decode and records the outcome.
func (l *SpriteLoader) fetchNow(url string) {
	resp, err := l.client.R().Get(url)
	if err != nil || resp.IsError() {
		l.log.Warn("sprite fetch failed", zap.String("url", url), zap.Error(err))
		l.setState(url, &sprite{state: LoadFailed})
		return
	}
	img, _, err := image.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		l.log.Warn("sprite decode failed", zap.String("url", url), zap.Error(err))
		l.setState(url, &sprite{state: LoadFailed})
		return
	}
	b := img.Bounds()
	l.setState(url, &sprite{
		state: LoadReady,
		img:   img,
		w:     float64(b.Dx()),
		h:     float64(b.Dy()),
	})
}

func (l *SpriteLoader) setState(url string, s *sprite) {
	l.mu.Lock()
	l.sprites[url] = s
	l.mu.Unlock()
}

// State reports the lifecycle state of a URL.  URLs never fetched are
// pending.
func (l *SpriteLoader) State(url string) LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if s, ok := l.sprites[url]; ok {
		return s.state
	}
	return LoadPending
}

// Image returns the decoded frame and its natural size when the sprite is
// ready.
func (l *SpriteLoader) Image(url string) (img image.Image, w, h float64, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, found := l.sprites[url]
	if !found || s.state != LoadReady {
		return nil, 0, 0, false
	}
	return s.img, s.w, s.h, true
}

// RefreshLoop re-fetches an animated resource on a fixed interval so the
// cached frame advances, until the context is cancelled.  Each refresh is
// a full fetch; failures leave the previous frame in place only until the
// failed state is recorded, matching the degrade-to-empty contract.
func (l *SpriteLoader) RefreshLoop(ctx context.Context, url string, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.fetchNow(url)
		}
	}
}
