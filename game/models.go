package game

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// ModelLoader decodes model images on background goroutines.
// Physics never waits on it: until an image is ready, Image returns nil and
// the renderer falls back to vector shapes.
type ModelLoader struct {
	mu      sync.Mutex
	decoded map[string]image.Image
	images  map[string]*ebiten.Image
	pending map[string]bool
	log     zerolog.Logger

	decode func(path string) (image.Image, error)
}

// NewModelLoader creates an empty loader
func NewModelLoader(logger zerolog.Logger) *ModelLoader {
	return &ModelLoader{
		decoded: make(map[string]image.Image),
		images:  make(map[string]*ebiten.Image),
		pending: make(map[string]bool),
		log:     logger,
		decode:  decodeFile,
	}
}

// Load starts decoding path unless it is empty, loaded or in flight
func (m *ModelLoader) Load(path string) {
	if path == "" {
		return
	}

	m.mu.Lock()
	_, done := m.decoded[path]
	if done || m.pending[path] {
		m.mu.Unlock()
		return
	}
	m.pending[path] = true
	m.mu.Unlock()

	go func() {
		img, err := m.decode(path)

		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.pending, path)
		if err != nil {
			m.log.Warn().Err(err).Str("model", path).Msg("Failed to load model, using fallback shape")
			return
		}
		m.decoded[path] = img
		m.log.Debug().Str("model", path).Msg("Model loaded")
	}()
}

// Image returns the GPU image for path, or nil while it is not ready.
// Must be called from the draw goroutine.
func (m *ModelLoader) Image(path string) *ebiten.Image {
	if path == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if img, ok := m.images[path]; ok {
		return img
	}
	src, ok := m.decoded[path]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	m.images[path] = img
	return img
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}
	return img, nil
}
