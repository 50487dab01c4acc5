// Package texture loads the sprite drawn for every point and keeps it up to
// date when the file on disk changes.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/fosdem/layertunnel/lib/metrics"
	"github.com/jhenstridge/go-inotify"
)

const generatedSize = 128

// Source hands out the current texture image. Reloads happen on a watcher
// goroutine, the render thread picks them up with Take.
type Source struct {
	path    string
	inotify bool

	mu      sync.Mutex
	img     *image.NRGBA
	changed bool
	done    chan struct{}
}

// New loads the texture at path, or generates a soft round sprite when
// path is empty
func New(path string, watch bool) (*Source, error) {
	s := &Source{path: path, inotify: watch, done: make(chan struct{})}
	if path == "" {
		s.set(Generate(generatedSize))
		return s, nil
	}
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.set(img)
	return s, nil
}

func (s *Source) Start() {
	if s.inotify && s.path != "" {
		go s.watch()
	}
}

func (s *Source) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Take returns the image if it changed since the last call
func (s *Source) Take() (*image.NRGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.changed {
		return nil, false
	}
	s.changed = false
	return s.img, true
}

func (s *Source) Image() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Reload reads the file again and marks the texture as changed
func (s *Source) Reload() error {
	if s.path == "" {
		return fmt.Errorf("generated textures cannot be reloaded")
	}
	img, err := Load(s.path)
	if err != nil {
		metrics.TextureReloads.WithLabelValues("error").Inc()
		return err
	}
	s.set(img)
	metrics.TextureReloads.WithLabelValues("ok").Inc()
	return nil
}

func (s *Source) set(img *image.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
	s.changed = true
}

func (s *Source) watch() {
	watcher, err := inotify.NewWatcher()
	if err != nil {
		s.error("Could not create inotify watcher: %s", err)
		return
	}
	defer func(watcher *inotify.Watcher) {
		err := watcher.Close()
		if err != nil {
			return
		}
	}(watcher)

	_, err = watcher.Watch(s.path)
	if err != nil {
		s.error("Could not start inotify watcher: %s", err)
		return
	}

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-watcher.Event:
			if !ok {
				return
			}
			if ev.Mask&inotify.IN_CLOSE_WRITE == 0 {
				continue
			}
			s.log("Reloading texture due to inotify event")
			// give the writer a moment to finish renaming things around
			time.Sleep(100 * time.Millisecond)
			if err := s.Reload(); err != nil {
				s.error("Error reloading texture: %s", err)
			}
		}
	}
}

func (s *Source) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "texture"))
}

func (s *Source) error(msg string, args ...interface{}) {
	slog.Error(fmt.Sprintf(msg, args...), slog.String("module", "texture"))
}

// Load decodes an image file into bottom-up NRGBA rows, the order GL
// expects texture data in
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open texture %s: %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode texture %s: %w", path, err)
	}
	return FlipToNRGBA(img), nil
}

func FlipToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	upright := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(upright, upright.Bounds(), img, b.Min, draw.Src)

	flipped := image.NewNRGBA(upright.Bounds())
	h := b.Dy()
	for y := 0; y < h; y++ {
		copy(flipped.Pix[y*flipped.Stride:(y+1)*flipped.Stride], upright.Pix[(h-1-y)*upright.Stride:(h-y)*upright.Stride])
	}
	return flipped
}

// Generate draws a white disc with a soft edge, used when no texture file
// is configured
func Generate(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			a := 1 - smoothstep(0.6, 1, d)
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a*255 + 0.5)})
		}
	}
	return img
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}
