package pnmview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer coalesces rapid event bursts into a single callback per file.
type debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	onFire func(path string)
}

func newDebouncer(delay time.Duration, onFire func(path string)) *debouncer {
	return &debouncer{
		timers: make(map[string]*time.Timer),
		delay:  delay,
		onFire: onFire,
	}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		d.onFire(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}

// Watch decodes file into a Preview and calls fn, then does so again every
// time the file is written or replaced until ctx is cancelled. fn is always
// called from the same goroutine.
func (v *Viewer) Watch(ctx context.Context, file string, fn func(*Preview)) error {
	file, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Editors often save by renaming over the original so watch the parent
	if err := w.Add(filepath.Dir(file)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(file), err)
	}

	p := new(Preview)
	update := func() {
		b, err := os.ReadFile(file)
		if err != nil {
			p.Fail(err)
		} else if err := p.Update(b); err == nil {
			m := p.Raster()
			v.logger.Printf("Decoded \"%s\" as %s, %dx%d\n", file, m.Format, m.Width, m.Height)
		}
		if msg := p.Message(); msg != "" {
			v.logger.Printf("Failed to decode \"%s\": %s\n", file, msg)
		}
		fn(p)
	}

	changed := make(chan struct{}, 1)
	d := newDebouncer(v.config.Watch.DebounceDuration(), func(string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer d.stop()

	update()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				d.trigger(event.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			v.logger.Printf("Watcher error: %v\n", err)
		case <-changed:
			update()
		}
	}
}
