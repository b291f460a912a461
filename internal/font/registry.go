package font

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/stlalpha/icyengine/internal/logging"
)

// Registry maps SAUCE font names ("IBM VGA", "IBM VGA50", "Amiga Topaz 1",
// ...) to loaded BitFonts, and optionally keeps itself in sync with a
// directory of font files via fsnotify, the way a live IcyDraw session
// reloads fonts dropped into its font folder without a restart.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*BitFont
	watch  *fsnotify.Watcher
	dir    string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*BitFont)}
}

// Register installs f under its SAUCE name.
func (r *Registry) Register(f *BitFont) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[f.Name] = f
}

// Lookup finds a font by its SAUCE name, as used when resolving
// Buffer.sauce_data.font_opt.
func (r *Registry) Lookup(sauceName string) (*BitFont, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[sauceName]
	return f, ok
}

// Names returns the registered SAUCE font names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}

// LoadDirectory loads every .psf, .yaff, and .f16/.f14/.f08 file in dir,
// registering each under its filename stem as the SAUCE name. Unreadable
// or malformed files are skipped with a debug log line rather than
// aborting the whole directory.
func (r *Registry) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("font: read directory %q: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if f, err := loadFontFile(path); err != nil {
			logging.Debug("font: skipping %s: %v", path, err)
		} else {
			r.Register(f)
		}
	}
	return nil
}

func loadFontFile(path string) (*BitFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".psf", ".psfu":
		return LoadPSF2(name, data)
	case ".yaff":
		return LoadYAFF(name, data)
	case ".f08":
		return LoadRaw(name, 8, data)
	case ".f14":
		return LoadRaw(name, 14, data)
	case ".f16":
		return LoadRaw(name, 16, data)
	default:
		return nil, fmt.Errorf("unrecognized font extension %q", filepath.Ext(path))
	}
}

// Watch starts an fsnotify watch on dir; create/write events trigger a
// reload of the touched file. Watch returns once the initial LoadDirectory
// pass completes; the background goroutine stops when stop is closed.
func (r *Registry) Watch(dir string, stop <-chan struct{}) error {
	if err := r.LoadDirectory(dir); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("font: create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("font: watch %q: %w", dir, err)
	}
	r.mu.Lock()
	r.watch = w
	r.dir = dir
	r.mu.Unlock()

	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if f, err := loadFontFile(ev.Name); err != nil {
					logging.Debug("font: reload %s failed: %v", ev.Name, err)
				} else {
					r.Register(f)
					logging.Debug("font: reloaded %s", ev.Name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Debug("font: watch error: %v", err)
			case <-stop:
				return
			}
		}
	}()
	return nil
}
