package masterdata

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"menuplan-admin/internal/storage"
)

// Watcher reloads master data into a State when the backing files change.
type Watcher struct {
	state          *State
	watcher        *fsnotify.Watcher
	facilitiesPath string
	categoriesPath string
}

// NewWatcher performs an initial load of both files and starts watching
// their directories for writes.
func NewWatcher(state *State, facilitiesPath, categoriesPath string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := map[string]bool{}
	for _, p := range []string{facilitiesPath, categoriesPath} {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}

	fw := &Watcher{
		state:          state,
		watcher:        w,
		facilitiesPath: facilitiesPath,
		categoriesPath: categoriesPath,
	}
	fw.reload(facilitiesPath)
	fw.reload(categoriesPath)
	return fw, nil
}

// Watch blocks, processing file events until the watcher is closed.
func (fw *Watcher) Watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			switch filepath.Clean(event.Name) {
			case filepath.Clean(fw.facilitiesPath), filepath.Clean(fw.categoriesPath):
				log.Printf("Master data changed: %s", event.Name)
				fw.reload(event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// Close stops the watcher.
func (fw *Watcher) Close() error {
	return fw.watcher.Close()
}

func (fw *Watcher) reload(path string) {
	switch filepath.Clean(path) {
	case filepath.Clean(fw.facilitiesPath):
		facilities, err := storage.LoadFacilities(fw.facilitiesPath)
		if err != nil {
			log.Printf("Error loading facilities: %v", err)
			return
		}
		fw.state.SetFacilities(facilities)
	case filepath.Clean(fw.categoriesPath):
		categories, err := storage.LoadCategories(fw.categoriesPath)
		if err != nil {
			log.Printf("Error loading categories: %v", err)
			return
		}
		if categories != nil {
			fw.state.SetCategories(categories)
		}
	}
}
