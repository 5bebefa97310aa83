package settings

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// Watcher reloads a settings file into a Settings value whenever the file changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	target  *Settings
	log     *logrus.Logger

	hash    uint64
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the settings file at path. The directory holding the file is watched so that
// editors which replace the file on save are handled. The file is loaded once before Watch returns.
func Watch(path string, target *Settings, log *logrus.Logger) (*Watcher, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		target:  target,
		log:     log,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	if err := watcher.reload(); err != nil {
		_ = w.Close()
		return nil, err
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if err := w.reload(); err != nil {
				w.log.Warnf("unable to reload settings from %s: %v", w.path, err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf("settings watcher error: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

// reload reads the file and applies it if its content changed since the last reload. Editors often emit
// several events for one save, the hash keeps those from marking the settings updated more than once.
func (w *Watcher) reload() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return err
	}
	hash := xxh3.Hash(data)
	if hash == w.hash {
		return nil
	}

	v, err := decode(data)
	if err != nil {
		return err
	}
	w.hash = hash
	w.target.Set(v)
	w.log.WithFields(logrus.Fields{
		"fov":         v.FieldOfView,
		"sensitivity": v.MouseSensitivity,
		"invert_y":    v.InvertY,
	}).Debug("settings reloaded")
	return nil
}
