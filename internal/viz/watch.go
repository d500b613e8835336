package viz

import (
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/gridreplay/internal/config"
	"github.com/san-kum/gridreplay/internal/logging"
)

const reloadDebounce = 100 * time.Millisecond

// Loader produces the config after the file changed.
type Loader func() (*config.Config, error)

// ConfigWatcher reloads a config file whenever it changes and hands the
// result to send. It never touches viewer state itself.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	load    Loader
	send    func(tea.Msg)
	log     *logging.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// WatchConfig watches the file's directory, since editors often replace the
// file instead of writing it in place. A nil load reads the file alone.
func WatchConfig(path string, load Loader, send func(tea.Msg), log *logging.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}
	if log == nil {
		log = logging.NopLogger()
	}
	if load == nil {
		load = func() (*config.Config, error) { return config.Load(abs) }
	}

	w := &ConfigWatcher{
		watcher: watcher,
		path:    abs,
		load:    load,
		send:    send,
		log:     log.With("config", abs),
		stopCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *ConfigWatcher) loop() {
	defer w.wg.Done()

	debounce := time.NewTimer(reloadDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-w.stopCh:
			debounce.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(reloadDebounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watch error", "error", err)

		case <-debounce.C:
			cfg, err := w.load()
			if err != nil {
				w.log.Warn("config reload rejected", "error", err)
			} else {
				w.log.Debug("config changed on disk")
			}
			w.send(ConfigReloadedMsg{Config: cfg, Err: err})
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
