// internal/words/watch.go
//
// File watcher that reloads a word list when it changes on disk.

package words

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher reloads a word file whenever it changes on disk and hands the
// normalized list to OnChange. The parent directory is watched so that
// editors which replace the file by rename are seen too.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func([]string)
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", w.Path).Msg("word file watch error")
		case <-timer.C:
			list, err := ReadFile(target)
			if err != nil {
				log.Warn().Err(err).Str("path", w.Path).Msg("reload word file")
				continue
			}
			log.Info().Str("path", w.Path).Int("words", len(list)).Msg("word file reloaded")
			if w.OnChange != nil {
				w.OnChange(list)
			}
		}
	}
}
