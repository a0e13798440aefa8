// Package watch reruns a callback when any of a set of files changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDelay is the quiet period before a batch of changes is delivered.
const DefaultDelay = 100 * time.Millisecond

// Watcher watches individual files. Their parent directories are watched
// so that editors and adapters replacing files by rename are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	delay    time.Duration
	onChange func(ctx context.Context, changed []string) error
	logger   *zap.Logger
}

// Options configures a Watcher.
type Options struct {
	// Files are the paths to watch.
	Files []string

	// Delay is the debounce period. Default: DefaultDelay.
	Delay time.Duration

	// OnChange is called with the changed files, never concurrently.
	// Errors are logged and watching continues.
	OnChange func(ctx context.Context, changed []string) error

	// Logger. Default: no-op.
	Logger *zap.Logger
}

// New creates a watcher for opts.Files.
func New(opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	if len(opts.Files) == 0 {
		return nil, errors.New("watch: no files")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}

	w := &Watcher{
		watcher:  fsw,
		files:    make(map[string]struct{}, len(opts.Files)),
		delay:    opts.Delay,
		onChange: opts.OnChange,
		logger:   opts.Logger,
	}
	if w.delay <= 0 {
		w.delay = DefaultDelay
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}

	dirs := make(map[string]struct{})
	for _, f := range opts.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "resolve %s", f)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "watch directory %s", dir)
		}
		w.logger.Debug("watching directory", zap.String("dir", dir))
	}
	return w, nil
}

// Run delivers debounced changes until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		fire    = make(chan struct{}, 1)
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			pending[event.Name] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.delay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			pending = make(map[string]struct{})
			if len(changed) == 0 {
				continue
			}
			if err := w.onChange(ctx, changed); err != nil {
				w.logger.Error("regeneration failed", zap.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
