package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"filesorter/internal/logging"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 2 * time.Second

// RunFunc performs one organize pass.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	Root string
	// Exclude lists directories whose subtrees are never watched.
	Exclude    []string
	Debounce   time.Duration
	RunOnStart bool
	Logger     *slog.Logger
}

// Watcher triggers runs on source tree changes.
type Watcher struct {
	root       string
	exclude    []string
	debounce   time.Duration
	runOnStart bool
	run        RunFunc
	logger     *slog.Logger
}

// New validates opts and returns a Watcher calling run.
func New(opts Options, run RunFunc) (*Watcher, error) {
	if run == nil {
		return nil, errors.New("watch: run func is required")
	}
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return nil, errors.New("watch: root is empty")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}
	excluded := make([]string, 0, len(opts.Exclude))
	for _, dir := range opts.Exclude {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve exclude %q: %w", dir, err)
		}
		excluded = append(excluded, abs)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:       absRoot,
		exclude:    excluded,
		debounce:   debounce,
		runOnStart: opts.RunOnStart,
		run:        run,
		logger:     logging.NewComponentLogger(opts.Logger, "watch"),
	}, nil
}

// Run blocks until ctx is done. It returns nil on cancellation and an error
// only when the watch itself cannot be established.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dirs, err := Dirs(w.root, w.exclude)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.Info("watching source tree",
		logging.String("root", w.root),
		logging.Int("directories", len(dirs)),
		logging.Duration("debounce", w.debounce),
	)

	if w.runOnStart {
		w.trigger(ctx, "startup")
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.watchNewDir(fw, event.Name)
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "watch error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some changes may not trigger a run"),
			)
		case <-timer.C:
			w.trigger(ctx, "change")
		}
	}
}

func (w *Watcher) trigger(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	w.logger.Debug("triggering organize run", logging.String("reason", reason))
	if err := w.run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.WarnWithContext(w.logger, "organize run failed", "watch_run_failed",
			logging.String("reason", reason),
			logging.Error(err),
			logging.String(logging.FieldImpact, "files stay in the source until the next change"),
		)
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return !w.excluded(event.Name)
}

func (w *Watcher) excluded(path string) bool {
	for _, dir := range w.exclude {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) watchNewDir(fw *fsnotify.Watcher, path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return
	}
	dirs, err := Dirs(path, w.exclude)
	if err != nil {
		w.logger.Debug("new directory vanished before it could be watched", logging.String("path", path))
		return
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			w.logger.Debug("watch new directory failed", logging.String("path", dir), logging.Error(err))
		}
	}
}

// Dirs lists root and every directory beneath it, skipping excluded subtrees
// and symlinked directories.
func Dirs(root string, exclude []string) ([]string, error) {
	skip := make(map[string]struct{}, len(exclude))
	for _, dir := range exclude {
		skip[filepath.Clean(dir)] = struct{}{}
	}
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if _, ok := skip[path]; ok {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
