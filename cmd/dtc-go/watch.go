package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"dtc-go/packages/compiler/config"
)

const defaultDebounce = 100 * time.Millisecond

func (c *cli) newWatchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Recompile a manifest whenever it or one of its view files changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return c.watch(ctx, args[0], debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long for more changes before recompiling")
	return cmd
}

// watch compiles manifestPath, then recompiles after each burst of changes
// until ctx is done. Compile failures are reported and watching continues.
func (c *cli) watch(ctx context.Context, manifestPath string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Parent directories are watched and events filtered down to files.
	dirs := map[string]bool{}
	files := map[string]bool{}
	track := func() {
		for _, path := range watchTargets(manifestPath) {
			path = filepath.Clean(path)
			files[path] = true
			dir := filepath.Dir(path)
			if dirs[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				c.logger.Warn("watch directory", "dir", dir, "error", err)
				continue
			}
			dirs[dir] = true
		}
	}
	rebuild := func() {
		if err := c.compile(ctx, manifestPath, nil); err != nil {
			fmt.Fprintf(c.errOut, "compile error: %v\n", err)
		}
	}

	track()
	rebuild()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !files[filepath.Clean(event.Name)] {
				continue
			}
			c.logger.Debug("view file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			track()
			rebuild()
		}
	}
}

// watchTargets lists the manifest and, when it loads, its view files
func watchTargets(manifestPath string) []string {
	targets := []string{manifestPath}
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return targets
	}
	return append(targets, manifest.Files()...)
}
