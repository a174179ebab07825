package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// newWatchCmd creates the "watch" subcommand for re-synthesizing on config changes.
func newWatchCmd() *cobra.Command {
	var (
		configFile   string
		debounce     time.Duration
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-synthesize on config file changes",
		Long: `Watch monitors the stack config file and re-synthesizes on every change.

The watch command:
- Monitors the config file for changes
- Re-synthesizes the template on each change
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    vecstack watch -c stack.yaml
    vecstack watch -c stack.yaml -o template.json
    vecstack watch -c stack.yaml --debounce 1s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(configFile, watchOptions{
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "stack.yaml", "Stack config file")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

type watchOptions struct {
	debounce     time.Duration
	outputFormat string
	outputFile   string
}

// runWatch monitors the config file and re-synthesizes on changes.
func runWatch(configFile string, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a direct file watch.
	absPath, err := filepath.Abs(configFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}
	fmt.Printf("Watching: %s\n", absPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial synth...")
	runSynthQuiet(configFile, opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Debounce: reset timer on each change.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, re-synthesizing...\n", time.Now().Format("15:04:05"))
			runSynthQuiet(configFile, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// runSynthQuiet synthesizes without aborting the watch loop on failure.
func runSynthQuiet(configFile string, opts watchOptions) {
	if err := runSynth(configFile, opts.outputFormat, opts.outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Synth failed: %v\n", err)
		return
	}
	if opts.outputFile != "" {
		fmt.Printf("Wrote %s\n", opts.outputFile)
	}
}
