package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and scan PDFs as they arrive",
	Long: `Watch monitors a directory for new or updated PDF files, scans each
one, and persists the results to the configured store. Rapid write
bursts (network copies, scanner spools) are debounced so a file is
scanned once, after it settles.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", 2*time.Second, "settle time before scanning a changed file")
	watchCmd.Flags().Bool("initial", false, "also scan PDFs already present in the directory")
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	dir := args[0]
	debounce, _ := cmd.Flags().GetDuration("debounce")
	initial, _ := cmd.Flags().GetBool("initial")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanOne := func(path string) {
		log.Info("scanning", "file", path)
		result, err := scanFile(ctx, path, log)
		if err != nil {
			log.Error("scan failed", "file", path, "error", err)
			return
		}
		if storePath := viper.GetString("store"); storePath != "" {
			if err := persist(ctx, storePath, result); err != nil {
				log.Error("persist failed", "file", path, "error", err)
				return
			}
		}
		log.Info("scan finished", "file", path, "scan", result.ScanID,
			"warnings", len(result.Warnings))
	}

	if initial {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() && isPDF(e.Name()) {
				scanOne(filepath.Join(dir, e.Name()))
			}
		}
	}

	log.Info("watching", "dir", dir, "debounce", debounce)

	// Coalesce event bursts per file; the timer resets on every event so
	// a file is scanned only after it stops changing.
	var timer *time.Timer
	pending := make(map[string]struct{})
	flush := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPDF(event.Name) || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case flush <- struct{}{}:
				default:
				}
			})
		case <-flush:
			for path := range pending {
				delete(pending, path)
				if _, err := os.Stat(path); err != nil {
					continue // renamed away before the debounce fired
				}
				scanOne(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		}
	}
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
