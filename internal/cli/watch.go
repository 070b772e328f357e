package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/logger"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/monitor"
	"github.com/yildizm/GefSum/internal/parser"
)

var watchKind string

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Parse GEF files as they appear in a directory",
		Long: `Monitor a directory and its subdirectories and parse every .gef file that
is created or written, printing one summary line per file. Bursts of writes
to the same file are collapsed by the configured debounce. Press Ctrl+C to
stop watching.

Examples:
  gefsum watch ./incoming
  gefsum watch --kind cpt ./sonderingen`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchKind, "kind", "k", "", "investigation kind (auto, cpt, borehole)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := filepath.Clean(args[0])
	if err := validateWatchDir(dir); err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}

	kind, err := resolveKind(watchKind)
	if err != nil {
		return err
	}
	opts, err := parserOptions()
	if err != nil {
		return err
	}

	session, err := newWatchSession(dir, kind, opts, GetGlobalConfig().Watch.Debounce, cmd.OutOrStdout(), newLogger("watch"))
	if err != nil {
		return err
	}
	defer session.close()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %s (Ctrl+C to stop)\n", GetEmoji("watch"), dir)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	err = session.run(ctx)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s", GetEmoji("statistics"), session.stats.Snapshot().Report())
	return err
}

// watchSession parses GEF files reported by fsnotify after a quiet period
type watchSession struct {
	watcher  *fsnotify.Watcher
	kind     model.Kind
	opts     parser.Options
	debounce time.Duration
	out      io.Writer
	log      *logger.Logger
	stats    *monitor.ParseStats
	pending  map[string]struct{}
}

func newWatchSession(dir string, kind model.Kind, opts parser.Options, debounce time.Duration, out io.Writer, log *logger.Logger) (*watchSession, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	s := &watchSession{
		watcher:  watcher,
		kind:     kind,
		opts:     opts,
		debounce: debounce,
		out:      out,
		log:      log,
		stats:    monitor.NewParseStats(),
		pending:  make(map[string]struct{}),
	}
	if err := s.addTree(dir); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// addTree watches dir and every directory below it
func (s *watchSession) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := s.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (s *watchSession) close() {
	if err := s.watcher.Close(); err != nil {
		s.log.Warn("failed to close watcher: %v", err)
	}
}

// run processes events until ctx is done
func (s *watchSession) run(ctx context.Context) error {
	// idle until the first event arms it
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-s.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if s.handleEvent(event) {
				timer.Reset(s.debounce)
			}

		case <-timer.C:
			s.flush()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			s.log.Warn("watcher error: %v", err)
		}
	}
}

// handleEvent queues GEF files that were created or written and starts
// watching new directories. It reports whether anything was queued.
func (s *watchSession) handleEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addTree(event.Name); err != nil {
				s.log.Warn("%v", err)
			}
			return false
		}
	}

	if parser.CheckExtension(event.Name) != nil {
		return false
	}
	s.pending[event.Name] = struct{}{}
	return true
}

// flush parses every queued file in path order and prints a line per file
func (s *watchSession) flush() {
	paths := make([]string, 0, len(s.pending))
	for path := range s.pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	clear(s.pending)

	for _, path := range paths {
		stamp := time.Now().Format("15:04:05")
		record, err := s.stats.Track(func() (model.Record, error) {
			return parser.ParseFile(path, s.kind, s.opts)
		})
		if err != nil {
			s.log.DebugWithFields("parse failed", []logger.Field{logger.File(path), logger.Error(err)})
			fmt.Fprintf(s.out, "[%s] %s %s: %v\n", stamp, GetEmoji("error"), filepath.Base(path), err)
			continue
		}
		logRecord(s.log, record)
		fmt.Fprintf(s.out, "[%s] %s %s\n", stamp, GetKindEmoji(record.Kind()), summaryLine(record))
	}
}

// summaryLine describes a parsed record in one line
func summaryLine(record model.Record) string {
	h := record.Info()
	name := h.Name
	if name == "" {
		name = filepath.Base(h.Filename)
	}

	var detail string
	switch r := record.(type) {
	case *model.CPT:
		detail = fmt.Sprintf("%d samples", r.Len())
		if r.Skipped > 0 {
			detail += fmt.Sprintf(", %d voided", r.Skipped)
		}
	case *model.Borehole:
		detail = fmt.Sprintf("%d layers", len(r.Layers))
	}
	if length, err := record.Length(); err == nil {
		detail += fmt.Sprintf(", %.2f m", length)
	}

	return fmt.Sprintf("%s (%s) at %.2f, %.2f: %s", name, record.Kind(), h.X, h.Y, detail)
}

// validateWatchDir checks that path is an existing directory
func validateWatchDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
