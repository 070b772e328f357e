package catalog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yildizm/GefSum/internal/logger"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
)

// excludedDirs are never descended into
var excludedDirs = []string{".git", ".svn", "node_modules"}

// FindGEFFiles walks root recursively and returns every file whose extension
// is .gef in any letter case, sorted by path.
func FindGEFFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, name := range excludedDirs {
				if d.Name() == name {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), parser.Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Scanner indexes directories of GEF files by their XYID position
type Scanner struct {
	opts parser.Options
	log  *logger.Logger
}

// NewScanner creates a scanner. Files are decoded as latin-1 unless opts says otherwise.
func NewScanner(opts parser.Options, log *logger.Logger) *Scanner {
	if opts.Encoding == "" {
		opts.Encoding = parser.EncodingLatin1
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Scanner{opts: opts, log: log.WithComponent("catalog")}
}

// ScanFile reads the position of a single GEF file. The kind is taken from the
// caller since directory layout is more reliable than the file's report code;
// KindNone falls back to the report code and stays KindNone if that is unknown.
func (s *Scanner) ScanFile(path string, kind model.Kind) (model.Investigation, error) {
	// #nosec G304 - path comes from directory scanning or the command line
	file, err := os.Open(path)
	if err != nil {
		return model.Investigation{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	x, y, err := parser.ReadPosition(file, s.opts)
	if err != nil {
		return model.Investigation{}, fmt.Errorf("%s: %w", path, err)
	}

	if kind == model.KindNone {
		kind = s.detectKind(file)
	}
	return model.Investigation{Kind: kind, Filename: path, X: x, Y: y}, nil
}

func (s *Scanner) detectKind(file *os.File) model.Kind {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return model.KindNone
	}
	lines, err := parser.ReadLines(file, s.opts)
	if err != nil {
		return model.KindNone
	}
	kind, err := parser.NewFactory(s.opts).DetectKind(lines)
	if err != nil {
		s.log.Debug("no report code in %s", file.Name())
		return model.KindNone
	}
	return kind
}

// ScanDirectory indexes every GEF file below root as the given kind.
// Unreadable files are logged and skipped.
func (s *Scanner) ScanDirectory(ctx context.Context, root string, kind model.Kind) ([]model.Investigation, error) {
	files, err := FindGEFFiles(root)
	if err != nil {
		return nil, err
	}

	investigations := make([]model.Investigation, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inv, err := s.ScanFile(path, kind)
		if err != nil {
			s.log.WarnWithFields("skipping file", []logger.Field{logger.File(path), logger.Error(err)})
			continue
		}
		investigations = append(investigations, inv)
	}

	s.log.DebugWithFields("directory scanned", []logger.Field{
		logger.F("dir", root), logger.Kind(kind), logger.Count(len(investigations)),
	})
	return investigations, nil
}

// Build scans the CPT and borehole directories concurrently into a new catalog.
// An empty directory name is skipped.
func (s *Scanner) Build(ctx context.Context, cptDir, boreholeDir string) (*Catalog, error) {
	var cpts, boreholes []model.Investigation

	g, ctx := errgroup.WithContext(ctx)
	if cptDir != "" {
		g.Go(func() error {
			var err error
			cpts, err = s.ScanDirectory(ctx, cptDir, model.KindCPT)
			return err
		})
	}
	if boreholeDir != "" {
		g.Go(func() error {
			var err error
			boreholes, err = s.ScanDirectory(ctx, boreholeDir, model.KindBorehole)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := New()
	c.Add(cpts...)
	c.Add(boreholes...)
	return c, nil
}
