package build

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docbabel/internal/config"
	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// Discover lists every file under the docs directory, skipping hidden files
// and directories and the site directory when it is nested in the docs.
// Files are ordered by directory with each directory's index page first.
func Discover(cfg *config.Config) (*structure.Files, error) {
	files := structure.NewFiles()
	siteDir, _ := filepath.Abs(cfg.SiteDir)

	err := filepath.WalkDir(cfg.DocsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == cfg.DocsDir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == siteDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(cfg.DocsDir, path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDiscovery, err)
		}
		f := structure.NewFile(rel, cfg.DocsDir, cfg.SiteDir, cfg.UseDirectoryURLs)
		files.Append(f)
		slog.Debug("Discovered file", logfields.Path(f.SrcPath), logfields.URL(f.URL))
		return nil
	})
	if err != nil {
		return nil, derrors.DiscoveryError(cfg.DocsDir, err)
	}

	files.SortDiscovered()
	return files, nil
}
