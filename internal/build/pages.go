package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/frontmatter"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/markdown"
	"git.home.luguber.info/inful/docbabel/internal/structure"
	"git.home.luguber.info/inful/docbabel/internal/theme"
)

// PopulatePage implements plugin.Host. It reads the page source, decodes
// its frontmatter and renders the Markdown body, resolving links to other
// sources against files. The title comes from the `title` frontmatter
// field, else the first level-one heading, else the nav entry or file name.
func (b *Builder) PopulatePage(page *structure.Page, files *structure.Files) error {
	src, err := os.ReadFile(page.File.AbsSrcPath)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read page source").
			WithContext("path", page.File.AbsSrcPath)
	}
	meta, body, err := frontmatter.Parse(src)
	if err != nil {
		return derrors.RenderError(page.File.SrcPath, err)
	}
	res, err := markdown.Render(body, markdown.Options{
		ResolveLink: markdown.PageLinkResolver(page.File, files),
	})
	if err != nil {
		return derrors.RenderError(page.File.SrcPath, fmt.Errorf("%w: %w", ErrRender, err))
	}

	page.Meta = meta
	page.Markdown = string(body)
	page.Content = res.HTML
	page.TOC = res.TOC
	switch title := frontmatter.String(meta, "title"); {
	case title != "":
		page.Title = title
	case res.Title != "" && page.Title == page.DefaultTitle():
		page.Title = res.Title
	}
	return nil
}

// BuildPage implements plugin.Host. It renders a populated page with the
// theme, after the page_context event, and writes it to its destination.
func (b *Builder) BuildPage(ctx context.Context, page *structure.Page, _ *structure.Files, nav *structure.Navigation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tctx, err := b.plugins.RunPageContext(theme.NewContext(b.cfg, page, nav), page, b.cfg, nav)
	if err != nil {
		return err
	}
	out, err := b.env.Render(tctx)
	if err != nil {
		return derrors.RenderError(page.File.SrcPath, fmt.Errorf("%w: %w", ErrRender, err))
	}

	dest := page.File.AbsDestPath
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil { //nolint:gosec // published site tree
		return derrors.WriteError(dest, err)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil { //nolint:gosec // published site tree
		return derrors.WriteError(dest, err)
	}
	b.pagesWritten++
	b.logger.Debug("Page written", logfields.Page(page.File.SrcPath), logfields.URL(page.URL()))
	return nil
}
