// Package structure holds the site object model: source files, the pages
// rendered from them, and the navigation tree linking those pages.
package structure

import (
	"path"
	"path/filepath"
	"strings"
)

var markdownExtensions = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
	".mkd":      {},
}

// File is one file discovered under the docs directory.
type File struct {
	// SrcPath is the slash-separated path relative to the docs directory.
	SrcPath    string
	AbsSrcPath string
	// DestPath is the slash-separated output path relative to the site directory.
	DestPath    string
	AbsDestPath string
	URL         string
	// Name is the file stem: "guide.fr" for "guide.fr.md".
	Name             string
	UseDirectoryURLs bool

	// Page is bound when a navigation tree is built over the file.
	Page *Page
}

// NewFile describes srcPath (relative to srcDir) and computes where it is written under destDir.
func NewFile(srcPath, srcDir, destDir string, useDirectoryURLs bool) *File {
	srcPath = filepath.ToSlash(srcPath)
	f := &File{
		SrcPath:          srcPath,
		AbsSrcPath:       filepath.Join(srcDir, filepath.FromSlash(srcPath)),
		Name:             stem(srcPath),
		UseDirectoryURLs: useDirectoryURLs,
	}
	f.DestPath = f.computeDestPath()
	f.AbsDestPath = filepath.Join(destDir, filepath.FromSlash(f.DestPath))
	f.URL = f.computeURL()
	return f
}

func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// IsDocumentationPage reports whether the file is Markdown content.
func (f *File) IsDocumentationPage() bool {
	_, ok := markdownExtensions[strings.ToLower(path.Ext(f.SrcPath))]
	return ok
}

// IsStatic reports whether the file is copied verbatim (stylesheets, scripts, images).
func (f *File) IsStatic() bool {
	return !f.IsDocumentationPage()
}

// IsIndex reports whether the page is its directory's index.
func (f *File) IsIndex() bool {
	return f.Name == "index" || strings.EqualFold(f.Name, "readme")
}

func (f *File) computeDestPath() string {
	if !f.IsDocumentationPage() {
		return f.SrcPath
	}
	dir := path.Dir(f.SrcPath)
	switch {
	case f.IsIndex():
		return path.Join(dir, "index.html")
	case f.UseDirectoryURLs:
		return path.Join(dir, f.Name, "index.html")
	default:
		return path.Join(dir, f.Name+".html")
	}
}

func (f *File) computeURL() string {
	u := f.DestPath
	if f.IsDocumentationPage() && f.UseDirectoryURLs {
		dir, file := path.Split(u)
		if file == "index.html" {
			u = dir
		}
	}
	if u == "" {
		u = "."
	}
	return QuoteURL(u)
}

// Clone returns an independent copy of the file's fields. The bound Page is not carried over.
func (f *File) Clone() *File {
	return &File{
		SrcPath:          f.SrcPath,
		AbsSrcPath:       f.AbsSrcPath,
		DestPath:         f.DestPath,
		AbsDestPath:      f.AbsDestPath,
		URL:              f.URL,
		Name:             f.Name,
		UseDirectoryURLs: f.UseDirectoryURLs,
	}
}

// URLRelativeTo returns the file's URL relative to another file's URL.
func (f *File) URLRelativeTo(other *File) string {
	return RelativeURL(f.URL, other.URL)
}

func (f *File) String() string {
	return f.SrcPath
}
