package structure

import (
	"path"
	"slices"
	"strings"
)

// Files is an ordered collection of discovered files.
type Files struct {
	files []*File
}

// NewFiles wraps files in a collection, keeping their order.
func NewFiles(files ...*File) *Files {
	return &Files{files: slices.Clone(files)}
}

// All returns the files in order. The slice must not be modified.
func (fs *Files) All() []*File {
	if fs == nil {
		return nil
	}
	return fs.files
}

// Len returns the number of files.
func (fs *Files) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.files)
}

// Append adds a file to the end of the collection.
func (fs *Files) Append(f *File) {
	fs.files = append(fs.files, f)
}

// Get returns the file with the given source path.
func (fs *Files) Get(srcPath string) (*File, bool) {
	for _, f := range fs.All() {
		if f.SrcPath == srcPath {
			return f, true
		}
	}
	return nil, false
}

// Contains reports whether f is a member of the collection.
func (fs *Files) Contains(f *File) bool {
	return slices.Contains(fs.All(), f)
}

// DocumentationPages returns the Markdown pages in order.
func (fs *Files) DocumentationPages() []*File {
	var out []*File
	for _, f := range fs.All() {
		if f.IsDocumentationPage() {
			out = append(out, f)
		}
	}
	return out
}

// StaticFiles returns the non-page files in order.
func (fs *Files) StaticFiles() []*File {
	var out []*File
	for _, f := range fs.All() {
		if f.IsStatic() {
			out = append(out, f)
		}
	}
	return out
}

// SortStableBy reorders the collection by ascending key, keeping the
// relative order of files with equal keys.
func (fs *Files) SortStableBy(key func(*File) int) {
	slices.SortStableFunc(fs.files, func(a, b *File) int {
		return key(a) - key(b)
	})
}

// SortDiscovered orders freshly discovered files: by directory, with each
// directory's index page first and the remaining files alphabetically.
func (fs *Files) SortDiscovered() {
	slices.SortStableFunc(fs.files, func(a, b *File) int {
		da, db := path.Dir(a.SrcPath), path.Dir(b.SrcPath)
		if da != db {
			return strings.Compare(da, db)
		}
		ia, ib := a.IsIndex() && a.IsDocumentationPage(), b.IsIndex() && b.IsDocumentationPage()
		if ia != ib {
			if ia {
				return -1
			}
			return 1
		}
		return strings.Compare(a.SrcPath, b.SrcPath)
	})
}
