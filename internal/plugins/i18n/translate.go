package i18n

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// TranslatePage returns a copy of f published under the lang prefix, with
// the language suffix dropped from its name, destination and URL:
//
//	guide.fr.md  guide.fr/index.html  guide.fr/  ->  fr/guide/index.html  fr/guide/
//	index.fr.md  index.fr/index.html  index.fr/  ->  fr/index.html        fr/
//
// f itself is left untouched.
func TranslatePage(f *structure.File, lang, siteDir string) *structure.File {
	t := f.Clone()
	t.Name = strings.TrimSuffix(f.Name, "."+lang)

	indexDest := "index." + lang + "/index.html"
	if f.Name == "index."+lang && (t.DestPath == indexDest || strings.HasSuffix(t.DestPath, "/"+indexDest)) {
		t.DestPath = strings.TrimSuffix(t.DestPath, indexDest) + "index.html"
	} else {
		t.DestPath = renameSegment(t.DestPath, f.Name, t.Name)
	}
	t.DestPath = lang + "/" + t.DestPath
	t.AbsDestPath = filepath.Join(siteDir, filepath.FromSlash(t.DestPath))

	t.URL = destURL(t.DestPath, directoryURL(f.URL))
	return t
}

// destURL returns the URL a destination path is served at.
func destURL(dest string, dirURLs bool) string {
	if dirURLs && path.Base(dest) == "index.html" {
		dest = strings.TrimSuffix(dest, "index.html")
	}
	return structure.QuoteURL(dest)
}

func directoryURL(u string) bool {
	return u == "." || strings.HasSuffix(u, "/")
}

// renameSegment renames the last path segment named oldName, with or
// without an extension.
func renameSegment(p, oldName, newName string) string {
	segs := strings.Split(p, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] == oldName {
			segs[i] = newName
			break
		}
		if ext := path.Ext(segs[i]); ext != "" && strings.TrimSuffix(segs[i], ext) == oldName {
			segs[i] = newName + ext
			break
		}
	}
	return strings.Join(segs, "/")
}
