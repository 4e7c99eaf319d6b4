package build

import (
	"io"
	"os"
	"path/filepath"
)

func copyFile(src, dest string) error {
	in, err := os.Open(src) //nolint:gosec // discovered under the docs directory
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil { //nolint:gosec // published site tree
		return err
	}
	out, err := os.Create(dest) //nolint:gosec // computed under the site directory
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
