package open

import (
	"fmt"
	"os"
	"path/filepath"

	acl "github.com/hectane/go-acl"
)

// WriteFileSafely replaces the content of path with content.
//
// The file is accessible only by the current user. The previous content is kept
// at path + ".backup" until the new content is written completely.
func WriteFileSafely(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return err
	}

	bkpath := path + ".backup"
	previous, err := os.ReadFile(path)
	switch {
	case err == nil:
		bk, err := NewSafeFile(bkpath)
		if err != nil {
			return err
		}
		_, err = bk.Write(previous)
		bk.Close()
		if err != nil {
			return err
		}
		// an existing file may have loose permission.
		if err := acl.Chmod(path, os.FileMode(0600)); err != nil {
			return err
		}
	case os.IsNotExist(err):
		// nothing to back up.
	case os.IsPermission(err):
		return fmt.Errorf("no permission to read file at %s: %w", path, err)
	default:
		return err
	}

	f, err := NewSafeFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("%w (previous content is at %s)", err, bkpath)
	}
	os.Remove(bkpath)
	return nil
}
