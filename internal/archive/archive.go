// Package archive rolls a log directory into a timestamped zip so field
// captures can be shelved between bring-up sessions.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const stampLayout = "20060102_150405"

// Cleanup zips dir into its parent directory as <name>-<stamp>.zip, with
// the files stored under <name>/ inside the archive, then deletes the
// original directory. On any error the directory is left untouched.
func Cleanup(dir string, now time.Time) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("directory %q not found", dir)
	}

	name := filepath.Base(dir)
	archivePath := filepath.Join(filepath.Dir(dir),
		fmt.Sprintf("%s-%s.zip", name, now.Format(stampLayout)))

	if err := writeZip(archivePath, dir, name); err != nil {
		os.Remove(archivePath)
		return "", fmt.Errorf("failed to archive %s: %w", dir, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return archivePath, fmt.Errorf("archived but failed to remove %s: %w", dir, err)
	}
	return archivePath, nil
}

func writeZip(archivePath, dir, name string) error {
	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(filepath.Join(name, rel)))
		if err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(w, src)
		return err
	})

	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
