package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FSHash computes one hex-encoded SHA-256 over the named files of fsys.
// Files are visited in name order and each contributes its name and content,
// so renaming a file changes the hash.
func FSHash(fsys fs.FS, names []string) (string, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, name := range sorted {
		f, err := fsys.Open(name)
		if err != nil {
			return "", fmt.Errorf("open %s for hash: %w", name, err)
		}
		h.Write([]byte(name))
		h.Write([]byte{0})
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("hash %s: %w", name, err)
		}
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
