// Package hashutil computes content checksums used to skip rewriting
// files whose content did not change.
package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Checksum returns the SHA256 checksum of data as "sha256:<hex>".
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// FileChecksum returns the checksum of the file at path in the same form
// as Checksum.
func FileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// Unchanged reports whether the file at path already holds data. A
// missing or unreadable file counts as changed.
func Unchanged(path string, data []byte) bool {
	sum, err := FileChecksum(path)
	return err == nil && sum == Checksum(data)
}
