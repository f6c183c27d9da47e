package driver

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// atomicWrite replaces path's contents with data without ever leaving a
// half-written file behind: write to a uuid-suffixed sibling temp file,
// fsync isn't attempted (the teacher's own index-persist path skips it
// too), then rename over the original, which POSIX guarantees is atomic
// within one filesystem.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
