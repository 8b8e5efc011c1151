package storage

import (
	"io"
	"sync"
	"time"

	"github.com/shashiranjanraj/kashvi-store/config"
	"github.com/shashiranjanraj/kashvi-store/pkg/logger"
)

var (
	mu      sync.RWMutex
	disks   = map[string]Disk{}
	primary = "local"
)

// Connect boots the configured disks. The local disk always exists; the s3
// disk joins when S3_BUCKET is set. STORAGE_DISK picks which one the
// package-level helpers and Default use, falling back to local when the
// chosen disk failed to boot.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	disks["local"] = newLocalDiskFromConfig()

	if config.StorageS3Bucket() != "" {
		s3d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = s3d
		}
	}

	primary = config.StorageDisk()
	if _, ok := disks[primary]; !ok {
		primary = "local"
	}
}

// Use returns a disk by name, nil when unknown.
func Use(name string) Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[name]
}

// Default returns the disk selected by STORAGE_DISK.
func Default() Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[primary]
}

// RegisterDisk installs a custom disk, mainly for tests.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

// The helpers below operate on the default disk.

func Put(path string, content []byte) error        { return Default().Put(path, content) }
func PutStream(path string, r io.Reader) error     { return Default().PutStream(path, r) }
func Get(path string) ([]byte, error)              { return Default().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return Default().GetStream(path) }
func Exists(path string) bool                      { return Default().Exists(path) }
func Delete(path string) error                     { return Default().Delete(path) }
func URL(path string) string                       { return Default().URL(path) }
func Size(path string) (int64, error)              { return Default().Size(path) }
func LastModified(path string) (time.Time, error)  { return Default().LastModified(path) }
func Files(directory string) ([]string, error)     { return Default().Files(directory) }
func MakeDirectory(path string) error              { return Default().MakeDirectory(path) }
