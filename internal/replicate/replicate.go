// Package replicate copies an artifact to a pre-mounted network share.
// Mount management itself is an external concern; this package only
// validates that the destination is healthy before writing into it, so a
// run never silently fills an unmounted local placeholder directory.
package replicate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/moby/sys/mountinfo"
	"golang.org/x/sys/unix"

	"github.com/dailysky/apodrelay/internal/domain"
)

// Logger is the minimal logging interface needed by the sink.
type Logger interface {
	Info(string, ...interface{})
	Debug(string, ...interface{})
}

// Sentinel errors for the ordered precondition checks. Each failure is
// fatal to the run and distinct for diagnostics.
var (
	ErrSourceMissing = errors.New("source artifact missing or not a regular file")
	ErrMountMissing  = errors.New("mount point does not exist or is not a directory")
	ErrNotMounted    = errors.New("mount point is not an active mount")
	ErrNotWritable   = errors.New("mount point is not writable")
)

// mounted reports whether path is an active mount point. A package variable
// so pipeline and sink tests can simulate an unmounted share.
var mounted = func(path string) (bool, error) {
	return mountinfo.Mounted(path)
}

// CheckMount validates the destination: it must exist, be a directory, be
// an active mount (POSIX targets), and be writable by this process.
// Shared by the sink preconditions and the --check diagnostics.
func CheckMount(mountPoint string) error {
	fi, err := os.Stat(mountPoint)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrMountMissing, mountPoint)
	}
	if runtime.GOOS != "windows" {
		ok, err := mounted(mountPoint)
		if err != nil {
			return fmt.Errorf("%w: %s (%v)", ErrNotMounted, mountPoint, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotMounted, mountPoint)
		}
	}
	if err := unix.Access(mountPoint, unix.W_OK); err != nil {
		return fmt.Errorf("%w: %s", ErrNotWritable, mountPoint)
	}
	return nil
}

// Replicate copies the artifact byte-for-byte to mountPoint/{basename},
// overwriting any existing file of the same name, after the ordered
// precondition checks pass. Any copy-time I/O error is fatal.
func Replicate(art *domain.Artifact, mountPoint string, log Logger) (*domain.Receipt, error) {
	fi, err := os.Stat(art.Path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, art.Path)
	}

	if err := CheckMount(mountPoint); err != nil {
		return nil, err
	}

	dest := filepath.Join(mountPoint, filepath.Base(art.Path))
	log.Info("Copying %s -> %s", filepath.Base(art.Path), dest)
	if err := copyFile(art.Path, dest); err != nil {
		return nil, fmt.Errorf("copy to share: %w", err)
	}

	log.Debug("Replicated %d bytes", fi.Size())
	return &domain.Receipt{Destination: dest, Source: art.Path}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
