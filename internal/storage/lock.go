package storage

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// LockFile is the lock file name inside a locked directory.
const LockFile = ".lock"

// FileLock provides exclusive file-based locking using flock.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created if it doesn't exist.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock acquires an exclusive lock on the file.
// Blocks until the lock is acquired.
func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return errors.Wrapf(err, "open lock %s", l.path)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return errors.Wrapf(err, "lock %s", l.path)
	}
	l.file = f
	return nil
}

// Unlock releases the lock and closes the file. Unlocking a lock that is not
// held is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		f.Close()
		return errors.Wrapf(err, "unlock %s", l.path)
	}
	return f.Close()
}

// LockDir takes the exclusive lock of dir, creating dir if needed. The
// returned function releases it.
func LockDir(dir string) (unlock func() error, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}
	l := NewFileLock(filepath.Join(dir, LockFile))
	if err := l.Lock(); err != nil {
		return nil, err
	}
	return l.Unlock, nil
}
