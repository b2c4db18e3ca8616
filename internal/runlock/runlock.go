package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"filesorter/internal/services"
)

// Lock is an acquired destination lock.
type Lock struct {
	mu       sync.Mutex
	path     string
	flock    *flock.Flock
	released bool
}

// PathFor returns the lock file used for destination inside lockDir.
func PathFor(lockDir, destination string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(destination)))
	return filepath.Join(lockDir, "dest-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the exclusive lock for destination without blocking.
func Acquire(lockDir, destination string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "create lock directory", lockDir, err)
	}
	path := PathFor(lockDir, destination)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "open lock file", path, err)
	}
	if !ok {
		return nil, services.Wrap(
			services.ErrLocked,
			"lock",
			"acquire destination lock",
			fmt.Sprintf("another run is organizing into %s", destination),
			nil,
		)
	}
	return &Lock{path: path, flock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return nil
	}
	l.released = true
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
