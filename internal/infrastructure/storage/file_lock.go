package storage

import "sync"

// pathLocks serialises writers inside one process, including separate
// FileStores opened on the same path.
var pathLocks sync.Map

func processLock(path string) *sync.Mutex {
	mu, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
