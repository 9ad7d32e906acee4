package ports

// Watcher monitors a fixed set of input files (documents and the deny-list)
// and reports when any of them changes. The adapter (fsnotify) watches the
// parent directories so that editors which replace files on save are still
// observed, and filters events down to the requested paths.
type Watcher interface {
	// Watch starts monitoring paths. onChange is called with the absolute
	// path of each changed file. The callback may be invoked from any
	// goroutine. Returns an error if a parent directory cannot be watched.
	Watch(paths []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
