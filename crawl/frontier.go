package crawl

import "sync"

// Frontier is a FIFO crawl queue with exact-match deduplication. A URL can
// be queued at most once over the frontier's lifetime: Push rejects
// anything previously queued, whether it is still pending or already
// popped. URLs are compared as exact strings; no canonicalization beyond
// what link extraction already did.
//
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	queue []string
	seen  map[string]struct{}
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: make(map[string]struct{}),
	}
}

// Push adds a URL to the back of the queue.
// Returns false if the URL has already been queued.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has ever been queued.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[url]
	return ok
}
