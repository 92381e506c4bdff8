package random

import "sync"

// Locked serializes access to a Source shared between goroutines. The draw
// sequence is still shared, so the interleaving of callers decides which
// values each one sees.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Float64 implements Source.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Intn implements Source.
func (l *Locked) Intn(n int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}
