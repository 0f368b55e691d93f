// Package mempool provides the runtime's fixed-size working memory pool.
// The pool is one allocation split into equal blocks; callers lease a block
// for the duration of a call and must release it on every exit path.
package mempool

import (
	"errors"
	"fmt"
	"sync"
)

const (
	// DefaultSize is the pool size used when none is configured (16 MiB).
	DefaultSize = 16 << 20
	// DefaultBlockSize is the lease granularity (64 KiB).
	DefaultBlockSize = 64 << 10
)

var (
	// ErrExhausted: every block is leased.
	ErrExhausted = errors.New("mempool: no free blocks")
	// ErrReleased: the pool has been released.
	ErrReleased = errors.New("mempool: pool released")
	// ErrTooLarge: the request exceeds the block size.
	ErrTooLarge = errors.New("mempool: request exceeds block size")
)

// IsAccessError reports whether err is a lease failure.
func IsAccessError(err error) bool {
	return errors.Is(err, ErrExhausted) || errors.Is(err, ErrReleased) || errors.Is(err, ErrTooLarge)
}

// Pool is safe for concurrent use.
type Pool struct {
	mu        sync.Mutex
	buf       []byte
	blockSize int
	free      []int // indices of free blocks, used as a stack
	released  bool
}

// New allocates a pool of size bytes split into blockSize blocks. size is
// rounded down to a whole number of blocks.
func New(size, blockSize int) (*Pool, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("mempool: invalid block size %d", blockSize)
	}
	if size < blockSize {
		return nil, fmt.Errorf("mempool: size %d smaller than block size %d", size, blockSize)
	}
	n := size / blockSize
	p := &Pool{
		buf:       make([]byte, n*blockSize),
		blockSize: blockSize,
		free:      make([]int, n),
	}
	for i := range p.free {
		p.free[i] = n - 1 - i
	}
	return p, nil
}

// Size is the pool capacity in bytes.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

func (p *Pool) BlockSize() int { return p.blockSize }

// Available is the number of bytes not currently leased.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free) * p.blockSize
}

// Lease is a borrowed block. Bytes is only valid until Release.
type Lease struct {
	Bytes []byte
	once  sync.Once
	pool  *Pool
	index int
}

// Release returns the block. Safe to call more than once.
func (l *Lease) Release() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		l.Bytes = nil
		l.pool.put(l.index)
	})
}

// Borrow leases a block and returns the first n bytes of it, zeroed.
func (p *Pool) Borrow(n int) (*Lease, error) {
	if p == nil {
		return nil, ErrReleased
	}
	if n < 0 || n > p.blockSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, n, p.blockSize)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return nil, ErrReleased
	}
	if len(p.free) == 0 {
		return nil, ErrExhausted
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	off := idx * p.blockSize
	b := p.buf[off : off+n : off+n]
	clear(b)
	return &Lease{Bytes: b, pool: p, index: idx}, nil
}

func (p *Pool) put(idx int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	p.free = append(p.free, idx)
}

// Compact zeroes every free block and returns the number of bytes scrubbed.
func (p *Pool) Compact() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return 0
	}
	for _, idx := range p.free {
		off := idx * p.blockSize
		clear(p.buf[off : off+p.blockSize])
	}
	return len(p.free) * p.blockSize
}

// Release drops the backing allocation. Outstanding leases keep their
// slices alive until released; further Borrow calls fail with ErrReleased.
func (p *Pool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released = true
	p.buf = nil
	p.free = nil
}
