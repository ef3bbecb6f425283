package program

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-variant/engine/device"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-variant/engine/renderer/shader"
)

// Generator produces the shader definition for a set of render options.
type Generator func(dev device.Device, opts material.RenderOptions) *shader.Definition

type entry struct {
	key material.Key
	def *shader.Definition
}

type library struct {
	mu       sync.Mutex
	buckets  map[uint32][]entry
	count    int
	hits     uint64
	misses   uint64
	generate Generator

	workers  int
	poolOnce sync.Once
	pool     worker.DynamicWorkerPool
}

// Library caches generated shader definitions by variant key.
// Lookups bucket on the key hash and compare canonical strings, so colliding hashes
// never share a definition.
type Library interface {
	// Get returns the definition for the given options, generating and caching it on a miss.
	//
	// Parameters:
	//   - dev: the device whose capabilities drive generation
	//   - opts: the render options of the variant
	//
	// Returns:
	//   - *shader.Definition: the cached or newly generated definition
	Get(dev device.Device, opts material.RenderOptions) *shader.Definition

	// Precompile generates the definitions for every option set on the worker pool.
	//
	// Parameters:
	//   - dev: the device whose capabilities drive generation
	//   - opts: the variants to generate
	//
	// Returns:
	//   - []*shader.Definition: the definitions in the order of opts
	Precompile(dev device.Device, opts []material.RenderOptions) []*shader.Definition

	// Len returns the number of cached variants.
	//
	// Returns:
	//   - int: the cached variant count
	Len() int

	// Clear drops every cached variant and resets the counters.
	Clear()

	// Hits returns the number of lookups served from the cache.
	//
	// Returns:
	//   - uint64: the hit count
	Hits() uint64

	// Misses returns the number of lookups that generated a definition.
	//
	// Returns:
	//   - uint64: the miss count
	Misses() uint64
}

var _ Library = &library{}

// NewLibrary creates an empty program library.
//
// Parameters:
//   - options: variadic list of LibraryBuilderOption functions to configure the library
//
// Returns:
//   - Library: the new library
func NewLibrary(options ...LibraryBuilderOption) Library {
	l := &library{
		buckets:  make(map[uint32][]entry),
		generate: material.CreateShaderDefinition,
		workers:  runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(l)
	}
	if l.workers < 1 {
		l.workers = 1
	}
	return l
}

func (l *library) Get(dev device.Device, opts material.RenderOptions) *shader.Definition {
	key := material.GenerateKey(&opts)

	l.mu.Lock()
	if def := l.lookup(key); def != nil {
		l.hits++
		l.mu.Unlock()
		return def
	}
	l.mu.Unlock()

	def := l.generate(dev, opts)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.misses++
	if existing := l.lookup(key); existing != nil {
		return existing
	}
	if len(l.buckets[key.Hash]) > 0 {
		log.Printf("[Program] hash collision on %s, keeping %d variants in bucket", key, len(l.buckets[key.Hash])+1)
	}
	l.buckets[key.Hash] = append(l.buckets[key.Hash], entry{key: key, def: def})
	l.count++
	return def
}

func (l *library) lookup(key material.Key) *shader.Definition {
	for _, e := range l.buckets[key.Hash] {
		if e.key.Equal(key) {
			return e.def
		}
	}
	return nil
}

func (l *library) Precompile(dev device.Device, opts []material.RenderOptions) []*shader.Definition {
	out := make([]*shader.Definition, len(opts))
	if len(opts) == 0 {
		return out
	}

	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	})

	var wg sync.WaitGroup
	wg.Add(len(opts))
	for i := range opts {
		idx := i
		l.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				out[idx] = l.Get(dev, opts[idx])
				return nil, nil
			},
		})
	}
	wg.Wait()

	log.Printf("[Program] precompiled %d variants (%d cached)", len(opts), l.Len())
	return out
}

func (l *library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func (l *library) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets = make(map[uint32][]entry)
	l.count = 0
	l.hits = 0
	l.misses = 0
}

func (l *library) Hits() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hits
}

func (l *library) Misses() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.misses
}
