package shader

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-variant/common"
	"github.com/Carmen-Shannon/oxy-variant/engine/debug"
)

//go:embed assets/*.glsl
var chunkAssets embed.FS

// builtinChunks maps chunk names (asset file names without extension) to their raw source.
var builtinChunks = sync.OnceValue(func() map[string]string {
	entries, err := chunkAssets.ReadDir("assets")
	if err != nil {
		panic(fmt.Sprintf("shader: failed to read embedded chunks: %v", err))
	}
	chunks := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := chunkAssets.ReadFile(path.Join("assets", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("shader: failed to read embedded chunk %q: %v", e.Name(), err))
		}
		chunks[strings.TrimSuffix(e.Name(), ".glsl")] = string(data)
	}
	return chunks
})

// ChunkLibrary looks up named shader chunks. Per-material overrides take precedence
// over the built-in chunks. Include annotations inside chunks are expanded on lookup.
type ChunkLibrary struct {
	overrides map[string]string
	pp        PreProcessor
}

// NewChunkLibrary creates a ChunkLibrary over the built-in chunks with the given
// overrides applied. The overrides map is read, never modified.
//
// Parameters:
//   - overrides: chunk sources keyed by chunk name, may be nil
//
// Returns:
//   - *ChunkLibrary: the library
func NewChunkLibrary(overrides map[string]string) *ChunkLibrary {
	c := &ChunkLibrary{overrides: overrides}
	c.pp = NewPreProcessor(c.raw)
	return c
}

// Chunk returns the named chunk with includes expanded. A name that is neither
// overridden nor built in yields an empty string, and so does a chunk whose includes
// cannot be expanded. The latter is reported once through the debug channel.
//
// Parameters:
//   - name: the chunk name, e.g. "diffusePS"
//
// Returns:
//   - string: the chunk source
func (c *ChunkLibrary) Chunk(name string) string {
	src, ok := c.raw(name)
	if !ok {
		return ""
	}
	out, err := c.pp.Process(src)
	if err != nil {
		debug.WarnOnce("Shader chunk %q could not be expanded: %v", name, err)
		return ""
	}
	return out
}

// Has reports whether a chunk with the given name exists.
func (c *ChunkLibrary) Has(name string) bool {
	_, ok := c.raw(name)
	return ok
}

// BuiltinNames returns the names of every built-in chunk in sorted order.
func BuiltinNames() []string {
	return common.SortedKeys(builtinChunks())
}

func (c *ChunkLibrary) raw(name string) (string, bool) {
	if src, ok := c.overrides[name]; ok {
		return src, true
	}
	src, ok := builtinChunks()[name]
	return src, ok
}
