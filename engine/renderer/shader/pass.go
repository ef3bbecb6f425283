// pass.go defines the shader pass id space. A pass id is a plain integer: forward,
// forward-HDR, depth and pick are single values, the shadow passes occupy one
// contiguous block indexed by light type and shadow kind, and user passes registered
// through a PassRegistry are allocated after the shadow block.
package shader

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-variant/engine/light"
)

const (
	// PassForward renders lit geometry to a low dynamic range target.
	PassForward = 0

	// PassForwardHDR renders lit geometry to a high dynamic range target.
	PassForwardHDR = 1

	// PassDepth writes linear depth only.
	PassDepth = 2

	// PassPick writes object ids for picking.
	PassPick = 3

	// PassShadow is the first shadow pass id.
	PassShadow = 4

	// ShadowPassCount is the size of the shadow pass block.
	ShadowPassCount = light.ShadowKindCount * light.LightTypeCount

	// PassUserFirst is the first id handed out to user passes.
	PassUserFirst = PassShadow + ShadowPassCount
)

// PassClass is the coarse category of a pass id.
type PassClass int

const (
	PassClassForward PassClass = iota
	PassClassDepth
	PassClassPick
	PassClassShadow
	PassClassUser
)

func (c PassClass) String() string {
	switch c {
	case PassClassForward:
		return "forward"
	case PassClassDepth:
		return "depth"
	case PassClassPick:
		return "pick"
	case PassClassShadow:
		return "shadow"
	case PassClassUser:
		return "user"
	}
	return "unknown"
}

// Classify returns the category of a pass id. Negative ids panic.
//
// Parameters:
//   - pass: the pass id
//
// Returns:
//   - PassClass: the category the id falls into
func Classify(pass int) PassClass {
	switch {
	case pass < 0:
		panic(fmt.Sprintf("shader: invalid pass id %d", pass))
	case pass == PassForward || pass == PassForwardHDR:
		return PassClassForward
	case pass == PassDepth:
		return PassClassDepth
	case pass == PassPick:
		return PassClassPick
	case pass < PassUserFirst:
		return PassClassShadow
	}
	return PassClassUser
}

// IsForwardPass reports whether pass is the forward or forward-HDR pass.
func IsForwardPass(pass int) bool {
	return pass == PassForward || pass == PassForwardHDR
}

// IsShadowPass reports whether pass lies inside the shadow pass block.
func IsShadowPass(pass int) bool {
	return pass >= PassShadow && pass < PassUserFirst
}

// ToLightType decodes the light type of a shadow pass id. Calling it with a non-shadow
// id panics.
//
// Parameters:
//   - pass: a shadow pass id
//
// Returns:
//   - light.LightType: the light type the pass renders shadows for
func ToLightType(pass int) light.LightType {
	mustShadow("ToLightType", pass)
	return light.LightType((pass - PassShadow) / light.ShadowKindCount)
}

// ToShadowKind decodes the shadow kind of a shadow pass id. Calling it with a non-shadow
// id panics.
//
// Parameters:
//   - pass: a shadow pass id
//
// Returns:
//   - light.ShadowKind: the shadow filtering algorithm of the pass
func ToShadowKind(pass int) light.ShadowKind {
	mustShadow("ToShadowKind", pass)
	return light.ShadowKind((pass - PassShadow) % light.ShadowKindCount)
}

// EncodeShadowPass returns the shadow pass id for a light type and shadow kind.
// Out of range inputs produce an id outside the shadow block and panic.
//
// Parameters:
//   - lightType: the light type
//   - kind: the shadow kind
//
// Returns:
//   - int: the shadow pass id
func EncodeShadowPass(lightType light.LightType, kind light.ShadowKind) int {
	if kind < 0 || kind >= light.ShadowKindCount {
		panic(fmt.Sprintf("shader: EncodeShadowPass called with shadow kind %d", kind))
	}
	pass := PassShadow + int(kind) + int(lightType)*light.ShadowKindCount
	mustShadow("EncodeShadowPass", pass)
	return pass
}

// PreprocessorDefine returns the "#define" line that identifies the pass category to
// generated code, newline terminated. User passes have no built-in define and return
// an empty string; use PassRegistry.PreprocessorDefine for those.
//
// Parameters:
//   - pass: the pass id
//
// Returns:
//   - string: the define line, or ""
func PreprocessorDefine(pass int) string {
	switch Classify(pass) {
	case PassClassForward:
		return "#define FORWARD_PASS\n"
	case PassClassDepth:
		return "#define DEPTH_PASS\n"
	case PassClassPick:
		return "#define PICK_PASS\n"
	case PassClassShadow:
		return "#define SHADOW_PASS\n"
	}
	return ""
}

func mustShadow(op string, pass int) {
	if !IsShadowPass(pass) {
		panic(fmt.Sprintf("shader: %s called with non-shadow pass %d", op, pass))
	}
}

// passRegistry is the implementation of the PassRegistry interface.
type passRegistry struct {
	mu     sync.RWMutex
	byName map[string]int
	names  []string
}

// PassRegistry hands out pass ids for named user passes. Ids are allocated after the
// shadow block in registration order, so they never overlap a built-in pass.
// A PassRegistry is safe for concurrent use.
type PassRegistry interface {
	// Register returns the pass id for name, allocating a new id the first time a
	// name is seen. Registering the same name again returns the same id.
	//
	// Parameters:
	//   - name: the user pass name, e.g. "outline"
	//
	// Returns:
	//   - int: the pass id assigned to name
	Register(name string) int

	// Name returns the registered name of a user pass id.
	//
	// Parameters:
	//   - pass: the pass id
	//
	// Returns:
	//   - string: the pass name
	//   - bool: false if pass is not a registered user pass
	Name(pass int) (string, bool)

	// PreprocessorDefine returns the define line for any pass id. Registered user
	// passes produce "#define <NAME>_PASS" with the name upper-cased.
	//
	// Parameters:
	//   - pass: the pass id
	//
	// Returns:
	//   - string: the define line, or "" for an unregistered user pass
	PreprocessorDefine(pass int) string
}

var _ PassRegistry = &passRegistry{}

// NewPassRegistry creates an empty PassRegistry.
//
// Returns:
//   - PassRegistry: a registry with no user passes
func NewPassRegistry() PassRegistry {
	return &passRegistry{byName: make(map[string]int)}
}

func (r *passRegistry) Register(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := PassUserFirst + len(r.names)
	r.byName[name] = id
	r.names = append(r.names, name)
	return id
}

func (r *passRegistry) Name(pass int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := pass - PassUserFirst
	if i < 0 || i >= len(r.names) {
		return "", false
	}
	return r.names[i], true
}

func (r *passRegistry) PreprocessorDefine(pass int) string {
	if Classify(pass) != PassClassUser {
		return PreprocessorDefine(pass)
	}
	name, ok := r.Name(pass)
	if !ok {
		return ""
	}
	return "#define " + strings.ToUpper(name) + "_PASS\n"
}
