// template.go resolves the named slots of a feature chunk template. A slot is written
// as a "$" sigil immediately followed by the slot name (for example "$UV" or "$CH").
// Resolution is one left-to-right scan: a sigil that starts a known slot is replaced
// by its bound value, or removed when the slot is unbound; any other "$" is copied
// through unchanged.
package shader

import "strings"

// Slot names a substitution point in a chunk template.
type Slot string

const (
	// SlotUV is the UV coordinate expression.
	SlotUV Slot = "UV"

	// SlotChannel is the texel channel mask, e.g. "rgb".
	SlotChannel Slot = "CH"

	// SlotSampler is the sampler uniform name.
	SlotSampler Slot = "SAMPLER"

	// SlotDecode is the name of the texel decode function.
	SlotDecode Slot = "DECODE"

	// SlotVertexColor is the vertex color channel mask.
	SlotVertexColor Slot = "VC"

	// SlotDetailMode is the detail blend mode suffix.
	SlotDetailMode Slot = "DETAILMODE"

	// SlotLegacySample is the deprecated sampling macro name.
	SlotLegacySample Slot = "texture2DSAMPLE"
)

var knownSlots = map[Slot]struct{}{
	SlotUV:           {},
	SlotChannel:      {},
	SlotSampler:      {},
	SlotDecode:       {},
	SlotVertexColor:  {},
	SlotDetailMode:   {},
	SlotLegacySample: {},
}

// Slots binds slot names to substitution values for one template resolution.
type Slots map[Slot]string

// Resolve substitutes every slot in src in a single pass.
//
// Parameters:
//   - src: the template source
//   - slots: the bound slot values
//
// Returns:
//   - string: the resolved source
func Resolve(src string, slots Slots) string {
	if strings.IndexByte(src, '$') < 0 {
		return src
	}
	var sb strings.Builder
	sb.Grow(len(src))
	for i := 0; i < len(src); {
		slot, end, ok := slotAt(src, i)
		if !ok {
			sb.WriteByte(src[i])
			i++
			continue
		}
		sb.WriteString(slots[slot])
		i = end
	}
	return sb.String()
}

// Uses reports whether src references slot.
//
// Parameters:
//   - src: the template source
//   - slot: the slot to look for
//
// Returns:
//   - bool: true if src contains the slot
func Uses(src string, slot Slot) bool {
	for i := strings.IndexByte(src, '$'); i >= 0; {
		if s, end, ok := slotAt(src, i); ok {
			if s == slot {
				return true
			}
			i = end
		} else {
			i++
		}
		next := strings.IndexByte(src[i:], '$')
		if next < 0 {
			break
		}
		i += next
	}
	return false
}

// slotAt reads a known slot starting at the sigil at src[i]. The slot name is the
// longest identifier following the sigil.
func slotAt(src string, i int) (Slot, int, bool) {
	if src[i] != '$' {
		return "", i, false
	}
	end := i + 1
	for end < len(src) && isIdentByte(src[end]) {
		end++
	}
	slot := Slot(src[i+1 : end])
	if _, ok := knownSlots[slot]; !ok {
		return "", i, false
	}
	return slot, end, true
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
