package shader

import "strings"

// ChunkBuilder accumulates shader source fragments. Every fragment is terminated with
// exactly one newline if it lacks one, so two fragments never share a line.
// The zero value is ready to use.
type ChunkBuilder struct {
	code string
}

// Append adds fragments at the end, keeping their order.
//
// Parameters:
//   - fragments: source fragments to add
func (b *ChunkBuilder) Append(fragments ...string) {
	b.code += joinFragments(fragments)
}

// Prepend adds fragments at the start, keeping their order.
//
// Parameters:
//   - fragments: source fragments to add
func (b *ChunkBuilder) Prepend(fragments ...string) {
	b.code = joinFragments(fragments) + b.code
}

// Code returns the accumulated source.
func (b *ChunkBuilder) Code() string {
	return b.code
}

// Section returns an immutable snapshot of the accumulated source.
func (b *ChunkBuilder) Section() Section {
	return Section{code: b.code}
}

// Section is an immutable piece of generated source. Assembly steps return sections
// which are composed in a fixed order once every step has run.
type Section struct {
	code string
}

// NewSection builds a Section from fragments using the ChunkBuilder newline rule.
//
// Parameters:
//   - fragments: source fragments, in order
//
// Returns:
//   - Section: the composed section
func NewSection(fragments ...string) Section {
	return Section{code: joinFragments(fragments)}
}

// Then returns a new Section holding s followed by others.
//
// Parameters:
//   - others: sections to place after s, in order
//
// Returns:
//   - Section: the concatenation
func (s Section) Then(others ...Section) Section {
	var sb strings.Builder
	sb.WriteString(s.code)
	for _, o := range others {
		sb.WriteString(o.code)
	}
	return Section{code: sb.String()}
}

// Contains reports whether the section source contains substr.
func (s Section) Contains(substr string) bool {
	return strings.Contains(s.code, substr)
}

// IsEmpty reports whether the section holds no source.
func (s Section) IsEmpty() bool {
	return s.code == ""
}

func (s Section) String() string {
	return s.code
}

func joinFragments(fragments []string) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f)
		if !strings.HasSuffix(f, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
