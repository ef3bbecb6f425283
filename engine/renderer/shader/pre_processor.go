// pre_processor.go implements the Oxy chunk pre-processor. Chunk sources may pull in
// other chunks with a single-line annotation:
//
//	//@oxy:include <chunk_name>
//
// The annotation line is replaced by the named chunk, itself pre-processed, so a base
// chunk can be written once and shared by every stage that needs it. Each chunk is
// included at most once per Process call; later includes of the same name expand to
// nothing.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix marks an Oxy annotation inside a line comment.
const annotationPrefix = "//@oxy:"

// annotationTypeInclude is the only annotation the chunk pre-processor understands.
const annotationTypeInclude = "include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	lookup func(name string) (string, bool)
}

// PreProcessor expands //@oxy:include annotations in chunk source.
type PreProcessor interface {
	// Process expands every include annotation in source.
	//
	// Parameters:
	//   - source: the chunk source to expand
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error if an annotation is malformed, names an unknown chunk, or
	//     forms an include cycle
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor that resolves include names with lookup.
//
// Parameters:
//   - lookup: returns the raw source of a named chunk and whether it exists
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor(lookup func(name string) (string, bool)) PreProcessor {
	return &preProcessor{lookup: lookup}
}

func (p *preProcessor) Process(source string) (string, error) {
	return p.expand(source, map[string]bool{}, nil)
}

func (p *preProcessor) expand(source string, included map[string]bool, stack []string) (string, error) {
	if !strings.Contains(source, annotationPrefix) {
		return source, nil
	}
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		name, ok, err := parseInclude(line, i+1)
		if err != nil {
			return "", err
		}
		if !ok {
			out = append(out, line)
			continue
		}
		for _, s := range stack {
			if s == name {
				return "", fmt.Errorf("line %d: include cycle %s -> %s", i+1, strings.Join(stack, " -> "), name)
			}
		}
		if included[name] {
			continue
		}
		src, found := p.lookup(name)
		if !found {
			return "", fmt.Errorf("line %d: unknown chunk %q", i+1, name)
		}
		included[name] = true
		expanded, err := p.expand(src, included, append(stack, name))
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, strings.TrimSuffix(expanded, "\n"))
	}
	return strings.Join(out, "\n"), nil
}

// parseInclude recognizes an include annotation line and returns the chunk name.
func parseInclude(line string, lineNum int) (string, bool, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return "", false, nil
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false, fmt.Errorf("line %d: empty annotation", lineNum)
	}
	if fields[0] != annotationTypeInclude {
		return "", false, fmt.Errorf("line %d: unknown annotation type %q", lineNum, fields[0])
	}
	if len(fields) != 2 {
		return "", false, fmt.Errorf("line %d: @oxy:include expects 1 argument, got %d", lineNum, len(fields)-1)
	}
	return fields[1], true, nil
}
