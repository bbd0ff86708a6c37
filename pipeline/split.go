// Package pipeline implements spec §4.6: splitting one REPL input line
// into an ordered list of stages at the top-level (outside quotes)
// operators `|`, `<`, `>`, then running each stage with its standard
// streams wired to the previous stage's output, a redirected file, or
// the interpreter's own defaults.
package pipeline

import (
	"strings"
	"unicode"

	"github.com/mwantia/interp/interperr"
)

// segmentKind classifies one unit produced by scanning a raw line.
type segmentKind int

const (
	segWord segmentKind = iota
	segPipe
	segRedirectIn
	segRedirectOut
)

type segment struct {
	kind segmentKind
	text string // only meaningful for segWord
}

// Stage is one segment of a pipeline (spec §4.6's glossary entry): the
// token vector to dispatch, plus the redirection endpoints that apply
// to this particular stage. Under the default redirect-first precedence
// a `<`/`>` always binds to the first/last stage, but splitPipeFirst
// can lexically land either one on an interior stage instead (see its
// own doc comment), so callers must key off a stage's own InFile/OutFile
// rather than assume position.
type Stage struct {
	Tokens  []string
	InFile  string
	OutFile string
}

// DefaultPrecedence is spec §4.6's "configurable filter-precedence
// string (default begins with '<' or '>')": redirection operators are
// resolved before pipeline splitting, so a `<`/`>` anywhere on the
// line binds to the first/last stage regardless of which `|`-delimited
// word group it lexically sits in. An empty (or non-`<>`-prefixed)
// precedence instead resolves `|` splitting first and then extracts
// each `<file`/`>file` pair inside a stage's own word group as that
// stage's redirection, so a redirect stays on the stage it was written
// in. Neither mode keeps a `<`/`>` as a literal token; one with no
// following word is dropped.
const DefaultPrecedence = "<>"

// Split tokenizes line (spec §4.1 quoting rules apply throughout) and
// groups the result into Stages per spec §4.6, honoring precedence's
// redirect-vs-pipe-split ordering.
func Split(line string, precedence string) ([]Stage, error) {
	segments, err := scan(line)
	if err != nil {
		return nil, err
	}

	redirectFirst := strings.HasPrefix(precedence, "<") || strings.HasPrefix(precedence, ">")
	if redirectFirst {
		return splitRedirectFirst(segments)
	}
	return splitPipeFirst(segments)
}

// splitRedirectFirst extracts every redirect segment (wherever it
// appears) before grouping the remaining words into pipe-delimited
// stages; the last extracted `<` file becomes stage 0's InFile, the
// last extracted `>` file becomes the final stage's OutFile.
func splitRedirectFirst(segments []segment) ([]Stage, error) {
	var inFile, outFile string
	var words []segment

	for i := 0; i < len(segments); i++ {
		s := segments[i]
		switch s.kind {
		case segRedirectIn:
			if i+1 < len(segments) && segments[i+1].kind == segWord {
				inFile = segments[i+1].text
				i++
			}
		case segRedirectOut:
			if i+1 < len(segments) && segments[i+1].kind == segWord {
				outFile = segments[i+1].text
				i++
			}
		default:
			words = append(words, s)
		}
	}

	stages := groupByPipe(words)
	if len(stages) == 0 {
		return stages, nil
	}
	stages[0].InFile = inFile
	stages[len(stages)-1].OutFile = outFile
	return stages, nil
}

// splitPipeFirst groups on `|` first; within each resulting stage, a
// `<file`/`>file` pair found anywhere in that stage's own segment list
// is extracted as its InFile/OutFile, whichever stage that turns out to
// be — a two-stage line like `a |b <in >out` puts both operators on the
// second stage, which is also the last one here, but a longer pipeline
// can land a redirect on an interior stage just as well.
func splitPipeFirst(segments []segment) ([]Stage, error) {
	var stages []Stage
	var current []segment

	flush := func() {
		stages = append(stages, buildStageFromBoundary(current))
		current = nil
	}

	for _, s := range segments {
		if s.kind == segPipe {
			flush()
			continue
		}
		current = append(current, s)
	}
	flush()

	return stages, nil
}

func buildStageFromBoundary(segments []segment) Stage {
	var stage Stage
	var words []string

	for i := 0; i < len(segments); i++ {
		s := segments[i]
		switch s.kind {
		case segRedirectIn:
			if i+1 < len(segments) && segments[i+1].kind == segWord {
				stage.InFile = segments[i+1].text
				i++
			}
		case segRedirectOut:
			if i+1 < len(segments) && segments[i+1].kind == segWord {
				stage.OutFile = segments[i+1].text
				i++
			}
		default:
			words = append(words, s.text)
		}
	}

	stage.Tokens = words
	return stage
}

func groupByPipe(segments []segment) []Stage {
	var stages []Stage
	var current []string

	flush := func() {
		stages = append(stages, Stage{Tokens: current})
		current = nil
	}

	for _, s := range segments {
		if s.kind == segPipe {
			flush()
			continue
		}
		current = append(current, s.text)
	}
	flush()

	return stages
}

// scan tokenizes line the same way token.Parse does (whitespace
// separation, double-quote grouping with "" as an embedded quote) but
// additionally breaks words at an unquoted `|`, `<`, or `>`, emitting
// each as its own operator segment.
func scan(line string) ([]segment, error) {
	runes := []rune(line)
	var segments []segment
	var current strings.Builder
	hasCurrent := false
	inQuote := false

	flush := func() {
		if hasCurrent {
			segments = append(segments, segment{kind: segWord, text: current.String()})
			current.Reset()
			hasCurrent = false
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inQuote {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					current.WriteRune('"')
					i++
					continue
				}
				inQuote = false
				continue
			}
			current.WriteRune(r)
			continue
		}

		switch {
		case r == '"':
			inQuote = true
			hasCurrent = true
		case unicode.IsSpace(r):
			flush()
		case r == '|':
			flush()
			segments = append(segments, segment{kind: segPipe})
		case r == '<':
			flush()
			segments = append(segments, segment{kind: segRedirectIn})
		case r == '>':
			flush()
			segments = append(segments, segment{kind: segRedirectOut})
		default:
			current.WriteRune(r)
			hasCurrent = true
		}
	}

	if inQuote {
		return nil, interperr.New(interperr.ErrInvalidInput, "unterminated quoted run")
	}
	flush()

	return segments, nil
}
