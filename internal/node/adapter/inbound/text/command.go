package text

import (
	"strings"
	"unicode"

	"github.com/anthanhphan/go-disk-register/internal/node/domain"
)

// Verb identifies a client command.
type Verb string

const (
	VerbSet     Verb = "SET"
	VerbGet     Verb = "GET"
	VerbUnknown Verb = "UNKNOWN"
)

// Command is one parsed client line.
type Command struct {
	Verb Verb
	ID   int32
	Text string
}

// ParseCommand parses "SET <id> <text>" or "GET <id>". The verb is
// case-insensitive; the line is split on whitespace into at most three
// fields, so SET text keeps its inner spacing. Anything else, including an id
// that is not a 32-bit integer, yields VerbUnknown.
func ParseCommand(line string) Command {
	fields := splitFields(strings.TrimSpace(line), 3)
	if len(fields) < 2 {
		return Command{Verb: VerbUnknown}
	}

	verb := Verb(strings.ToUpper(fields[0]))
	if verb != VerbSet && verb != VerbGet {
		return Command{Verb: VerbUnknown}
	}

	id, err := domain.ParseMessageID(fields[1])
	if err != nil {
		return Command{Verb: VerbUnknown}
	}

	if verb == VerbGet {
		return Command{Verb: VerbGet, ID: id}
	}

	if len(fields) < 3 {
		return Command{Verb: VerbUnknown}
	}
	return Command{Verb: VerbSet, ID: id, Text: fields[2]}
}

// splitFields splits s on runs of whitespace into at most n fields. The last
// field holds the unsplit remainder.
func splitFields(s string, n int) []string {
	var fields []string
	for s != "" && len(fields) < n-1 {
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			break
		}
		fields = append(fields, s[:end])
		s = strings.TrimLeftFunc(s[end:], unicode.IsSpace)
	}
	if s != "" {
		fields = append(fields, s)
	}
	return fields
}
