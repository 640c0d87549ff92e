package registry

import "strings"

// The registry files are comma-delimited with optional double-quoted fields
// and "" quote escaping. The master file is wide (30+ columns) while a lookup
// needs at most five, so the tokenizer supports a partial mode that copies
// only wanted columns and stops scanning once the highest wanted index has
// been consumed. Malformed quoting never fails: an unterminated quote means
// the rest of the line belongs to the field.

// fields splits line into all of its fields.
func fields(line string) []string {
	var out []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes:
			if ch == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					b.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				b.WriteByte(ch)
			}
		case ch == '"':
			inQuotes = true
		case ch == ',':
			out = append(out, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	return append(out, b.String())
}

// fieldsAt returns the field values at the given column indices, which must be
// sorted ascending and distinct. Indices past the end of the line yield "".
// Bytes of unwanted fields are skipped, and scanning stops after the highest
// wanted index.
func fieldsAt(line string, want []int) []string {
	out := make([]string, len(want))
	if len(want) == 0 {
		return out
	}
	maxIdx := want[len(want)-1]

	var b strings.Builder
	wi := 0       // next output slot
	idx := 0      // current column
	inQuotes := false
	keep := want[0] == 0

	endField := func() bool {
		if keep {
			out[wi] = b.String()
			b.Reset()
			wi++
		}
		idx++
		keep = wi < len(want) && idx == want[wi]
		return idx > maxIdx
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes:
			if ch == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					if keep {
						b.WriteByte('"')
					}
					i++
				} else {
					inQuotes = false
				}
			} else if keep {
				b.WriteByte(ch)
			}
		case ch == '"':
			inQuotes = true
		case ch == ',':
			if endField() {
				return out
			}
		default:
			if keep {
				b.WriteByte(ch)
			}
		}
	}
	endField()
	return out
}

// fieldAt returns the single field value at column idx.
func fieldAt(line string, idx int) string {
	if idx < 0 {
		return ""
	}
	return fieldsAt(line, []int{idx})[0]
}

// firstField returns the value of column 0 without tokenizing the rest of the
// line. This is the identifier fast path: the master file keys on its first
// column, so most lines are rejected after reading up to the first comma.
func firstField(line string) string {
	i := strings.IndexByte(line, ',')
	if i < 0 {
		i = len(line)
	}
	head := line[:i]
	if strings.IndexByte(head, '"') >= 0 {
		// Quoted first field may contain embedded commas.
		return fieldAt(line, 0)
	}
	return head
}
