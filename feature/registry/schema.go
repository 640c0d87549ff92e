package registry

// noColumn marks a logical column absent from a file.
const noColumn = -1

// Schema maps the logical columns of one registry file to positional indices.
// It is computed fresh for every scan from the file's first line; when that
// line is not a recognizable header the fixed positional layout of the
// published registry format is used instead, and the line is treated as data.
type Schema struct {
	// Ident is the column holding the scan key: the N-number in the master
	// file, the manufacturer/model code in the reference file.
	Ident int
	Year  int
	Code  int
	Mfr   int
	Model int
	Kind  int
}

// masterFallback is the positional layout of a headerless master file.
func masterFallback() Schema {
	return Schema{
		Ident: 0,  // N-NUMBER
		Year:  4,  // YEAR MFR
		Code:  2,  // MFR MDL CODE
		Mfr:   31, // KIT MFR
		Model: 32, // KIT MODEL
		Kind:  noColumn,
	}
}

// refFallback is the positional layout of a headerless reference file.
func refFallback() Schema {
	return Schema{
		Ident: 0, // CODE
		Mfr:   1, // MFR
		Model: 2, // MODEL
		Kind:  3, // TYPE-ACFT
		Year:  noColumn,
		Code:  noColumn,
	}
}

// detectMasterSchema interprets line as the master file's header row. It
// succeeds only when both required columns (identifier and year) are named;
// manufacturer and model accept the kit-built synonyms, so a file that names
// only KIT MFR / KIT MODEL still populates those slots.
func detectMasterSchema(line string) (Schema, bool) {
	byName := headerIndex(line)
	s := Schema{
		Ident: columnOf(byName, "N-NUMBER"),
		Year:  columnOf(byName, "YEAR MFR"),
		Code:  columnOf(byName, "MFR MDL CODE"),
		Mfr:   columnOf(byName, "MFR", "KIT MFR"),
		Model: columnOf(byName, "MODEL", "KIT MODEL"),
		Kind:  noColumn,
	}
	if s.Ident == noColumn || s.Year == noColumn {
		return Schema{}, false
	}
	return s, true
}

// detectRefSchema interprets line as the reference file's header row. The
// code and manufacturer columns are required.
func detectRefSchema(line string) (Schema, bool) {
	byName := headerIndex(line)
	s := Schema{
		Ident: columnOf(byName, "CODE"),
		Mfr:   columnOf(byName, "MFR"),
		Model: columnOf(byName, "MODEL"),
		Kind:  columnOf(byName, "TYPE-ACFT"),
		Year:  noColumn,
		Code:  noColumn,
	}
	if s.Ident == noColumn || s.Mfr == noColumn {
		return Schema{}, false
	}
	return s, true
}

// headerIndex maps normalized header names to their positions. The first
// occurrence of a repeated name wins.
func headerIndex(line string) map[string]int {
	names := fields(line)
	byName := make(map[string]int, len(names))
	for i, name := range names {
		key := normalizeHeader(name)
		if _, ok := byName[key]; !ok {
			byName[key] = i
		}
	}
	return byName
}

// columnOf returns the position of the first present synonym, or noColumn.
func columnOf(byName map[string]int, synonyms ...string) int {
	for _, name := range synonyms {
		if i, ok := byName[name]; ok {
			return i
		}
	}
	return noColumn
}
