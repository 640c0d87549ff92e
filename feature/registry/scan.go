package registry

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"planeage/feature/registry/models"
)

// maxLineBytes bounds a single registry line. The published files stay well
// under 4KB per line; the margin covers quoted free-text fields.
const maxLineBytes = 1 << 20

// lookupMaster streams the master file for the normalized key and returns the
// first matching record, nil when the key (or the file itself) is absent.
// The file is never materialized: memory use is bounded by line length, and
// the scan stops at the first match.
func lookupMaster(path, key string) (*models.Record, error) {
	var rec *models.Record
	err := scanFile(path, detectMasterSchema, masterFallback(), func(line string, s Schema) bool {
		if NormalizeKey(identField(line, s)) != key {
			return false
		}
		cols := pickColumns(line, s.Ident, s.Year, s.Code, s.Mfr, s.Model)
		rec = &models.Record{
			Ident:    NormalizeKey(cols[s.Ident]),
			Year:     strings.TrimSpace(cols[s.Year]),
			Code:     strings.TrimSpace(cols[s.Code]),
			KitMfr:   strings.TrimSpace(cols[s.Mfr]),
			KitModel: strings.TrimSpace(cols[s.Model]),
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// lookupRef streams the reference file for the normalized type code.
func lookupRef(path, code string) (*models.RefRecord, error) {
	var rec *models.RefRecord
	err := scanFile(path, detectRefSchema, refFallback(), func(line string, s Schema) bool {
		if NormalizeKey(identField(line, s)) != code {
			return false
		}
		cols := pickColumns(line, s.Ident, s.Mfr, s.Model, s.Kind)
		rec = &models.RefRecord{
			Code:         NormalizeKey(cols[s.Ident]),
			Manufacturer: strings.TrimSpace(cols[s.Mfr]),
			Model:        strings.TrimSpace(cols[s.Model]),
			Kind:         strings.TrimSpace(cols[s.Kind]),
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// scanFile drives a streaming scan: open, detect the schema on line 1 (the
// line counts as data when no header is recognized), then feed lines to match
// until it reports a hit or the file ends. A missing file is a normal
// not-found outcome, not an error; any other I/O failure propagates.
func scanFile(path string, detect func(string) (Schema, bool), fallback Schema, match func(line string, s Schema) bool) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open registry file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	schema := fallback
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			first = false
			if s, ok := detect(line); ok {
				schema = s
				continue
			}
		}
		if line == "" {
			continue
		}
		if match(line, schema) {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read registry file: %w", err)
	}
	return nil
}

// identField extracts the scan-key column, using the cheap first-column path
// when the schema allows it.
func identField(line string, s Schema) string {
	if s.Ident == 0 {
		return firstField(line)
	}
	return fieldAt(line, s.Ident)
}

// pickColumns tokenizes the wanted columns of line in one pass and returns
// them indexed by position. Absent columns (noColumn) read as "".
func pickColumns(line string, idxs ...int) map[int]string {
	want := make([]int, 0, len(idxs))
	for _, i := range idxs {
		if i >= 0 {
			want = append(want, i)
		}
	}
	slices.Sort(want)
	want = slices.Compact(want)

	vals := fieldsAt(line, want)
	out := make(map[int]string, len(want))
	for k, i := range want {
		out[i] = vals[k]
	}
	return out
}
