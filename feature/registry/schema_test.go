package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMasterSchema(t *testing.T) {
	t.Run("FullHeader", func(t *testing.T) {
		s, ok := detectMasterSchema("N-NUMBER,SERIAL NUMBER,MFR MDL CODE,ENG MFR MDL,YEAR MFR,TYPE REGISTRANT")
		assert.True(t, ok)
		assert.Equal(t, 0, s.Ident)
		assert.Equal(t, 4, s.Year)
		assert.Equal(t, 2, s.Code)
	})

	t.Run("ReorderedColumns", func(t *testing.T) {
		s, ok := detectMasterSchema("YEAR MFR,N-NUMBER,MFR,MODEL")
		assert.True(t, ok)
		assert.Equal(t, 1, s.Ident)
		assert.Equal(t, 0, s.Year)
		assert.Equal(t, 2, s.Mfr)
		assert.Equal(t, 3, s.Model)
	})

	t.Run("KitOnlyManufacturerColumns", func(t *testing.T) {
		// A schema naming only the kit-built columns must still populate
		// the manufacturer/model slots.
		s, ok := detectMasterSchema("N-NUMBER,YEAR MFR,KIT MFR,KIT MODEL")
		assert.True(t, ok)
		assert.Equal(t, 2, s.Mfr)
		assert.Equal(t, 3, s.Model)
	})

	t.Run("StandardNameWinsOverKit", func(t *testing.T) {
		s, ok := detectMasterSchema("N-NUMBER,YEAR MFR,KIT MFR,MFR")
		assert.True(t, ok)
		assert.Equal(t, 3, s.Mfr)
	})

	t.Run("MissingRequiredColumn", func(t *testing.T) {
		_, ok := detectMasterSchema("N-NUMBER,SERIAL NUMBER,MFR MDL CODE")
		assert.False(t, ok, "header without YEAR MFR must be rejected")
	})

	t.Run("DataRowRejected", func(t *testing.T) {
		_, ok := detectMasterSchema("123AB,10612,3930005,2015,")
		assert.False(t, ok)
	})

	t.Run("CaseAndBOM", func(t *testing.T) {
		s, ok := detectMasterSchema("\uFEFFn-number, year mfr ")
		assert.True(t, ok)
		assert.Equal(t, 0, s.Ident)
		assert.Equal(t, 1, s.Year)
	})
}

func TestDetectRefSchema(t *testing.T) {
	t.Run("FullHeader", func(t *testing.T) {
		s, ok := detectRefSchema("CODE,MFR,MODEL,TYPE-ACFT,TYPE-ENG")
		assert.True(t, ok)
		assert.Equal(t, 0, s.Ident)
		assert.Equal(t, 1, s.Mfr)
		assert.Equal(t, 2, s.Model)
		assert.Equal(t, 3, s.Kind)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		_, ok := detectRefSchema("CODE,MODEL")
		assert.False(t, ok)
	})
}

func TestFallbackSchemas(t *testing.T) {
	m := masterFallback()
	assert.Equal(t, 0, m.Ident)
	assert.Equal(t, 4, m.Year)
	assert.Equal(t, 2, m.Code)

	r := refFallback()
	assert.Equal(t, 0, r.Ident)
	assert.Equal(t, 1, r.Mfr)
	assert.Equal(t, 2, r.Model)
	assert.Equal(t, 3, r.Kind)
}
