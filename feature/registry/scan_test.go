package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLookupMaster_WithHeader(t *testing.T) {
	path := writeFixture(t, "MASTER.txt",
		"N-NUMBER,SERIAL NUMBER,MFR MDL CODE,ENG MFR MDL,YEAR MFR\n"+
			"1,1001,1151548,17003,1988\n"+
			"123AB,10612,3930005,17003,2015\n"+
			"123AC,10613,3930005,17003,2016\n")

	t.Run("CaseInsensitiveKey", func(t *testing.T) {
		rec, err := lookupMaster(path, NormalizeKey("123ab"))
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "123AB", rec.Ident)
		assert.Equal(t, "2015", rec.Year)
		assert.Equal(t, "3930005", rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		rec, err := lookupMaster(path, NormalizeKey("999ZZ"))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("HeaderRowIsNotData", func(t *testing.T) {
		rec, err := lookupMaster(path, NormalizeKey("N-NUMBER"))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestLookupMaster_HeaderlessPositionalFallback(t *testing.T) {
	// No recognizable header: line 1 is data under the fixed layout.
	path := writeFixture(t, "MASTER.txt",
		"500XY,20001,2072704,30010,1979\n"+
			"501XY,20002,2072704,30010,1980\n")

	rec, err := lookupMaster(path, NormalizeKey("500xy"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "500XY", rec.Ident)
	assert.Equal(t, "1979", rec.Year)
	assert.Equal(t, "2072704", rec.Code)
}

func TestLookupMaster_BOMAndQuotedIdent(t *testing.T) {
	path := writeFixture(t, "MASTER.txt",
		"\uFEFF\"123AB\",10612,3930005,17003,2015\n")

	rec, err := lookupMaster(path, NormalizeKey(" 123ab "))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2015", rec.Year)
}

func TestLookupMaster_FirstMatchWins(t *testing.T) {
	path := writeFixture(t, "MASTER.txt",
		"N-NUMBER,SERIAL NUMBER,MFR MDL CODE,ENG MFR MDL,YEAR MFR\n"+
			"123AB,1,111,2,2001\n"+
			"123AB,2,222,2,2002\n")

	rec, err := lookupMaster(path, NormalizeKey("123AB"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2001", rec.Year)
}

func TestLookupMaster_KitColumnsByHeader(t *testing.T) {
	path := writeFixture(t, "MASTER.txt",
		"N-NUMBER,YEAR MFR,MFR MDL CODE,KIT MFR,KIT MODEL\n"+
			"77KIT,1996,,VANS,RV-6\n")

	rec, err := lookupMaster(path, NormalizeKey("77kit"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "VANS", rec.KitMfr)
	assert.Equal(t, "RV-6", rec.KitModel)
	assert.Empty(t, rec.Code)
}

func TestLookupMaster_MissingFileIsNotFound(t *testing.T) {
	rec, err := lookupMaster(filepath.Join(t.TempDir(), "absent.txt"), "123AB")
	require.NoError(t, err, "a missing registry file is a normal not-found outcome")
	assert.Nil(t, rec)
}

func TestLookupMaster_IOErrorPropagates(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}
	path := writeFixture(t, "MASTER.txt", "N-NUMBER,YEAR MFR\n123AB,2015\n")
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := lookupMaster(path, "123AB")
	assert.Error(t, err)
}

func TestLookupRef(t *testing.T) {
	path := writeFixture(t, "ACFTREF.txt",
		"CODE,MFR,MODEL,TYPE-ACFT,TYPE-ENG\n"+
			"3930005,CESSNA,172S,4,1\n"+
			"2072704,PIPER,PA-28-181,4,1\n")

	t.Run("Found", func(t *testing.T) {
		rec, err := lookupRef(path, NormalizeKey("3930005"))
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "CESSNA", rec.Manufacturer)
		assert.Equal(t, "172S", rec.Model)
		assert.Equal(t, "4", rec.Kind)
	})

	t.Run("NotFound", func(t *testing.T) {
		rec, err := lookupRef(path, "0000000")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestLookupRef_HeaderlessFallback(t *testing.T) {
	path := writeFixture(t, "ACFTREF.txt",
		"3930005,CESSNA,172S,4,1\n")

	rec, err := lookupRef(path, "3930005")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "CESSNA", rec.Manufacturer)
}
