package userdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDataRecordVariableBCD(t *testing.T) {
	record, err := ParseDataRecord([]byte{0x0D, 0x06, 0xC1, 0x12}, Options{})
	require.NoError(t, err)
	require.Equal(t, DataNumber, record.Data.Kind)
	require.Equal(t, 12.0, record.Data.Number)
	require.Equal(t, 4, record.Size())

	record, err = ParseDataRecord([]byte{0x0D, 0x06, 0xD3, 0x12, 0x34, 0x56}, Options{})
	require.NoError(t, err)
	require.Equal(t, DataNumber, record.Data.Kind)
	require.Equal(t, -563412.0, record.Data.Number)
	require.Equal(t, 6, record.Size())
}

// Lead byte 0xCA sits just above the 0xC0..0xC9 positive range but below
// 0xD0; the sign boundary is lead > 0xC9, not lead >= 0xD0, so this must
// still decode as negative (§8).
func TestParseDataRecordVariableBCDNegativeBoundary(t *testing.T) {
	payload := []byte{0x0D, 0x06, 0xCA, 0x12, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	record, err := ParseDataRecord(payload, Options{})
	require.NoError(t, err)
	require.Equal(t, DataNumber, record.Data.Kind)
	require.Equal(t, -12.0, record.Data.Number)
	require.Equal(t, 13, record.Size())
}

func TestParseDataRecordReal32(t *testing.T) {
	// 41.44091796875 as IEEE-754 binary32, little endian.
	record, err := ParseDataRecord([]byte{0x05, 0x2B, 0x80, 0xC3, 0x25, 0x42}, Options{})
	require.NoError(t, err)
	require.Equal(t, DataNumber, record.Data.Kind)
	require.InDelta(t, 41.44091796875, record.Data.Number, 1e-9)
}

func TestDataRecordsLossySentinelThenEmptyText(t *testing.T) {
	payload := []byte{
		0x0D, 0x06, 0xC5, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // lossy 5-byte BCD
		0x0D, 0x06, 0x00, // empty variable-length text
	}
	it := NewDataRecords(payload, Options{})

	r1, err := it.Next()
	require.NoError(t, err)
	require.NotNil(t, r1)
	require.Equal(t, DataLossyNumber, r1.Data.Kind)
	require.Equal(t, -1.0, r1.Data.Number)

	r2, err := it.Next()
	require.NoError(t, err)
	require.NotNil(t, r2)
	require.Equal(t, DataText, r2.Data.Kind)
	require.Empty(t, r2.Data.Text)

	r3, err := it.Next()
	require.NoError(t, err)
	require.Nil(t, r3)
}

func TestDataRecordsIdleFillerAndTerminator(t *testing.T) {
	payload := []byte{0x2F, 0x01, 0x12, 0x05, 0x1F, 0xFF, 0xFF}
	it := NewDataRecords(payload, Options{})

	r1, err := it.Next()
	require.NoError(t, err)
	require.NotNil(t, r1)
	require.Equal(t, DataNumber, r1.Data.Kind)

	r2, err := it.Next()
	require.NoError(t, err)
	require.Nil(t, r2)
}
