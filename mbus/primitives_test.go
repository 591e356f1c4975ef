package mbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, byte(0x06), Checksum([]byte{0x01, 0x02, 0x03}))
}

func TestValidateChecksum(t *testing.T) {
	require.NoError(t, ValidateChecksum([]byte{0x01, 0x02, 0x03, 0x06}))

	err := ValidateChecksum([]byte{0x01, 0x02, 0x03, 0x00})
	require.Error(t, err)
	var fe *FrameError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, FrameErrWrongChecksum, fe.Kind)
}

func TestBCDToUint32(t *testing.T) {
	v, ok := BCDToUint32([]byte{0x12, 0x34, 0x56})
	require.True(t, ok)
	require.Equal(t, uint32(563412), v)

	_, ok = BCDToUint32([]byte{0xAB})
	require.False(t, ok)
}

func TestAllNibblesF(t *testing.T) {
	require.True(t, AllNibblesF([]byte{0xFF, 0xFF}))
	require.False(t, AllNibblesF([]byte{0xFF, 0x0F}))
	require.False(t, AllNibblesF(nil))
}

func TestParseFunction(t *testing.T) {
	fn, err := ParseFunction(0x53)
	require.NoError(t, err)
	require.Equal(t, FuncSndUd, fn.Kind)
	require.False(t, fn.FCB)

	fn, err = ParseFunction(0x73)
	require.NoError(t, err)
	require.True(t, fn.FCB)

	fn, err = ParseFunction(0x38)
	require.NoError(t, err)
	require.Equal(t, FuncRspUd, fn.Kind)
	require.True(t, fn.ACD)
	require.True(t, fn.DFC)

	_, err = ParseFunction(0xFF)
	require.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	require.Equal(t, AddrUninitialised, ParseAddress(0).Kind)
	require.Equal(t, AddrSecondary, ParseAddress(253).Kind)
	addr := ParseAddress(254)
	require.Equal(t, AddrBroadcast, addr.Kind)
	require.True(t, addr.ReplyRequired)
	addr = ParseAddress(255)
	require.False(t, addr.ReplyRequired)
	addr = ParseAddress(42)
	require.Equal(t, AddrPrimary, addr.Kind)
	require.Equal(t, byte(42), addr.Primary)
}

func TestManufacturerCodeRoundTrip(t *testing.T) {
	// "LUG" (Landis+Gyr) is a real EN 13757-3 manufacturer code.
	id := uint16(12967) // L=12,U=21,G=7 -> (12<<10)|(21<<5)|7
	code, err := ManufacturerCodeFromID(id)
	require.NoError(t, err)
	require.Equal(t, "LUG", code.String())
	require.Equal(t, id, code.ToID())
}
