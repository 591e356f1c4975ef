package userdata_test

import (
	"testing"

	"github.com/rob-gra/go-mbus/linklayer"
	"github.com/rob-gra/go-mbus/mbustest"
	"github.com/rob-gra/go-mbus/userdata"
	"github.com/stretchr/testify/require"
)

// TestWiredFrameToDataRecordPipeline chains the full decode path a real
// capture takes: link-layer framing, the long TPL header, and the
// variable-data-record stream, mirroring the single-telegram fixtures in
// the pack's own end-to-end tests.
func TestWiredFrameToDataRecordPipeline(t *testing.T) {
	appLayer := mbustest.NewBytes().
		Push(0x72).                      // CI: response with variable data structure
		BCD(12345678, 4).                // identification number
		LE16(0x1EE6).                    // manufacturer GWF
		Push(0x42).                      // version
		Push(0x07).                      // device type: water meter
		Push(0x00).                      // access number
		Push(0x00, 0x00, 0x00).          // status, configuration field (2 bytes)
		Push(0x0C, 0x13).                // DIF: instantaneous BCD8, VIF: volume
		BCD(135, 4).                     // value: 135 (litres)
		Push(0x0F).                      // manufacturer-specific trailer, no more records
		Build()

	frame := mbustest.NewBytes().
		Push(0x68, byte(len(appLayer)+2), byte(len(appLayer)+2), 0x68).
		Push(0x08, 0x00). // control: RSP_UD, address 0
		Push(appLayer...)
	sum := byte(0x08) + byte(0x00)
	for _, b := range appLayer {
		sum += b
	}
	frame.Push(sum, 0x16)
	telegram := frame.Build()

	wired, err := linklayer.DecodeWired(telegram)
	require.NoError(t, err)
	require.Equal(t, linklayer.WiredLongFrame, wired.Kind)

	block, err := userdata.ParseUserDataBlock(wired.Payload, userdata.Options{})
	require.NoError(t, err)
	require.Equal(t, userdata.CIResponseWithVariableDataStructure, block.ControlInformation)
	require.NotNil(t, block.LongHeader)
	require.Equal(t, uint32(12345678), block.LongHeader.IdentificationNumber)
	require.Equal(t, "GWF", block.LongHeader.Manufacturer.String())
	require.NotNil(t, block.Records)

	record, err := block.Records.Next()
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, float64(135), record.Data.Number)

	// The 0x0F manufacturer-specific trailer ends the stream as its own
	// pseudo-record rather than terminating it outright.
	trailer, err := block.Records.Next()
	require.NoError(t, err)
	require.NotNil(t, trailer)
	require.Equal(t, userdata.DataManufacturerSpecific, trailer.Data.Kind)

	end, err := block.Records.Next()
	require.NoError(t, err)
	require.Nil(t, end)
}
