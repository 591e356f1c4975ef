package linklayer

import (
	"testing"

	"github.com/rob-gra/go-mbus/mbus"
	"github.com/stretchr/testify/require"
)

func TestDecodeWireless(t *testing.T) {
	data := []byte{
		0x0B,       // L-field: len(data)-1
		0x44,       // C-field: SndNr
		0xE6, 0x1E, // manufacturer id, LE, GWF
		0x78, 0x56, 0x34, 0x12, // identification number BCD, 12345678
		0x42, // version
		0x07, // device type: water meter
		0xAA, 0xBB, // payload
	}
	frame, err := DecodeWireless(data)
	require.NoError(t, err)
	require.Equal(t, mbus.FuncSndNr, frame.Function.Kind)
	require.Equal(t, "GWF", frame.ManufacturerCode.String())
	require.Equal(t, uint32(12345678), frame.IdentificationNumber)
	require.Equal(t, byte(0x42), frame.Version)
	require.Equal(t, mbus.DeviceWaterMeter, frame.DeviceType.Kind)
	require.Equal(t, []byte{0xAA, 0xBB}, frame.Payload)
}

func TestDecodeWirelessWrongLength(t *testing.T) {
	_, err := DecodeWireless([]byte{0xFF, 0x44})
	require.Error(t, err)
	var fe *mbus.FrameError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, mbus.FrameErrWrongLength, fe.Kind)
}
