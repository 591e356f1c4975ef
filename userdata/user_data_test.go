package userdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUserDataBlockResetAtApplicationLevel(t *testing.T) {
	block, err := ParseUserDataBlock([]byte{0x50, 0x10}, Options{})
	require.NoError(t, err)
	require.Equal(t, CIResetAtApplicationLevel, block.ControlInformation)
	require.NotNil(t, block.ResetSubcode)
	require.Equal(t, ResetAll, block.ResetSubcode.Kind)
	require.Equal(t, byte(0x10), block.ResetSubcode.Raw)
}

func TestParseUserDataBlockFixedDataStructure(t *testing.T) {
	payload := []byte{
		0x73, 0x78, 0x56, 0x34, 0x12, 0x0A, 0x00, 0xE9, 0x7E,
		0x01, 0x00, 0x00, 0x00, 0x35, 0x01, 0x00, 0x00,
	}
	block, err := ParseUserDataBlock(payload, Options{})
	require.NoError(t, err)
	require.Equal(t, CIResponseWithFixedDataStructure, block.ControlInformation)
	require.NotNil(t, block.Fixed)
	require.Equal(t, uint32(12345678), block.Fixed.IdentificationNumber)
	require.Equal(t, byte(0x0A), block.Fixed.AccessNumber)
	require.Equal(t, uint16(0xE97E), block.Fixed.DeviceAndUnit)
	require.Equal(t, uint32(1), block.Fixed.Counter1)
	require.Equal(t, uint32(135), block.Fixed.Counter2)
}

func TestParseUserDataBlockUnimplementedStillReturnsBlock(t *testing.T) {
	block, err := ParseUserDataBlock([]byte{0x51}, Options{})
	require.Error(t, err)
	require.Equal(t, CISendData, block.ControlInformation)
}

func TestParseUserDataBlockExtendedLinkLayerRecurses(t *testing.T) {
	// ELL shape I (CC, ACC) wraps a ResetAtApplicationLevel inner CI.
	payload := []byte{0x8C, 0x20, 0x07, 0x50, 0x10}
	block, err := ParseUserDataBlock(payload, Options{})
	require.NoError(t, err)
	require.NotNil(t, block.ExtendedLinkLayer)
	require.Equal(t, byte(0x07), block.ExtendedLinkLayer.AccessNumber)
	require.Equal(t, CIResetAtApplicationLevel, block.ControlInformation)
	require.NotNil(t, block.ResetSubcode)
}

func TestParseUserDataBlockMissingControlInformation(t *testing.T) {
	_, err := ParseUserDataBlock(nil, Options{})
	require.Error(t, err)
}
