package linklayer

import (
	"testing"

	"github.com/rob-gra/go-mbus/mbus"
	"github.com/stretchr/testify/require"
)

func TestDecodeWiredSingleCharacter(t *testing.T) {
	frame, err := DecodeWired([]byte{0xE5})
	require.NoError(t, err)
	require.Equal(t, WiredSingleCharacter, frame.Kind)
	require.Equal(t, byte(0xE5), frame.Character)
}

func TestDecodeWiredShortFrame(t *testing.T) {
	frame, err := DecodeWired([]byte{0x10, 0x7B, 0x8B, 0x06, 0x16})
	require.NoError(t, err)
	require.Equal(t, WiredShortFrame, frame.Kind)
	require.Equal(t, mbus.FuncReqUd2, frame.Function.Kind)
	require.True(t, frame.Function.FCB)
	require.Equal(t, mbus.AddrPrimary, frame.Address.Kind)
	require.Equal(t, byte(139), frame.Address.Primary)
}

func TestDecodeWiredControlFrame(t *testing.T) {
	frame, err := DecodeWired([]byte{0x68, 0x03, 0x03, 0x68, 0x53, 0x01, 0x51, 0xA5, 0x16})
	require.NoError(t, err)
	require.Equal(t, WiredControlFrame, frame.Kind)
	require.Equal(t, mbus.FuncSndUd, frame.Function.Kind)
	require.False(t, frame.Function.FCB)
	require.Equal(t, mbus.AddrPrimary, frame.Address.Kind)
	require.Equal(t, byte(1), frame.Address.Primary)
	require.Equal(t, []byte{0x51}, frame.Payload)
}

func TestDecodeWiredInvalidStartByte(t *testing.T) {
	_, err := DecodeWired([]byte{0x99, 0x00, 0x00})
	require.Error(t, err)
	var fe *mbus.FrameError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, mbus.FrameErrInvalidStartByte, fe.Kind)
}

func TestDecodeWiredEmptyData(t *testing.T) {
	_, err := DecodeWired(nil)
	require.Error(t, err)
}
