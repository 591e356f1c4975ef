package mbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecurityModeFromBits(t *testing.T) {
	v := SecurityModeFromBits(5)
	require.Equal(t, SecurityAesCbc128IvNonZero, v.Mode)
	require.Equal(t, byte(5), v.ToBits())
	require.Equal(t, "AesCbc128IvNonZero", v.String())

	v = SecurityModeFromBits(0)
	require.Equal(t, SecurityNoEncryption, v.Mode)

	v = SecurityModeFromBits(20)
	require.Equal(t, byte(20), v.ToBits())
	require.Equal(t, "ReservedHigher", v.String())
}

func TestStatusFieldRoundTrip(t *testing.T) {
	for b := 0; b <= 0xFF; b++ {
		s := StatusFieldFromByte(byte(b))
		require.Equal(t, byte(b), s.ToByte())
	}
}

func TestConfigurationFieldSecurityMode(t *testing.T) {
	// mode 5 in bits 12..8, little-endian wire bytes.
	cfg := ConfigurationFieldFromBytes(0x00, 0x05)
	require.Equal(t, SecurityAesCbc128IvNonZero, cfg.SecurityMode().Mode)
}
