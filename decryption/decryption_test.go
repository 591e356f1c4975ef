package decryption

import (
	"testing"

	"github.com/rob-gra/go-mbus/mbus"
	"github.com/stretchr/testify/require"
)

type fixedKeyProvider struct {
	key []byte
	err error
}

func (p fixedKeyProvider) Key(KeyContext) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.key, nil
}

// Mode 7 (AES-CBC-128, zero IV) round-trip using the well-known all-zero
// key/all-zero plaintext AES-128 test vector (§8 scenario 11).
func TestDecryptModeSevenRoundTrip(t *testing.T) {
	key := make([]byte, 16)
	ciphertext := []byte{
		0x66, 0xe9, 0x4b, 0xd4, 0xef, 0x8a, 0x2c, 0x3b,
		0x88, 0x4c, 0xfa, 0x59, 0xca, 0x34, 0x2b, 0x2e,
	}
	payload := EncryptedPayload{
		Data:    ciphertext,
		Context: KeyContext{SecurityMode: mbus.SecurityAesCbc128IvZero},
	}
	out := make([]byte, len(ciphertext))
	n, err := payload.DecryptInto(fixedKeyProvider{key: key}, out)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, make([]byte, 16), out)
}

func TestDecryptInvalidDataLength(t *testing.T) {
	payload := EncryptedPayload{
		Data:    make([]byte, 15),
		Context: KeyContext{SecurityMode: mbus.SecurityAesCbc128IvZero},
	}
	out := make([]byte, 15)
	_, err := payload.DecryptInto(fixedKeyProvider{key: make([]byte, 16)}, out)
	require.Error(t, err)
	var de *mbus.DecryptionError
	require.ErrorAs(t, err, &de)
	require.Equal(t, mbus.DecErrInvalidDataLength, de.Kind)
}

func TestDecryptInvalidKeyLength(t *testing.T) {
	payload := EncryptedPayload{
		Data:    make([]byte, 16),
		Context: KeyContext{SecurityMode: mbus.SecurityAesCbc128IvZero},
	}
	out := make([]byte, 16)
	_, err := payload.DecryptInto(fixedKeyProvider{key: make([]byte, 8)}, out)
	require.Error(t, err)
	var de *mbus.DecryptionError
	require.ErrorAs(t, err, &de)
	require.Equal(t, mbus.DecErrInvalidKeyLength, de.Kind)
}

func TestDecryptUnsupportedMode(t *testing.T) {
	payload := EncryptedPayload{
		Data:    make([]byte, 16),
		Context: KeyContext{SecurityMode: mbus.SecurityAesGcm128},
	}
	out := make([]byte, 16)
	_, err := payload.DecryptInto(fixedKeyProvider{}, out)
	require.Error(t, err)
	var de *mbus.DecryptionError
	require.ErrorAs(t, err, &de)
	require.Equal(t, mbus.DecErrUnsupportedMode, de.Kind)
}

func TestDecryptNoEncryptionPassthrough(t *testing.T) {
	payload := EncryptedPayload{
		Data:    []byte{0x01, 0x02, 0x03},
		Context: KeyContext{SecurityMode: mbus.SecurityNoEncryption},
	}
	out := make([]byte, 3)
	n, err := payload.DecryptInto(fixedKeyProvider{}, out)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, out)
}

// IV derivation per §8 scenario 12: the manufacturer code's two leading
// ASCII letters, then the 4-byte little-endian identification number,
// then zero fill, then version, device type, then the access number
// repeated four times.
func TestKeyContextDeriveIV(t *testing.T) {
	manufacturer, err := mbus.ManufacturerCodeFromID(0x1EE6) // GWF
	require.NoError(t, err)
	ctx := KeyContext{
		Manufacturer:         manufacturer,
		IdentificationNumber: 12345678,
		Version:              0x42,
		DeviceType:           mbus.DeviceTypeFromByte(0x07),
		SecurityMode:         mbus.SecurityAesCbc128IvNonZero,
		AccessNumber:         0x09,
	}
	iv := ctx.DeriveIV()
	require.Equal(t, byte('G'), iv[0])
	require.Equal(t, byte('W'), iv[1])
	require.Equal(t, []byte{0x4E, 0x61, 0xBC, 0x00}, iv[2:6])
	require.Equal(t, make([]byte, 4), iv[6:10])
	require.Equal(t, byte(0x42), iv[10])
	require.Equal(t, byte(0x07), iv[11])
	for i := 12; i < 16; i++ {
		require.Equal(t, byte(0x09), iv[i])
	}
}

func TestStaticKeyProviderRoundTrip(t *testing.T) {
	manufacturer, err := mbus.ManufacturerCodeFromID(0x1EE6)
	require.NoError(t, err)
	provider := NewStaticKeyProvider()
	key := []byte("0123456789ABCDEF")
	provider.SetKey(manufacturer, 12345678, key)

	got, err := provider.Key(KeyContext{Manufacturer: manufacturer, IdentificationNumber: 12345678})
	require.NoError(t, err)
	require.Equal(t, key, got)

	_, err = provider.Key(KeyContext{Manufacturer: manufacturer, IdentificationNumber: 1})
	require.Error(t, err)
}
