package userdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Both captures carry the same record (a 16-bit instantaneous value with a
// "HR%" plain-text unit); manufacturers disagree about whether the VIFE
// byte precedes or follows the length-prefixed ASCII unit string.
func TestPlainTextVIFDualOrdering(t *testing.T) {
	before := []byte{0x02, 0xFC, 0x03, 0x48, 0x52, 0x25, 0x74, 0x44, 0x0D}
	after := []byte{0x02, 0xFC, 0x74, 0x03, 0x48, 0x52, 0x25, 0x44, 0x0D}

	r1, err := ParseDataRecord(before, Options{PlaintextBeforeExtension: true})
	require.NoError(t, err)
	require.Equal(t, 9, r1.Size())
	require.Equal(t, DataNumber, r1.Data.Kind)
	require.Equal(t, float64(0x0D44), r1.Data.Number)
	require.Equal(t, LabelPlainText, r1.Header.ValueInformation.Labels[0])
	require.Equal(t, "HR%", r1.Header.ValueInformation.Units[0].Name)

	r2, err := ParseDataRecord(after, Options{PlaintextBeforeExtension: false})
	require.NoError(t, err)
	require.Equal(t, 9, r2.Size())
	require.Equal(t, DataNumber, r2.Data.Kind)
	require.Equal(t, float64(0x0D44), r2.Data.Number)
	require.Equal(t, "HR%", r2.Header.ValueInformation.Units[0].Name)
}

func TestInterpretPrimaryEnergyVolume(t *testing.T) {
	vib := ValueInformationBlock{VIF: 0x03}
	vi, err := vib.Interpret(Options{})
	require.NoError(t, err)
	require.Equal(t, LabelEnergy, vi.Labels[0])
	require.Equal(t, int16(0), vi.DecimalScaleExponent)

	vib = ValueInformationBlock{VIF: 0x13}
	vi, err = vib.Interpret(Options{})
	require.NoError(t, err)
	require.Equal(t, LabelVolume, vi.Labels[0])
	require.Equal(t, int16(-3), vi.DecimalScaleExponent)
}

func TestInterpretManufacturerSpecificVIF(t *testing.T) {
	vib := ValueInformationBlock{VIF: 0x7E}
	vi, err := vib.Interpret(Options{})
	require.NoError(t, err)
	require.Equal(t, LabelManufacturerSpecific, vi.Labels[0])
	require.Empty(t, vi.Units)
}

func TestParseValueInformationBlockVIFEOverflow(t *testing.T) {
	data := make([]byte, 0, 12)
	data = append(data, 0x80) // VIF with extension bit set
	for i := 0; i < 11; i++ {
		data = append(data, 0x80) // 11 extension-flagged VIFE bytes exceeds the cap
	}
	_, _, err := ParseValueInformationBlock(data, Options{})
	require.Error(t, err)
}
