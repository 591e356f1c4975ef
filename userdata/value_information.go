package userdata

import "github.com/rob-gra/go-mbus/mbus"

const maxVIFEChain = 10
const maxUnits = 10
const maxLabels = 10

// ValueLabel is the closed set of semantic tags a VIB can attach to the
// value that follows it.
type ValueLabel int

const (
	LabelEnergy ValueLabel = iota
	LabelVolume
	LabelMass
	LabelOnTime
	LabelOperatingTime
	LabelPower
	LabelVolumeFlow
	LabelVolumeFlowExt
	LabelVolumeFlowS
	LabelMassFlow
	LabelFlowTemperature
	LabelTemperatureDifference
	LabelReturnTemperature
	LabelPressure
	LabelDate
	LabelDateTime
	LabelDateTimeWithSeconds
	LabelTime
	LabelAveragingDuration
	LabelActualityDuration
	LabelFabricationNumber
	LabelPlainText
	LabelManufacturerSpecific
	LabelAveraged
	LabelAtPhaseL1
	LabelAtPhaseL2
	LabelAtPhaseL3
	LabelCredit
	LabelDebit
	LabelErrorFlags
	LabelDigitalInput
	LabelDigitalOutput
	LabelBaudRate
	LabelRemainingBatteryLife
	LabelParameterSetIdentification
	LabelModelVersion
	LabelHardwareVersion
	LabelFirmwareVersion
	LabelSoftwareVersion
	LabelCustomerLocation
	LabelAccessCode
	LabelReactiveEnergy
	LabelApparentEnergy
	LabelSpecificVolume
	LabelVoltage
	LabelCurrent
	LabelFrequency
	LabelHeatCostAllocatorFactor
)

// Unit is one entry of a VIB's (possibly multi-entry) unit set.
type Unit struct {
	Name     string
	Exponent int8
}

// ValueInformationBlock is the raw VIF plus up to 10 VIFE bytes. For a
// Plain-Text VIF (0x7C/0xFC), PlainTextUnit additionally carries the
// length-prefixed ASCII unit string read from whichever side of the VIFE
// chain Options.PlaintextBeforeExtension selects.
type ValueInformationBlock struct {
	VIF           byte
	VIFEs         []byte
	PlainTextUnit []byte
}

func isPlainTextVIF(vif byte) bool { return vif == 0x7C || vif == 0xFC }

// ParseValueInformationBlock accumulates the VIF/VIFE chain from the
// front of data using the same extension-bit/overflow rule as the DIF
// chain. A Plain-Text VIF additionally consumes a length-prefixed ASCII
// unit string, positioned before or after the VIFE chain per
// opts.PlaintextBeforeExtension (§4.G, §9).
func ParseValueInformationBlock(data []byte, opts Options) (ValueInformationBlock, int, error) {
	if len(data) == 0 {
		return ValueInformationBlock{}, 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooShort}
	}
	vif := data[0]
	block := ValueInformationBlock{VIF: vif}
	offset := 1
	plainText := isPlainTextVIF(vif)

	if plainText && opts.PlaintextBeforeExtension {
		n, err := consumePlainTextUnit(data, offset, &block)
		if err != nil {
			return ValueInformationBlock{}, 0, err
		}
		offset = n
	}

	if hasExtension(vif) {
		for {
			if len(block.VIFEs) >= maxVIFEChain {
				return ValueInformationBlock{}, 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooLong}
			}
			if offset >= len(data) {
				return ValueInformationBlock{}, 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooShort}
			}
			b := data[offset]
			block.VIFEs = append(block.VIFEs, b)
			offset++
			if !hasExtension(b) {
				break
			}
		}
	}

	if plainText && !opts.PlaintextBeforeExtension {
		n, err := consumePlainTextUnit(data, offset, &block)
		if err != nil {
			return ValueInformationBlock{}, 0, err
		}
		offset = n
	}

	return block, offset, nil
}

// consumePlainTextUnit reads a one-byte ASCII length followed by that many
// bytes, starting at offset, and records it on block.
func consumePlainTextUnit(data []byte, offset int, block *ValueInformationBlock) (int, error) {
	if offset >= len(data) {
		return 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooShort}
	}
	n := int(data[offset])
	offset++
	if offset+n > len(data) {
		return 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooShort}
	}
	block.PlainTextUnit = data[offset : offset+n]
	return offset + n, nil
}

// ValueInformation is the decoded semantic content of a
// ValueInformationBlock: units, scale/offset exponents and labels.
type ValueInformation struct {
	Units                 []Unit
	DecimalScaleExponent  int16
	DecimalOffsetExponent int16
	Labels                []ValueLabel
}

func (v *ValueInformation) addUnit(name string, exponent int8) {
	if len(v.Units) < maxUnits {
		v.Units = append(v.Units, Unit{Name: name, Exponent: exponent})
	}
}

func (v *ValueInformation) addLabel(l ValueLabel) {
	if len(v.Labels) < maxLabels {
		v.Labels = append(v.Labels, l)
	}
}

// Interpret classifies a ValueInformationBlock's VIF byte and walks its
// VIFE chain, per §4.G.
func (b ValueInformationBlock) Interpret(opts Options) (ValueInformation, error) {
	var vi ValueInformation

	low7 := b.VIF & 0x7F
	switch {
	case b.VIF == 0x7C || b.VIF == 0xFC:
		vi.addLabel(LabelPlainText)
		if len(b.PlainTextUnit) > 0 {
			vi.addUnit(string(b.PlainTextUnit), 0)
		}
	case b.VIF == 0xFD:
		interpretMainExtension(&vi, b.VIFEs)
		applyOrthogonal(&vi, skipFirst(b.VIFEs))
		return vi, nil
	case b.VIF == 0xFB:
		interpretAlternateExtension(&vi, b.VIFEs)
		applyOrthogonal(&vi, skipFirst(b.VIFEs))
		return vi, nil
	case b.VIF == 0x7E || b.VIF == 0xFE || b.VIF == 0x7F || b.VIF == 0xFF:
		vi.addLabel(LabelManufacturerSpecific)
		return vi, nil
	default:
		interpretPrimary(&vi, low7)
	}

	applyOrthogonal(&vi, b.VIFEs)
	return vi, nil
}

func skipFirst(vifes []byte) []byte {
	if len(vifes) <= 1 {
		return nil
	}
	return vifes[1:]
}

// interpretPrimary implements the primary VIF table of §4.G.
func interpretPrimary(vi *ValueInformation, low7 byte) {
	switch {
	case low7 <= 0x07:
		vi.addUnit("Wh", int8(low7)-3)
		vi.DecimalScaleExponent = int16(low7) - 3
		vi.addLabel(LabelEnergy)
	case low7 >= 0x08 && low7 <= 0x0F:
		n := low7 - 0x08
		vi.addUnit("J", int8(n))
		vi.DecimalScaleExponent = int16(n)
		vi.addLabel(LabelEnergy)
	case low7 >= 0x10 && low7 <= 0x17:
		n := low7 - 0x10
		vi.addUnit("m3", int8(n)-6)
		vi.DecimalScaleExponent = int16(n) - 6
		vi.addLabel(LabelVolume)
	case low7 >= 0x18 && low7 <= 0x1F:
		n := low7 - 0x18
		vi.addUnit("kg", int8(n)-3)
		vi.DecimalScaleExponent = int16(n) - 3
		vi.addLabel(LabelMass)
	case low7 >= 0x20 && low7 <= 0x23:
		vi.addLabel(LabelOnTime)
	case low7 >= 0x24 && low7 <= 0x27:
		vi.addLabel(LabelOperatingTime)
	case low7 >= 0x28 && low7 <= 0x2F:
		n := low7 - 0x28
		vi.addUnit("W", int8(n)-3)
		vi.DecimalScaleExponent = int16(n) - 3
		vi.addLabel(LabelPower)
	case low7 >= 0x30 && low7 <= 0x37:
		n := low7 - 0x30
		vi.addUnit("J/h", int8(n))
		vi.DecimalScaleExponent = int16(n)
		vi.addLabel(LabelPower)
	case low7 >= 0x38 && low7 <= 0x3F:
		n := low7 - 0x38
		vi.addUnit("m3/h", int8(n)-6)
		vi.DecimalScaleExponent = int16(n) - 6
		vi.addLabel(LabelVolumeFlow)
	case low7 >= 0x40 && low7 <= 0x47:
		n := low7 - 0x40
		vi.addUnit("m3/min", int8(n)-7)
		vi.DecimalScaleExponent = int16(n) - 7
		vi.addLabel(LabelVolumeFlowExt)
	case low7 >= 0x48 && low7 <= 0x4F:
		n := low7 - 0x48
		vi.addUnit("m3/s", int8(n)-9)
		vi.DecimalScaleExponent = int16(n) - 9
		vi.addLabel(LabelVolumeFlowS)
	case low7 >= 0x50 && low7 <= 0x57:
		n := low7 - 0x50
		vi.addUnit("kg/h", int8(n)-3)
		vi.DecimalScaleExponent = int16(n) - 3
		vi.addLabel(LabelMassFlow)
	case low7 >= 0x58 && low7 <= 0x5F:
		n := low7 - 0x58
		vi.addUnit("C", int8(n)-3)
		vi.DecimalScaleExponent = int16(n) - 3
		vi.addLabel(LabelFlowTemperature)
	case low7 >= 0x60 && low7 <= 0x63:
		n := low7 - 0x60
		vi.addUnit("K", int8(n)-3)
		vi.DecimalScaleExponent = int16(n) - 3
		vi.addLabel(LabelTemperatureDifference)
	case low7 >= 0x64 && low7 <= 0x67:
		n := low7 - 0x64
		vi.addUnit("C", int8(n)-3)
		vi.DecimalScaleExponent = int16(n) - 3
		vi.addLabel(LabelReturnTemperature)
	case low7 >= 0x68 && low7 <= 0x6B:
		n := low7 - 0x68
		vi.addUnit("bar", int8(n)-3)
		vi.DecimalScaleExponent = int16(n) - 3
		vi.addLabel(LabelPressure)
	case low7 == 0x6C:
		vi.addLabel(LabelDate)
	case low7 == 0x6D:
		vi.addLabel(LabelDateTime)
	case low7 >= 0x72 && low7 <= 0x73:
		vi.addLabel(LabelAveragingDuration)
	case low7 >= 0x74 && low7 <= 0x77:
		vi.addLabel(LabelActualityDuration)
	case low7 == 0x78:
		vi.addLabel(LabelFabricationNumber)
	default:
		// Reserved/unallocated primary range: no unit or label imposed,
		// matching the original's conservative "no panic" posture.
	}
}

// applyOrthogonal walks the combinable orthogonal VIFE table (§4.G,
// selected entries).
func applyOrthogonal(vi *ValueInformation, vifes []byte) {
	for _, raw := range vifes {
		b := raw & 0x7F
		switch {
		case b == 0x12:
			vi.addLabel(LabelAveraged)
		case b >= 0x20 && b <= 0x26:
			// per second/minute/hour/day/week/month/year — time-base
			// modifier, no additional scale change tracked here.
		case b == 0x2C:
			vi.addUnit("L", 0)
		case b == 0x2D:
			vi.addUnit("m-3", 0)
		case b == 0x2E:
			vi.addUnit("kg-1", 0)
		case b == 0x2F:
			vi.addUnit("K-1", 0)
		case b >= 0x70 && b <= 0x77:
			vi.DecimalScaleExponent += int16(b-0x70) - 6
		case b >= 0x78 && b <= 0x7B:
			vi.DecimalOffsetExponent = int16(b-0x78) - 3
		}
	}
}

// interpretMainExtension implements a representative subset of the
// Main-VIF Extension table (0xFD), keyed by the first VIFE byte.
func interpretMainExtension(vi *ValueInformation, vifes []byte) {
	if len(vifes) == 0 {
		return
	}
	switch vifes[0] & 0x7F {
	case 0x17:
		vi.addLabel(LabelErrorFlags)
	case 0x1B:
		vi.addLabel(LabelDigitalOutput)
	case 0x1D:
		vi.addLabel(LabelDigitalInput)
	case 0x1F:
		vi.addLabel(LabelBaudRate)
	case 0x23:
		vi.addLabel(LabelRemainingBatteryLife)
	case 0x26:
		vi.addLabel(LabelParameterSetIdentification)
	case 0x27:
		vi.addLabel(LabelModelVersion)
	case 0x28:
		vi.addLabel(LabelHardwareVersion)
	case 0x29:
		vi.addLabel(LabelFirmwareVersion)
	case 0x0C:
		vi.addLabel(LabelCredit)
	case 0x0D:
		vi.addLabel(LabelDebit)
	case 0x0A, 0x0B:
		vi.addLabel(LabelAccessCode)
	default:
		vi.addLabel(LabelManufacturerSpecific)
	}
}

// interpretAlternateExtension implements a representative subset of the
// Alternate-VIF Extension table (0xFB), keyed by the first VIFE byte.
func interpretAlternateExtension(vi *ValueInformation, vifes []byte) {
	if len(vifes) == 0 {
		return
	}
	switch vifes[0] & 0x7F {
	case 0x00, 0x01:
		n := int8(vifes[0]&0x7F) + 5
		vi.addUnit("Wh", n)
		vi.DecimalScaleExponent = int16(n)
		vi.addLabel(LabelEnergy)
	case 0x02, 0x03:
		vi.addLabel(LabelReactiveEnergy)
	case 0x14, 0x15:
		vi.addUnit("ft3", 0)
		vi.addLabel(LabelVolume)
	case 0x28, 0x29, 0x2A, 0x2B:
		vi.addLabel(LabelVoltage)
	case 0x2C, 0x2D, 0x2E, 0x2F:
		vi.addLabel(LabelCurrent)
	case 0x74, 0x75:
		vi.addLabel(LabelFrequency)
	case 0x76, 0x77:
		vi.addLabel(LabelHeatCostAllocatorFactor)
	default:
		vi.addLabel(LabelApparentEnergy)
	}
}
