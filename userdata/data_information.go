// Package userdata implements the Transport/Application-Layer parsing
// stack: TPL headers, the Control-Information dispatcher, the DIF/DIFE
// and VIF/VIFE record grammar, the value decoder and the record
// iterator. It is grounded on the teacher's ASDU layer (bit-packed
// information objects, a byte-cursor codec, a closed TypeID-style
// enumeration) applied to M-Bus's own self-describing record format.
package userdata

import "github.com/rob-gra/go-mbus/mbus"

const maxDIFEChain = 10

// FunctionField is DIF bits 5..4.
type FunctionField int

const (
	FunctionInstantaneous FunctionField = iota
	FunctionMax
	FunctionMin
	FunctionErrorState
)

// SpecialFunction is the DIF==0x0F "special" coding, keyed off the first
// DIFE byte rather than the usual DIFE accumulation.
type SpecialFunction int

const (
	SpecialManufacturerSpecific SpecialFunction = iota
	SpecialMoreRecordsFollow
	SpecialIdleFiller
	SpecialGlobalReadoutRequest
	SpecialReserved
)

// DataFieldCoding is DIF bits 3..0, plus the date/time overrides applied
// after VIB decoding (§4.G's final paragraph).
type DataFieldCoding int

const (
	CodingNoData DataFieldCoding = iota
	CodingInt8
	CodingInt16
	CodingInt24
	CodingInt32
	CodingReal32
	CodingInt48
	CodingInt64
	CodingSelectionForReadout
	CodingBCD2
	CodingBCD4
	CodingBCD6
	CodingBCD8
	CodingVariableLength
	CodingBCD12
	CodingSpecial
	// Overrides applied by the VIB post-pass; not produced directly by
	// the DIF table.
	CodingDateTypeG
	CodingDateTimeTypeF
	CodingDateTimeTypeI
	CodingTimeTypeJ
)

// dataFieldCodingTable maps DIF bits 3..0 to a coding, per §4.F.
var dataFieldCodingTable = [16]DataFieldCoding{
	CodingNoData, CodingInt8, CodingInt16, CodingInt24,
	CodingInt32, CodingReal32, CodingInt48, CodingInt64,
	CodingSelectionForReadout, CodingBCD2, CodingBCD4, CodingBCD6,
	CodingBCD8, CodingVariableLength, CodingBCD12, CodingSpecial,
}

// DataInformationBlock is the raw DIF plus up to 10 DIFE bytes.
type DataInformationBlock struct {
	DIF   byte
	DIFEs []byte // len <= maxDIFEChain
}

func hasExtension(b byte) bool { return b&0x80 != 0 }

// ParseDataInformationBlock accumulates the DIF/DIFE chain from the front
// of data, per §4.F: bit 0x80 of each byte signals a further extension
// byte, up to 10 DIFE bytes (chain length <= 11 total).
func ParseDataInformationBlock(data []byte) (DataInformationBlock, int, error) {
	if len(data) == 0 {
		return DataInformationBlock{}, 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooShort}
	}
	dif := data[0]
	block := DataInformationBlock{DIF: dif}
	if !hasExtension(dif) {
		return block, 1, nil
	}

	offset := 1
	for {
		if len(block.DIFEs) >= maxDIFEChain {
			return DataInformationBlock{}, 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooLong}
		}
		if offset >= len(data) {
			return DataInformationBlock{}, 0, &mbus.DataInformationError{Kind: mbus.DIErrDataTooShort}
		}
		b := data[offset]
		block.DIFEs = append(block.DIFEs, b)
		offset++
		if !hasExtension(b) {
			break
		}
	}
	return block, offset, nil
}

// DataInformation is the decoded semantic content of a DataInformationBlock.
type DataInformation struct {
	StorageNumber  uint64
	Tariff         uint64
	SubUnit        uint32
	FunctionField  FunctionField
	Coding         DataFieldCoding
	Special        SpecialFunction
	SpecialIsValid bool
}

// Interpret computes storage_number/tariff/sub_unit/function_field/coding
// from a parsed DataInformationBlock, per §4.F's bit-accumulation rules.
func (b DataInformationBlock) Interpret() DataInformation {
	di := DataInformation{
		StorageNumber: uint64((b.DIF & 0b0100_0000) >> 6),
		FunctionField: FunctionField((b.DIF & 0b0011_0000) >> 4),
	}
	for i, dife := range b.DIFEs {
		extIndex := uint(i + 1)
		di.StorageNumber |= uint64(dife&0x0F) << ((extIndex * 4) + 1)
		di.Tariff |= uint64((dife&0x30)>>4) << (extIndex * 2)
		di.SubUnit |= uint32((dife&0x40)>>6) << extIndex
	}

	codingBits := b.DIF & 0x0F
	di.Coding = dataFieldCodingTable[codingBits]
	if di.Coding == CodingSpecial {
		di.SpecialIsValid = true
		var first byte
		if len(b.DIFEs) > 0 {
			first = b.DIFEs[0]
		} else {
			first = b.DIF
		}
		switch first {
		case 0x0F:
			di.Special = SpecialManufacturerSpecific
		case 0x1F:
			di.Special = SpecialMoreRecordsFollow
		case 0x2F:
			di.Special = SpecialIdleFiller
		case 0x7F:
			di.Special = SpecialGlobalReadoutRequest
		default:
			di.Special = SpecialReserved
		}
	}
	return di
}

// CodingSize returns the number of payload bytes the value decoder
// (component H) must consume for a given non-variable, non-special
// coding. VariableLength and Special are data-driven and return -1.
func CodingSize(c DataFieldCoding) int {
	switch c {
	case CodingNoData, CodingSelectionForReadout:
		return 0
	case CodingInt8, CodingBCD2:
		return 1
	case CodingInt16, CodingBCD4, CodingDateTypeG:
		return 2
	case CodingInt24:
		return 3
	case CodingInt32, CodingReal32:
		return 4
	case CodingBCD6:
		return 3
	case CodingBCD8, CodingDateTimeTypeF:
		return 4
	case CodingInt48:
		return 6
	case CodingBCD12, CodingDateTimeTypeI:
		return 6
	case CodingInt64:
		return 8
	case CodingTimeTypeJ:
		return 3
	case CodingVariableLength, CodingSpecial:
		return -1
	default:
		return -1
	}
}
