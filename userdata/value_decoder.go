package userdata

import (
	"encoding/binary"
	"math"

	"github.com/rob-gra/go-mbus/mbus"
)

const maxText = 18

// DataTypeKind discriminates the decoded value's shape.
type DataTypeKind int

const (
	DataNone DataTypeKind = iota
	DataNumber
	DataLossyNumber
	DataText
	DataDateG
	DataDateTimeF
	DataDateTimeI
	DataTimeJ
	DataManufacturerSpecific
)

// DataType is the decoded value carried by a DataRecord.
type DataType struct {
	Kind   DataTypeKind
	Number float64
	Text   []byte
	Date   Date
	Raw    []byte
}

// Date is the shared decode product of date/time types G/F/I/J; fields
// not present in a given type are left zero.
type Date struct {
	Second       int
	Minute       int
	Hour         int
	Day          int
	Month        int
	Year         int
	DST          bool
	DayUnspecified bool
	MonthInvalid   bool
}

// DecodeValue consumes the bytes for coding from the front of data and
// returns the decoded value plus the number of bytes consumed, per the
// table in §4.H.
func DecodeValue(coding DataFieldCoding, data []byte) (DataType, int, error) {
	switch coding {
	case CodingNoData, CodingSelectionForReadout:
		return DataType{Kind: DataNone}, 0, nil

	case CodingInt8:
		if len(data) < 1 {
			return DataType{}, 0, insufficientData()
		}
		return DataType{Kind: DataNumber, Number: float64(int8(data[0]))}, 1, nil

	case CodingInt16:
		if len(data) < 2 {
			return DataType{}, 0, insufficientData()
		}
		v := int16(binary.LittleEndian.Uint16(data))
		return DataType{Kind: DataNumber, Number: float64(v)}, 2, nil

	case CodingInt24:
		if len(data) < 3 {
			return DataType{}, 0, insufficientData()
		}
		u := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
		if u&0x800000 != 0 {
			u |= 0xFF000000
		}
		return DataType{Kind: DataNumber, Number: float64(int32(u))}, 3, nil

	case CodingInt32:
		if len(data) < 4 {
			return DataType{}, 0, insufficientData()
		}
		v := int32(binary.LittleEndian.Uint32(data))
		return DataType{Kind: DataNumber, Number: float64(v)}, 4, nil

	case CodingReal32:
		if len(data) < 4 {
			return DataType{}, 0, insufficientData()
		}
		f := math.Float32frombits(binary.LittleEndian.Uint32(data))
		return DataType{Kind: DataNumber, Number: float64(f)}, 4, nil

	case CodingInt48:
		if len(data) < 6 {
			return DataType{}, 0, insufficientData()
		}
		var u uint64
		for i := 5; i >= 0; i-- {
			u = u<<8 | uint64(data[i])
		}
		if u&0x800000000000 != 0 {
			u |= 0xFFFF000000000000
		}
		return DataType{Kind: DataNumber, Number: float64(int64(u))}, 6, nil

	case CodingInt64:
		if len(data) < 8 {
			return DataType{}, 0, insufficientData()
		}
		v := int64(binary.LittleEndian.Uint64(data))
		return DataType{Kind: DataNumber, Number: float64(v)}, 8, nil

	case CodingBCD2:
		return decodeBCD(data, 1)
	case CodingBCD4:
		return decodeBCD(data, 2)
	case CodingBCD6:
		return decodeBCD(data, 3)
	case CodingBCD8:
		return decodeBCD(data, 4)
	case CodingBCD12:
		return decodeBCD(data, 6)

	case CodingVariableLength:
		return decodeVariableLength(data)

	case CodingDateTypeG:
		if len(data) < 2 {
			return DataType{}, 0, insufficientData()
		}
		return DataType{Kind: DataDateG, Date: decodeDateG(data[0], data[1])}, 2, nil

	case CodingDateTimeTypeF:
		if len(data) < 4 {
			return DataType{}, 0, insufficientData()
		}
		return DataType{Kind: DataDateTimeF, Date: decodeDateTimeF(data[0], data[1], data[2], data[3])}, 4, nil

	case CodingDateTimeTypeI:
		if len(data) < 6 {
			return DataType{}, 0, insufficientData()
		}
		d := decodeDateTimeF(data[1], data[2], data[3], data[4])
		d.Second = int(data[0] & 0x3F)
		return DataType{Kind: DataDateTimeI, Date: d}, 6, nil

	case CodingTimeTypeJ:
		if len(data) < 3 {
			return DataType{}, 0, insufficientData()
		}
		d := Date{
			Second: int(data[0] & 0x3F),
			Minute: int(data[1] & 0x3F),
			Hour:   int(data[2] & 0x1F),
		}
		return DataType{Kind: DataTimeJ, Date: d}, 3, nil

	case CodingSpecial:
		return DataType{Kind: DataManufacturerSpecific, Raw: data}, len(data), nil

	default:
		return DataType{}, 0, insufficientData()
	}
}

func insufficientData() error {
	return &mbus.DataRecordError{Insufficient: true}
}

// decodeBCD decodes n bytes of packed BCD with sign-magnitude handling:
// an all-0xF-nibble field is the lossy sentinel (§4.H).
func decodeBCD(data []byte, n int) (DataType, int, error) {
	if len(data) < n {
		return DataType{}, 0, insufficientData()
	}
	field := data[:n]
	if mbus.AllNibblesF(field) {
		return DataType{Kind: DataLossyNumber, Number: -1.0}, n, nil
	}

	negative := field[n-1]>>4 == 0xF
	magnitude := make([]byte, n)
	copy(magnitude, field)
	if negative {
		magnitude[n-1] &= 0x0F
	}
	var f float64
	for i := n - 1; i >= 0; i-- {
		hi, lo := magnitude[i]>>4, magnitude[i]&0x0F
		if hi > 9 || lo > 9 {
			return DataType{}, 0, &mbus.DataRecordError{Inner: &mbus.DataInformationError{Kind: mbus.DIErrInvalidValueInformation}}
		}
		f = f*100 + float64(hi)*10 + float64(lo)
	}
	if negative {
		f = -f
	}
	return DataType{Kind: DataNumber, Number: f}, n, nil
}

// decodeVariableLength implements the leading-byte classification table
// of §4.H.
func decodeVariableLength(data []byte) (DataType, int, error) {
	if len(data) < 1 {
		return DataType{}, 0, insufficientData()
	}
	lead := data[0]
	rest := data[1:]

	switch {
	case lead <= 0xBF:
		n := int(lead)
		if n > maxText {
			n = maxText
		}
		if len(rest) < n {
			return DataType{}, 0, insufficientData()
		}
		return DataType{Kind: DataText, Text: rest[:n]}, 1 + n, nil

	case lead >= 0xC0 && lead <= 0xD9:
		n := int(lead & 0x0F)
		return decodeVariableBCD(rest, n, lead > 0xC9)

	case lead >= 0xE0 && lead <= 0xE9:
		n := int(lead - 0xE0)
		if len(rest) < n {
			return DataType{}, 0, insufficientData()
		}
		if mbus.AllNibblesF(rest[:n]) {
			return DataType{Kind: DataLossyNumber, Number: -1.0}, 1 + n, nil
		}
		var u uint64
		for i := n - 1; i >= 0; i-- {
			u = u<<8 | uint64(rest[i])
		}
		return DataType{Kind: DataNumber, Number: float64(u)}, 1 + n, nil

	case lead >= 0xF0 && lead <= 0xF4:
		n := int(lead-0xF0) + 1
		if len(rest) < n {
			return DataType{}, 0, insufficientData()
		}
		var u uint64
		for i := n - 1; i >= 0; i-- {
			u = u<<8 | uint64(rest[i])
		}
		return DataType{Kind: DataNumber, Number: float64(u)}, 1 + n, nil

	case lead == 0xF5:
		if len(rest) < 6 {
			return DataType{}, 0, insufficientData()
		}
		var u uint64
		for i := 5; i >= 0; i-- {
			u = u<<8 | uint64(rest[i])
		}
		return DataType{Kind: DataNumber, Number: float64(u)}, 1 + 6, nil

	case lead == 0xF6:
		if len(rest) < 8 {
			return DataType{}, 0, insufficientData()
		}
		u := binary.LittleEndian.Uint64(rest[:8])
		return DataType{Kind: DataNumber, Number: float64(u)}, 1 + 8, nil

	default:
		return DataType{}, 0, &mbus.DataRecordError{Inner: &mbus.DataInformationError{Kind: mbus.DIErrInvalidValueInformation}}
	}
}

func decodeVariableBCD(rest []byte, n int, negative bool) (DataType, int, error) {
	if len(rest) < n {
		return DataType{}, 0, insufficientData()
	}
	field := rest[:n]
	if mbus.AllNibblesF(field) {
		return DataType{Kind: DataLossyNumber, Number: -1.0}, 1 + n, nil
	}
	var f float64
	for i := n - 1; i >= 0; i-- {
		hi, lo := field[i]>>4, field[i]&0x0F
		if hi > 9 || lo > 9 {
			return DataType{}, 0, &mbus.DataRecordError{Inner: &mbus.DataInformationError{Kind: mbus.DIErrInvalidValueInformation}}
		}
		f = f*100 + float64(hi)*10 + float64(lo)
	}
	if negative {
		f = -f
	}
	return DataType{Kind: DataNumber, Number: f}, 1 + n, nil
}

// decodeDateG implements Type G (2 bytes).
func decodeDateG(b0, b1 byte) Date {
	day := int(b0 & 0x1F)
	month := int(b1 & 0x0F)
	year7 := int((b0&0xE0)>>5) | int((b1&0xF0)>>1)
	year := 2000 + year7
	if year7 > 80 {
		year = 1900 + year7
	}
	return Date{
		Day:            day,
		Month:          month,
		Year:           year,
		DayUnspecified: day == 0,
		MonthInvalid:   month == 15,
	}
}

// decodeDateTimeF implements Type F (4 bytes, minute resolution).
func decodeDateTimeF(b0, b1, b2, b3 byte) Date {
	d := decodeDateG(b2, b3)
	d.Minute = int(b0 & 0x3F)
	d.Hour = int(b1 & 0x1F)
	d.DST = b1&0x80 != 0
	return d
}
