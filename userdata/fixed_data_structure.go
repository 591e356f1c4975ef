package userdata

import "github.com/rob-gra/go-mbus/mbus"

// FixedDataStructure is the 16-byte payload shape carried by
// ResponseWithFixedDataStructure telegrams (CI 0x73/0x77): an
// identification number, access number, status byte, a raw
// device-and-unit word, and two BCD counters.
type FixedDataStructure struct {
	IdentificationNumber uint32
	AccessNumber         byte
	Status               mbus.StatusField
	DeviceAndUnit        uint16
	Counter1             uint32
	Counter2             uint32
}

// ParseFixedDataStructure decodes the 16-byte fixed data structure.
func ParseFixedDataStructure(data []byte) (FixedDataStructure, int, error) {
	if len(data) < 16 {
		return FixedDataStructure{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
	}
	id, ok := mbus.BCDToUint32(data[0:4])
	if !ok {
		return FixedDataStructure{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrIdentificationNumberError, Digits: 8}
	}
	counter1, ok := mbus.BCDToUint32(data[8:12])
	if !ok {
		return FixedDataStructure{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
	}
	counter2, ok := mbus.BCDToUint32(data[12:16])
	if !ok {
		return FixedDataStructure{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
	}
	return FixedDataStructure{
		IdentificationNumber: id,
		AccessNumber:         data[4],
		Status:               mbus.StatusFieldFromByte(data[5]),
		DeviceAndUnit:        uint16(data[6])<<8 | uint16(data[7]),
		Counter1:             counter1,
		Counter2:             counter2,
	}, 16, nil
}
