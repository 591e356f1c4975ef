package userdata

import (
	"encoding/binary"

	"github.com/rob-gra/go-mbus/mbus"
)

// ShortTplHeader is the 4-byte Transport Layer header carried by a
// short-frame telegram: access number, status and configuration field
// only, no identification block.
type ShortTplHeader struct {
	AccessNumber      byte
	Status            mbus.StatusField
	ConfigurationField mbus.ConfigurationField
}

// ParseShortTplHeader decodes a 4-byte short TPL header.
func ParseShortTplHeader(data []byte) (ShortTplHeader, int, error) {
	if len(data) < 4 {
		return ShortTplHeader{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
	}
	return ShortTplHeader{
		AccessNumber:       data[0],
		Status:             mbus.StatusFieldFromByte(data[1]),
		ConfigurationField: mbus.ConfigurationFieldFromBytes(data[2], data[3]),
	}, 4, nil
}

// LongTplHeader is the 12-byte Transport Layer header carried by a
// long-frame telegram: a full identification block followed by the
// short header's fields.
type LongTplHeader struct {
	IdentificationNumber uint32
	Manufacturer         mbus.ManufacturerCode
	Version              byte
	DeviceType           mbus.DeviceType
	Short                ShortTplHeader
	// LsbOrder records which of the two ResponseWithVariableDataStructure
	// control-information bytes selected this header (0x72 natural-order
	// vs 0x76, which carries the 4-byte identification number reversed).
	LsbOrder bool
}

// ParseLongTplHeader decodes a 12-byte long TPL header.
func ParseLongTplHeader(data []byte, lsbOrder bool) (LongTplHeader, int, error) {
	if len(data) < 12 {
		return LongTplHeader{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
	}
	// CI 0x76 selects the "other order" variant: only the 4-byte
	// identification number is carried byte-reversed on the wire relative
	// to CI 0x72; manufacturer, version and device type keep their normal
	// positions and orientation.
	idBytes := data[0:4]
	if lsbOrder {
		reversed := make([]byte, 4)
		for i, b := range idBytes {
			reversed[3-i] = b
		}
		idBytes = reversed
	}

	id, ok := mbus.BCDToUint32(idBytes)
	if !ok {
		return LongTplHeader{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrIdentificationNumberError, Digits: 8}
	}
	manufacturerID := binary.LittleEndian.Uint16(data[4:6])
	manufacturer, err := mbus.ManufacturerCodeFromID(manufacturerID)
	if err != nil {
		return LongTplHeader{}, 0, err
	}
	version := data[6]
	deviceType := mbus.DeviceTypeFromByte(data[7])

	short, _, err := ParseShortTplHeader(data[8:12])
	if err != nil {
		return LongTplHeader{}, 0, err
	}

	return LongTplHeader{
		IdentificationNumber: id,
		Manufacturer:         manufacturer,
		Version:              version,
		DeviceType:           deviceType,
		Short:                short,
		LsbOrder:             lsbOrder,
	}, 12, nil
}

// ExtendedLinkLayerShape discriminates the three ELL overlay shapes that
// can precede the TPL header on a wireless telegram, per §4.D.
type ExtendedLinkLayerShape int

const (
	ELLShapeI ExtendedLinkLayerShape = iota
	ELLShapeII
	ELLShapeIII
)

// ExtendedLinkLayer is the optional overlay carried between the wireless
// link-layer frame and the TPL header when the control-information byte
// selects ExtendedLinkLayerI/II/III.
type ExtendedLinkLayer struct {
	Shape            ExtendedLinkLayerShape
	CommunicationControl byte
	AccessNumber     byte
	// Shape II/III only.
	SessionNumber uint32
	// Shape III only.
	Manufacturer mbus.ManufacturerCode
	IdentificationNumber uint32
	Version              byte
	DeviceType           mbus.DeviceType
}

// ParseExtendedLinkLayer decodes the 2-byte (I), 8-byte (II) or 16-byte
// (III) ELL shape named by shape.
func ParseExtendedLinkLayer(data []byte, shape ExtendedLinkLayerShape) (ExtendedLinkLayer, int, error) {
	switch shape {
	case ELLShapeI:
		if len(data) < 2 {
			return ExtendedLinkLayer{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
		}
		return ExtendedLinkLayer{
			Shape:                ELLShapeI,
			CommunicationControl: data[0],
			AccessNumber:         data[1],
		}, 2, nil

	case ELLShapeII:
		if len(data) < 8 {
			return ExtendedLinkLayer{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
		}
		return ExtendedLinkLayer{
			Shape:                ELLShapeII,
			CommunicationControl: data[0],
			AccessNumber:         data[1],
			SessionNumber:        binary.LittleEndian.Uint32(data[4:8]),
		}, 8, nil

	case ELLShapeIII:
		if len(data) < 16 {
			return ExtendedLinkLayer{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrInsufficientData}
		}
		manufacturerID := binary.LittleEndian.Uint16(data[2:4])
		manufacturer, err := mbus.ManufacturerCodeFromID(manufacturerID)
		if err != nil {
			return ExtendedLinkLayer{}, 0, err
		}
		id, ok := mbus.BCDToUint32(data[4:8])
		if !ok {
			return ExtendedLinkLayer{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrIdentificationNumberError, Digits: 8}
		}
		return ExtendedLinkLayer{
			Shape:                ELLShapeIII,
			CommunicationControl: data[0],
			Manufacturer:         manufacturer,
			IdentificationNumber: id,
			Version:              data[8],
			DeviceType:           mbus.DeviceTypeFromByte(data[9]),
			SessionNumber:        binary.LittleEndian.Uint32(data[10:14]),
			AccessNumber:         data[1],
		}, 16, nil

	default:
		return ExtendedLinkLayer{}, 0, &mbus.ApplicationLayerError{Kind: mbus.ALErrUnimplemented, Feature: "extended link layer shape"}
	}
}
