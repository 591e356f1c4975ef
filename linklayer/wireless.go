package linklayer

import "github.com/rob-gra/go-mbus/mbus"

// WirelessFormat distinguishes the two CRC layouts a wireless telegram's
// payload may use. Per §9's open question, EN 13757-4 must be consulted
// before trusting a specific CRC interpretation; both shapes are
// preserved here rather than collapsed into one.
type WirelessFormat int

const (
	WirelessFormatUnknown WirelessFormat = iota
	WirelessFormatA
	WirelessFormatB
)

// WirelessFrame is the decode product of a captured wireless M-Bus
// telegram: the 8-byte manufacturer-id block (manufacturer code,
// identification number, version, device type) plus the remaining payload.
type WirelessFrame struct {
	Function             mbus.Function
	ManufacturerCode      mbus.ManufacturerCode
	IdentificationNumber  uint32
	Version               byte
	DeviceType            mbus.DeviceType
	Format                WirelessFormat
	Payload               []byte
}

// DecodeWireless recognises a wireless M-Bus telegram per §4.C: an
// L-field byte, a C-field (function) byte, then the 8-byte
// manufacturer-id block (2-byte manufacturer code, 4-byte BCD
// identification number, version, device type), with the remainder
// treated as payload.
func DecodeWireless(data []byte) (WirelessFrame, error) {
	if len(data) == 0 {
		return WirelessFrame{}, &mbus.FrameError{Kind: mbus.FrameErrEmptyData}
	}
	length := int(data[0])
	if length+1 != len(data) {
		return WirelessFrame{}, &mbus.FrameError{
			Kind:     mbus.FrameErrWrongLength,
			Expected: length + 1,
			Actual:   len(data),
		}
	}
	if len(data) < 12 {
		return WirelessFrame{}, &mbus.FrameError{Kind: mbus.FrameErrLengthShort}
	}

	fn, err := mbus.ParseFunction(data[1])
	if err != nil {
		return WirelessFrame{}, err
	}

	manufacturerID := uint16(data[2]) | uint16(data[3])<<8
	manufacturer, err := mbus.ManufacturerCodeFromID(manufacturerID)
	if err != nil {
		return WirelessFrame{}, err
	}

	idValue, ok := mbus.BCDToUint32(data[4:8])
	if !ok {
		return WirelessFrame{}, &mbus.ApplicationLayerError{Kind: mbus.ALErrIdentificationNumberError, Digits: 8}
	}

	version := data[8]
	deviceType := mbus.DeviceTypeFromByte(data[9])
	payload := data[10:]

	format := classifyFormat(payload)

	return WirelessFrame{
		Function:             fn,
		ManufacturerCode:      manufacturer,
		IdentificationNumber:  idValue,
		Version:               version,
		DeviceType:            deviceType,
		Format:                format,
		Payload:               payload,
	}, nil
}

// classifyFormat is a best-effort Format A/B discriminator: Format B
// telegrams carry a trailing 2-byte CRC covering the whole payload, while
// Format A telegrams interleave a CRC every 16 data bytes. Neither layout
// is validated here — see §9 — callers that need CRC validation must
// consult EN 13757-4 and supply their own check.
func classifyFormat(payload []byte) WirelessFormat {
	if len(payload) == 0 {
		return WirelessFormatUnknown
	}
	if len(payload) <= 16 {
		return WirelessFormatB
	}
	return WirelessFormatA
}
