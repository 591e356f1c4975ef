package mbus

import "fmt"

// FrameError reports a failure to recognise or validate a link-layer frame.
// It is the outermost error of a decode: when returned, no part of the
// telegram is trustworthy.
type FrameError struct {
	Kind     FrameErrorKind
	Length   int
	Expected int
	Actual   int
	Byte     byte
}

// FrameErrorKind discriminates the FrameError cases named in the wired and
// wireless framer designs.
type FrameErrorKind int

const (
	FrameErrEmptyData FrameErrorKind = iota
	FrameErrInvalidStartByte
	FrameErrInvalidStopByte
	FrameErrWrongLengthIndication
	FrameErrLengthShort
	FrameErrLengthShorterThanSix
	FrameErrWrongLength
	FrameErrWrongChecksum
	FrameErrWrongCrc
	FrameErrInvalidControlInformation
	FrameErrInvalidFunction
)

func (e *FrameError) Error() string {
	switch e.Kind {
	case FrameErrEmptyData:
		return "mbus: empty data"
	case FrameErrInvalidStartByte:
		return "mbus: invalid start byte"
	case FrameErrInvalidStopByte:
		return "mbus: invalid stop byte"
	case FrameErrWrongLengthIndication:
		return "mbus: wrong length indication"
	case FrameErrLengthShort:
		return "mbus: length short"
	case FrameErrLengthShorterThanSix:
		return fmt.Sprintf("mbus: length shorter than six: %d", e.Length)
	case FrameErrWrongLength:
		return fmt.Sprintf("mbus: wrong length, expected %d, actual %d", e.Expected, e.Actual)
	case FrameErrWrongChecksum:
		return fmt.Sprintf("mbus: wrong checksum, expected %d, actual %d", e.Expected, e.Actual)
	case FrameErrWrongCrc:
		return fmt.Sprintf("mbus: wrong crc, expected %d, actual %d", e.Expected, e.Actual)
	case FrameErrInvalidControlInformation:
		return fmt.Sprintf("mbus: invalid control information: 0x%02X", e.Byte)
	case FrameErrInvalidFunction:
		return fmt.Sprintf("mbus: invalid function: 0x%02X", e.Byte)
	default:
		return "mbus: frame error"
	}
}

// ApplicationLayerError reports a failure while dispatching or parsing the
// application-layer payload carried inside an already-recognised frame.
type ApplicationLayerError struct {
	Kind    ApplicationLayerErrorKind
	Byte    byte
	Code    string
	Digits  int
	Partial uint32
	Feature string
}

type ApplicationLayerErrorKind int

const (
	ALErrMissingControlInformation ApplicationLayerErrorKind = iota
	ALErrInvalidControlInformation
	ALErrInvalidManufacturerCode
	ALErrIdentificationNumberError
	ALErrInsufficientData
	ALErrUnimplemented
)

func (e *ApplicationLayerError) Error() string {
	switch e.Kind {
	case ALErrMissingControlInformation:
		return "mbus: missing control information byte"
	case ALErrInvalidControlInformation:
		return fmt.Sprintf("mbus: invalid control information: 0x%02X", e.Byte)
	case ALErrInvalidManufacturerCode:
		return fmt.Sprintf("mbus: invalid manufacturer code: %q", e.Code)
	case ALErrIdentificationNumberError:
		return fmt.Sprintf("mbus: identification number error: %d digits, partial %d", e.Digits, e.Partial)
	case ALErrInsufficientData:
		return "mbus: insufficient data"
	case ALErrUnimplemented:
		return fmt.Sprintf("mbus: unimplemented: %s", e.Feature)
	default:
		return "mbus: application layer error"
	}
}

// DataInformationError reports a failure decoding the DIF/DIFE chain.
type DataInformationError struct {
	Kind DataInformationErrorKind
}

type DataInformationErrorKind int

const (
	DIErrNoData DataInformationErrorKind = iota
	DIErrDataTooLong
	DIErrDataTooShort
	DIErrInvalidValueInformation
)

func (e *DataInformationError) Error() string {
	switch e.Kind {
	case DIErrNoData:
		return "mbus: no data"
	case DIErrDataTooLong:
		return "mbus: data information chain too long"
	case DIErrDataTooShort:
		return "mbus: data information chain too short"
	case DIErrInvalidValueInformation:
		return "mbus: invalid value information"
	default:
		return "mbus: data information error"
	}
}

// DataRecordError wraps a DataInformationError or flags that the payload
// ran out mid-record.
type DataRecordError struct {
	Inner         *DataInformationError
	Insufficient  bool
}

func (e *DataRecordError) Error() string {
	if e.Insufficient {
		return "mbus: insufficient data for record"
	}
	if e.Inner != nil {
		return e.Inner.Error()
	}
	return "mbus: data record error"
}

func (e *DataRecordError) Unwrap() error {
	if e.Inner != nil {
		return e.Inner
	}
	return nil
}

// DecryptionError reports a failure in the AES-CBC decryption component.
type DecryptionError struct {
	Kind DecryptionErrorKind
	Mode SecurityMode
}

type DecryptionErrorKind int

const (
	DecErrUnsupportedMode DecryptionErrorKind = iota
	DecErrKeyNotFound
	DecErrDecryptionFailed
	DecErrInvalidKeyLength
	DecErrInvalidDataLength
	DecErrNotEncrypted
	DecErrUnknownEncryptionState
)

func (e *DecryptionError) Error() string {
	switch e.Kind {
	case DecErrUnsupportedMode:
		return fmt.Sprintf("mbus: unsupported security mode: %v", e.Mode)
	case DecErrKeyNotFound:
		return "mbus: decryption key not found"
	case DecErrDecryptionFailed:
		return "mbus: decryption operation failed"
	case DecErrInvalidKeyLength:
		return "mbus: invalid key length"
	case DecErrInvalidDataLength:
		return "mbus: invalid data length"
	case DecErrNotEncrypted:
		return "mbus: data is not encrypted"
	case DecErrUnknownEncryptionState:
		return "mbus: unknown encryption state for this data block type"
	default:
		return "mbus: decryption error"
	}
}
