package userdata

import "github.com/rob-gra/go-mbus/mbus"

// UserDataBlock is the dispatched result of decoding the application-layer
// payload that follows a link-layer frame, per §4.E. Only the fields
// relevant to ControlInformation are populated; the rest stay zero.
type UserDataBlock struct {
	ControlInformation ControlInformation
	Direction          Direction

	ResetSubcode *ApplicationResetSubcode

	// ExtendedLinkLayer is set when a CIExtendedLinkLayerI header preceded
	// the inner CI; the rest of this block describes that recursively
	// re-dispatched inner payload, per §4.E.
	ExtendedLinkLayer *ExtendedLinkLayer

	ShortHeader *ShortTplHeader
	LongHeader  *LongTplHeader
	Fixed       *FixedDataStructure

	// Records is nil whenever the configuration field selects a security
	// mode other than NoEncryption; Encrypted then holds the still-opaque
	// ciphertext for the decryption package to process.
	Records   *DataRecords
	Encrypted []byte
}

// ParseUserDataBlock reads the control-information byte and dispatches to
// the matching decoder. Variants the application layer does not implement
// surface ApplicationLayerError{Kind: ALErrUnimplemented} naming the
// feature, per §4.E's closed-dispatch contract.
func ParseUserDataBlock(data []byte, opts Options) (UserDataBlock, error) {
	if len(data) == 0 {
		return UserDataBlock{}, &mbus.ApplicationLayerError{Kind: mbus.ALErrMissingControlInformation}
	}

	ci, implemented, feature, err := ControlInformationFromByte(data[0])
	if err != nil {
		return UserDataBlock{}, err
	}
	block := UserDataBlock{ControlInformation: ci, Direction: ci.Direction()}
	if !implemented {
		return block, &mbus.ApplicationLayerError{Kind: mbus.ALErrUnimplemented, Feature: feature}
	}

	rest := data[1:]

	switch ci {
	case CIResetAtApplicationLevel:
		if len(rest) >= 1 {
			sc := ParseApplicationResetSubcode(rest[0])
			block.ResetSubcode = &sc
		}
		return block, nil

	case CIResponseWithFixedDataStructure:
		fixed, _, err := ParseFixedDataStructure(rest)
		if err != nil {
			return block, err
		}
		block.Fixed = &fixed
		return block, nil

	case CIResponseWithVariableDataStructure:
		lsbOrder := data[0] == 0x76
		header, n, err := ParseLongTplHeader(rest, lsbOrder)
		if err != nil {
			return block, err
		}
		block.LongHeader = &header
		remaining := rest[n:]
		return dispatchBody(block, header.Short.ConfigurationField, remaining, opts)

	case CIApplicationLayerShortTransport:
		header, n, err := ParseShortTplHeader(rest)
		if err != nil {
			return block, err
		}
		block.ShortHeader = &header
		remaining := rest[n:]
		return dispatchBody(block, header.ConfigurationField, remaining, opts)

	case CIExtendedLinkLayerI:
		ell, n, err := ParseExtendedLinkLayer(rest, ELLShapeI)
		if err != nil {
			return block, err
		}
		block.ExtendedLinkLayer = &ell
		inner, err := ParseUserDataBlock(rest[n:], opts)
		if err != nil {
			inner.ExtendedLinkLayer = &ell
			return inner, err
		}
		inner.ExtendedLinkLayer = &ell
		return inner, nil

	default:
		return block, &mbus.ApplicationLayerError{Kind: mbus.ALErrUnimplemented, Feature: feature}
	}
}

// dispatchBody routes the bytes following a TPL header either to the
// plaintext record iterator or, when the configuration field selects a
// cipher, to the Encrypted holding field for the decryption package. With
// opts.Decryption unset, an encrypted body also reports
// DecryptionError{Kind: DecErrUnsupportedMode}.
func dispatchBody(block UserDataBlock, cfg mbus.ConfigurationField, remaining []byte, opts Options) (UserDataBlock, error) {
	mode := cfg.SecurityMode()
	if mode.Mode != mbus.SecurityNoEncryption {
		block.Encrypted = remaining
		if !opts.Decryption {
			return block, &mbus.DecryptionError{Kind: mbus.DecErrUnsupportedMode, Mode: mode.Mode}
		}
		return block, nil
	}
	block.Records = NewDataRecords(remaining, opts)
	return block, nil
}
