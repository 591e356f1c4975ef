package userdata

import "github.com/rob-gra/go-mbus/mbus"

// DataRecordHeader is the parsed DIF/DIFE + optional VIF/VIFE pair
// preceding a record's value.
type DataRecordHeader struct {
	DataInformationBlock  DataInformationBlock
	ValueInformationBlock *ValueInformationBlock
	DataInformation       DataInformation
	ValueInformation      ValueInformation
	Size                  int
}

// DataRecord is one decoded entry of the variable-data-record stream.
// RawBytes spans the record from DIF through the last value byte and is
// always a prefix slice of the payload it was decoded from.
type DataRecord struct {
	Header   DataRecordHeader
	Data     DataType
	RawBytes []byte
}

// Size is the total number of payload bytes this record consumed.
func (r DataRecord) Size() int { return len(r.RawBytes) }

// ParseDataRecord decodes one record from the front of data, applying the
// DIF==0x0F manufacturer-specific-trailer special case and the
// date/time coding override chain of §4.G's final paragraph.
func ParseDataRecord(data []byte, opts Options) (DataRecord, error) {
	if len(data) == 0 {
		return DataRecord{}, &mbus.DataRecordError{Insufficient: true}
	}

	if data[0] == 0x0F {
		return DataRecord{
			Header:   DataRecordHeader{DataInformationBlock: DataInformationBlock{DIF: 0x0F}, Size: 1},
			Data:     DataType{Kind: DataManufacturerSpecific, Raw: data[1:]},
			RawBytes: data,
		}, nil
	}

	dib, dibSize, err := ParseDataInformationBlock(data)
	if err != nil {
		return DataRecord{}, &mbus.DataRecordError{Inner: asDataInformationError(err)}
	}
	di := dib.Interpret()

	header := DataRecordHeader{
		DataInformationBlock: dib,
		DataInformation:      di,
		Size:                 dibSize,
	}

	rest := data[dibSize:]
	var value DataType
	var valueSize int

	if di.Coding == CodingSpecial && di.SpecialIsValid && di.Special == SpecialManufacturerSpecific {
		value = DataType{Kind: DataManufacturerSpecific, Raw: rest}
		valueSize = len(rest)
	} else {
		vib, vibSize, err := ParseValueInformationBlock(rest, opts)
		if err != nil {
			return DataRecord{}, &mbus.DataRecordError{Inner: asDataInformationError(err)}
		}
		vi, err := vib.Interpret(opts)
		if err != nil {
			return DataRecord{}, &mbus.DataRecordError{Inner: asDataInformationError(err)}
		}
		header.ValueInformationBlock = &vib
		header.ValueInformation = vi
		header.Size += vibSize

		coding := applyDateOverride(di.Coding, vi.Labels)

		valueBytes := rest[vibSize:]
		decoded, n, err := DecodeValue(coding, valueBytes)
		if err != nil {
			return DataRecord{}, err.(*mbus.DataRecordError)
		}
		value = decoded
		valueSize = n
	}

	total := header.Size + valueSize
	if total > len(data) {
		total = len(data)
	}

	return DataRecord{
		Header:   header,
		Data:     value,
		RawBytes: data[:total],
	}, nil
}

// applyDateOverride implements §4.G's final paragraph: a VIB label of
// Date/DateTime/Time/DateTimeWithSeconds forces the corresponding
// date/time coding regardless of what the DIF's raw coding said.
func applyDateOverride(coding DataFieldCoding, labels []ValueLabel) DataFieldCoding {
	for _, l := range labels {
		switch l {
		case LabelDate:
			return CodingDateTypeG
		case LabelDateTime:
			return CodingDateTimeTypeF
		case LabelTime:
			return CodingTimeTypeJ
		case LabelDateTimeWithSeconds:
			return CodingDateTimeTypeI
		}
	}
	return coding
}

func asDataInformationError(err error) *mbus.DataInformationError {
	if die, ok := err.(*mbus.DataInformationError); ok {
		return die
	}
	return &mbus.DataInformationError{Kind: mbus.DIErrInvalidValueInformation}
}

// DataRecords is the single-pass cursor over a payload's record stream,
// per §4.I.
type DataRecords struct {
	payload    []byte
	offset     int
	terminated bool
	opts       Options
}

// NewDataRecords constructs a record iterator over payload.
func NewDataRecords(payload []byte, opts Options) *DataRecords {
	return &DataRecords{payload: payload, opts: opts}
}

// Next advances the cursor and returns the next record, (nil, nil) when
// the stream is exhausted or has terminated, or a non-nil error when a
// malformed record is encountered (the stream then terminates but
// already-emitted records remain valid).
func (it *DataRecords) Next() (*DataRecord, error) {
	for {
		if it.terminated || it.offset >= len(it.payload) {
			return nil, nil
		}
		b := it.payload[it.offset]
		switch b {
		case 0x2F:
			it.offset++
			continue
		case 0x1F:
			it.terminated = true
			return nil, nil
		}

		record, err := ParseDataRecord(it.payload[it.offset:], it.opts)
		if err != nil {
			it.terminated = true
			return nil, err
		}
		it.offset += record.Size()
		return &record, nil
	}
}
