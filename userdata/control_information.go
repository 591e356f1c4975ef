package userdata

import "github.com/rob-gra/go-mbus/mbus"

// Direction is the master/slave flow a given ControlInformation implies.
type Direction int

const (
	DirectionSlaveToMaster Direction = iota
	DirectionMasterToSlave
)

// ControlInformation is the closed ~50-variant enumeration selected by
// the first byte of the application-layer payload.
type ControlInformation int

const (
	CIResetAtApplicationLevel ControlInformation = iota
	CISendData
	CISelectSlave
	CISynchronizeSlave
	CIDataSentWithShortTransportLayer
	CIDataSentWithLongTransportLayer
	CICosemDataWithLongTransportLayer
	CICosemDataWithShortTransportLayer
	CIObisDataReservedLongTransportLayer
	CIObisDataReservedShortTransportLayer
	CIApplicationLayerFormatFrameNoTransport
	CIApplicationLayerFormatFrameShortTransport
	CIApplicationLayerFormatFrameLongTransport
	CIClockSyncAbsolute
	CIClockSyncRelative
	CIApplicationErrorShortTransport
	CIApplicationErrorLongTransport
	CISendErrorStatus
	CISendAlarmStatus
	CIResponseWithVariableDataStructure
	CIResponseWithFixedDataStructure
	CIAlarmShortTransport
	CIAlarmLongTransport
	CIApplicationLayerNoTransport
	CIApplicationLayerCompactFrameNoTransport
	CIApplicationLayerShortTransport
	CIApplicationLayerCompactFrameShortTransport
	CICosemApplicationLayerLongTransport
	CICosemApplicationLayerShortTransport
	CIObisApplicationLayerReservedLongTransport
	CIObisApplicationLayerReservedShortTransport
	CITransportLayerLongReadoutToMeter
	CINetworkLayerData
	CIFutureUse
	CINetworkManagementApplication
	CITransportLayerCompactFrame
	CITransportLayerFormatFrame
	CINetworkManagementDataReserved
	CITransportLayerShortMeterToReadout
	CITransportLayerLongMeterToReadout
	CIExtendedLinkLayerI
	CIExtendedLinkLayerII
	CIExtendedLinkLayerIII
	CIHashProcedure
	CIOutputRAMContent
	CIWriteRAMContent
	CIStartCalibrationTestMode
	CIReadEEPROM
	CIStartSoftwareTest
	CISetBaudRate300
	CISetBaudRate600
	CISetBaudRate1200
	CISetBaudRate2400
	CISetBaudRate4800
	CISetBaudRate9600
	CISetBaudRate19200
	CISetBaudRate38400
)

// ciEntry pairs a control-information byte with its variant and whether
// the dispatcher fully implements it.
type ciEntry struct {
	ci            ControlInformation
	implemented   bool
	feature       string
	lsbOrder      bool
	hashSubcode   byte
}

var ciTable = map[byte]ciEntry{
	0x50: {ci: CIResetAtApplicationLevel, implemented: true},
	0x51: {ci: CISendData, feature: "send-data control information"},
	0x52: {ci: CISelectSlave, feature: "select-slave control information"},
	0x54: {ci: CISynchronizeSlave, feature: "synchronize-slave control information"},
	0x5A: {ci: CIDataSentWithShortTransportLayer, feature: "data-sent-with-short-transport-layer control information"},
	0x5B: {ci: CIDataSentWithLongTransportLayer, feature: "data-sent-with-long-transport-layer control information"},
	0x60: {ci: CICosemDataWithLongTransportLayer, feature: "cosem-data-with-long-transport-layer control information"},
	0x61: {ci: CICosemDataWithShortTransportLayer, feature: "cosem-data-with-short-transport-layer control information"},
	0x64: {ci: CIObisDataReservedLongTransportLayer, feature: "obis-data-reserved-long-transport-layer control information"},
	0x65: {ci: CIObisDataReservedShortTransportLayer, feature: "obis-data-reserved-short-transport-layer control information"},
	0x69: {ci: CIApplicationLayerFormatFrameNoTransport, feature: "application-layer-format-frame-no-transport control information"},
	0x6A: {ci: CIApplicationLayerFormatFrameShortTransport, feature: "application-layer-format-frame-short-transport control information"},
	0x6B: {ci: CIApplicationLayerFormatFrameLongTransport, feature: "application-layer-format-frame-long-transport control information"},
	0x6C: {ci: CIClockSyncAbsolute, feature: "clock-sync-absolute control information"},
	0x6D: {ci: CIClockSyncRelative, feature: "clock-sync-relative control information"},
	0x6E: {ci: CIApplicationErrorShortTransport, feature: "application-error-short-transport control information"},
	0x6F: {ci: CIApplicationErrorLongTransport, feature: "application-error-long-transport control information"},
	0x70: {ci: CISendErrorStatus, feature: "send-error-status control information"},
	0x71: {ci: CISendAlarmStatus, feature: "send-alarm-status control information"},
	0x72: {ci: CIResponseWithVariableDataStructure, implemented: true, lsbOrder: false},
	0x73: {ci: CIResponseWithFixedDataStructure, implemented: true},
	0x74: {ci: CIAlarmShortTransport, feature: "alarm-short-transport control information"},
	0x75: {ci: CIAlarmLongTransport, feature: "alarm-long-transport control information"},
	0x76: {ci: CIResponseWithVariableDataStructure, implemented: true, lsbOrder: true},
	0x77: {ci: CIResponseWithFixedDataStructure, implemented: true},
	0x78: {ci: CIApplicationLayerNoTransport, feature: "application-layer-no-transport control information"},
	0x79: {ci: CIApplicationLayerCompactFrameNoTransport, feature: "application-layer-compact-frame-no-transport control information"},
	0x7A: {ci: CIApplicationLayerShortTransport, implemented: true},
	0x7B: {ci: CIApplicationLayerCompactFrameShortTransport, feature: "application-layer-compact-frame-short-transport control information"},
	0x7C: {ci: CICosemApplicationLayerLongTransport, feature: "cosem-application-layer-long-transport control information"},
	0x7D: {ci: CICosemApplicationLayerShortTransport, feature: "cosem-application-layer-short-transport control information"},
	0x7E: {ci: CIObisApplicationLayerReservedLongTransport, feature: "obis-application-layer-reserved-long-transport control information"},
	0x7F: {ci: CIObisApplicationLayerReservedShortTransport, feature: "obis-application-layer-reserved-short-transport control information"},
	0x80: {ci: CITransportLayerLongReadoutToMeter, feature: "transport-layer-long-readout-to-meter control information"},
	0x81: {ci: CINetworkLayerData, feature: "network-layer-data control information"},
	0x82: {ci: CIFutureUse, feature: "future-use control information"},
	0x83: {ci: CINetworkManagementApplication, feature: "network-management-application control information"},
	0x84: {ci: CITransportLayerCompactFrame, feature: "transport-layer-compact-frame control information"},
	0x85: {ci: CITransportLayerFormatFrame, feature: "transport-layer-format-frame control information"},
	0x89: {ci: CINetworkManagementDataReserved, feature: "network-management-data-reserved control information"},
	0x8A: {ci: CITransportLayerShortMeterToReadout, feature: "transport-layer-short-meter-to-readout control information"},
	0x8B: {ci: CITransportLayerLongMeterToReadout, feature: "transport-layer-long-meter-to-readout control information"},
	0x8C: {ci: CIExtendedLinkLayerI, implemented: true},
	0x8D: {ci: CIExtendedLinkLayerII, feature: "extended-link-layer-ii control information"},
	0x8E: {ci: CIExtendedLinkLayerIII, feature: "extended-link-layer-iii control information"},
	0xB1: {ci: CIOutputRAMContent, feature: "output-ram-content control information"},
	0xB2: {ci: CIWriteRAMContent, feature: "write-ram-content control information"},
	0xB3: {ci: CIStartCalibrationTestMode, feature: "start-calibration-test-mode control information"},
	0xB4: {ci: CIReadEEPROM, feature: "read-eeprom control information"},
	0xB6: {ci: CIStartSoftwareTest, feature: "start-software-test control information"},
	0xB8: {ci: CISetBaudRate300, feature: "set-baud-rate-300 control information"},
	0xB9: {ci: CISetBaudRate600, feature: "set-baud-rate-600 control information"},
	0xBA: {ci: CISetBaudRate1200, feature: "set-baud-rate-1200 control information"},
	0xBB: {ci: CISetBaudRate2400, feature: "set-baud-rate-2400 control information"},
	0xBC: {ci: CISetBaudRate4800, feature: "set-baud-rate-4800 control information"},
	0xBD: {ci: CISetBaudRate9600, feature: "set-baud-rate-9600 control information"},
	0xBE: {ci: CISetBaudRate19200, feature: "set-baud-rate-19200 control information"},
	0xBF: {ci: CISetBaudRate38400, feature: "set-baud-rate-38400 control information"},
}

func init() {
	for b := byte(0x90); b <= 0x97; b++ {
		ciTable[b] = ciEntry{ci: CIHashProcedure, feature: "hash-procedure control information", hashSubcode: b - 0x90}
	}
}

// directionTable maps each ControlInformation to its implied Direction.
var directionTable = map[ControlInformation]Direction{
	CIResetAtApplicationLevel:                    DirectionMasterToSlave,
	CISendData:                                   DirectionMasterToSlave,
	CISelectSlave:                                DirectionMasterToSlave,
	CISynchronizeSlave:                           DirectionMasterToSlave,
	CIResponseWithVariableDataStructure:          DirectionSlaveToMaster,
	CIResponseWithFixedDataStructure:             DirectionSlaveToMaster,
	CIApplicationLayerShortTransport:             DirectionSlaveToMaster,
	CISendErrorStatus:                            DirectionSlaveToMaster,
	CISendAlarmStatus:                            DirectionSlaveToMaster,
	CIExtendedLinkLayerI:                         DirectionSlaveToMaster,
	CIExtendedLinkLayerII:                        DirectionSlaveToMaster,
	CIExtendedLinkLayerIII:                       DirectionSlaveToMaster,
}

// Direction reports the master/slave flow this control information
// implies, defaulting to SlaveToMaster for the many response-style
// variants not explicitly tabulated above.
func (ci ControlInformation) Direction() Direction {
	if d, ok := directionTable[ci]; ok {
		return d
	}
	return DirectionSlaveToMaster
}

// ControlInformationFromByte maps the CI byte to its variant, per §4.E.
func ControlInformationFromByte(b byte) (ControlInformation, bool, string, error) {
	entry, ok := ciTable[b]
	if !ok {
		return 0, false, "", &mbus.ApplicationLayerError{Kind: mbus.ALErrInvalidControlInformation, Byte: b}
	}
	return entry.ci, entry.implemented, entry.feature, nil
}

// ApplicationResetSubcode is the low-nibble categorisation of a
// ResetAtApplicationLevel subcode byte; Raw preserves the original byte.
type ApplicationResetSubcode struct {
	Kind ApplicationResetSubcodeKind
	Raw  byte
}

type ApplicationResetSubcodeKind int

const (
	ResetAll ApplicationResetSubcodeKind = iota
	ResetUserData
	ResetSimpleBilling
	ResetEnhancedBilling
	ResetMultiTariffBilling
	ResetInstantaneousValues
	ResetLoadManagementValues
	ResetReserved1
	ResetInstallationStartup
	ResetTesting
	ResetCalibration
	ResetConfigurationUpdates
	ResetManufacturing
	ResetDevelopment
	ResetSelftest
	ResetReserved2
)

// ParseApplicationResetSubcode decodes a subcode byte's low 4 bits.
func ParseApplicationResetSubcode(b byte) ApplicationResetSubcode {
	return ApplicationResetSubcode{Kind: ApplicationResetSubcodeKind(b & 0x0F), Raw: b}
}
