package mbus

// DeviceType enumerates the EN 13757-7 device kinds plus the reserved
// byte ranges that must still round-trip losslessly through ToByte.
type DeviceType struct {
	Kind DeviceTypeKind
	Raw  byte
}

type DeviceTypeKind int

const (
	DeviceOther DeviceTypeKind = iota
	DeviceOilMeter
	DeviceElectricityMeter
	DeviceGasMeter
	DeviceHeatMeterOutlet
	DeviceSteamMeter
	DeviceWarmWaterMeter
	DeviceWaterMeter
	DeviceHeatCostAllocator
	DeviceCompressedAir
	DeviceCoolingMeterOutlet
	DeviceCoolingMeterInlet
	DeviceHeatMeterInlet
	DeviceHeatCoolingMeter
	DeviceBusSystemComponent
	DeviceUnknownMedium
	DeviceReserved0x0F
	DeviceColdWaterMeter
	DeviceDualRegisterWaterMeter
	DevicePressureMeter
	DeviceADConverter
	DeviceSmokeDetector
	DeviceRoomSensor
	DeviceGasDetector
	DeviceReserved0x17to0x19
	DeviceBreaker
	DeviceValve
	DeviceReserved0x1Cto0x1E
	DeviceCustomerUnit
	DeviceReserved0x20
	DeviceWasteWaterMeter
	DeviceGarbage
	DeviceCarbonDioxide
	DeviceEnvironmental
	DeviceReserved0x28to0x2A
	DeviceServiceTool
	DeviceGatewayDataLogger
	DeviceReserved0x2D
	DeviceSpecialRegisteredMeter
	DeviceColdWaterMeter2
	DeviceDisplayDevice
	DeviceReserved0x31to0x32
	DeviceMuc
	DeviceRepeaterBidirectional
	DeviceReserved0x35
	DeviceReserved0x36
	DeviceRepeaterUnidirectional
	DeviceReserved0x38
	DeviceSystemDevice
	DeviceCommunicationController
	DeviceUnidirectionalRepeater2
	DeviceRadioConverterSystem
	DeviceReserved0x3Dto0x3F
	DeviceWildcard
	DeviceReservedSensor
	DeviceReservedSwitch
	DeviceReservedCustomer
	DeviceReservedEnvironmental
	DeviceReservedSystem
	DeviceReserved
)

// DeviceTypeFromByte maps a raw device-type byte to a DeviceType, covering
// every value 0..=255 either with a named kind or a reserved-range kind
// that preserves the original byte.
func DeviceTypeFromByte(b byte) DeviceType {
	named := func(k DeviceTypeKind) DeviceType { return DeviceType{Kind: k, Raw: b} }
	switch {
	case b == 0x00:
		return named(DeviceOther)
	case b == 0x01:
		return named(DeviceOilMeter)
	case b == 0x02:
		return named(DeviceElectricityMeter)
	case b == 0x03:
		return named(DeviceGasMeter)
	case b == 0x04:
		return named(DeviceHeatMeterOutlet)
	case b == 0x05:
		return named(DeviceSteamMeter)
	case b == 0x06:
		return named(DeviceWarmWaterMeter)
	case b == 0x07:
		return named(DeviceWaterMeter)
	case b == 0x08:
		return named(DeviceHeatCostAllocator)
	case b == 0x09:
		return named(DeviceCompressedAir)
	case b == 0x0A:
		return named(DeviceCoolingMeterOutlet)
	case b == 0x0B:
		return named(DeviceCoolingMeterInlet)
	case b == 0x0C:
		return named(DeviceHeatMeterInlet)
	case b == 0x0D:
		return named(DeviceHeatCoolingMeter)
	case b == 0x0E:
		return named(DeviceBusSystemComponent)
	case b == 0x0F:
		return named(DeviceUnknownMedium)
	case b >= 0x10 && b <= 0x14:
		return named(DeviceColdWaterMeter)
	case b == 0x15:
		return named(DeviceDualRegisterWaterMeter)
	case b == 0x16:
		return named(DevicePressureMeter)
	case b == 0x17:
		return named(DeviceADConverter)
	case b == 0x18:
		return named(DeviceSmokeDetector)
	case b == 0x19:
		return named(DeviceRoomSensor)
	case b == 0x1A:
		return named(DeviceGasDetector)
	case b >= 0x1B && b <= 0x1C:
		return named(DeviceReserved0x17to0x19)
	case b >= 0x1D && b <= 0x1F:
		return DeviceType{Kind: DeviceReservedSensor, Raw: b}
	case b == 0x20:
		return named(DeviceBreaker)
	case b == 0x21:
		return named(DeviceValve)
	case b >= 0x22 && b <= 0x24:
		return DeviceType{Kind: DeviceReservedSwitch, Raw: b}
	case b == 0x25:
		return named(DeviceCustomerUnit)
	case b >= 0x26 && b <= 0x27:
		return DeviceType{Kind: DeviceReservedCustomer, Raw: b}
	case b == 0x28:
		return named(DeviceWasteWaterMeter)
	case b == 0x29:
		return named(DeviceGarbage)
	case b == 0x2A:
		return named(DeviceCarbonDioxide)
	case b >= 0x2B && b <= 0x2F:
		return DeviceType{Kind: DeviceReservedEnvironmental, Raw: b}
	case b == 0x30:
		return named(DeviceServiceTool)
	case b == 0x31:
		return named(DeviceGatewayDataLogger)
	case b >= 0x32 && b <= 0x33:
		return named(DeviceReserved0x31to0x32)
	case b == 0x34 || (b >= 0x39 && b <= 0x3F):
		return DeviceType{Kind: DeviceReservedSystem, Raw: b}
	case b == 0x35:
		return DeviceType{Kind: DeviceReservedSystem, Raw: b}
	case b == 0x36:
		return named(DeviceMuc)
	case b == 0x37:
		return named(DeviceRepeaterBidirectional)
	case b == 0x38:
		return named(DeviceRepeaterUnidirectional)
	case b >= 0x40 && b <= 0xFE:
		return DeviceType{Kind: DeviceReserved, Raw: b}
	case b == 0xFF:
		return named(DeviceWildcard)
	default:
		return DeviceType{Kind: DeviceReserved, Raw: b}
	}
}

// ToByte is the exact inverse of DeviceTypeFromByte: composing the two is
// the identity on all 256 byte values.
func (d DeviceType) ToByte() byte {
	return d.Raw
}
