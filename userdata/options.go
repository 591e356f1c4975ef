package userdata

// Options carries the three recognised configuration flags from §6. No
// free-form configuration is accepted.
type Options struct {
	// PlaintextBeforeExtension places a Plain-Text VIF's length-prefixed
	// ASCII unit string immediately after the VIF and before the VIFE;
	// when false the VIFE immediately follows the VIF and the
	// length+ASCII follow the VIFE chain. In both orderings the length
	// byte and ASCII are read into the VIB (PlainTextUnit) and counted in
	// the header size; they are not handed to the value decoder.
	PlaintextBeforeExtension bool
	// Decryption enables the Mode 5/7 decrypt path; without it encrypted
	// payloads surface UnsupportedMode.
	Decryption bool
	// NoHeap is accepted but not read by any decoder: decoding behaves
	// the same whether it is set or not, and the DIFE/VIFE, unit and label
	// lists are still grown with append.
	NoHeap bool
}
