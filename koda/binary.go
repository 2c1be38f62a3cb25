package koda

// Wire format constants for KODA-B.
var magic = [4]byte{0x4B, 0x4F, 0x44, 0x41} // "KODA"

const wireVersion = 0x01

const (
	tagNull   = 0x01
	tagFalse  = 0x02
	tagTrue   = 0x03
	tagInt    = 0x04
	tagFloat  = 0x05
	tagString = 0x06
	tagBinary = 0x07 // reserved; not produced, explicitly rejected on decode
	tagArray  = 0x10
	tagObject = 0x11
)

// Default resource bounds for decode.
const (
	DefaultMaxDictEntries = 65536
	DefaultMaxStringLen   = 1000000
)
