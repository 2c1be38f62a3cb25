package koda

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Decode deserialises data from KODA-B using the default bounds.
func Decode(data []byte) (Value, error) {
	return DecodeBounded(data, DefaultMaxDepth, DefaultMaxDictEntries, DefaultMaxStringLen)
}

// DecodeBounded deserialises data from KODA-B: it validates the
// magic/version header, reconstructs the key dictionary, decodes the
// root value recursively, and requires the buffer to be fully
// consumed — any leftover bytes are a format error.
func DecodeBounded(data []byte, maxDepth, maxDict, maxStrLen int) (Value, error) {
	d := &decoder{data: data, maxDepth: maxDepth, maxDict: maxDict, maxStrLen: maxStrLen}

	if err := d.ensure(5); err != nil {
		return Value{}, err
	}
	if !bytes.Equal(d.data[0:4], magic[:]) {
		return Value{}, &FormatError{Message: "invalid magic number"}
	}
	d.offset = 4
	version := d.readU8()
	if version != wireVersion {
		return Value{}, &FormatError{Message: "unsupported version"}
	}

	dictLen, err := d.readU32Checked()
	if err != nil {
		return Value{}, err
	}
	if int(dictLen) > d.maxDict {
		return Value{}, &SizeError{Message: "dictionary exceeds maximum size"}
	}
	keys := make([]string, 0, dictLen)
	for i := uint32(0); i < dictLen; i++ {
		keyLen, err := d.readU32Checked()
		if err != nil {
			return Value{}, err
		}
		if int(keyLen) > d.maxStrLen {
			return Value{}, &SizeError{Message: "dictionary key exceeds maximum length"}
		}
		if err := d.ensure(int(keyLen)); err != nil {
			return Value{}, err
		}
		keys = append(keys, string(d.data[d.offset:d.offset+int(keyLen)]))
		d.offset += int(keyLen)
	}
	d.dict = keys

	v, err := d.decodeValue(0)
	if err != nil {
		return Value{}, err
	}
	if d.offset != len(d.data) {
		return Value{}, &FormatError{Message: "trailing bytes after root value"}
	}
	return v, nil
}

type decoder struct {
	data      []byte
	offset    int
	maxDepth  int
	maxDict   int
	maxStrLen int
	dict      []string
}

func (d *decoder) ensure(n int) error {
	if d.offset+n > len(d.data) {
		return &FormatError{Message: "truncated input"}
	}
	return nil
}

func (d *decoder) readU8() byte {
	b := d.data[d.offset]
	d.offset++
	return b
}

func (d *decoder) readU8Checked() (byte, error) {
	if err := d.ensure(1); err != nil {
		return 0, err
	}
	return d.readU8(), nil
}

func (d *decoder) readU32Checked() (uint32, error) {
	if err := d.ensure(4); err != nil {
		return 0, err
	}
	x := binary.BigEndian.Uint32(d.data[d.offset : d.offset+4])
	d.offset += 4
	return x, nil
}

func (d *decoder) readU64Checked() (uint64, error) {
	if err := d.ensure(8); err != nil {
		return 0, err
	}
	x := binary.BigEndian.Uint64(d.data[d.offset : d.offset+8])
	d.offset += 8
	return x, nil
}

func (d *decoder) decodeValue(depth int) (Value, error) {
	if depth > d.maxDepth {
		return Value{}, &DepthError{Message: "maximum nesting depth exceeded"}
	}
	tag, err := d.readU8Checked()
	if err != nil {
		return Value{}, err
	}
	switch tag {
	case tagNull:
		return Null(), nil
	case tagFalse:
		return Bool(false), nil
	case tagTrue:
		return Bool(true), nil
	case tagInt:
		bits, err := d.readU64Checked()
		if err != nil {
			return Value{}, err
		}
		return Int(int64(bits)), nil
	case tagFloat:
		bits, err := d.readU64Checked()
		if err != nil {
			return Value{}, err
		}
		return Float(math.Float64frombits(bits)), nil
	case tagString:
		return d.decodeString()
	case tagBinary:
		return Value{}, &FormatError{Message: "unsupported type: reserved binary tag"}
	case tagArray:
		return d.decodeArray(depth)
	case tagObject:
		return d.decodeObject(depth)
	default:
		return Value{}, &FormatError{Message: "unknown type tag"}
	}
}

func (d *decoder) decodeString() (Value, error) {
	length, err := d.readU32Checked()
	if err != nil {
		return Value{}, err
	}
	if int(length) > d.maxStrLen {
		return Value{}, &SizeError{Message: "string exceeds maximum length"}
	}
	if err := d.ensure(int(length)); err != nil {
		return Value{}, err
	}
	s := string(d.data[d.offset : d.offset+int(length)])
	d.offset += int(length)
	return String(s), nil
}

func (d *decoder) decodeArray(depth int) (Value, error) {
	count, err := d.readU32Checked()
	if err != nil {
		return Value{}, err
	}
	elems := make([]Value, 0, count)
	for i := uint32(0); i < count; i++ {
		el, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, el)
	}
	return Array(elems...), nil
}

func (d *decoder) decodeObject(depth int) (Value, error) {
	count, err := d.readU32Checked()
	if err != nil {
		return Value{}, err
	}
	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		idx, err := d.readU32Checked()
		if err != nil {
			return Value{}, err
		}
		if int(idx) >= len(d.dict) {
			return Value{}, &FormatError{Message: "invalid key index"}
		}
		val, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Entry{Key: d.dict[idx], Value: val})
	}
	return Object(entries...), nil
}
