package koda

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Encode serialises v to KODA-B using the default maximum depth.
func Encode(v Value) ([]byte, error) {
	return EncodeBounded(v, DefaultMaxDepth)
}

// EncodeBounded serialises v to KODA-B. The dictionary is built in a
// first pass over the whole value (collect every Object key, sort
// ascending by raw bytes), then the frame is emitted in a second pass:
// magic, version, dictionary, root value. Object entries are emitted
// in ascending key order regardless of the value's in-memory insertion
// order, so two values differing only in Object insertion order encode
// to identical bytes.
func EncodeBounded(v Value, maxDepth int) ([]byte, error) {
	dict := buildDictionary(v)

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(wireVersion)

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(dict.keys)))
	buf.Write(u32[:])
	for _, k := range dict.keys {
		binary.BigEndian.PutUint32(u32[:], uint32(len(k)))
		buf.Write(u32[:])
		buf.WriteString(k)
	}

	enc := &encoder{buf: &buf, dict: dict, maxDepth: maxDepth}
	if err := enc.encodeValue(v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	buf      *bytes.Buffer
	dict     *dictionary
	maxDepth int
}

func (e *encoder) encodeValue(v Value, depth int) error {
	if depth > e.maxDepth {
		return &DepthError{Message: "maximum nesting depth exceeded"}
	}
	switch v.kind {
	case KindNull:
		e.buf.WriteByte(tagNull)
	case KindBool:
		if v.boolVal {
			e.buf.WriteByte(tagTrue)
		} else {
			e.buf.WriteByte(tagFalse)
		}
	case KindInt:
		e.buf.WriteByte(tagInt)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v.intVal))
		e.buf.Write(b[:])
	case KindFloat:
		e.buf.WriteByte(tagFloat)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v.floatVal))
		e.buf.Write(b[:])
	case KindString:
		e.buf.WriteByte(tagString)
		e.writeLenPrefixed(v.stringVal)
	case KindArray:
		e.buf.WriteByte(tagArray)
		e.writeU32(uint32(len(v.arrayVal)))
		for _, el := range v.arrayVal {
			if err := e.encodeValue(el, depth+1); err != nil {
				return err
			}
		}
	case KindObject:
		e.buf.WriteByte(tagObject)
		sorted := make([]Entry, len(v.objectVal))
		copy(sorted, v.objectVal)
		sortEntriesByKey(sorted)
		e.writeU32(uint32(len(sorted)))
		for _, entry := range sorted {
			idx, ok := e.dict.indexOfKey(entry.Key)
			if !ok {
				return &FormatError{Message: "internal error: key not in dictionary"}
			}
			e.writeU32(idx)
			if err := e.encodeValue(entry.Value, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) writeU32(x uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], x)
	e.buf.Write(b[:])
}

func (e *encoder) writeLenPrefixed(s string) {
	e.writeU32(uint32(len(s)))
	e.buf.WriteString(s)
}
