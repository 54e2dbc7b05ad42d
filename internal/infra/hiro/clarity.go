package hiro

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Clarity wire type prefixes.
const (
	clarityTypeInt               = 0x00
	clarityTypeUInt              = 0x01
	clarityTypeBuffer            = 0x02
	clarityTypeBoolTrue          = 0x03
	clarityTypeBoolFalse         = 0x04
	clarityTypeStandardPrincipal = 0x05
	clarityTypeContractPrincipal = 0x06
	clarityTypeResponseOk        = 0x07
	clarityTypeResponseErr       = 0x08
	clarityTypeNone              = 0x09
	clarityTypeSome              = 0x0a
	clarityTypeList              = 0x0b
	clarityTypeTuple             = 0x0c
	clarityTypeStringASCII       = 0x0d
	clarityTypeStringUTF8        = 0x0e
)

// clarityIntSize is the byte width of Clarity's 128-bit integers.
const clarityIntSize = 16

var errMalformedClarityValue = errors.New("hiro: malformed clarity value")

// clarityReader walks a serialized Clarity value.
type clarityReader struct {
	data []byte
	pos  int
}

func (r *clarityReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: truncated at offset %d", errMalformedClarityValue, r.pos)
	}
	chunk := r.data[r.pos : r.pos+n]
	r.pos += n
	return chunk, nil
}

func (r *clarityReader) takeByte() (byte, error) {
	chunk, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return chunk[0], nil
}

func (r *clarityReader) takeUint32() (int, error) {
	chunk, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(chunk)), nil
}

// typedNode builds one node of the canonical decoded tree.
func typedNode(kind string, value any) map[string]any {
	return map[string]any{"type": kind, "value": value}
}

// readPrincipal decodes a standard principal's version and hash into a
// c32check address.
func (r *clarityReader) readPrincipal() (string, error) {
	chunk, err := r.take(1 + hash160Size)
	if err != nil {
		return "", err
	}
	return encodeC32Address(chunk[0], chunk[1:]), nil
}

// decodeValue decodes the next Clarity value into the canonical typed-JSON
// form: every node is {"type": <kind>, "value": <payload>}, with none carrying
// a nil payload. Integers are rendered as decimal strings to preserve the full
// 128-bit range.
func (r *clarityReader) decodeValue() (map[string]any, error) {
	prefix, err := r.takeByte()
	if err != nil {
		return nil, err
	}

	switch prefix {
	case clarityTypeInt:
		chunk, err := r.take(clarityIntSize)
		if err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(chunk)
		if chunk[0]&0x80 != 0 {
			v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 8*clarityIntSize))
		}
		return typedNode("int", v.String()), nil

	case clarityTypeUInt:
		chunk, err := r.take(clarityIntSize)
		if err != nil {
			return nil, err
		}
		return typedNode("uint", new(big.Int).SetBytes(chunk).String()), nil

	case clarityTypeBuffer:
		length, err := r.takeUint32()
		if err != nil {
			return nil, err
		}
		chunk, err := r.take(length)
		if err != nil {
			return nil, err
		}
		return typedNode("buffer", "0x"+hex.EncodeToString(chunk)), nil

	case clarityTypeBoolTrue:
		return typedNode("bool", true), nil

	case clarityTypeBoolFalse:
		return typedNode("bool", false), nil

	case clarityTypeStandardPrincipal:
		address, err := r.readPrincipal()
		if err != nil {
			return nil, err
		}
		return typedNode("principal", address), nil

	case clarityTypeContractPrincipal:
		address, err := r.readPrincipal()
		if err != nil {
			return nil, err
		}
		nameLen, err := r.takeByte()
		if err != nil {
			return nil, err
		}
		name, err := r.take(int(nameLen))
		if err != nil {
			return nil, err
		}
		return typedNode("principal", address+"."+string(name)), nil

	case clarityTypeResponseOk, clarityTypeResponseErr:
		inner, err := r.decodeValue()
		if err != nil {
			return nil, err
		}
		kind := "responseOk"
		if prefix == clarityTypeResponseErr {
			kind = "responseErr"
		}
		return typedNode(kind, inner), nil

	case clarityTypeNone:
		return typedNode("none", nil), nil

	case clarityTypeSome:
		inner, err := r.decodeValue()
		if err != nil {
			return nil, err
		}
		return typedNode("some", inner), nil

	case clarityTypeList:
		length, err := r.takeUint32()
		if err != nil {
			return nil, err
		}
		items := make([]any, length)
		for i := range items {
			if items[i], err = r.decodeValue(); err != nil {
				return nil, err
			}
		}
		return typedNode("list", items), nil

	case clarityTypeTuple:
		count, err := r.takeUint32()
		if err != nil {
			return nil, err
		}
		fields := make(map[string]any, count)
		for range count {
			nameLen, err := r.takeByte()
			if err != nil {
				return nil, err
			}
			name, err := r.take(int(nameLen))
			if err != nil {
				return nil, err
			}
			if fields[string(name)], err = r.decodeValue(); err != nil {
				return nil, err
			}
		}
		return typedNode("tuple", fields), nil

	case clarityTypeStringASCII, clarityTypeStringUTF8:
		length, err := r.takeUint32()
		if err != nil {
			return nil, err
		}
		chunk, err := r.take(length)
		if err != nil {
			return nil, err
		}
		kind := "string-ascii"
		if prefix == clarityTypeStringUTF8 {
			kind = "string-utf8"
		}
		return typedNode(kind, string(chunk)), nil

	default:
		return nil, fmt.Errorf("%w: unknown type prefix 0x%02x", errMalformedClarityValue, prefix)
	}
}

// decodeClarityHex decodes a 0x-prefixed serialized Clarity value into the
// canonical typed-JSON tree.
func decodeClarityHex(encoded string) (map[string]any, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedClarityValue, err)
	}

	r := &clarityReader{data: data}
	node, err := r.decodeValue()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errMalformedClarityValue, len(r.data)-r.pos)
	}
	return node, nil
}

// encodeC32Address renders a version byte and hash160 as a c32check address.
func encodeC32Address(version byte, hash []byte) string {
	payload := make([]byte, 0, hash160Size+c32ChecksumSize)
	payload = append(payload, hash...)
	payload = append(payload, c32Checksum(version, hash)...)

	var digits []byte
	value := new(big.Int).SetBytes(payload)
	zero := big.NewInt(0)
	mod := new(big.Int)
	for value.Cmp(zero) > 0 {
		value.DivMod(value, big.NewInt(32), mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}
	for _, b := range payload {
		if b != 0 {
			break
		}
		digits = append(digits, c32Alphabet[0])
	}

	var sb strings.Builder
	sb.WriteByte('S')
	sb.WriteByte(c32Alphabet[version])
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// encodeClarityArg serializes one contract-call argument to its 0x-prefixed
// Clarity wire form.
func encodeClarityArg(kind, value string) (string, error) {
	var buf []byte

	switch kind {
	case "principal":
		version, hash, err := decodeC32Address(value)
		if err != nil {
			return "", err
		}
		buf = append(buf, clarityTypeStandardPrincipal, version)
		buf = append(buf, hash...)

	case "buffer":
		raw, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
		if err != nil {
			return "", fmt.Errorf("hiro: buffer argument is not hex: %w", err)
		}
		buf = append(buf, clarityTypeBuffer)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(raw)))
		buf = append(buf, raw...)

	case "string-utf8":
		buf = append(buf, clarityTypeStringUTF8)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(value)))
		buf = append(buf, value...)

	default:
		return "", fmt.Errorf("hiro: unsupported clarity argument kind %q", kind)
	}

	return "0x" + hex.EncodeToString(buf), nil
}
