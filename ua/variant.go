// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

import (
	"fmt"
	"math"
)

func float64bits(f float64) uint64    { return math.Float64bits(f) }
func float64frombits(b uint64) float64 { return math.Float64frombits(b) }

// variantKind tags the payload carried by a Variant. The full UA
// Variant supports a much larger built-in type table (Part 6, 5.1.2);
// this adapter implements the subset the façade's services actually
// move: scalars, strings, status codes and node ids.
type variantKind byte

const (
	variantNull variantKind = iota
	variantBool
	variantInt32
	variantInt64
	variantUInt32
	variantDouble
	variantString
	variantStatusCode
	variantNodeID
)

// Variant is a dynamically typed value as carried by DataValue,
// ReadResponse results, and Call/event arguments.
type Variant struct {
	Value interface{}
}

// NewVariant wraps v.
func NewVariant(v interface{}) Variant {
	return Variant{Value: v}
}

func (v Variant) kind() (variantKind, error) {
	switch v.Value.(type) {
	case nil:
		return variantNull, nil
	case bool:
		return variantBool, nil
	case int32:
		return variantInt32, nil
	case int64:
		return variantInt64, nil
	case uint32:
		return variantUInt32, nil
	case float64:
		return variantDouble, nil
	case string:
		return variantString, nil
	case StatusCode:
		return variantStatusCode, nil
	case NodeID:
		return variantNodeID, nil
	default:
		return 0, fmt.Errorf("%w: unsupported variant payload %T", ErrInvalidEncoding, v.Value)
	}
}

// Encode appends the Variant's type tag and payload.
func (v Variant) Encode(enc *Encoder) error {
	k, err := v.kind()
	if err != nil {
		return err
	}
	enc.WriteByte(byte(k))
	switch k {
	case variantNull:
	case variantBool:
		enc.WriteBool(v.Value.(bool))
	case variantInt32:
		enc.WriteInt32(v.Value.(int32))
	case variantInt64:
		enc.WriteUint64(uint64(v.Value.(int64)))
	case variantUInt32:
		enc.WriteUint32(v.Value.(uint32))
	case variantDouble:
		enc.WriteUint64(float64bits(v.Value.(float64)))
	case variantString:
		enc.WriteString(v.Value.(string), false)
	case variantStatusCode:
		enc.WriteUint32(uint32(v.Value.(StatusCode)))
	case variantNodeID:
		v.Value.(NodeID).Encode(enc)
	}
	return nil
}

// DecodeVariant reads a Variant.
func DecodeVariant(dec *Decoder) (Variant, error) {
	tag, err := dec.ReadByte()
	if err != nil {
		return Variant{}, err
	}
	switch variantKind(tag) {
	case variantNull:
		return Variant{}, nil
	case variantBool:
		b, err := dec.ReadBool()
		return NewVariant(b), err
	case variantInt32:
		i, err := dec.ReadInt32()
		return NewVariant(i), err
	case variantInt64:
		i, err := dec.ReadUint64()
		return NewVariant(int64(i)), err
	case variantUInt32:
		i, err := dec.ReadUint32()
		return NewVariant(i), err
	case variantDouble:
		bits, err := dec.ReadUint64()
		return NewVariant(float64frombits(bits)), err
	case variantString:
		s, err := dec.ReadString()
		return NewVariant(s), err
	case variantStatusCode:
		s, err := dec.ReadUint32()
		return NewVariant(StatusCode(s)), err
	case variantNodeID:
		n, err := DecodeNodeID(dec)
		return NewVariant(n), err
	default:
		return Variant{}, ErrInvalidEncoding
	}
}

// DataValue pairs a Variant with its status and timestamps (simplified:
// the source timestamp only, which is what Read/Write exercise).
type DataValue struct {
	Value         Variant
	Status        StatusCode
	HasValue      bool
}

// Encode appends a DataValue, using an encoding-mask byte the way the
// real UA binary form does (bit 0: value present, bit 1: status present).
func (d DataValue) Encode(enc *Encoder) error {
	var mask byte
	if d.HasValue {
		mask |= 0x01
	}
	mask |= 0x02 // status always present in this adapter
	enc.WriteByte(mask)
	if d.HasValue {
		if err := d.Value.Encode(enc); err != nil {
			return err
		}
	}
	enc.WriteUint32(uint32(d.Status))
	return nil
}

// DecodeDataValue reads a DataValue.
func DecodeDataValue(dec *Decoder) (DataValue, error) {
	var d DataValue
	mask, err := dec.ReadByte()
	if err != nil {
		return d, err
	}
	if mask&0x01 != 0 {
		d.HasValue = true
		if d.Value, err = DecodeVariant(dec); err != nil {
			return d, err
		}
	}
	if mask&0x02 != 0 {
		s, err := dec.ReadUint32()
		if err != nil {
			return d, err
		}
		d.Status = StatusCode(s)
	}
	return d, nil
}
