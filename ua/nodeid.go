// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// NodeIdType is the encoding-mask discriminator of the first byte of a
// NodeId (Part 6, 5.2.2.9). Only the identifier shapes the client core
// actually needs to tag requests/responses and authentication tokens
// are implemented; Guid and ByteString identifiers are left to the
// full type dictionary this package stands in for.
type NodeIDType byte

const (
	NodeIDTypeTwoByte NodeIDType = 0x00
	NodeIDTypeFourByte NodeIDType = 0x01
	NodeIDTypeNumeric  NodeIDType = 0x02
	NodeIDTypeString   NodeIDType = 0x03
)

// NodeID identifies a node, a type, or (for the authentication token)
// an opaque session handle issued by the server.
type NodeID struct {
	Namespace  uint16
	Numeric    uint32
	StringID   string
	IsString   bool
}

// NewNumericNodeID builds a numeric NodeID, the shape used for every
// well-known service type id in this package.
func NewNumericNodeID(ns uint16, id uint32) NodeID {
	return NodeID{Namespace: ns, Numeric: id}
}

// NewStringNodeID builds a string-identifier NodeID, the shape used for
// authentication tokens issued by real servers.
func NewStringNodeID(ns uint16, id string) NodeID {
	return NodeID{Namespace: ns, StringID: id, IsString: true}
}

// IsNil reports whether n is the null NodeID (ns=0, numeric id=0).
func (n NodeID) IsNil() bool {
	return !n.IsString && n.Namespace == 0 && n.Numeric == 0
}

// Encode appends n's binary form to enc.
func (n NodeID) Encode(enc *Encoder) {
	switch {
	case n.IsString:
		enc.WriteByte(byte(NodeIDTypeString))
		enc.WriteUint16(n.Namespace)
		enc.WriteString(n.StringID, false)
	case n.Namespace == 0 && n.Numeric <= 0xFF:
		enc.WriteByte(byte(NodeIDTypeTwoByte))
		enc.WriteByte(byte(n.Numeric))
	case n.Namespace <= 0xFF && n.Numeric <= 0xFFFF:
		enc.WriteByte(byte(NodeIDTypeFourByte))
		enc.WriteByte(byte(n.Namespace))
		enc.WriteUint16(uint16(n.Numeric))
	default:
		enc.WriteByte(byte(NodeIDTypeNumeric))
		enc.WriteUint16(n.Namespace)
		enc.WriteUint32(n.Numeric)
	}
}

// DecodeNodeID reads a NodeID from dec.
func DecodeNodeID(dec *Decoder) (NodeID, error) {
	tag, err := dec.ReadByte()
	if err != nil {
		return NodeID{}, err
	}
	switch NodeIDType(tag) {
	case NodeIDTypeTwoByte:
		b, err := dec.ReadByte()
		if err != nil {
			return NodeID{}, err
		}
		return NewNumericNodeID(0, uint32(b)), nil
	case NodeIDTypeFourByte:
		ns, err := dec.ReadByte()
		if err != nil {
			return NodeID{}, err
		}
		id, err := dec.ReadUint16()
		if err != nil {
			return NodeID{}, err
		}
		return NewNumericNodeID(uint16(ns), uint32(id)), nil
	case NodeIDTypeNumeric:
		ns, err := dec.ReadUint16()
		if err != nil {
			return NodeID{}, err
		}
		id, err := dec.ReadUint32()
		if err != nil {
			return NodeID{}, err
		}
		return NewNumericNodeID(ns, id), nil
	case NodeIDTypeString:
		ns, err := dec.ReadUint16()
		if err != nil {
			return NodeID{}, err
		}
		s, err := dec.ReadString()
		if err != nil {
			return NodeID{}, err
		}
		return NewStringNodeID(ns, s), nil
	default:
		return NodeID{}, ErrInvalidEncoding
	}
}
