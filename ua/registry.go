// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Body is implemented by every request/response message body known to
// this adapter. TypeID is the numeric identifier written as a
// FourByteNodeId ahead of the struct's own fields, mirroring how real
// OPC UA binary messages are self-describing on the wire.
type Body interface {
	TypeID() uint32
	encode(enc *Encoder)
	decode(dec *Decoder) error
}

// Request is a Body that carries a RequestHeader the multiplexer fills
// in (auth token, request handle, timeout hint) before sending.
type Request interface {
	Body
	SetHeader(RequestHeader)
	GetHeader() RequestHeader
}

// Response is a Body that carries a ResponseHeader whose ServiceResult
// the façade checks after a successful typed decode.
type Response interface {
	Body
	GetResponseHeader() ResponseHeader
}

// ServiceFaultTypeID is the well-known type id of a ServiceFault
// response: any response whose leading type id equals this value
// carries only a ResponseHeader with a non-good ServiceResult.
const ServiceFaultTypeID uint32 = 395

// ServiceFault is returned by the server in place of the expected
// response type when a service call fails at the service level.
type ServiceFault struct {
	Header ResponseHeader
}

func (ServiceFault) TypeID() uint32 { return ServiceFaultTypeID }

func (f ServiceFault) encode(enc *Encoder) { f.Header.Encode(enc) }

func (f *ServiceFault) decode(dec *Decoder) (err error) {
	f.Header, err = DecodeResponseHeader(dec)
	return err
}

var registry = map[uint32]func() Body{}

// Register installs a zero-value factory for a body type, keyed by its
// numeric type id. Called from each service file's init().
func Register(typeID uint32, factory func() Body) {
	registry[typeID] = factory
}

func init() {
	Register(ServiceFaultTypeID, func() Body { return &ServiceFault{} })
}

// EncodeBody serializes b as "type id followed by its fields", the
// C1 encode_body(T) -> bytes operation.
func EncodeBody(b Body) []byte {
	enc := NewEncoder()
	NewNumericNodeID(0, b.TypeID()).Encode(enc)
	b.encode(enc)
	return enc.Bytes()
}

// PeekTypeID reads only the leading NodeID of an encoded body, without
// decoding the remainder. Used by check_answer (§4.4) to detect a
// ServiceFault before committing to a typed decode.
func PeekTypeID(data []byte) (uint32, error) {
	dec := NewDecoder(data)
	id, err := DecodeNodeID(dec)
	if err != nil {
		return 0, err
	}
	return id.Numeric, nil
}

// DecodeBody is the C1 decode_body(type_tag, bytes) -> T operation: it
// reads the leading type id, looks up the registered factory, and
// decodes the remaining fields into a fresh instance.
func DecodeBody(data []byte) (Body, error) {
	dec := NewDecoder(data)
	id, err := DecodeNodeID(dec)
	if err != nil {
		return nil, err
	}
	factory, ok := registry[id.Numeric]
	if !ok {
		return nil, ErrUnknownType
	}
	b := factory()
	if err := b.decode(dec); err != nil {
		return nil, err
	}
	return b, nil
}
