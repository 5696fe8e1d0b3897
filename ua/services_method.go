// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the Method service (Part 4, 5.11): Call.
const (
	CallRequestTypeID  uint32 = 1026
	CallResponseTypeID uint32 = 1027
)

func init() {
	Register(CallRequestTypeID, func() Body { return &CallRequest{} })
	Register(CallResponseTypeID, func() Body { return &CallResponse{} })
}

// CallMethodRequest invokes a single method on a single object node.
type CallMethodRequest struct {
	ObjectID        NodeID
	MethodID        NodeID
	InputArguments  []Variant
}

func (c CallMethodRequest) encode(enc *Encoder) {
	c.ObjectID.Encode(enc)
	c.MethodID.Encode(enc)
	enc.WriteInt32(int32(len(c.InputArguments)))
	for _, v := range c.InputArguments {
		_ = v.Encode(enc)
	}
}

func decodeCallMethodRequest(dec *Decoder) (CallMethodRequest, error) {
	var c CallMethodRequest
	var err error
	if c.ObjectID, err = DecodeNodeID(dec); err != nil {
		return c, err
	}
	if c.MethodID, err = DecodeNodeID(dec); err != nil {
		return c, err
	}
	n, err := dec.ReadInt32()
	if err != nil {
		return c, err
	}
	if n <= 0 {
		return c, nil
	}
	c.InputArguments = make([]Variant, n)
	for i := range c.InputArguments {
		if c.InputArguments[i], err = DecodeVariant(dec); err != nil {
			return c, err
		}
	}
	return c, nil
}

// CallMethodResult is the per-call outcome, including any out
// arguments and per-argument diagnostic status codes.
type CallMethodResult struct {
	StatusCode          StatusCode
	InputArgumentResults []StatusCode
	OutputArguments     []Variant
}

func (c CallMethodResult) encode(enc *Encoder) {
	enc.WriteUint32(uint32(c.StatusCode))
	WriteSlice(enc, c.InputArgumentResults, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
	enc.WriteInt32(int32(len(c.OutputArguments)))
	for _, v := range c.OutputArguments {
		_ = v.Encode(enc)
	}
}

func decodeCallMethodResult(dec *Decoder) (CallMethodResult, error) {
	var c CallMethodResult
	sc, err := dec.ReadUint32()
	if err != nil {
		return c, err
	}
	c.StatusCode = StatusCode(sc)
	if c.InputArgumentResults, err = ReadSlice(dec, func(d *Decoder) (StatusCode, error) {
		v, err := d.ReadUint32()
		return StatusCode(v), err
	}); err != nil {
		return c, err
	}
	n, err := dec.ReadInt32()
	if err != nil {
		return c, err
	}
	if n <= 0 {
		return c, nil
	}
	c.OutputArguments = make([]Variant, n)
	for i := range c.OutputArguments {
		if c.OutputArguments[i], err = DecodeVariant(dec); err != nil {
			return c, err
		}
	}
	return c, nil
}

// CallRequest invokes one or more methods in a single service call.
type CallRequest struct {
	Header            RequestHeader
	MethodsToCall     []CallMethodRequest
}

func (CallRequest) TypeID() uint32             { return CallRequestTypeID }
func (r *CallRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r CallRequest) GetHeader() RequestHeader   { return r.Header }
func (r CallRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.MethodsToCall, func(e *Encoder, c CallMethodRequest) { c.encode(e) })
}

func (r *CallRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.MethodsToCall, err = ReadSlice(dec, decodeCallMethodRequest)
	return err
}

// CallResponse carries one CallMethodResult per requested method call.
type CallResponse struct {
	Header  ResponseHeader
	Results []CallMethodResult
}

func (CallResponse) TypeID() uint32                  { return CallResponseTypeID }
func (r CallResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r CallResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, c CallMethodResult) { c.encode(e) })
}

func (r *CallResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, decodeCallMethodResult)
	return err
}
