// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the Attribute services (Part 4, 5.10): Read, Write,
// HistoryRead.
const (
	ReadRequestTypeID         uint32 = 1022
	ReadResponseTypeID        uint32 = 1023
	WriteRequestTypeID        uint32 = 1024
	WriteResponseTypeID       uint32 = 1025
	HistoryReadRequestTypeID  uint32 = 1028
	HistoryReadResponseTypeID uint32 = 1029
)

func init() {
	Register(ReadRequestTypeID, func() Body { return &ReadRequest{} })
	Register(ReadResponseTypeID, func() Body { return &ReadResponse{} })
	Register(WriteRequestTypeID, func() Body { return &WriteRequest{} })
	Register(WriteResponseTypeID, func() Body { return &WriteResponse{} })
	Register(HistoryReadRequestTypeID, func() Body { return &HistoryReadRequest{} })
	Register(HistoryReadResponseTypeID, func() Body { return &HistoryReadResponse{} })
}

// ReadRequest requests the value of one or more node attributes. The
// façade post-processes NodeClass and ValueRank results (§4.6 item 2);
// this type only carries the wire shape.
type ReadRequest struct {
	Header      RequestHeader
	MaxAge      float64
	NodesToRead []ReadValueID
}

func (ReadRequest) TypeID() uint32             { return ReadRequestTypeID }
func (r *ReadRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r ReadRequest) GetHeader() RequestHeader   { return r.Header }
func (r ReadRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint64(float64bits(r.MaxAge))
	WriteSlice(enc, r.NodesToRead, func(e *Encoder, v ReadValueID) { v.encode(e) })
}

func (r *ReadRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	bits, err := dec.ReadUint64()
	if err != nil {
		return err
	}
	r.MaxAge = float64frombits(bits)
	r.NodesToRead, err = ReadSlice(dec, decodeReadValueID)
	return err
}

// ReadResponse carries one DataValue per requested (node, attribute).
type ReadResponse struct {
	Header  ResponseHeader
	Results []DataValue
}

func (ReadResponse) TypeID() uint32                  { return ReadResponseTypeID }
func (r ReadResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r ReadResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteInt32(int32(len(r.Results)))
	for _, v := range r.Results {
		_ = v.Encode(enc)
	}
}

func (r *ReadResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	n, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	r.Results = make([]DataValue, n)
	for i := range r.Results {
		if r.Results[i], err = DecodeDataValue(dec); err != nil {
			return err
		}
	}
	return nil
}

// WriteRequest writes one or more node attributes.
type WriteRequest struct {
	Header       RequestHeader
	NodesToWrite []WriteValue
}

func (WriteRequest) TypeID() uint32             { return WriteRequestTypeID }
func (r *WriteRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r WriteRequest) GetHeader() RequestHeader   { return r.Header }
func (r WriteRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteInt32(int32(len(r.NodesToWrite)))
	for _, v := range r.NodesToWrite {
		_ = v.encode(enc)
	}
}

func (r *WriteRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	n, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	r.NodesToWrite = make([]WriteValue, n)
	for i := range r.NodesToWrite {
		if r.NodesToWrite[i], err = decodeWriteValue(dec); err != nil {
			return err
		}
	}
	return nil
}

// WriteResponse carries one StatusCode per written attribute.
type WriteResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

func (WriteResponse) TypeID() uint32                  { return WriteResponseTypeID }
func (r WriteResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r WriteResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *WriteResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, func(d *Decoder) (StatusCode, error) {
		v, err := d.ReadUint32()
		return StatusCode(v), err
	})
	return err
}

// HistoryReadValueID identifies one node whose history is requested.
type HistoryReadValueID struct {
	NodeID NodeID
}

func (h HistoryReadValueID) encode(enc *Encoder) { h.NodeID.Encode(enc) }

func decodeHistoryReadValueID(dec *Decoder) (HistoryReadValueID, error) {
	id, err := DecodeNodeID(dec)
	return HistoryReadValueID{NodeID: id}, err
}

// HistoryReadRequest requests raw historical values for one or more nodes.
type HistoryReadRequest struct {
	Header             RequestHeader
	StartTime, EndTime int64 // unix nanoseconds; 0 means unbounded
	NumValuesPerNode   uint32
	NodesToRead        []HistoryReadValueID
}

func (HistoryReadRequest) TypeID() uint32             { return HistoryReadRequestTypeID }
func (r *HistoryReadRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r HistoryReadRequest) GetHeader() RequestHeader   { return r.Header }
func (r HistoryReadRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint64(uint64(r.StartTime))
	enc.WriteUint64(uint64(r.EndTime))
	enc.WriteUint32(r.NumValuesPerNode)
	WriteSlice(enc, r.NodesToRead, func(e *Encoder, v HistoryReadValueID) { v.encode(e) })
}

func (r *HistoryReadRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	st, err := dec.ReadUint64()
	if err != nil {
		return err
	}
	r.StartTime = int64(st)
	et, err := dec.ReadUint64()
	if err != nil {
		return err
	}
	r.EndTime = int64(et)
	if r.NumValuesPerNode, err = dec.ReadUint32(); err != nil {
		return err
	}
	r.NodesToRead, err = ReadSlice(dec, decodeHistoryReadValueID)
	return err
}

// HistoryData is the raw historical value set for one node.
type HistoryData struct {
	StatusCode StatusCode
	Values     []DataValue
}

func (h HistoryData) encode(enc *Encoder) {
	enc.WriteUint32(uint32(h.StatusCode))
	enc.WriteInt32(int32(len(h.Values)))
	for _, v := range h.Values {
		_ = v.Encode(enc)
	}
}

func decodeHistoryData(dec *Decoder) (HistoryData, error) {
	var h HistoryData
	sc, err := dec.ReadUint32()
	if err != nil {
		return h, err
	}
	h.StatusCode = StatusCode(sc)
	n, err := dec.ReadInt32()
	if err != nil {
		return h, err
	}
	if n <= 0 {
		return h, nil
	}
	h.Values = make([]DataValue, n)
	for i := range h.Values {
		if h.Values[i], err = DecodeDataValue(dec); err != nil {
			return h, err
		}
	}
	return h, nil
}

// HistoryReadResponse carries one HistoryData per requested node.
type HistoryReadResponse struct {
	Header  ResponseHeader
	Results []HistoryData
}

func (HistoryReadResponse) TypeID() uint32                  { return HistoryReadResponseTypeID }
func (r HistoryReadResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r HistoryReadResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteInt32(int32(len(r.Results)))
	for _, v := range r.Results {
		v.encode(enc)
	}
}

func (r *HistoryReadResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	n, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	r.Results = make([]HistoryData, n)
	for i := range r.Results {
		if r.Results[i], err = decodeHistoryData(dec); err != nil {
			return err
		}
	}
	return nil
}
