// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

import "time"

// RequestHeader is sent with every service request (§3, §4.4).
// RequestHandle is the client-visible correlation field, distinct from
// the transport-level request id that keys the pending-request map.
type RequestHeader struct {
	AuthenticationToken NodeID
	Timestamp           time.Time
	RequestHandle       uint32
	ReturnDiagnostics   uint32
	AuditEntryID        string
	TimeoutHint         uint32
	// AdditionalHeader is left as raw bytes: its content is an
	// ExtensionObject from the full type dictionary, out of scope here.
	AdditionalHeader []byte
}

// Encode appends the RequestHeader fields.
func (h RequestHeader) Encode(enc *Encoder) {
	h.AuthenticationToken.Encode(enc)
	enc.WriteUint64(uint64(h.Timestamp.UnixNano()))
	enc.WriteUint32(h.RequestHandle)
	enc.WriteUint32(h.ReturnDiagnostics)
	enc.WriteString(h.AuditEntryID, h.AuditEntryID == "")
	enc.WriteUint32(h.TimeoutHint)
	enc.WriteBytes(h.AdditionalHeader)
}

// DecodeRequestHeader reads a RequestHeader.
func DecodeRequestHeader(dec *Decoder) (RequestHeader, error) {
	var h RequestHeader
	var err error
	if h.AuthenticationToken, err = DecodeNodeID(dec); err != nil {
		return h, err
	}
	ts, err := dec.ReadUint64()
	if err != nil {
		return h, err
	}
	h.Timestamp = time.Unix(0, int64(ts)).UTC()
	if h.RequestHandle, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.ReturnDiagnostics, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.AuditEntryID, err = dec.ReadString(); err != nil {
		return h, err
	}
	if h.TimeoutHint, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.AdditionalHeader, err = dec.ReadBytes(); err != nil {
		return h, err
	}
	return h, nil
}

// ResponseHeader is returned with every service response.
type ResponseHeader struct {
	Timestamp         time.Time
	RequestHandle     uint32
	ServiceResult     StatusCode
	ServiceDiagnostics []byte
	StringTable       []string
	AdditionalHeader  []byte
}

// Encode appends the ResponseHeader fields.
func (h ResponseHeader) Encode(enc *Encoder) {
	enc.WriteUint64(uint64(h.Timestamp.UnixNano()))
	enc.WriteUint32(h.RequestHandle)
	enc.WriteUint32(uint32(h.ServiceResult))
	enc.WriteBytes(h.ServiceDiagnostics)
	enc.WriteInt32(int32(len(h.StringTable)))
	for _, s := range h.StringTable {
		enc.WriteString(s, false)
	}
	enc.WriteBytes(h.AdditionalHeader)
}

// DecodeResponseHeader reads a ResponseHeader.
func DecodeResponseHeader(dec *Decoder) (ResponseHeader, error) {
	var h ResponseHeader
	ts, err := dec.ReadUint64()
	if err != nil {
		return h, err
	}
	h.Timestamp = time.Unix(0, int64(ts)).UTC()
	if h.RequestHandle, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	sr, err := dec.ReadUint32()
	if err != nil {
		return h, err
	}
	h.ServiceResult = StatusCode(sr)
	if h.ServiceDiagnostics, err = dec.ReadBytes(); err != nil {
		return h, err
	}
	n, err := dec.ReadInt32()
	if err != nil {
		return h, err
	}
	if n > 0 {
		h.StringTable = make([]string, n)
		for i := range h.StringTable {
			if h.StringTable[i], err = dec.ReadString(); err != nil {
				return h, err
			}
		}
	}
	if h.AdditionalHeader, err = dec.ReadBytes(); err != nil {
		return h, err
	}
	return h, nil
}
