// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the Discovery services (Part 4, 5.4). These are
// proxied through the same secure channel rather than implemented
// server-side (§1 non-goals).
const (
	GetEndpointsRequestTypeID          uint32 = 1006
	GetEndpointsResponseTypeID         uint32 = 1007
	FindServersRequestTypeID           uint32 = 1008
	FindServersResponseTypeID          uint32 = 1009
	FindServersOnNetworkRequestTypeID  uint32 = 1010
	FindServersOnNetworkResponseTypeID uint32 = 1011
	RegisterServerRequestTypeID        uint32 = 1012
	RegisterServerResponseTypeID       uint32 = 1013
	RegisterServer2RequestTypeID       uint32 = 1014
	RegisterServer2ResponseTypeID      uint32 = 1015
)

func init() {
	Register(GetEndpointsRequestTypeID, func() Body { return &GetEndpointsRequest{} })
	Register(GetEndpointsResponseTypeID, func() Body { return &GetEndpointsResponse{} })
	Register(FindServersRequestTypeID, func() Body { return &FindServersRequest{} })
	Register(FindServersResponseTypeID, func() Body { return &FindServersResponse{} })
	Register(FindServersOnNetworkRequestTypeID, func() Body { return &FindServersOnNetworkRequest{} })
	Register(FindServersOnNetworkResponseTypeID, func() Body { return &FindServersOnNetworkResponse{} })
	Register(RegisterServerRequestTypeID, func() Body { return &RegisterServerRequest{} })
	Register(RegisterServerResponseTypeID, func() Body { return &RegisterServerResponse{} })
	Register(RegisterServer2RequestTypeID, func() Body { return &RegisterServer2Request{} })
	Register(RegisterServer2ResponseTypeID, func() Body { return &RegisterServer2Response{} })
}

// EndpointDescription is a simplified endpoint record.
type EndpointDescription struct {
	EndpointURL       string
	SecurityPolicyURI string
	SecurityLevel     byte
}

func (e EndpointDescription) encode(enc *Encoder) {
	enc.WriteString(e.EndpointURL, false)
	enc.WriteString(e.SecurityPolicyURI, false)
	enc.WriteByte(e.SecurityLevel)
}

func decodeEndpointDescription(dec *Decoder) (EndpointDescription, error) {
	var e EndpointDescription
	var err error
	if e.EndpointURL, err = dec.ReadString(); err != nil {
		return e, err
	}
	if e.SecurityPolicyURI, err = dec.ReadString(); err != nil {
		return e, err
	}
	e.SecurityLevel, err = dec.ReadByte()
	return e, err
}

// GetEndpointsRequest asks a server which endpoints it exposes.
type GetEndpointsRequest struct {
	Header      RequestHeader
	EndpointURL string
}

func (GetEndpointsRequest) TypeID() uint32             { return GetEndpointsRequestTypeID }
func (r *GetEndpointsRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r GetEndpointsRequest) GetHeader() RequestHeader   { return r.Header }
func (r GetEndpointsRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteString(r.EndpointURL, false)
}

func (r *GetEndpointsRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.EndpointURL, err = dec.ReadString()
	return err
}

// GetEndpointsResponse lists the endpoints a server advertises.
type GetEndpointsResponse struct {
	Header    ResponseHeader
	Endpoints []EndpointDescription
}

func (GetEndpointsResponse) TypeID() uint32                  { return GetEndpointsResponseTypeID }
func (r GetEndpointsResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r GetEndpointsResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Endpoints, func(e *Encoder, ep EndpointDescription) { ep.encode(e) })
}

func (r *GetEndpointsResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Endpoints, err = ReadSlice(dec, decodeEndpointDescription)
	return err
}

// FindServersRequest asks a discovery endpoint which servers it knows.
type FindServersRequest struct {
	Header      RequestHeader
	EndpointURL string
}

func (FindServersRequest) TypeID() uint32             { return FindServersRequestTypeID }
func (r *FindServersRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r FindServersRequest) GetHeader() RequestHeader   { return r.Header }
func (r FindServersRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteString(r.EndpointURL, false)
}

func (r *FindServersRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.EndpointURL, err = dec.ReadString()
	return err
}

// FindServersResponse lists the discovered application descriptions,
// represented here as bare URIs.
type FindServersResponse struct {
	Header  ResponseHeader
	Servers []string
}

func (FindServersResponse) TypeID() uint32                  { return FindServersResponseTypeID }
func (r FindServersResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r FindServersResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Servers, func(e *Encoder, s string) { e.WriteString(s, false) })
}

func (r *FindServersResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Servers, err = ReadSlice(dec, (*Decoder).ReadString)
	return err
}

// FindServersOnNetworkRequest queries a local discovery server's mDNS cache.
type FindServersOnNetworkRequest struct {
	Header       RequestHeader
	StartingRecordID uint32
	MaxRecordsToReturn uint32
}

func (FindServersOnNetworkRequest) TypeID() uint32             { return FindServersOnNetworkRequestTypeID }
func (r *FindServersOnNetworkRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r FindServersOnNetworkRequest) GetHeader() RequestHeader   { return r.Header }
func (r FindServersOnNetworkRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.StartingRecordID)
	enc.WriteUint32(r.MaxRecordsToReturn)
}

func (r *FindServersOnNetworkRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.StartingRecordID, err = dec.ReadUint32(); err != nil {
		return err
	}
	r.MaxRecordsToReturn, err = dec.ReadUint32()
	return err
}

// FindServersOnNetworkResponse lists the matching network records.
type FindServersOnNetworkResponse struct {
	Header  ResponseHeader
	Servers []string
}

func (FindServersOnNetworkResponse) TypeID() uint32 { return FindServersOnNetworkResponseTypeID }
func (r FindServersOnNetworkResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r FindServersOnNetworkResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Servers, func(e *Encoder, s string) { e.WriteString(s, false) })
}

func (r *FindServersOnNetworkResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Servers, err = ReadSlice(dec, (*Decoder).ReadString)
	return err
}

// RegisterServerRequest registers a server with a discovery server. The
// façade calls ServiceResult.check() on the response but never returns
// anything from it (Open Question in spec.md §9, preserved as-is).
type RegisterServerRequest struct {
	Header     RequestHeader
	ServerURI  string
	ServerName string
	IsOnline   bool
}

func (RegisterServerRequest) TypeID() uint32             { return RegisterServerRequestTypeID }
func (r *RegisterServerRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r RegisterServerRequest) GetHeader() RequestHeader   { return r.Header }
func (r RegisterServerRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteString(r.ServerURI, false)
	enc.WriteString(r.ServerName, false)
	enc.WriteBool(r.IsOnline)
}

func (r *RegisterServerRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.ServerURI, err = dec.ReadString(); err != nil {
		return err
	}
	if r.ServerName, err = dec.ReadString(); err != nil {
		return err
	}
	r.IsOnline, err = dec.ReadBool()
	return err
}

// RegisterServerResponse carries only the response header.
type RegisterServerResponse struct {
	Header ResponseHeader
}

func (RegisterServerResponse) TypeID() uint32                  { return RegisterServerResponseTypeID }
func (r RegisterServerResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r RegisterServerResponse) encode(enc *Encoder)              { r.Header.Encode(enc) }
func (r *RegisterServerResponse) decode(dec *Decoder) (err error) {
	r.Header, err = DecodeResponseHeader(dec)
	return err
}

// RegisterServer2Request is RegisterServer plus discovery configuration.
type RegisterServer2Request struct {
	Header    RequestHeader
	ServerURI string
}

func (RegisterServer2Request) TypeID() uint32             { return RegisterServer2RequestTypeID }
func (r *RegisterServer2Request) SetHeader(h RequestHeader) { r.Header = h }
func (r RegisterServer2Request) GetHeader() RequestHeader   { return r.Header }
func (r RegisterServer2Request) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteString(r.ServerURI, false)
}

func (r *RegisterServer2Request) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.ServerURI, err = dec.ReadString()
	return err
}

// RegisterServer2Response carries per-item configuration results even
// when the overall call succeeds (§9 Open Question, preserved).
type RegisterServer2Response struct {
	Header               ResponseHeader
	ConfigurationResults []StatusCode
}

func (RegisterServer2Response) TypeID() uint32 { return RegisterServer2ResponseTypeID }
func (r RegisterServer2Response) GetResponseHeader() ResponseHeader { return r.Header }
func (r RegisterServer2Response) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.ConfigurationResults, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *RegisterServer2Response) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.ConfigurationResults, err = ReadSlice(dec, func(d *Decoder) (StatusCode, error) {
		v, err := d.ReadUint32()
		return StatusCode(v), err
	})
	return err
}
