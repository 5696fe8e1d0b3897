// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the SecureChannel services (Part 4, 5.5):
// OpenSecureChannel, CloseSecureChannel. These travel inside an OPN/CLO
// transport message rather than a MSG, but they still carry a regular
// service body that uasc hands off to the multiplexer like any other
// response (§3 item 2).
const (
	OpenSecureChannelRequestTypeID   uint32 = 1048
	OpenSecureChannelResponseTypeID  uint32 = 1049
	CloseSecureChannelRequestTypeID  uint32 = 1050
	CloseSecureChannelResponseTypeID uint32 = 1051
)

func init() {
	Register(OpenSecureChannelRequestTypeID, func() Body { return &OpenSecureChannelRequest{} })
	Register(OpenSecureChannelResponseTypeID, func() Body { return &OpenSecureChannelResponse{} })
	Register(CloseSecureChannelRequestTypeID, func() Body { return &CloseSecureChannelRequest{} })
	Register(CloseSecureChannelResponseTypeID, func() Body { return &CloseSecureChannelResponse{} })
}

// SecurityTokenRequestType distinguishes a fresh channel from a renewal.
type SecurityTokenRequestType int32

const (
	SecurityTokenIssue SecurityTokenRequestType = 0
	SecurityTokenRenew SecurityTokenRequestType = 1
)

// MessageSecurityMode is carried on the wire but, since the only
// supported policy is None (§1 non-goals), is always SecurityModeNone
// in practice; the field exists so a future policy can be slotted in
// without changing the request shape.
type MessageSecurityMode int32

const (
	SecurityModeInvalid MessageSecurityMode = 0
	SecurityModeNone    MessageSecurityMode = 1
	SecurityModeSign    MessageSecurityMode = 2
	SecurityModeSignAndEncrypt MessageSecurityMode = 3
)

// OpenSecureChannelRequest asks the server to issue or renew a security
// token. The channel's ClientNonce is never sent when the policy has no
// asymmetric algorithm (None), matching NonePolicy.
type OpenSecureChannelRequest struct {
	Header          RequestHeader
	ClientProtocolVersion uint32
	RequestType     SecurityTokenRequestType
	SecurityMode    MessageSecurityMode
	ClientNonce     []byte
	RequestedLifetime uint32
}

func (OpenSecureChannelRequest) TypeID() uint32             { return OpenSecureChannelRequestTypeID }
func (r *OpenSecureChannelRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r OpenSecureChannelRequest) GetHeader() RequestHeader   { return r.Header }

func (r OpenSecureChannelRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.ClientProtocolVersion)
	enc.WriteInt32(int32(r.RequestType))
	enc.WriteInt32(int32(r.SecurityMode))
	enc.WriteBytes(r.ClientNonce)
	enc.WriteUint32(r.RequestedLifetime)
}

func (r *OpenSecureChannelRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.ClientProtocolVersion, err = dec.ReadUint32(); err != nil {
		return err
	}
	rt, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	r.RequestType = SecurityTokenRequestType(rt)
	sm, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	r.SecurityMode = MessageSecurityMode(sm)
	if r.ClientNonce, err = dec.ReadBytes(); err != nil {
		return err
	}
	r.RequestedLifetime, err = dec.ReadUint32()
	return err
}

// ChannelSecurityToken identifies the symmetric key material in force
// for a span of sequence numbers; the lifecycle package schedules the
// renewal documented in §3 item 5 ("a moment before it actually
// expires") from RevisedLifetime.
type ChannelSecurityToken struct {
	ChannelID       uint32
	TokenID         uint32
	CreatedAt       int64 // unix nanoseconds
	RevisedLifetime uint32 // milliseconds
}

func (c ChannelSecurityToken) encode(enc *Encoder) {
	enc.WriteUint32(c.ChannelID)
	enc.WriteUint32(c.TokenID)
	enc.WriteUint64(uint64(c.CreatedAt))
	enc.WriteUint32(c.RevisedLifetime)
}

func decodeChannelSecurityToken(dec *Decoder) (ChannelSecurityToken, error) {
	var c ChannelSecurityToken
	var err error
	if c.ChannelID, err = dec.ReadUint32(); err != nil {
		return c, err
	}
	if c.TokenID, err = dec.ReadUint32(); err != nil {
		return c, err
	}
	ts, err := dec.ReadUint64()
	if err != nil {
		return c, err
	}
	c.CreatedAt = int64(ts)
	c.RevisedLifetime, err = dec.ReadUint32()
	return c, err
}

// OpenSecureChannelResponse carries the new or renewed token. uasc
// commits this token as described in §3 item 3: during the overlap
// window between renewal and expiry of the previous token, either
// token id is accepted on inbound symmetric messages.
type OpenSecureChannelResponse struct {
	Header      ResponseHeader
	ServerProtocolVersion uint32
	SecurityToken ChannelSecurityToken
	ServerNonce   []byte
}

func (OpenSecureChannelResponse) TypeID() uint32                  { return OpenSecureChannelResponseTypeID }
func (r OpenSecureChannelResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r OpenSecureChannelResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.ServerProtocolVersion)
	r.SecurityToken.encode(enc)
	enc.WriteBytes(r.ServerNonce)
}

func (r *OpenSecureChannelResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	if r.ServerProtocolVersion, err = dec.ReadUint32(); err != nil {
		return err
	}
	if r.SecurityToken, err = decodeChannelSecurityToken(dec); err != nil {
		return err
	}
	r.ServerNonce, err = dec.ReadBytes()
	return err
}

// CloseSecureChannelRequest tells the server to discard the channel.
// No response is expected; the transport drops the connection right
// after sending this (§3 item 6).
type CloseSecureChannelRequest struct {
	Header RequestHeader
}

func (CloseSecureChannelRequest) TypeID() uint32             { return CloseSecureChannelRequestTypeID }
func (r *CloseSecureChannelRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r CloseSecureChannelRequest) GetHeader() RequestHeader   { return r.Header }
func (r CloseSecureChannelRequest) encode(enc *Encoder)        { r.Header.Encode(enc) }
func (r *CloseSecureChannelRequest) decode(dec *Decoder) (err error) {
	r.Header, err = DecodeRequestHeader(dec)
	return err
}

// CloseSecureChannelResponse is defined for registry completeness; a
// compliant server never sends it.
type CloseSecureChannelResponse struct {
	Header ResponseHeader
}

func (CloseSecureChannelResponse) TypeID() uint32                  { return CloseSecureChannelResponseTypeID }
func (r CloseSecureChannelResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r CloseSecureChannelResponse) encode(enc *Encoder)              { r.Header.Encode(enc) }
func (r *CloseSecureChannelResponse) decode(dec *Decoder) (err error) {
	r.Header, err = DecodeResponseHeader(dec)
	return err
}
