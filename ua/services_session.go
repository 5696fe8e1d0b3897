// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the Session-management services (Part 4, 5.6).
const (
	CreateSessionRequestTypeID    uint32 = 1000
	CreateSessionResponseTypeID   uint32 = 1001
	ActivateSessionRequestTypeID  uint32 = 1002
	ActivateSessionResponseTypeID uint32 = 1003
	CloseSessionRequestTypeID     uint32 = 1004
	CloseSessionResponseTypeID    uint32 = 1005
)

func init() {
	Register(CreateSessionRequestTypeID, func() Body { return &CreateSessionRequest{} })
	Register(CreateSessionResponseTypeID, func() Body { return &CreateSessionResponse{} })
	Register(ActivateSessionRequestTypeID, func() Body { return &ActivateSessionRequest{} })
	Register(ActivateSessionResponseTypeID, func() Body { return &ActivateSessionResponse{} })
	Register(CloseSessionRequestTypeID, func() Body { return &CloseSessionRequest{} })
	Register(CloseSessionResponseTypeID, func() Body { return &CloseSessionResponse{} })
}

// CreateSessionRequest opens a new, not-yet-activated session.
type CreateSessionRequest struct {
	Header                  RequestHeader
	ClientDescription       string
	EndpointURL             string
	SessionName             string
	ClientNonce             []byte
	RequestedSessionTimeout float64
}

func (CreateSessionRequest) TypeID() uint32             { return CreateSessionRequestTypeID }
func (r *CreateSessionRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r CreateSessionRequest) GetHeader() RequestHeader   { return r.Header }

func (r CreateSessionRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteString(r.ClientDescription, r.ClientDescription == "")
	enc.WriteString(r.EndpointURL, r.EndpointURL == "")
	enc.WriteString(r.SessionName, r.SessionName == "")
	enc.WriteBytes(r.ClientNonce)
	enc.WriteUint64(float64bits(r.RequestedSessionTimeout))
}

func (r *CreateSessionRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.ClientDescription, err = dec.ReadString(); err != nil {
		return err
	}
	if r.EndpointURL, err = dec.ReadString(); err != nil {
		return err
	}
	if r.SessionName, err = dec.ReadString(); err != nil {
		return err
	}
	if r.ClientNonce, err = dec.ReadBytes(); err != nil {
		return err
	}
	bits, err := dec.ReadUint64()
	r.RequestedSessionTimeout = float64frombits(bits)
	return err
}

// CreateSessionResponse returns the session's identity and the token
// the façade must echo in every subsequent RequestHeader.
type CreateSessionResponse struct {
	Header              ResponseHeader
	SessionID           NodeID
	AuthenticationToken NodeID
	RevisedTimeout      float64
	ServerNonce         []byte
	MaxRequestMessageSize uint32
}

func (CreateSessionResponse) TypeID() uint32                  { return CreateSessionResponseTypeID }
func (r CreateSessionResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r CreateSessionResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	r.SessionID.Encode(enc)
	r.AuthenticationToken.Encode(enc)
	enc.WriteUint64(float64bits(r.RevisedTimeout))
	enc.WriteBytes(r.ServerNonce)
	enc.WriteUint32(r.MaxRequestMessageSize)
}

func (r *CreateSessionResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	if r.SessionID, err = DecodeNodeID(dec); err != nil {
		return err
	}
	if r.AuthenticationToken, err = DecodeNodeID(dec); err != nil {
		return err
	}
	bits, err := dec.ReadUint64()
	if err != nil {
		return err
	}
	r.RevisedTimeout = float64frombits(bits)
	if r.ServerNonce, err = dec.ReadBytes(); err != nil {
		return err
	}
	r.MaxRequestMessageSize, err = dec.ReadUint32()
	return err
}

// ActivateSessionRequest associates the calling user identity with a
// previously created session.
type ActivateSessionRequest struct {
	Header            RequestHeader
	LocaleIDs         []string
	UserIdentityToken []byte // opaque ExtensionObject, out of codec scope
}

func (ActivateSessionRequest) TypeID() uint32             { return ActivateSessionRequestTypeID }
func (r *ActivateSessionRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r ActivateSessionRequest) GetHeader() RequestHeader   { return r.Header }

func (r ActivateSessionRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.LocaleIDs, func(e *Encoder, s string) { e.WriteString(s, false) })
	enc.WriteBytes(r.UserIdentityToken)
}

func (r *ActivateSessionRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.LocaleIDs, err = ReadSlice(dec, (*Decoder).ReadString); err != nil {
		return err
	}
	r.UserIdentityToken, err = dec.ReadBytes()
	return err
}

// ActivateSessionResponse carries the refreshed server nonce.
type ActivateSessionResponse struct {
	Header      ResponseHeader
	ServerNonce []byte
}

func (ActivateSessionResponse) TypeID() uint32                  { return ActivateSessionResponseTypeID }
func (r ActivateSessionResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r ActivateSessionResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteBytes(r.ServerNonce)
}

func (r *ActivateSessionResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.ServerNonce, err = dec.ReadBytes()
	return err
}

// CloseSessionRequest ends a session, optionally deleting its
// subscriptions (the common case when Publish requests are in flight,
// §4.6 item 3).
type CloseSessionRequest struct {
	Header              RequestHeader
	DeleteSubscriptions bool
}

func (CloseSessionRequest) TypeID() uint32             { return CloseSessionRequestTypeID }
func (r *CloseSessionRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r CloseSessionRequest) GetHeader() RequestHeader   { return r.Header }

func (r CloseSessionRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteBool(r.DeleteSubscriptions)
}

func (r *CloseSessionRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.DeleteSubscriptions, err = dec.ReadBool()
	return err
}

// CloseSessionResponse carries no parameters beyond the header.
type CloseSessionResponse struct {
	Header ResponseHeader
}

func (CloseSessionResponse) TypeID() uint32                  { return CloseSessionResponseTypeID }
func (r CloseSessionResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r CloseSessionResponse) encode(enc *Encoder)              { r.Header.Encode(enc) }

func (r *CloseSessionResponse) decode(dec *Decoder) (err error) {
	r.Header, err = DecodeResponseHeader(dec)
	return err
}
