// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the View services (Part 4, 5.8): Browse, BrowseNext,
// TranslateBrowsePathsToNodeIds.
const (
	BrowseRequestTypeID                        uint32 = 1016
	BrowseResponseTypeID                        uint32 = 1017
	BrowseNextRequestTypeID                     uint32 = 1018
	BrowseNextResponseTypeID                    uint32 = 1019
	TranslateBrowsePathsToNodeIDsRequestTypeID  uint32 = 1020
	TranslateBrowsePathsToNodeIDsResponseTypeID uint32 = 1021
)

func init() {
	Register(BrowseRequestTypeID, func() Body { return &BrowseRequest{} })
	Register(BrowseResponseTypeID, func() Body { return &BrowseResponse{} })
	Register(BrowseNextRequestTypeID, func() Body { return &BrowseNextRequest{} })
	Register(BrowseNextResponseTypeID, func() Body { return &BrowseNextResponse{} })
	Register(TranslateBrowsePathsToNodeIDsRequestTypeID, func() Body { return &TranslateBrowsePathsToNodeIDsRequest{} })
	Register(TranslateBrowsePathsToNodeIDsResponseTypeID, func() Body { return &TranslateBrowsePathsToNodeIDsResponse{} })
}

// BrowseRequest expands one or more nodes' references.
type BrowseRequest struct {
	Header             RequestHeader
	NodesToBrowse      []BrowseDescription
	RequestedMaxReferencesPerNode uint32
}

func (BrowseRequest) TypeID() uint32             { return BrowseRequestTypeID }
func (r *BrowseRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r BrowseRequest) GetHeader() RequestHeader   { return r.Header }
func (r BrowseRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.NodesToBrowse, func(e *Encoder, b BrowseDescription) { b.encode(e) })
	enc.WriteUint32(r.RequestedMaxReferencesPerNode)
}

func (r *BrowseRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.NodesToBrowse, err = ReadSlice(dec, decodeBrowseDescription); err != nil {
		return err
	}
	r.RequestedMaxReferencesPerNode, err = dec.ReadUint32()
	return err
}

// BrowseResponse is the chunked response scenario of §8 item 3: a
// single logical body whose per-node results may have been split
// across several chunks below in uasc before reaching here.
type BrowseResponse struct {
	Header  ResponseHeader
	Results []BrowseResult
}

func (BrowseResponse) TypeID() uint32                  { return BrowseResponseTypeID }
func (r BrowseResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r BrowseResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, b BrowseResult) { b.encode(e) })
}

func (r *BrowseResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, decodeBrowseResult)
	return err
}

// BrowseNextRequest continues a Browse whose result was truncated.
type BrowseNextRequest struct {
	Header               RequestHeader
	ReleaseContinuationPoints bool
	ContinuationPoints   [][]byte
}

func (BrowseNextRequest) TypeID() uint32             { return BrowseNextRequestTypeID }
func (r *BrowseNextRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r BrowseNextRequest) GetHeader() RequestHeader   { return r.Header }
func (r BrowseNextRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteBool(r.ReleaseContinuationPoints)
	WriteSlice(enc, r.ContinuationPoints, func(e *Encoder, b []byte) { e.WriteBytes(b) })
}

func (r *BrowseNextRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.ReleaseContinuationPoints, err = dec.ReadBool(); err != nil {
		return err
	}
	r.ContinuationPoints, err = ReadSlice(dec, (*Decoder).ReadBytes)
	return err
}

// BrowseNextResponse carries further results for a continued Browse.
type BrowseNextResponse struct {
	Header  ResponseHeader
	Results []BrowseResult
}

func (BrowseNextResponse) TypeID() uint32                  { return BrowseNextResponseTypeID }
func (r BrowseNextResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r BrowseNextResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, b BrowseResult) { b.encode(e) })
}

func (r *BrowseNextResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, decodeBrowseResult)
	return err
}

// TranslateBrowsePathsToNodeIDsRequest resolves relative browse paths
// to concrete node ids.
type TranslateBrowsePathsToNodeIDsRequest struct {
	Header      RequestHeader
	BrowsePaths []BrowsePath
}

func (TranslateBrowsePathsToNodeIDsRequest) TypeID() uint32 {
	return TranslateBrowsePathsToNodeIDsRequestTypeID
}
func (r *TranslateBrowsePathsToNodeIDsRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r TranslateBrowsePathsToNodeIDsRequest) GetHeader() RequestHeader   { return r.Header }
func (r TranslateBrowsePathsToNodeIDsRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.BrowsePaths, func(e *Encoder, p BrowsePath) { p.encode(e) })
}

func (r *TranslateBrowsePathsToNodeIDsRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.BrowsePaths, err = ReadSlice(dec, decodeBrowsePath)
	return err
}

// TranslateBrowsePathsToNodeIDsResponse returns the resolved targets.
type TranslateBrowsePathsToNodeIDsResponse struct {
	Header  ResponseHeader
	Results []BrowsePathResult
}

func (TranslateBrowsePathsToNodeIDsResponse) TypeID() uint32 {
	return TranslateBrowsePathsToNodeIDsResponseTypeID
}
func (r TranslateBrowsePathsToNodeIDsResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r TranslateBrowsePathsToNodeIDsResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, p BrowsePathResult) { p.encode(e) })
}

func (r *TranslateBrowsePathsToNodeIDsResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, decodeBrowsePathResult)
	return err
}
