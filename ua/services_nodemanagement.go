// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the NodeManagement services (Part 4, 5.7): AddNodes,
// AddReferences, DeleteReferences, DeleteNodes.
const (
	AddNodesRequestTypeID         uint32 = 1030
	AddNodesResponseTypeID        uint32 = 1031
	AddReferencesRequestTypeID    uint32 = 1032
	AddReferencesResponseTypeID   uint32 = 1033
	DeleteReferencesRequestTypeID uint32 = 1034
	DeleteReferencesResponseTypeID uint32 = 1035
	DeleteNodesRequestTypeID      uint32 = 1036
	DeleteNodesResponseTypeID     uint32 = 1037
)

func init() {
	Register(AddNodesRequestTypeID, func() Body { return &AddNodesRequest{} })
	Register(AddNodesResponseTypeID, func() Body { return &AddNodesResponse{} })
	Register(AddReferencesRequestTypeID, func() Body { return &AddReferencesRequest{} })
	Register(AddReferencesResponseTypeID, func() Body { return &AddReferencesResponse{} })
	Register(DeleteReferencesRequestTypeID, func() Body { return &DeleteReferencesRequest{} })
	Register(DeleteReferencesResponseTypeID, func() Body { return &DeleteReferencesResponse{} })
	Register(DeleteNodesRequestTypeID, func() Body { return &DeleteNodesRequest{} })
	Register(DeleteNodesResponseTypeID, func() Body { return &DeleteNodesResponse{} })
}

// AddNodesItem describes one node to create.
type AddNodesItem struct {
	ParentNodeID    NodeID
	ReferenceTypeID NodeID
	RequestedNewNodeID NodeID
	BrowseName      string
	NodeClass       NodeClass
}

func (a AddNodesItem) encode(enc *Encoder) {
	a.ParentNodeID.Encode(enc)
	a.ReferenceTypeID.Encode(enc)
	a.RequestedNewNodeID.Encode(enc)
	enc.WriteString(a.BrowseName, false)
	enc.WriteInt32(int32(a.NodeClass))
}

func decodeAddNodesItem(dec *Decoder) (AddNodesItem, error) {
	var a AddNodesItem
	var err error
	if a.ParentNodeID, err = DecodeNodeID(dec); err != nil {
		return a, err
	}
	if a.ReferenceTypeID, err = DecodeNodeID(dec); err != nil {
		return a, err
	}
	if a.RequestedNewNodeID, err = DecodeNodeID(dec); err != nil {
		return a, err
	}
	if a.BrowseName, err = dec.ReadString(); err != nil {
		return a, err
	}
	nc, err := dec.ReadInt32()
	a.NodeClass = NodeClass(nc)
	return a, err
}

// AddNodesRequest creates one or more nodes in the server's address space.
type AddNodesRequest struct {
	Header       RequestHeader
	NodesToAdd   []AddNodesItem
}

func (AddNodesRequest) TypeID() uint32             { return AddNodesRequestTypeID }
func (r *AddNodesRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r AddNodesRequest) GetHeader() RequestHeader   { return r.Header }
func (r AddNodesRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.NodesToAdd, func(e *Encoder, a AddNodesItem) { a.encode(e) })
}

func (r *AddNodesRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.NodesToAdd, err = ReadSlice(dec, decodeAddNodesItem)
	return err
}

// AddNodesResult is the per-item outcome of AddNodes.
type AddNodesResult struct {
	StatusCode StatusCode
	AddedNodeID NodeID
}

func (a AddNodesResult) encode(enc *Encoder) {
	enc.WriteUint32(uint32(a.StatusCode))
	a.AddedNodeID.Encode(enc)
}

func decodeAddNodesResult(dec *Decoder) (AddNodesResult, error) {
	var a AddNodesResult
	sc, err := dec.ReadUint32()
	if err != nil {
		return a, err
	}
	a.StatusCode = StatusCode(sc)
	a.AddedNodeID, err = DecodeNodeID(dec)
	return a, err
}

// AddNodesResponse carries one AddNodesResult per requested item.
type AddNodesResponse struct {
	Header  ResponseHeader
	Results []AddNodesResult
}

func (AddNodesResponse) TypeID() uint32                  { return AddNodesResponseTypeID }
func (r AddNodesResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r AddNodesResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, a AddNodesResult) { a.encode(e) })
}

func (r *AddNodesResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, decodeAddNodesResult)
	return err
}

// AddReferencesItem describes one reference to add between two nodes.
type AddReferencesItem struct {
	SourceNodeID    NodeID
	ReferenceTypeID NodeID
	TargetNodeID    NodeID
}

func (a AddReferencesItem) encode(enc *Encoder) {
	a.SourceNodeID.Encode(enc)
	a.ReferenceTypeID.Encode(enc)
	a.TargetNodeID.Encode(enc)
}

func decodeAddReferencesItem(dec *Decoder) (AddReferencesItem, error) {
	var a AddReferencesItem
	var err error
	if a.SourceNodeID, err = DecodeNodeID(dec); err != nil {
		return a, err
	}
	if a.ReferenceTypeID, err = DecodeNodeID(dec); err != nil {
		return a, err
	}
	a.TargetNodeID, err = DecodeNodeID(dec)
	return a, err
}

// AddReferencesRequest adds one or more references.
type AddReferencesRequest struct {
	Header            RequestHeader
	ReferencesToAdd   []AddReferencesItem
}

func (AddReferencesRequest) TypeID() uint32             { return AddReferencesRequestTypeID }
func (r *AddReferencesRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r AddReferencesRequest) GetHeader() RequestHeader   { return r.Header }
func (r AddReferencesRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.ReferencesToAdd, func(e *Encoder, a AddReferencesItem) { a.encode(e) })
}

func (r *AddReferencesRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.ReferencesToAdd, err = ReadSlice(dec, decodeAddReferencesItem)
	return err
}

// AddReferencesResponse carries one StatusCode per requested reference.
type AddReferencesResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

func (AddReferencesResponse) TypeID() uint32                  { return AddReferencesResponseTypeID }
func (r AddReferencesResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r AddReferencesResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *AddReferencesResponse) decode(dec *Decoder) error {
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

// DeleteReferencesItem identifies one reference to remove.
type DeleteReferencesItem struct {
	SourceNodeID    NodeID
	ReferenceTypeID NodeID
	TargetNodeID    NodeID
	DeleteBidirectional bool
}

func (d DeleteReferencesItem) encode(enc *Encoder) {
	d.SourceNodeID.Encode(enc)
	d.ReferenceTypeID.Encode(enc)
	d.TargetNodeID.Encode(enc)
	enc.WriteBool(d.DeleteBidirectional)
}

func decodeDeleteReferencesItem(dec *Decoder) (DeleteReferencesItem, error) {
	var d DeleteReferencesItem
	var err error
	if d.SourceNodeID, err = DecodeNodeID(dec); err != nil {
		return d, err
	}
	if d.ReferenceTypeID, err = DecodeNodeID(dec); err != nil {
		return d, err
	}
	if d.TargetNodeID, err = DecodeNodeID(dec); err != nil {
		return d, err
	}
	d.DeleteBidirectional, err = dec.ReadBool()
	return d, err
}

// DeleteReferencesRequest removes one or more references.
type DeleteReferencesRequest struct {
	Header              RequestHeader
	ReferencesToDelete   []DeleteReferencesItem
}

func (DeleteReferencesRequest) TypeID() uint32             { return DeleteReferencesRequestTypeID }
func (r *DeleteReferencesRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r DeleteReferencesRequest) GetHeader() RequestHeader   { return r.Header }
func (r DeleteReferencesRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.ReferencesToDelete, func(e *Encoder, d DeleteReferencesItem) { d.encode(e) })
}

func (r *DeleteReferencesRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.ReferencesToDelete, err = ReadSlice(dec, decodeDeleteReferencesItem)
	return err
}

// DeleteReferencesResponse carries one StatusCode per requested deletion.
type DeleteReferencesResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

func (DeleteReferencesResponse) TypeID() uint32                  { return DeleteReferencesResponseTypeID }
func (r DeleteReferencesResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r DeleteReferencesResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *DeleteReferencesResponse) decode(dec *Decoder) error {
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

// DeleteNodesItem identifies one node to remove.
type DeleteNodesItem struct {
	NodeID                     NodeID
	DeleteTargetReferences     bool
}

func (d DeleteNodesItem) encode(enc *Encoder) {
	d.NodeID.Encode(enc)
	enc.WriteBool(d.DeleteTargetReferences)
}

func decodeDeleteNodesItem(dec *Decoder) (DeleteNodesItem, error) {
	var d DeleteNodesItem
	var err error
	if d.NodeID, err = DecodeNodeID(dec); err != nil {
		return d, err
	}
	d.DeleteTargetReferences, err = dec.ReadBool()
	return d, err
}

// DeleteNodesRequest removes one or more nodes.
type DeleteNodesRequest struct {
	Header        RequestHeader
	NodesToDelete []DeleteNodesItem
}

func (DeleteNodesRequest) TypeID() uint32             { return DeleteNodesRequestTypeID }
func (r *DeleteNodesRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r DeleteNodesRequest) GetHeader() RequestHeader   { return r.Header }
func (r DeleteNodesRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.NodesToDelete, func(e *Encoder, d DeleteNodesItem) { d.encode(e) })
}

func (r *DeleteNodesRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.NodesToDelete, err = ReadSlice(dec, decodeDeleteNodesItem)
	return err
}

// DeleteNodesResponse carries one StatusCode per requested deletion.
type DeleteNodesResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

func (DeleteNodesResponse) TypeID() uint32                  { return DeleteNodesResponseTypeID }
func (r DeleteNodesResponse) GetResponseHeader() ResponseHeader { return r.Header }
func (r DeleteNodesResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *DeleteNodesResponse) decode(dec *Decoder) error {
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
