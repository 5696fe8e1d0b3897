// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// ReadValueID identifies one (node, attribute) pair to read or monitor.
type ReadValueID struct {
	NodeID      NodeID
	AttributeID AttributeID
}

func (r ReadValueID) encode(enc *Encoder) {
	r.NodeID.Encode(enc)
	enc.WriteUint32(uint32(r.AttributeID))
}

func decodeReadValueID(dec *Decoder) (ReadValueID, error) {
	var r ReadValueID
	var err error
	if r.NodeID, err = DecodeNodeID(dec); err != nil {
		return r, err
	}
	id, err := dec.ReadUint32()
	r.AttributeID = AttributeID(id)
	return r, err
}

// WriteValue pairs a (node, attribute) with the value to write.
type WriteValue struct {
	NodeID      NodeID
	AttributeID AttributeID
	Value       DataValue
}

func (w WriteValue) encode(enc *Encoder) error {
	w.NodeID.Encode(enc)
	enc.WriteUint32(uint32(w.AttributeID))
	return w.Value.Encode(enc)
}

func decodeWriteValue(dec *Decoder) (WriteValue, error) {
	var w WriteValue
	var err error
	if w.NodeID, err = DecodeNodeID(dec); err != nil {
		return w, err
	}
	id, err := dec.ReadUint32()
	if err != nil {
		return w, err
	}
	w.AttributeID = AttributeID(id)
	w.Value, err = DecodeDataValue(dec)
	return w, err
}

// BrowseDescription selects what Browse should expand from one node.
type BrowseDescription struct {
	NodeID          NodeID
	ReferenceTypeID NodeID
	IncludeSubtypes bool
	NodeClassMask   uint32
}

func (b BrowseDescription) encode(enc *Encoder) {
	b.NodeID.Encode(enc)
	b.ReferenceTypeID.Encode(enc)
	enc.WriteBool(b.IncludeSubtypes)
	enc.WriteUint32(b.NodeClassMask)
}

func decodeBrowseDescription(dec *Decoder) (BrowseDescription, error) {
	var b BrowseDescription
	var err error
	if b.NodeID, err = DecodeNodeID(dec); err != nil {
		return b, err
	}
	if b.ReferenceTypeID, err = DecodeNodeID(dec); err != nil {
		return b, err
	}
	if b.IncludeSubtypes, err = dec.ReadBool(); err != nil {
		return b, err
	}
	b.NodeClassMask, err = dec.ReadUint32()
	return b, err
}

// ReferenceDescription describes one reference a Browse expanded.
type ReferenceDescription struct {
	ReferenceTypeID NodeID
	IsForward       bool
	NodeID          NodeID
	BrowseName      string
	DisplayName     string
	NodeClass       NodeClass
}

func (r ReferenceDescription) encode(enc *Encoder) {
	r.ReferenceTypeID.Encode(enc)
	enc.WriteBool(r.IsForward)
	r.NodeID.Encode(enc)
	enc.WriteString(r.BrowseName, false)
	enc.WriteString(r.DisplayName, false)
	enc.WriteInt32(int32(r.NodeClass))
}

func decodeReferenceDescription(dec *Decoder) (ReferenceDescription, error) {
	var r ReferenceDescription
	var err error
	if r.ReferenceTypeID, err = DecodeNodeID(dec); err != nil {
		return r, err
	}
	if r.IsForward, err = dec.ReadBool(); err != nil {
		return r, err
	}
	if r.NodeID, err = DecodeNodeID(dec); err != nil {
		return r, err
	}
	if r.BrowseName, err = dec.ReadString(); err != nil {
		return r, err
	}
	if r.DisplayName, err = dec.ReadString(); err != nil {
		return r, err
	}
	nc, err := dec.ReadInt32()
	r.NodeClass = NodeClass(nc)
	return r, err
}

// BrowseResult is the per-node outcome of a Browse/BrowseNext call.
type BrowseResult struct {
	StatusCode        StatusCode
	ContinuationPoint []byte
	References        []ReferenceDescription
}

func (b BrowseResult) encode(enc *Encoder) {
	enc.WriteUint32(uint32(b.StatusCode))
	enc.WriteBytes(b.ContinuationPoint)
	WriteSlice(enc, b.References, func(e *Encoder, r ReferenceDescription) { r.encode(e) })
}

func decodeBrowseResult(dec *Decoder) (BrowseResult, error) {
	var b BrowseResult
	sc, err := dec.ReadUint32()
	if err != nil {
		return b, err
	}
	b.StatusCode = StatusCode(sc)
	if b.ContinuationPoint, err = dec.ReadBytes(); err != nil {
		return b, err
	}
	b.References, err = ReadSlice(dec, decodeReferenceDescription)
	return b, err
}

// BrowsePath is one relative-path lookup for TranslateBrowsePathsToNodeIds.
type BrowsePath struct {
	StartingNode NodeID
	RelativePath []string
}

func (p BrowsePath) encode(enc *Encoder) {
	p.StartingNode.Encode(enc)
	WriteSlice(enc, p.RelativePath, func(e *Encoder, s string) { e.WriteString(s, false) })
}

func decodeBrowsePath(dec *Decoder) (BrowsePath, error) {
	var p BrowsePath
	var err error
	if p.StartingNode, err = DecodeNodeID(dec); err != nil {
		return p, err
	}
	p.RelativePath, err = ReadSlice(dec, (*Decoder).ReadString)
	return p, err
}

// BrowsePathTarget is one resolved node id with its remaining-path depth.
type BrowsePathTarget struct {
	TargetID         NodeID
	RemainingPathIndex uint32
}

func (t BrowsePathTarget) encode(enc *Encoder) {
	t.TargetID.Encode(enc)
	enc.WriteUint32(t.RemainingPathIndex)
}

func decodeBrowsePathTarget(dec *Decoder) (BrowsePathTarget, error) {
	var t BrowsePathTarget
	var err error
	if t.TargetID, err = DecodeNodeID(dec); err != nil {
		return t, err
	}
	t.RemainingPathIndex, err = dec.ReadUint32()
	return t, err
}

// BrowsePathResult is the outcome of resolving one BrowsePath.
type BrowsePathResult struct {
	StatusCode StatusCode
	Targets    []BrowsePathTarget
}

func (r BrowsePathResult) encode(enc *Encoder) {
	enc.WriteUint32(uint32(r.StatusCode))
	WriteSlice(enc, r.Targets, func(e *Encoder, t BrowsePathTarget) { t.encode(e) })
}

func decodeBrowsePathResult(dec *Decoder) (BrowsePathResult, error) {
	var r BrowsePathResult
	sc, err := dec.ReadUint32()
	if err != nil {
		return r, err
	}
	r.StatusCode = StatusCode(sc)
	r.Targets, err = ReadSlice(dec, decodeBrowsePathTarget)
	return r, err
}
