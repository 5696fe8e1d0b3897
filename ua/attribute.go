// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// AttributeID identifies which attribute of a node a ReadValueID targets.
type AttributeID uint32

// Attribute ids relevant to the façade's special-cased coercions (§4.6).
const (
	AttributeIDNodeID     AttributeID = 1
	AttributeIDNodeClass  AttributeID = 2
	AttributeIDBrowseName AttributeID = 3
	AttributeIDValue      AttributeID = 13
	AttributeIDValueRank  AttributeID = 18
)

// NodeClass enumerates the kind of a node. Read() coerces an integer
// result into this type when the requested attribute is NodeClass.
type NodeClass int32

const (
	NodeClassUnspecified NodeClass = 0
	NodeClassObject      NodeClass = 1
	NodeClassVariable    NodeClass = 2
	NodeClassMethod      NodeClass = 4
	NodeClassObjectType  NodeClass = 8
	NodeClassVariableType NodeClass = 16
	NodeClassReferenceType NodeClass = 32
	NodeClassDataType    NodeClass = 64
	NodeClassView        NodeClass = 128
)

// ValueRank enumerates the array-ness of a Variable node. Read()
// coerces an integer result into this type only when it falls in the
// defined set; any other value is passed through untouched (§4.6).
type ValueRank int32

const (
	ValueRankScalarOrOneDimension ValueRank = -3
	ValueRankAny                  ValueRank = -2
	ValueRankScalar               ValueRank = -1
	ValueRankOneOrMoreDimensions  ValueRank = 0
	ValueRankOneDimension         ValueRank = 1
	ValueRankTwoDimensions        ValueRank = 2
	ValueRankThreeDimensions      ValueRank = 3
	ValueRankFourDimensions       ValueRank = 4
)

// validValueRanks is the defined set Read() recognizes (§4.6 item 2).
var validValueRanks = map[int32]bool{
	-3: true, -2: true, -1: true, 0: true, 1: true, 2: true, 3: true, 4: true,
}

// IsDefinedValueRank reports whether v is one of the standard ValueRank
// values Read() is allowed to coerce.
func IsDefinedValueRank(v int32) bool {
	return validValueRanks[v]
}
