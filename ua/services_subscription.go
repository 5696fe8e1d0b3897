// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// Type ids for the Subscription and MonitoredItem services (Part 4,
// 5.13-5.14), plus the Publish exchange that drives the publish loop
// (§7).
const (
	CreateSubscriptionRequestTypeID    uint32 = 1038
	CreateSubscriptionResponseTypeID   uint32 = 1039
	DeleteSubscriptionsRequestTypeID   uint32 = 1040
	DeleteSubscriptionsResponseTypeID  uint32 = 1041
	CreateMonitoredItemsRequestTypeID  uint32 = 1042
	CreateMonitoredItemsResponseTypeID uint32 = 1043
	ModifyMonitoredItemsRequestTypeID  uint32 = 1044
	ModifyMonitoredItemsResponseTypeID uint32 = 1045
	DeleteMonitoredItemsRequestTypeID  uint32 = 1046
	DeleteMonitoredItemsResponseTypeID uint32 = 1047
	PublishRequestTypeID               uint32 = 1052
	PublishResponseTypeID              uint32 = 1053
)

func init() {
	Register(CreateSubscriptionRequestTypeID, func() Body { return &CreateSubscriptionRequest{} })
	Register(CreateSubscriptionResponseTypeID, func() Body { return &CreateSubscriptionResponse{} })
	Register(DeleteSubscriptionsRequestTypeID, func() Body { return &DeleteSubscriptionsRequest{} })
	Register(DeleteSubscriptionsResponseTypeID, func() Body { return &DeleteSubscriptionsResponse{} })
	Register(CreateMonitoredItemsRequestTypeID, func() Body { return &CreateMonitoredItemsRequest{} })
	Register(CreateMonitoredItemsResponseTypeID, func() Body { return &CreateMonitoredItemsResponse{} })
	Register(ModifyMonitoredItemsRequestTypeID, func() Body { return &ModifyMonitoredItemsRequest{} })
	Register(ModifyMonitoredItemsResponseTypeID, func() Body { return &ModifyMonitoredItemsResponse{} })
	Register(DeleteMonitoredItemsRequestTypeID, func() Body { return &DeleteMonitoredItemsRequest{} })
	Register(DeleteMonitoredItemsResponseTypeID, func() Body { return &DeleteMonitoredItemsResponse{} })
	Register(PublishRequestTypeID, func() Body { return &PublishRequest{} })
	Register(PublishResponseTypeID, func() Body { return &PublishResponse{} })
}

// CreateSubscriptionRequest asks the server to start a new subscription.
// The returned SubscriptionID is what the publish loop (§7) uses to
// route NotificationMessages back to a caller-supplied callback.
type CreateSubscriptionRequest struct {
	Header                     RequestHeader
	RequestedPublishingInterval float64
	RequestedLifetimeCount     uint32
	RequestedMaxKeepAliveCount uint32
	MaxNotificationsPerPublish uint32
	PublishingEnabled          bool
	Priority                   byte
}

func (CreateSubscriptionRequest) TypeID() uint32             { return CreateSubscriptionRequestTypeID }
func (r *CreateSubscriptionRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r CreateSubscriptionRequest) GetHeader() RequestHeader   { return r.Header }

func (r CreateSubscriptionRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint64(float64bits(r.RequestedPublishingInterval))
	enc.WriteUint32(r.RequestedLifetimeCount)
	enc.WriteUint32(r.RequestedMaxKeepAliveCount)
	enc.WriteUint32(r.MaxNotificationsPerPublish)
	enc.WriteBool(r.PublishingEnabled)
	enc.WriteByte(r.Priority)
}

func (r *CreateSubscriptionRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	bits, err := dec.ReadUint64()
	if err != nil {
		return err
	}
	r.RequestedPublishingInterval = float64frombits(bits)
	if r.RequestedLifetimeCount, err = dec.ReadUint32(); err != nil {
		return err
	}
	if r.RequestedMaxKeepAliveCount, err = dec.ReadUint32(); err != nil {
		return err
	}
	if r.MaxNotificationsPerPublish, err = dec.ReadUint32(); err != nil {
		return err
	}
	if r.PublishingEnabled, err = dec.ReadBool(); err != nil {
		return err
	}
	r.Priority, err = dec.ReadByte()
	return err
}

// CreateSubscriptionResponse returns the server-assigned identity and
// revised timing parameters.
type CreateSubscriptionResponse struct {
	Header                  ResponseHeader
	SubscriptionID          uint32
	RevisedPublishingInterval float64
	RevisedLifetimeCount    uint32
	RevisedMaxKeepAliveCount uint32
}

func (CreateSubscriptionResponse) TypeID() uint32 { return CreateSubscriptionResponseTypeID }
func (r CreateSubscriptionResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r CreateSubscriptionResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.SubscriptionID)
	enc.WriteUint64(float64bits(r.RevisedPublishingInterval))
	enc.WriteUint32(r.RevisedLifetimeCount)
	enc.WriteUint32(r.RevisedMaxKeepAliveCount)
}

func (r *CreateSubscriptionResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	if r.SubscriptionID, err = dec.ReadUint32(); err != nil {
		return err
	}
	bits, err := dec.ReadUint64()
	if err != nil {
		return err
	}
	r.RevisedPublishingInterval = float64frombits(bits)
	if r.RevisedLifetimeCount, err = dec.ReadUint32(); err != nil {
		return err
	}
	r.RevisedMaxKeepAliveCount, err = dec.ReadUint32()
	return err
}

// DeleteSubscriptionsRequest tears down one or more subscriptions. The
// subscription package unregisters each id's callback once the request
// completes, whether or not it succeeded (§7 item 4).
type DeleteSubscriptionsRequest struct {
	Header          RequestHeader
	SubscriptionIDs []uint32
}

func (DeleteSubscriptionsRequest) TypeID() uint32             { return DeleteSubscriptionsRequestTypeID }
func (r *DeleteSubscriptionsRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r DeleteSubscriptionsRequest) GetHeader() RequestHeader   { return r.Header }

func (r DeleteSubscriptionsRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.SubscriptionIDs, func(e *Encoder, id uint32) { e.WriteUint32(id) })
}

func (r *DeleteSubscriptionsRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.SubscriptionIDs, err = ReadSlice(dec, (*Decoder).ReadUint32)
	return err
}

// DeleteSubscriptionsResponse carries one StatusCode per deleted id.
type DeleteSubscriptionsResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

func (DeleteSubscriptionsResponse) TypeID() uint32 { return DeleteSubscriptionsResponseTypeID }
func (r DeleteSubscriptionsResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r DeleteSubscriptionsResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *DeleteSubscriptionsResponse) decode(dec *Decoder) error {
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

// MonitoringMode controls whether a monitored item reports value
// changes, only keeps them sampled, or is temporarily suspended.
type MonitoringMode int32

const (
	MonitoringModeDisabled MonitoringMode = 0
	MonitoringModeSampling MonitoringMode = 1
	MonitoringModeReporting MonitoringMode = 2
)

// MonitoringParameters tunes sampling and queueing for one item.
type MonitoringParameters struct {
	ClientHandle     uint32
	SamplingInterval float64
	QueueSize        uint32
	DiscardOldest    bool
}

func (m MonitoringParameters) encode(enc *Encoder) {
	enc.WriteUint32(m.ClientHandle)
	enc.WriteUint64(float64bits(m.SamplingInterval))
	enc.WriteUint32(m.QueueSize)
	enc.WriteBool(m.DiscardOldest)
}

func decodeMonitoringParameters(dec *Decoder) (MonitoringParameters, error) {
	var m MonitoringParameters
	var err error
	if m.ClientHandle, err = dec.ReadUint32(); err != nil {
		return m, err
	}
	bits, err := dec.ReadUint64()
	if err != nil {
		return m, err
	}
	m.SamplingInterval = float64frombits(bits)
	if m.QueueSize, err = dec.ReadUint32(); err != nil {
		return m, err
	}
	m.DiscardOldest, err = dec.ReadBool()
	return m, err
}

// MonitoredItemCreateRequest asks to monitor one node attribute.
type MonitoredItemCreateRequest struct {
	ItemToMonitor   ReadValueID
	MonitoringMode  MonitoringMode
	RequestedParameters MonitoringParameters
}

func (m MonitoredItemCreateRequest) encode(enc *Encoder) {
	m.ItemToMonitor.encode(enc)
	enc.WriteInt32(int32(m.MonitoringMode))
	m.RequestedParameters.encode(enc)
}

func decodeMonitoredItemCreateRequest(dec *Decoder) (MonitoredItemCreateRequest, error) {
	var m MonitoredItemCreateRequest
	var err error
	if m.ItemToMonitor, err = decodeReadValueID(dec); err != nil {
		return m, err
	}
	mm, err := dec.ReadInt32()
	if err != nil {
		return m, err
	}
	m.MonitoringMode = MonitoringMode(mm)
	m.RequestedParameters, err = decodeMonitoringParameters(dec)
	return m, err
}

// MonitoredItemCreateResult is the per-item outcome of
// CreateMonitoredItems; MonitoredItemID is what DeleteMonitoredItems
// and ModifyMonitoredItems address later.
type MonitoredItemCreateResult struct {
	StatusCode      StatusCode
	MonitoredItemID uint32
	RevisedSamplingInterval float64
	RevisedQueueSize uint32
}

func (m MonitoredItemCreateResult) encode(enc *Encoder) {
	enc.WriteUint32(uint32(m.StatusCode))
	enc.WriteUint32(m.MonitoredItemID)
	enc.WriteUint64(float64bits(m.RevisedSamplingInterval))
	enc.WriteUint32(m.RevisedQueueSize)
}

func decodeMonitoredItemCreateResult(dec *Decoder) (MonitoredItemCreateResult, error) {
	var m MonitoredItemCreateResult
	sc, err := dec.ReadUint32()
	if err != nil {
		return m, err
	}
	m.StatusCode = StatusCode(sc)
	if m.MonitoredItemID, err = dec.ReadUint32(); err != nil {
		return m, err
	}
	bits, err := dec.ReadUint64()
	if err != nil {
		return m, err
	}
	m.RevisedSamplingInterval = float64frombits(bits)
	m.RevisedQueueSize, err = dec.ReadUint32()
	return m, err
}

// TimestampsToReturn selects which timestamps the server should stamp
// onto reported values.
type TimestampsToReturn int32

const (
	TimestampsSource TimestampsToReturn = 0
	TimestampsServer TimestampsToReturn = 1
	TimestampsBoth   TimestampsToReturn = 2
	TimestampsNeither TimestampsToReturn = 3
)

// CreateMonitoredItemsRequest adds one or more monitored items to an
// existing subscription.
type CreateMonitoredItemsRequest struct {
	Header             RequestHeader
	SubscriptionID     uint32
	TimestampsToReturn TimestampsToReturn
	ItemsToCreate      []MonitoredItemCreateRequest
}

func (CreateMonitoredItemsRequest) TypeID() uint32             { return CreateMonitoredItemsRequestTypeID }
func (r *CreateMonitoredItemsRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r CreateMonitoredItemsRequest) GetHeader() RequestHeader   { return r.Header }

func (r CreateMonitoredItemsRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.SubscriptionID)
	enc.WriteInt32(int32(r.TimestampsToReturn))
	WriteSlice(enc, r.ItemsToCreate, func(e *Encoder, m MonitoredItemCreateRequest) { m.encode(e) })
}

func (r *CreateMonitoredItemsRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.SubscriptionID, err = dec.ReadUint32(); err != nil {
		return err
	}
	tr, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	r.TimestampsToReturn = TimestampsToReturn(tr)
	r.ItemsToCreate, err = ReadSlice(dec, decodeMonitoredItemCreateRequest)
	return err
}

// CreateMonitoredItemsResponse carries one result per requested item.
type CreateMonitoredItemsResponse struct {
	Header  ResponseHeader
	Results []MonitoredItemCreateResult
}

func (CreateMonitoredItemsResponse) TypeID() uint32 { return CreateMonitoredItemsResponseTypeID }
func (r CreateMonitoredItemsResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r CreateMonitoredItemsResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, m MonitoredItemCreateResult) { m.encode(e) })
}

func (r *CreateMonitoredItemsResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, decodeMonitoredItemCreateResult)
	return err
}

// MonitoredItemModifyRequest revises sampling parameters for an
// existing monitored item.
type MonitoredItemModifyRequest struct {
	MonitoredItemID     uint32
	RequestedParameters MonitoringParameters
}

func (m MonitoredItemModifyRequest) encode(enc *Encoder) {
	enc.WriteUint32(m.MonitoredItemID)
	m.RequestedParameters.encode(enc)
}

func decodeMonitoredItemModifyRequest(dec *Decoder) (MonitoredItemModifyRequest, error) {
	var m MonitoredItemModifyRequest
	var err error
	if m.MonitoredItemID, err = dec.ReadUint32(); err != nil {
		return m, err
	}
	m.RequestedParameters, err = decodeMonitoringParameters(dec)
	return m, err
}

// MonitoredItemModifyResult is the per-item outcome of
// ModifyMonitoredItems.
type MonitoredItemModifyResult struct {
	StatusCode              StatusCode
	RevisedSamplingInterval float64
	RevisedQueueSize        uint32
}

func (m MonitoredItemModifyResult) encode(enc *Encoder) {
	enc.WriteUint32(uint32(m.StatusCode))
	enc.WriteUint64(float64bits(m.RevisedSamplingInterval))
	enc.WriteUint32(m.RevisedQueueSize)
}

func decodeMonitoredItemModifyResult(dec *Decoder) (MonitoredItemModifyResult, error) {
	var m MonitoredItemModifyResult
	sc, err := dec.ReadUint32()
	if err != nil {
		return m, err
	}
	m.StatusCode = StatusCode(sc)
	bits, err := dec.ReadUint64()
	if err != nil {
		return m, err
	}
	m.RevisedSamplingInterval = float64frombits(bits)
	m.RevisedQueueSize, err = dec.ReadUint32()
	return m, err
}

// ModifyMonitoredItemsRequest revises one or more monitored items
// belonging to a single subscription.
type ModifyMonitoredItemsRequest struct {
	Header             RequestHeader
	SubscriptionID     uint32
	TimestampsToReturn TimestampsToReturn
	ItemsToModify      []MonitoredItemModifyRequest
}

func (ModifyMonitoredItemsRequest) TypeID() uint32             { return ModifyMonitoredItemsRequestTypeID }
func (r *ModifyMonitoredItemsRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r ModifyMonitoredItemsRequest) GetHeader() RequestHeader   { return r.Header }

func (r ModifyMonitoredItemsRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.SubscriptionID)
	enc.WriteInt32(int32(r.TimestampsToReturn))
	WriteSlice(enc, r.ItemsToModify, func(e *Encoder, m MonitoredItemModifyRequest) { m.encode(e) })
}

func (r *ModifyMonitoredItemsRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.SubscriptionID, err = dec.ReadUint32(); err != nil {
		return err
	}
	tr, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	r.TimestampsToReturn = TimestampsToReturn(tr)
	r.ItemsToModify, err = ReadSlice(dec, decodeMonitoredItemModifyRequest)
	return err
}

// ModifyMonitoredItemsResponse carries one result per modified item.
type ModifyMonitoredItemsResponse struct {
	Header  ResponseHeader
	Results []MonitoredItemModifyResult
}

func (ModifyMonitoredItemsResponse) TypeID() uint32 { return ModifyMonitoredItemsResponseTypeID }
func (r ModifyMonitoredItemsResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r ModifyMonitoredItemsResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, m MonitoredItemModifyResult) { m.encode(e) })
}

func (r *ModifyMonitoredItemsResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, decodeMonitoredItemModifyResult)
	return err
}

// DeleteMonitoredItemsRequest removes one or more monitored items from
// a single subscription.
type DeleteMonitoredItemsRequest struct {
	Header           RequestHeader
	SubscriptionID   uint32
	MonitoredItemIDs []uint32
}

func (DeleteMonitoredItemsRequest) TypeID() uint32             { return DeleteMonitoredItemsRequestTypeID }
func (r *DeleteMonitoredItemsRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r DeleteMonitoredItemsRequest) GetHeader() RequestHeader   { return r.Header }

func (r DeleteMonitoredItemsRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.SubscriptionID)
	WriteSlice(enc, r.MonitoredItemIDs, func(e *Encoder, id uint32) { e.WriteUint32(id) })
}

func (r *DeleteMonitoredItemsRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	if r.SubscriptionID, err = dec.ReadUint32(); err != nil {
		return err
	}
	r.MonitoredItemIDs, err = ReadSlice(dec, (*Decoder).ReadUint32)
	return err
}

// DeleteMonitoredItemsResponse carries one StatusCode per deleted item.
type DeleteMonitoredItemsResponse struct {
	Header  ResponseHeader
	Results []StatusCode
}

func (DeleteMonitoredItemsResponse) TypeID() uint32 { return DeleteMonitoredItemsResponseTypeID }
func (r DeleteMonitoredItemsResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r DeleteMonitoredItemsResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *DeleteMonitoredItemsResponse) decode(dec *Decoder) error {
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

// SubscriptionAcknowledgement tells the server a previously delivered
// sequence number can be released from its retransmission queue.
type SubscriptionAcknowledgement struct {
	SubscriptionID uint32
	SequenceNumber uint32
}

func (s SubscriptionAcknowledgement) encode(enc *Encoder) {
	enc.WriteUint32(s.SubscriptionID)
	enc.WriteUint32(s.SequenceNumber)
}

func decodeSubscriptionAcknowledgement(dec *Decoder) (SubscriptionAcknowledgement, error) {
	var s SubscriptionAcknowledgement
	var err error
	if s.SubscriptionID, err = dec.ReadUint32(); err != nil {
		return s, err
	}
	s.SequenceNumber, err = dec.ReadUint32()
	return s, err
}

// PublishRequest is issued by the publish loop (§7) to keep at least
// one Publish request outstanding per non-empty subscription set. Each
// request simultaneously acknowledges delivery of prior notifications.
type PublishRequest struct {
	Header                     RequestHeader
	SubscriptionAcknowledgements []SubscriptionAcknowledgement
}

func (PublishRequest) TypeID() uint32             { return PublishRequestTypeID }
func (r *PublishRequest) SetHeader(h RequestHeader) { r.Header = h }
func (r PublishRequest) GetHeader() RequestHeader   { return r.Header }

func (r PublishRequest) encode(enc *Encoder) {
	r.Header.Encode(enc)
	WriteSlice(enc, r.SubscriptionAcknowledgements, func(e *Encoder, a SubscriptionAcknowledgement) { a.encode(e) })
}

func (r *PublishRequest) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeRequestHeader(dec); err != nil {
		return err
	}
	r.SubscriptionAcknowledgements, err = ReadSlice(dec, decodeSubscriptionAcknowledgement)
	return err
}

// MonitoredItemNotification is one reported value change, keyed by the
// ClientHandle chosen at CreateMonitoredItems time. The subscription
// package routes a whole NotificationMessage to its subscription's
// callback by SubscriptionID; ClientHandle is left for the callback.
type MonitoredItemNotification struct {
	ClientHandle uint32
	Value        DataValue
}

func (m MonitoredItemNotification) encode(enc *Encoder) {
	enc.WriteUint32(m.ClientHandle)
	_ = m.Value.Encode(enc)
}

func decodeMonitoredItemNotification(dec *Decoder) (MonitoredItemNotification, error) {
	var m MonitoredItemNotification
	var err error
	if m.ClientHandle, err = dec.ReadUint32(); err != nil {
		return m, err
	}
	m.Value, err = DecodeDataValue(dec)
	return m, err
}

// NotificationMessage is the payload of one PublishResponse: a batch of
// data-change notifications for a single subscription, carrying the
// sequence number the next PublishRequest must acknowledge.
type NotificationMessage struct {
	SequenceNumber uint32
	PublishTime    int64 // unix nanoseconds
	NotificationData []MonitoredItemNotification
}

func (n NotificationMessage) encode(enc *Encoder) {
	enc.WriteUint32(n.SequenceNumber)
	enc.WriteUint64(uint64(n.PublishTime))
	WriteSlice(enc, n.NotificationData, func(e *Encoder, m MonitoredItemNotification) { m.encode(e) })
}

func decodeNotificationMessage(dec *Decoder) (NotificationMessage, error) {
	var n NotificationMessage
	var err error
	if n.SequenceNumber, err = dec.ReadUint32(); err != nil {
		return n, err
	}
	ts, err := dec.ReadUint64()
	if err != nil {
		return n, err
	}
	n.PublishTime = int64(ts)
	n.NotificationData, err = ReadSlice(dec, decodeMonitoredItemNotification)
	return n, err
}

// PublishResponse is what a successful Publish exchange returns; a
// keep-alive carries an empty NotificationMessage with no
// NotificationData. AvailableSequenceNumbers is decoded but not read
// by the subscription package, which issues no Republish.
type PublishResponse struct {
	Header                   ResponseHeader
	SubscriptionID           uint32
	AvailableSequenceNumbers []uint32
	MoreNotifications        bool
	NotificationMessage      NotificationMessage
	Results                  []StatusCode
}

func (PublishResponse) TypeID() uint32                  { return PublishResponseTypeID }
func (r PublishResponse) GetResponseHeader() ResponseHeader { return r.Header }

func (r PublishResponse) encode(enc *Encoder) {
	r.Header.Encode(enc)
	enc.WriteUint32(r.SubscriptionID)
	WriteSlice(enc, r.AvailableSequenceNumbers, func(e *Encoder, n uint32) { e.WriteUint32(n) })
	enc.WriteBool(r.MoreNotifications)
	r.NotificationMessage.encode(enc)
	WriteSlice(enc, r.Results, func(e *Encoder, s StatusCode) { e.WriteUint32(uint32(s)) })
}

func (r *PublishResponse) decode(dec *Decoder) error {
	var err error
	if r.Header, err = DecodeResponseHeader(dec); err != nil {
		return err
	}
	if r.SubscriptionID, err = dec.ReadUint32(); err != nil {
		return err
	}
	if r.AvailableSequenceNumbers, err = ReadSlice(dec, (*Decoder).ReadUint32); err != nil {
		return err
	}
	if r.MoreNotifications, err = dec.ReadBool(); err != nil {
		return err
	}
	if r.NotificationMessage, err = decodeNotificationMessage(dec); err != nil {
		return err
	}
	r.Results, err = ReadSlice(dec, func(d *Decoder) (StatusCode, error) {
		v, err := d.ReadUint32()
		return StatusCode(v), err
	})
	return err
}
