package ws

import (
	"context"
	"time"

	"messaging-service/internal/conversation"
	"messaging-service/internal/models"
	"messaging-service/internal/observability"
	"messaging-service/internal/telemetry"
)

// Pusher bridges the conversation service's realtime fan-out onto the
// hub.
type Pusher struct {
	hub      *Hub
	receipts *ReadReceiptNotifier
	emitter  *telemetry.Emitter
}

// NewPusher constructs a Pusher.
func NewPusher(hub *Hub, receipts *ReadReceiptNotifier, emitter *telemetry.Emitter) *Pusher {
	return &Pusher{hub: hub, receipts: receipts, emitter: emitter}
}

// PushNewMessage delivers a freshly stored message to its recipient's
// live connection, if any.
func (p *Pusher) PushNewMessage(toUserID, fromUsername string, msg models.Message) {
	delivered := p.hub.SendToUser(toUserID, models.ServerEvent{
		Event:   models.EventMessageNew,
		Message: &models.MessagePush{From: fromUsername, Message: msg},
	})
	if !delivered {
		return
	}
	observability.IncWSEvent(models.EventMessageNew)
	p.emitter.Emit(context.Background(), telemetry.EventRealtimeDelivery, "", &toUserID, map[string]any{
		"event":      models.EventMessageNew,
		"message_id": msg.MessageID,
	})
}

// PushReadReceipts fans freshly read message ids back to their author.
func (p *Pusher) PushReadReceipts(toUserID, readBy string, ids []string, readAt time.Time) {
	receipts := make([]models.ReadReceipt, 0, len(ids))
	for _, id := range ids {
		receipts = append(receipts, models.ReadReceipt{MessageID: id, ReadAt: readAt, ReadBy: readBy})
	}
	p.receipts.Notify(toUserID, receipts)
}

var _ conversation.Pusher = (*Pusher)(nil)
var _ conversation.Presence = (*Hub)(nil)
