package ws

import (
	"go.uber.org/zap"

	"messaging-service/internal/models"
	"messaging-service/internal/observability"
)

// ReadReceiptNotifier pushes read receipts back to message authors.
// Receipts are best-effort; the durable read state has already landed
// by the time this runs.
type ReadReceiptNotifier struct {
	hub *Hub
	log *zap.Logger
}

// NewReadReceiptNotifier constructs a ReadReceiptNotifier.
func NewReadReceiptNotifier(hub *Hub, log *zap.Logger) *ReadReceiptNotifier {
	return &ReadReceiptNotifier{hub: hub, log: log}
}

// Notify sends one receipt frame per message to the author's live
// connection. Offline authors are skipped silently; they will see the
// read state on their next fetch.
func (n *ReadReceiptNotifier) Notify(authorID string, receipts []models.ReadReceipt) {
	for i := range receipts {
		receipt := receipts[i]
		if !n.hub.SendToUser(authorID, models.ServerEvent{Event: models.EventReadReceipt, Receipt: &receipt}) {
			return
		}
		observability.IncWSEvent(models.EventReadReceipt)
	}
}
