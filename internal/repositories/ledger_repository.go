package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"messaging-service/internal/models"
)

// LedgerRepository defines interactions with the authoritative message
// ledger. Every message is written here exactly once, independent of
// the per-side history documents.
type LedgerRepository interface {
	Insert(ctx context.Context, conversationKey string, msg models.Message) error
	MarkRead(ctx context.Context, messageIDs []string, readAt time.Time) error
	ListConversation(ctx context.Context, conversationKey string) ([]models.Message, error)
}

// LedgerRepo is a sqlx-backed repository.
type LedgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo constructs LedgerRepo.
func NewLedgerRepo(db *sqlx.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

const messageColumns = `message_id, from_user_id, to_user_id, content, sent_at, delivered_at, read_at`

// Insert appends one message to the ledger.
func (r *LedgerRepo) Insert(ctx context.Context, conversationKey string, msg models.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, conversation_key, from_user_id, to_user_id, content, sent_at, delivered_at, read_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.MessageID, conversationKey, msg.FromUserID, msg.ToUserID, msg.Content, msg.SentAt, msg.DeliveredAt, msg.ReadAt)
	return err
}

// MarkRead stamps read_at on the given messages. Messages already read
// keep their original timestamp.
func (r *LedgerRepo) MarkRead(ctx context.Context, messageIDs []string, readAt time.Time) error {
	if len(messageIDs) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read_at=$1 WHERE message_id = ANY($2) AND read_at IS NULL`,
		readAt, pq.Array(messageIDs))
	return err
}

// ListConversation returns a pair's full ledger in send order.
func (r *LedgerRepo) ListConversation(ctx context.Context, conversationKey string) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages WHERE conversation_key=$1 ORDER BY sent_at ASC`,
		conversationKey)
	return msgs, err
}
