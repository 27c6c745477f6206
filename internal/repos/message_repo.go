package repos

import (
	"spartanmarket/internal/domain"

	"github.com/jmoiron/sqlx"
)

type MessageRepo struct{ DB *sqlx.DB }

func NewMessageRepo(db *sqlx.DB) *MessageRepo { return &MessageRepo{DB: db} }

func (r *MessageRepo) Create(m *domain.Message) error {
	ts := now()
	m.CreatedAt = ts
	m.UpdatedAt = ts
	_, err := r.DB.NamedExec(`
      INSERT INTO messages(id,sender_id,receiver_id,listing_id,content,is_read,created_at,updated_at)
      VALUES(:id,:sender_id,:receiver_id,:listing_id,:content,:is_read,:created_at,:updated_at)`, m)
	return err
}

func (r *MessageRepo) Get(id string) (domain.Message, error) {
	var m domain.Message
	err := r.DB.Get(&m, `SELECT * FROM messages WHERE id=?`, id)
	return m, err
}

// Inbox returns every message the user sent or received, newest first.
func (r *MessageRepo) Inbox(userID string, limit, offset int) ([]domain.Message, int64, error) {
	out := []domain.Message{}
	err := r.DB.Select(&out, `
      SELECT * FROM messages WHERE sender_id=? OR receiver_id=?
      ORDER BY created_at DESC LIMIT ? OFFSET ?`, userID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	err = r.DB.Get(&total, `SELECT COUNT(*) FROM messages WHERE sender_id=? OR receiver_id=?`, userID, userID)
	return out, total, err
}

// Conversation returns the full exchange between the two users oldest first,
// regardless of which listing each message was about.
func (r *MessageRepo) Conversation(userA, userB string) ([]domain.Message, error) {
	out := []domain.Message{}
	err := r.DB.Select(&out, `
      SELECT * FROM messages
      WHERE (sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)
      ORDER BY created_at ASC`, userA, userB, userB, userA)
	return out, err
}

func (r *MessageRepo) MarkRead(id string) (bool, error) {
	res, err := r.DB.Exec(`UPDATE messages SET is_read=1, updated_at=? WHERE id=?`, now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *MessageRepo) UnreadCount(userID string) (int64, error) {
	var n int64
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM messages WHERE receiver_id=? AND is_read=0`, userID)
	return n, err
}
