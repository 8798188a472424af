package notifications

import (
	"database/sql"
	"fmt"

	"github.com/smart-learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) List(userID int64) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 100`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	list := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead flips one notification, scoped to its owner. Returns false when
// no row matched.
func (s *Store) MarkRead(userID, notificationID int64) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}
	return n > 0, nil
}

func (s *Store) MarkAllRead(userID int64) error {
	_, err := s.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

// Create inserts a notification for a single user. Other packages use it to
// push system events.
func (s *Store) Create(userID int64, title, message, kind string) error {
	if kind == "" {
		kind = "info"
	}
	_, err := s.db.Exec(`
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)`, userID, title, message, kind)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// Broadcast fans a notification out to every user in the audience in a
// single statement.
func (s *Store) Broadcast(req models.BroadcastRequest) (int64, error) {
	kind := req.Type
	if kind == "" {
		kind = "announcement"
	}

	query := `
		INSERT INTO notifications (user_id, title, message, type)
		SELECT id, $1, $2, $3 FROM users WHERE status = 'active'`
	args := []interface{}{req.Title, req.Message, kind}
	if req.Audience != "" && req.Audience != "all" {
		query += ` AND role = $4`
		args = append(args, req.Audience)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("broadcast: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("broadcast: %w", err)
	}
	return n, nil
}
