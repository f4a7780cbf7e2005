package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"homeroom/models"
	"homeroom/store"
)

type messageStore struct {
	db *sql.DB
}

const messageCols = "id, sender_id, kind, receiver_id, group_id, content, edited, created_at, updated_at"

func (s *messageStore) Create(m *models.Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		"INSERT INTO messages ("+messageCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.SenderID, m.Kind,
		nullable(m.ReceiverID), nullable(m.GroupID),
		m.Content, m.Edited, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		tx.Rollback()
		return translate(err)
	}

	for _, a := range m.Attachments {
		_, err = tx.Exec(
			"INSERT INTO message_attachments (id, message_id, url, name, mime_type, size) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.New().String(), m.ID, a.URL, a.Name, a.MimeType, a.Size,
		)
		if err != nil {
			tx.Rollback()
			return translate(err)
		}
	}

	for _, userID := range m.ReadBy {
		_, err = tx.Exec(
			"INSERT IGNORE INTO message_reads (message_id, user_id) VALUES (?, ?)",
			m.ID, userID,
		)
		if err != nil {
			tx.Rollback()
			return translate(err)
		}
	}

	return tx.Commit()
}

func (s *messageStore) Get(id string) (*models.Message, error) {
	msgs, err := s.query("SELECT "+messageCols+" FROM messages WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, store.ErrNotFound
	}
	return &msgs[0], nil
}

func (s *messageStore) Update(m *models.Message) error {
	res, err := s.db.Exec(
		"UPDATE messages SET content = ?, edited = ?, updated_at = ? WHERE id = ?",
		m.Content, m.Edited, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *messageStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return translate(err)
	}
	if err := requireRow(res); err != nil {
		tx.Rollback()
		return err
	}

	if _, err = tx.Exec("DELETE FROM message_attachments WHERE message_id = ?", id); err != nil {
		tx.Rollback()
		return translate(err)
	}
	if _, err = tx.Exec("DELETE FROM message_reads WHERE message_id = ?", id); err != nil {
		tx.Rollback()
		return translate(err)
	}

	return tx.Commit()
}

func (s *messageStore) MarkRead(id, userID string) error {
	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM messages WHERE id = ?)", id).Scan(&exists); err != nil {
		return translate(err)
	}
	if !exists {
		return store.ErrNotFound
	}

	// INSERT IGNORE keeps reapplication a no-op
	_, err := s.db.Exec(
		"INSERT IGNORE INTO message_reads (message_id, user_id) VALUES (?, ?)",
		id, userID,
	)
	return translate(err)
}

func (s *messageStore) ListDirect(userA, userB string, limit int, before time.Time) ([]models.Message, error) {
	query := `SELECT ` + messageCols + ` FROM messages
		WHERE kind = 'direct'
		  AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))`
	args := []interface{}{userA, userB, userB, userA}
	return s.page(query, args, limit, before)
}

func (s *messageStore) ListGroup(groupID string, limit int, before time.Time) ([]models.Message, error) {
	query := "SELECT " + messageCols + " FROM messages WHERE kind = 'group' AND group_id = ?"
	return s.page(query, []interface{}{groupID}, limit, before)
}

func (s *messageStore) page(query string, args []interface{}, limit int, before time.Time) ([]models.Message, error) {
	if !before.IsZero() {
		query += " AND created_at < ?"
		args = append(args, before)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.query(query, args...)
}

func (s *messageStore) ListDirectInvolving(userID string) ([]models.Message, error) {
	return s.query(
		`SELECT `+messageCols+` FROM messages
		 WHERE kind = 'direct' AND (sender_id = ? OR receiver_id = ?)
		 ORDER BY created_at DESC, id DESC`,
		userID, userID,
	)
}

func (s *messageStore) ListGroups(groupIDs []string) ([]models.Message, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(groupIDs))
	for i, id := range groupIDs {
		args[i] = id
	}
	return s.query(
		`SELECT `+messageCols+` FROM messages
		 WHERE kind = 'group' AND group_id IN (`+placeholders(len(groupIDs))+`)
		 ORDER BY created_at DESC, id DESC`,
		args...,
	)
}

func (s *messageStore) query(query string, args ...interface{}) ([]models.Message, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		var receiver, group sql.NullString
		if err := rows.Scan(&m.ID, &m.SenderID, &m.Kind, &receiver, &group, &m.Content, &m.Edited, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.ReceiverID = receiver.String
		m.GroupID = group.String
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attach(msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// attach batch-loads read sets and attachments for the scanned messages.
func (s *messageStore) attach(msgs []models.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	idx := make(map[string]int, len(msgs))
	args := make([]interface{}, len(msgs))
	for i := range msgs {
		idx[msgs[i].ID] = i
		args[i] = msgs[i].ID
	}
	ph := placeholders(len(msgs))

	readRows, err := s.db.Query(
		"SELECT message_id, user_id FROM message_reads WHERE message_id IN ("+ph+") ORDER BY user_id", args...)
	if err != nil {
		return translate(err)
	}
	defer readRows.Close()
	for readRows.Next() {
		var msgID, userID string
		if err := readRows.Scan(&msgID, &userID); err != nil {
			return err
		}
		i := idx[msgID]
		msgs[i].ReadBy = append(msgs[i].ReadBy, userID)
	}
	if err := readRows.Err(); err != nil {
		return err
	}

	attRows, err := s.db.Query(
		"SELECT message_id, url, name, mime_type, size FROM message_attachments WHERE message_id IN ("+ph+") ORDER BY id", args...)
	if err != nil {
		return translate(err)
	}
	defer attRows.Close()
	for attRows.Next() {
		var msgID string
		var a models.Attachment
		if err := attRows.Scan(&msgID, &a.URL, &a.Name, &a.MimeType, &a.Size); err != nil {
			return err
		}
		i := idx[msgID]
		msgs[i].Attachments = append(msgs[i].Attachments, a)
	}
	return attRows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
