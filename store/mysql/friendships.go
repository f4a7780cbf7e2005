package mysql

import (
	"database/sql"

	"homeroom/models"
)

type friendshipStore struct {
	db *sql.DB
}

const friendshipCols = "id, party_low, party_high, status, initiated_by, created_at, updated_at"

func (s *friendshipStore) Create(f *models.Friendship) error {
	_, err := s.db.Exec(
		"INSERT INTO friendships ("+friendshipCols+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		f.ID, f.PartyLow, f.PartyHigh, f.Status, f.InitiatedBy, f.CreatedAt, f.UpdatedAt,
	)
	return translate(err)
}

func (s *friendshipStore) Get(id string) (*models.Friendship, error) {
	return s.scanOne("SELECT "+friendshipCols+" FROM friendships WHERE id = ?", id)
}

func (s *friendshipStore) GetByPair(low, high string) (*models.Friendship, error) {
	return s.scanOne("SELECT "+friendshipCols+" FROM friendships WHERE party_low = ? AND party_high = ?", low, high)
}

func (s *friendshipStore) scanOne(query string, args ...interface{}) (*models.Friendship, error) {
	var f models.Friendship
	err := s.db.QueryRow(query, args...).Scan(
		&f.ID, &f.PartyLow, &f.PartyHigh, &f.Status, &f.InitiatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *friendshipStore) Update(f *models.Friendship) error {
	res, err := s.db.Exec(
		"UPDATE friendships SET status = ?, initiated_by = ?, updated_at = ? WHERE id = ?",
		f.Status, f.InitiatedBy, f.UpdatedAt, f.ID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *friendshipStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM friendships WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *friendshipStore) ListByParty(userID string) ([]models.Friendship, error) {
	rows, err := s.db.Query(
		"SELECT "+friendshipCols+" FROM friendships WHERE party_low = ? OR party_high = ? ORDER BY created_at DESC",
		userID, userID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []models.Friendship
	for rows.Next() {
		var f models.Friendship
		if err := rows.Scan(&f.ID, &f.PartyLow, &f.PartyHigh, &f.Status, &f.InitiatedBy, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
