package mysql

import (
	"database/sql"

	"homeroom/models"
)

type userStore struct {
	db *sql.DB
}

func (s *userStore) Create(u *models.User) error {
	_, err := s.db.Exec(
		"INSERT INTO users (id, handle, display_name, avatar, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		u.ID, u.Handle, u.DisplayName, u.Avatar, u.Password, u.CreatedAt, u.UpdatedAt,
	)
	return translate(err)
}

func (s *userStore) Get(id string) (*models.User, error) {
	return s.scanOne("SELECT id, handle, display_name, avatar, password, created_at, updated_at FROM users WHERE id = ?", id)
}

func (s *userStore) GetByHandle(handle string) (*models.User, error) {
	return s.scanOne("SELECT id, handle, display_name, avatar, password, created_at, updated_at FROM users WHERE handle = ?", handle)
}

func (s *userStore) scanOne(query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(query, arg).Scan(
		&u.ID, &u.Handle, &u.DisplayName, &u.Avatar, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *userStore) Exists(id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id).Scan(&exists)
	return exists, translate(err)
}

func (s *userStore) Update(u *models.User) error {
	res, err := s.db.Exec(
		"UPDATE users SET display_name = ?, avatar = ?, password = ?, updated_at = ? WHERE id = ?",
		u.DisplayName, u.Avatar, u.Password, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *userStore) List(exceptID string) ([]models.User, error) {
	rows, err := s.db.Query(
		"SELECT id, handle, display_name, avatar, password, created_at, updated_at FROM users WHERE id != ? ORDER BY handle",
		exceptID,
	)
	if err != nil {
		return nil, translate(err)
	}
	return scanUsers(rows)
}

func (s *userStore) Search(query string, limit int) ([]models.User, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.Query(
		`SELECT id, handle, display_name, avatar, password, created_at, updated_at FROM users
		 WHERE handle LIKE ? ESCAPE '\\' OR display_name LIKE ? ESCAPE '\\'
		 ORDER BY handle LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, translate(err)
	}
	return scanUsers(rows)
}

func (s *userStore) FriendIDs(userID string) ([]string, error) {
	rows, err := s.db.Query("SELECT friend_id FROM user_friends WHERE user_id = ? ORDER BY friend_id", userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *userStore) AddFriend(a, b string) error {
	_, err := s.db.Exec(
		"INSERT IGNORE INTO user_friends (user_id, friend_id) VALUES (?, ?), (?, ?)",
		a, b, b, a,
	)
	return translate(err)
}

func (s *userStore) RemoveFriend(a, b string) error {
	_, err := s.db.Exec(
		"DELETE FROM user_friends WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		a, b, b, a,
	)
	return translate(err)
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Handle, &u.DisplayName, &u.Avatar, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
