package mysql

import (
	"database/sql"

	"homeroom/models"
	"homeroom/store"
)

type groupStore struct {
	db *sql.DB
}

func (s *groupStore) Create(g *models.Group) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		"INSERT INTO social_groups (id, name, description, owner_id, invite_code, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		g.ID, g.Name, g.Description, g.OwnerID, g.InviteCode, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		tx.Rollback()
		return translate(err)
	}

	for _, m := range g.Members {
		_, err = tx.Exec(
			"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
			g.ID, m.UserID, m.Role, m.JoinedAt,
		)
		if err != nil {
			tx.Rollback()
			return translate(err)
		}
	}

	return tx.Commit()
}

func (s *groupStore) Get(id string) (*models.Group, error) {
	return s.scanOne("WHERE id = ?", id)
}

func (s *groupStore) GetByInviteCode(code string) (*models.Group, error) {
	return s.scanOne("WHERE invite_code = ?", code)
}

func (s *groupStore) scanOne(where string, arg interface{}) (*models.Group, error) {
	var g models.Group
	err := s.db.QueryRow(
		"SELECT id, name, description, owner_id, invite_code, created_at, updated_at FROM social_groups "+where,
		arg,
	).Scan(&g.ID, &g.Name, &g.Description, &g.OwnerID, &g.InviteCode, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.loadMembers(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *groupStore) loadMembers(g *models.Group) error {
	rows, err := s.db.Query(
		"SELECT user_id, role, joined_at FROM group_members WHERE group_id = ? ORDER BY joined_at, user_id",
		g.ID,
	)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return err
		}
		g.Members = append(g.Members, m)
	}
	return rows.Err()
}

func (s *groupStore) Update(g *models.Group) error {
	res, err := s.db.Exec(
		"UPDATE social_groups SET name = ?, description = ?, owner_id = ?, updated_at = ? WHERE id = ?",
		g.Name, g.Description, g.OwnerID, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *groupStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM group_members WHERE group_id = ?", id); err != nil {
		tx.Rollback()
		return translate(err)
	}

	res, err := tx.Exec("DELETE FROM social_groups WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return translate(err)
	}
	if err := requireRow(res); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *groupStore) AddMember(groupID string, m models.GroupMember) error {
	exists, err := s.exists(groupID)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}

	// the (group_id, user_id) primary key resolves concurrent joins
	_, err = s.db.Exec(
		"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
		groupID, m.UserID, m.Role, m.JoinedAt,
	)
	return translate(err)
}

func (s *groupStore) RemoveMember(groupID, userID string) error {
	res, err := s.db.Exec(
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *groupStore) UpdateMemberRole(groupID, userID string, role models.GroupRole) error {
	res, err := s.db.Exec(
		"UPDATE group_members SET role = ? WHERE group_id = ? AND user_id = ?",
		role, groupID, userID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *groupStore) SetInviteCode(groupID, code string) error {
	res, err := s.db.Exec(
		"UPDATE social_groups SET invite_code = ? WHERE id = ?",
		code, groupID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *groupStore) ListByMember(userID string) ([]models.Group, error) {
	rows, err := s.db.Query(`
		SELECT g.id, g.name, g.description, g.owner_id, g.invite_code, g.created_at, g.updated_at
		FROM social_groups g
		JOIN group_members m ON g.id = m.group_id
		WHERE m.user_id = ?
		ORDER BY g.created_at DESC
	`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.OwnerID, &g.InviteCode, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		if err := s.loadMembers(&groups[i]); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (s *groupStore) exists(id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM social_groups WHERE id = ?)", id).Scan(&exists)
	return exists, translate(err)
}
