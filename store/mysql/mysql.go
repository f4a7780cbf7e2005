// Package mysql is the durable backend, raw database/sql against MySQL.
package mysql

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"homeroom/store"
)

type Backend struct {
	db *sql.DB
}

func Open(dsn string) (*Backend, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &Backend{db: db}, nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) Stores() store.Stores {
	return store.Stores{
		Users:       &userStore{b.db},
		Friendships: &friendshipStore{b.db},
		Groups:      &groupStore{b.db},
		Messages:    &messageStore{b.db},
		Tasks:       &taskStore{b.db},
	}
}

func (b *Backend) CreateTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id           VARCHAR(36) PRIMARY KEY,
			handle       VARCHAR(50) NOT NULL,
			display_name VARCHAR(100),
			avatar       VARCHAR(255),
			password     VARCHAR(255) NOT NULL,
			created_at   DATETIME(3) NOT NULL,
			updated_at   DATETIME(3) NOT NULL,
			UNIQUE KEY uk_handle (handle)
		)`,
		`CREATE TABLE IF NOT EXISTS user_friends (
			user_id    VARCHAR(36) NOT NULL,
			friend_id  VARCHAR(36) NOT NULL,
			PRIMARY KEY (user_id, friend_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id           VARCHAR(36) PRIMARY KEY,
			party_low    VARCHAR(36) NOT NULL,
			party_high   VARCHAR(36) NOT NULL,
			status       ENUM('pending', 'accepted', 'declined', 'blocked') NOT NULL,
			initiated_by VARCHAR(36) NOT NULL,
			created_at   DATETIME(3) NOT NULL,
			updated_at   DATETIME(3) NOT NULL,
			UNIQUE KEY uk_pair (party_low, party_high),
			INDEX idx_party_high (party_high)
		)`,
		`CREATE TABLE IF NOT EXISTS social_groups (
			id          VARCHAR(36) PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			description VARCHAR(500),
			owner_id    VARCHAR(36) NOT NULL,
			invite_code VARCHAR(32) NOT NULL,
			created_at  DATETIME(3) NOT NULL,
			updated_at  DATETIME(3) NOT NULL,
			UNIQUE KEY uk_invite (invite_code),
			INDEX idx_owner (owner_id)
		)`,
		`CREATE TABLE IF NOT EXISTS group_members (
			group_id  VARCHAR(36) NOT NULL,
			user_id   VARCHAR(36) NOT NULL,
			role      ENUM('admin', 'moderator', 'member') NOT NULL DEFAULT 'member',
			joined_at DATETIME(3) NOT NULL,
			PRIMARY KEY (group_id, user_id),
			INDEX idx_user (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id          VARCHAR(36) PRIMARY KEY,
			sender_id   VARCHAR(36) NOT NULL,
			kind        ENUM('direct', 'group') NOT NULL,
			receiver_id VARCHAR(36),
			group_id    VARCHAR(36),
			content     TEXT NOT NULL,
			edited      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  DATETIME(3) NOT NULL,
			updated_at  DATETIME(3) NOT NULL,
			INDEX idx_sender_time (sender_id, created_at),
			INDEX idx_receiver_time (receiver_id, created_at),
			INDEX idx_group_time (group_id, created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS message_attachments (
			id         VARCHAR(36) PRIMARY KEY,
			message_id VARCHAR(36) NOT NULL,
			url        VARCHAR(512) NOT NULL,
			name       VARCHAR(255),
			mime_type  VARCHAR(100),
			size       BIGINT NOT NULL DEFAULT 0,
			INDEX idx_message (message_id)
		)`,
		`CREATE TABLE IF NOT EXISTS message_reads (
			message_id VARCHAR(36) NOT NULL,
			user_id    VARCHAR(36) NOT NULL,
			PRIMARY KEY (message_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id          VARCHAR(36) PRIMARY KEY,
			owner_id    VARCHAR(36) NOT NULL,
			assignee_id VARCHAR(36) NOT NULL,
			title       VARCHAR(200) NOT NULL,
			notes       TEXT,
			due_at      DATETIME(3),
			status      ENUM('open', 'submitted', 'graded') NOT NULL DEFAULT 'open',
			grade       VARCHAR(20),
			created_at  DATETIME(3) NOT NULL,
			updated_at  DATETIME(3) NOT NULL,
			INDEX idx_owner (owner_id),
			INDEX idx_assignee (assignee_id)
		)`,
	}

	for _, table := range tables {
		if _, err := b.db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

// translate maps driver errors to the store sentinels; the unique keys on
// (party_low, party_high) and (group_id, user_id) surface as ErrDuplicate,
// which is what makes check-then-act races lose cleanly.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return store.ErrDuplicate
	}
	return err
}
