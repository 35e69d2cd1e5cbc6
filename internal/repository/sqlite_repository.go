package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"convo-api/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	var title sql.NullString
	if conversation.Title != nil {
		title.String = *conversation.Title
		title.Valid = true
	}

	query := "INSERT INTO conversations (id, title, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		conversation.ID,
		title,
		conversation.Description,
		conversation.CreatedAt,
		conversation.UpdatedAt,
	)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, title, description, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var conversation model.Conversation
	var title sql.NullString
	err := row.Scan(&conversation.ID, &title, &conversation.Description, &conversation.CreatedAt, &conversation.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if title.Valid {
		conversation.Title = &title.String
	}
	return &conversation, nil
}

// DeleteConversation removes a conversation and all its messages in a single
// transaction, so a concurrent message insert either commits before the
// cascade or observes the conversation as gone.
func (r *sqliteRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", conversationID); err != nil {
		return fmt.Errorf("could not delete conversation messages: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", conversationID)
	if err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// CreateMessage inserts a message after verifying inside the same transaction
// that the owning conversation still exists. A race against DeleteConversation
// therefore resolves to ErrNotFound rather than an orphaned row.
func (r *sqliteRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE id = ?", message.ConversationID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	query := "INSERT INTO messages (id, conversation_id, role, text, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err = tx.ExecContext(ctx, query,
		message.ID,
		message.ConversationID,
		string(message.Role),
		message.Text,
		message.CreatedAt,
		message.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessage(ctx context.Context, conversationID, messageID string) (*model.Message, error) {
	query := "SELECT id, conversation_id, role, text, created_at, updated_at FROM messages WHERE id = ? AND conversation_id = ?"
	row := r.db.QueryRowContext(ctx, query, messageID, conversationID)

	var message model.Message
	err := row.Scan(&message.ID, &message.ConversationID, &message.Role, &message.Text, &message.CreatedAt, &message.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *sqliteRepository) ListMessages(ctx context.Context, conversationID string, filter ListFilter) ([]model.Message, int, error) {
	// An unknown conversation is a distinct outcome from "no messages".
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE id = ?", conversationID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	where := "WHERE conversation_id = ?"
	args := []any{conversationID}
	if filter.Query != "" {
		// instr is wildcard-free, unlike LIKE, so the query string needs no escaping.
		where += " AND instr(lower(text), lower(?)) > 0"
		args = append(args, filter.Query)
	}
	if filter.Role != "" {
		where += " AND role = ?"
		args = append(args, filter.Role)
	}

	var count int
	countQuery := "SELECT COUNT(*) FROM messages " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	listQuery := "SELECT id, conversation_id, role, text, created_at, updated_at FROM messages " +
		where + " ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?"
	listArgs := append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var message model.Message
		if err := rows.Scan(&message.ID, &message.ConversationID, &message.Role, &message.Text, &message.CreatedAt, &message.UpdatedAt); err != nil {
			return nil, 0, err
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return messages, count, nil
}

func (r *sqliteRepository) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	query := "DELETE FROM messages WHERE id = ? AND conversation_id = ?"
	res, err := r.db.ExecContext(ctx, query, messageID, conversationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
