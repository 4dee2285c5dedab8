package database

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SubscriberRepo handles database operations for newsletter subscribers.
type SubscriberRepo struct {
	db *DB
}

var _ SubscriberRepository = (*SubscriberRepo)(nil)

func NewSubscriberRepository(db *DB) *SubscriberRepo {
	return &SubscriberRepo{db: db}
}

// UpsertSubscriber creates a subscriber or, when the email is already
// registered, updates the profile fields and reactivates it.
func (r *SubscriberRepo) UpsertSubscriber(ctx context.Context, sub Subscriber) (*Subscriber, error) {
	email := normalizeEmail(sub.Email)
	existing, err := r.GetSubscriberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if existing != nil {
		_, err = r.db.ExecContext(ctx, `
			UPDATE subscribers
			SET name = ?, company = ?, phone = ?, status = ?, updated_at = ?
			WHERE id = ?
		`, sub.Name, sub.Company, sub.Phone, SubscriberActive,
			now.Format(timeFormat), existing.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update subscriber: %w", err)
		}
		return r.GetSubscriberByID(ctx, existing.ID)
	}

	id, err := newSubscriberID()
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO subscribers (id, email, name, company, phone, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, email, sub.Name, sub.Company, sub.Phone, SubscriberActive,
		now.Format(timeFormat), now.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to insert subscriber: %w", err)
	}

	return r.GetSubscriberByID(ctx, id)
}

func (r *SubscriberRepo) GetSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, company, phone, status, created_at, updated_at
		FROM subscribers WHERE email = ?
	`, normalizeEmail(email))
	return scanSubscriber(row)
}

func (r *SubscriberRepo) GetSubscriberByID(ctx context.Context, id string) (*Subscriber, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, company, phone, status, created_at, updated_at
		FROM subscribers WHERE id = ?
	`, id)
	return scanSubscriber(row)
}

func (r *SubscriberRepo) UpdateSubscriberStatus(ctx context.Context, id string, status string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscribers SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now().UTC().Format(timeFormat), id)
	if err != nil {
		return fmt.Errorf("failed to update subscriber status: %w", err)
	}
	return requireRow(result)
}

func (r *SubscriberRepo) DeleteSubscriberByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	return requireRow(result)
}

func scanSubscriber(row rowScanner) (*Subscriber, error) {
	var sub Subscriber
	var createdAt, updatedAt string

	err := row.Scan(&sub.ID, &sub.Email, &sub.Name, &sub.Company,
		&sub.Phone, &sub.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
	}

	if sub.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if sub.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &sub, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newSubscriberID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate subscriber id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
