package mailer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Repository stores the admin-managed SMTP configuration and custom email
// templates. Lookups report a missing row as sql.ErrNoRows.
type Repository interface {
	GetActiveSMTPConfig(ctx context.Context) (*SMTPConfig, error)
	SaveSMTPConfig(ctx context.Context, cfg *SMTPConfig) error
	GetTemplate(ctx context.Context, name string) (*Template, error)
	SaveTemplate(ctx context.Context, t *Template) error
}

// Template is an admin-editable email template.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
	TextContent string `json:"textContent"`
	Active      bool   `json:"active"`
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetActiveSMTPConfig(ctx context.Context) (*SMTPConfig, error) {
	var cfg SMTPConfig
	err := r.db.QueryRowContext(ctx,
		`SELECT host, port, username, password, from_email, from_name, admin_email
         FROM smtp_config WHERE is_active ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&cfg.Host, &cfg.Port, &cfg.Username, &cfg.Password,
		&cfg.FromEmail, &cfg.FromName, &cfg.AdminEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("select smtp config: %w", err)
	}
	return &cfg, nil
}

func (r *repo) SaveSMTPConfig(ctx context.Context, cfg *SMTPConfig) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// a new config supersedes whatever was active
	if _, err := tx.ExecContext(ctx, `UPDATE smtp_config SET is_active = FALSE`); err != nil {
		return fmt.Errorf("deactivate smtp configs: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO smtp_config (id, host, port, username, password,
              from_email, from_name, admin_email, is_active, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())`,
		uuid.NewString(), cfg.Host, cfg.Port, cfg.Username, cfg.Password,
		cfg.FromEmail, cfg.FromName, cfg.AdminEmail,
	)
	if err != nil {
		return fmt.Errorf("insert smtp config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) GetTemplate(ctx context.Context, name string) (*Template, error) {
	var t Template
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, subject, html_content, COALESCE(text_content, ''), is_active
         FROM email_templates WHERE name = $1 AND is_active`,
		name,
	).Scan(&t.ID, &t.Name, &t.Subject, &t.HTMLContent, &t.TextContent, &t.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("select template: %w", err)
	}
	return &t, nil
}

func (r *repo) SaveTemplate(ctx context.Context, t *Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	const query = `
INSERT INTO email_templates (id, name, subject, html_content, text_content, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
ON CONFLICT (name) DO UPDATE
SET subject = EXCLUDED.subject,
    html_content = EXCLUDED.html_content,
    text_content = EXCLUDED.text_content,
    is_active = EXCLUDED.is_active,
    updated_at = NOW()
`
	if _, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Subject, t.HTMLContent, t.TextContent, t.Active); err != nil {
		return fmt.Errorf("upsert template: %w", err)
	}
	return nil
}
