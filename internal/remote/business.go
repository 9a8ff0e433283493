package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/severinoia/central/internal/model"
)

// InsertChip inserts a chip row for the given user.
func (s *Store) InsertChip(ctx context.Context, userID string, c model.ChipInstance) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chip_instances (user_id, id, name, phone, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, c.ID, c.Name, c.Phone, c.Status, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting chip %s: %w", c.ID, err)
	}
	return nil
}

// UpdateChip replaces a chip's mutable fields.
func (s *Store) UpdateChip(ctx context.Context, userID string, c model.ChipInstance) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE chip_instances SET name = ?, phone = ?, status = ?
		WHERE user_id = ? AND id = ?`,
		c.Name, c.Phone, c.Status, userID, c.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating chip %s: %w", c.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteChip removes a chip row, reporting whether one existed.
func (s *Store) DeleteChip(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM chip_instances WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting chip %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetChip retrieves a single chip.
func (s *Store) GetChip(ctx context.Context, userID, id string) (model.ChipInstance, bool, error) {
	var c model.ChipInstance
	err := s.db.GetContext(ctx, &c, `
		SELECT id, name, phone, status, created_at
		FROM chip_instances WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ChipInstance{}, false, nil
	}
	if err != nil {
		return model.ChipInstance{}, false, fmt.Errorf("getting chip %s: %w", id, err)
	}
	return c, true, nil
}

// ListChips returns the user's chips sorted by name.
func (s *Store) ListChips(ctx context.Context, userID string) ([]model.ChipInstance, error) {
	var chips []model.ChipInstance
	err := s.db.SelectContext(ctx, &chips, `
		SELECT id, name, phone, status, created_at
		FROM chip_instances WHERE user_id = ? ORDER BY name COLLATE NOCASE`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying chips: %w", err)
	}
	return chips, nil
}

// InsertClient inserts a client row for the given user.
func (s *Store) InsertClient(ctx context.Context, userID string, c model.Client) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (
			user_id, id, name, company, email, phone,
			status, category, notes, value,
			next_contact_date, last_contact_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, c.ID, c.Name, c.Company, c.Email, c.Phone,
		c.Status, c.Category, c.Notes, c.Value,
		c.NextContactDate, c.LastContactDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting client %s: %w", c.ID, err)
	}
	return nil
}

// UpdateClient replaces a client's mutable fields.
func (s *Store) UpdateClient(ctx context.Context, userID string, c model.Client) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE clients SET
			name = ?, company = ?, email = ?, phone = ?,
			status = ?, category = ?, notes = ?, value = ?,
			next_contact_date = ?, last_contact_date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		c.Name, c.Company, c.Email, c.Phone,
		c.Status, c.Category, c.Notes, c.Value,
		c.NextContactDate, c.LastContactDate, c.UpdatedAt,
		userID, c.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating client %s: %w", c.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteClient removes a client row. Financial records referencing the
// client are left in place.
func (s *Store) DeleteClient(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM clients WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting client %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetClient retrieves a single client.
func (s *Store) GetClient(ctx context.Context, userID, id string) (model.Client, bool, error) {
	var c model.Client
	err := s.db.GetContext(ctx, &c, `
		SELECT id, name, company, email, phone, status, category, notes, value,
			next_contact_date, last_contact_date, created_at, updated_at
		FROM clients WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, false, nil
	}
	if err != nil {
		return model.Client{}, false, fmt.Errorf("getting client %s: %w", id, err)
	}
	return c, true, nil
}

// ListClients returns the user's clients, most recently created first.
func (s *Store) ListClients(ctx context.Context, userID string) ([]model.Client, error) {
	var clients []model.Client
	err := s.db.SelectContext(ctx, &clients, `
		SELECT id, name, company, email, phone, status, category, notes, value,
			next_contact_date, last_contact_date, created_at, updated_at
		FROM clients WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	return clients, nil
}

// InsertFinancialRecord inserts a financial record row for the given user.
func (s *Store) InsertFinancialRecord(ctx context.Context, userID string, r model.FinancialRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO financial_records (
			user_id, id, client_id, description, amount,
			type, status, date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, r.ID, r.ClientID, r.Description, r.Amount,
		r.Type, r.Status, r.Date, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting financial record %s: %w", r.ID, err)
	}
	return nil
}

// UpdateFinancialRecord replaces a record's mutable fields.
func (s *Store) UpdateFinancialRecord(ctx context.Context, userID string, r model.FinancialRecord) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE financial_records SET
			client_id = ?, description = ?, amount = ?,
			type = ?, status = ?, date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		r.ClientID, r.Description, r.Amount,
		r.Type, r.Status, r.Date, r.UpdatedAt,
		userID, r.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating financial record %s: %w", r.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteFinancialRecord removes a record row, reporting whether one existed.
func (s *Store) DeleteFinancialRecord(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM financial_records WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting financial record %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetFinancialRecord retrieves a single financial record.
func (s *Store) GetFinancialRecord(ctx context.Context, userID, id string) (model.FinancialRecord, bool, error) {
	var r model.FinancialRecord
	err := s.db.GetContext(ctx, &r, `
		SELECT id, client_id, description, amount, type, status, date, created_at, updated_at
		FROM financial_records WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FinancialRecord{}, false, nil
	}
	if err != nil {
		return model.FinancialRecord{}, false, fmt.Errorf("getting financial record %s: %w", id, err)
	}
	return r, true, nil
}

// ListFinancialRecords returns the user's records, most recent first.
func (s *Store) ListFinancialRecords(ctx context.Context, userID string) ([]model.FinancialRecord, error) {
	var records []model.FinancialRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, client_id, description, amount, type, status, date, created_at, updated_at
		FROM financial_records WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying financial records: %w", err)
	}
	return records, nil
}
