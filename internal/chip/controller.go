// Package chip implements the chip heating state machine on top of the
// chip store: inactive → heating while the automation call is in
// flight, then active on success or back to inactive on failure.
package chip

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/evolution"
	"github.com/severinoia/central/internal/model"
)

var (
	// ErrNotFound reports an unknown chip id.
	ErrNotFound = errors.New("chip: not found")

	// ErrAlreadyHeating reports a heat call on a chip whose automation
	// call is still in flight. The call is a no-op, not a restart.
	ErrAlreadyHeating = errors.New("chip: heating already in progress")

	// ErrAlreadyActive reports a heat call on an already active chip.
	ErrAlreadyActive = errors.New("chip: already active")

	// ErrNoCredentials reports that the Evolution API is not configured.
	ErrNoCredentials = errors.New("chip: evolution API credentials not configured")
)

// Store is the chip persistence surface the controller drives.
type Store interface {
	GetChip(ctx context.Context, id string) (model.ChipInstance, bool, error)
	UpdateChipStatus(ctx context.Context, id, status string) (model.ChipInstance, bool, error)
}

// Automation is the outbound WhatsApp automation boundary.
type Automation interface {
	CreateInstance(ctx context.Context, req evolution.InstanceRequest) (*evolution.AutomationResult, error)
	SetWebhook(ctx context.Context, instanceName string, req evolution.WebhookRequest) (*evolution.AutomationResult, error)
}

// Controller drives chip lifecycle transitions. The automation provider
// is resolved per call so credential changes take effect immediately.
type Controller struct {
	store      Store
	automation func() (Automation, error)
	log        zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New builds a controller. automation returns the configured client or
// ErrNoCredentials when the Evolution settings are incomplete.
func New(store Store, automation func() (Automation, error), log zerolog.Logger) *Controller {
	return &Controller{
		store:      store,
		automation: automation,
		log:        log.With().Str("component", "chip").Logger(),
		inflight:   make(map[string]struct{}),
	}
}

// Heat transitions an inactive chip through heating to active. On any
// automation failure the chip returns to inactive and the error is
// surfaced; the user can retry. Heating an already heating or active
// chip is a no-op reported through the typed errors above.
func (c *Controller) Heat(ctx context.Context, id string) (*evolution.AutomationResult, error) {
	c.mu.Lock()
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		return nil, ErrAlreadyHeating
	}
	c.inflight[id] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, id)
		c.mu.Unlock()
	}()

	chip, found, err := c.store.GetChip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading chip %s: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	switch chip.Status {
	case model.ChipStatusHeating:
		return nil, ErrAlreadyHeating
	case model.ChipStatusActive:
		return nil, ErrAlreadyActive
	}

	auto, err := c.automation()
	if err != nil {
		return nil, err
	}

	if _, _, err := c.store.UpdateChipStatus(ctx, id, model.ChipStatusHeating); err != nil {
		return nil, fmt.Errorf("marking chip %s heating: %w", id, err)
	}

	result, err := auto.CreateInstance(ctx, evolution.InstanceRequest{
		InstanceName: chip.Name,
		Number:       chip.Phone,
		QRCode:       true,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("chip", chip.Name).Msg("heating failed")
		if _, _, rbErr := c.store.UpdateChipStatus(ctx, id, model.ChipStatusInactive); rbErr != nil {
			c.log.Error().Err(rbErr).Str("chip", chip.Name).Msg("rollback to inactive failed")
		}
		return nil, fmt.Errorf("heating chip %s: %w", chip.Name, err)
	}

	if _, _, err := c.store.UpdateChipStatus(ctx, id, model.ChipStatusActive); err != nil {
		return nil, fmt.Errorf("marking chip %s active: %w", id, err)
	}

	c.log.Info().Str("chip", chip.Name).Msg("chip active")
	return result, nil
}

// ConfigureWebhook points an active chip's instance at the given event
// webhook.
func (c *Controller) ConfigureWebhook(ctx context.Context, id, url string, events []string) (*evolution.AutomationResult, error) {
	chip, found, err := c.store.GetChip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading chip %s: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	auto, err := c.automation()
	if err != nil {
		return nil, err
	}

	result, err := auto.SetWebhook(ctx, chip.Name, evolution.WebhookRequest{
		URL:    url,
		Events: events,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring webhook for chip %s: %w", chip.Name, err)
	}
	return result, nil
}
