package services

import (
	"context"

	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/logging"
)

// SettingsService reads and updates the support contact.
type SettingsService interface {
	// SupportContact never fails: when the API is unreachable or has
	// nothing configured, models.DefaultSupportContact is returned.
	SupportContact(ctx context.Context) models.SupportContact
	UpdateSupportContact(ctx context.Context, actor *models.User, in models.SupportContact) error
}

type settingsService struct {
	api    client.SettingsAPI
	logger logging.Logger
}

func NewSettingsService(api client.SettingsAPI, logger logging.Logger) SettingsService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &settingsService{api: api, logger: logger.With("component", "settings")}
}

func (s *settingsService) SupportContact(ctx context.Context) models.SupportContact {
	c, err := s.api.SupportContact(ctx)
	if err != nil {
		s.logger.Warn(ctx, "support contact unavailable, using defaults", "err", err)
		return models.DefaultSupportContact
	}

	out := models.DefaultSupportContact
	if c.SupportEmail != "" {
		out.SupportEmail = c.SupportEmail
	}
	if c.SupportWhatsApp != "" {
		out.SupportWhatsApp = c.SupportWhatsApp
	}
	return out
}

func (s *settingsService) UpdateSupportContact(ctx context.Context, actor *models.User, in models.SupportContact) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := validateStruct(in); err != nil {
		return err
	}
	return s.api.UpdateSupportContact(ctx, in)
}
