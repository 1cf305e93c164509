package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"backoffice/internal/events"
	"backoffice/internal/mailer"
	"backoffice/internal/models"
	"backoffice/internal/repository"
)

// NotificationService persists notifications and fans them out. The stored
// document is the source of truth: event publishing and email delivery are
// best-effort and never fail the create.
type NotificationService struct {
	notifications *repository.NotificationRepository
	publisher     events.Publisher
	mail          mailer.Mailer
}

func NewNotificationService(repo *repository.NotificationRepository, publisher events.Publisher, mail mailer.Mailer) *NotificationService {
	return &NotificationService{notifications: repo, publisher: publisher, mail: mail}
}

func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n.Kind == "" {
		n.Kind = models.NotificationInApp
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, n.Recipient, n); err != nil {
		log.Warn().Err(err).Str("recipient", n.Recipient).Msg("notification event publish failed")
	}

	if n.Kind == models.NotificationEmail {
		if err := s.mail.Send(ctx, n.Recipient, n.Subject, n.Body); err != nil {
			log.Warn().Err(err).Str("recipient", n.Recipient).Msg("notification email delivery failed")
		}
	}

	return nil
}
