package service

import (
	"context"
	"encoding/json"

	"notes-app-be/internal/pkg/logger"
	"notes-app-be/internal/pkg/mailer"
	"notes-app-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IWelcomeService interface {
	Consume(ctx context.Context) error
}

// welcomeService sends the post-verification welcome mail. It runs off the
// request path on purpose: a failed welcome mail must never fail the
// verification that triggered it.
type welcomeService struct {
	subscriber   message.Subscriber
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewWelcomeService(subscriber message.Subscriber, emailService mailer.IEmailService, log logger.ILogger) IWelcomeService {
	return &welcomeService{
		subscriber:   subscriber,
		emailService: emailService,
		logger:       log,
	}
}

func (s *welcomeService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, events.AccountVerifiedTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *welcomeService) processMessage(msg *message.Message) {
	// Always ack: these events are not worth retrying.
	defer msg.Ack()

	var event events.AccountVerified
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.logger.Error("welcome", "failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.emailService.SendWelcome(event.Email); err != nil {
		s.logger.Warn("welcome", "failed to send welcome email", map[string]interface{}{
			"email": event.Email,
			"error": err.Error(),
		})
		return
	}
	s.logger.Info("welcome", "welcome email sent", map[string]interface{}{"email": event.Email})
}
