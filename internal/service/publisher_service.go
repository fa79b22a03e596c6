package service

import (
	"encoding/json"
	"time"

	"notes-app-be/internal/entity"
	"notes-app-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishAccountVerified(user *entity.User) error
}

type publisherService struct {
	publisher message.Publisher
}

func NewPublisherService(publisher message.Publisher) IPublisherService {
	return &publisherService{publisher: publisher}
}

func (s *publisherService) PublishAccountVerified(user *entity.User) error {
	payload, err := json.Marshal(events.AccountVerified{
		UserId:     user.Id.String(),
		Email:      user.Email,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return err
	}
	return s.publisher.Publish(events.AccountVerifiedTopic, message.NewMessage(watermill.NewUUID(), payload))
}
