package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-quizforge-be/internal/constant"
	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/pkg/apperror"
	"ai-quizforge-be/internal/pkg/logger"
	"ai-quizforge-be/internal/repository/specification"
	"ai-quizforge-be/internal/repository/unitofwork"
	"ai-quizforge-be/pkg/events"
	pktNats "ai-quizforge-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification dto.NotificationResponse)
}

type INotificationService interface {
	Start()
	GetAll(ctx context.Context, userId uuid.UUID) (*dto.ListNotificationsResponse, error)
	MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.MarkReadResponse, error)
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No NATS subscriber configured, notifications disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("quizforge.session.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Listening to quizforge.session.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	subject := strings.TrimPrefix(event.EventType(), pktNats.SubjectPrefix)
	payload := event.Payload()

	uidStr, _ := payload["user_id"].(string)
	userId, err := uuid.Parse(uidStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Event without valid user_id", map[string]interface{}{"subject": subject})
		return nil
	}
	title, _ := payload["title"].(string)
	sessionId, _ := payload["session_id"].(string)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The owner may have been deleted between the run and delivery.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		s.logger.Warn("NotificationService", "Dropping event for unknown user", map[string]interface{}{
			"user_id": userId, "subject": subject,
		})
		return nil
	}

	notif := entity.Notification{
		Id:     uuid.New(),
		UserId: userId,
		Metadata: map[string]interface{}{
			"session_id": sessionId,
		},
		CreatedAt: time.Now(),
	}

	switch subject {
	case constant.SubjectSessionCompleted:
		notif.Type = constant.NotificationSessionCompleted
		notif.Title = "Quiz ready"
		notif.Body = fmt.Sprintf("Your quiz %q finished generating.", title)
		notif.Metadata["status"] = constant.SessionStatusCompleted
	case constant.SubjectSessionFailed:
		notif.Type = constant.NotificationSessionFailed
		notif.Title = "Quiz generation failed"
		errMsg, _ := payload["error"].(string)
		notif.Body = fmt.Sprintf("Generation for %q failed: %s", title, errMsg)
		notif.Metadata["status"] = constant.SessionStatusFailed
	default:
		s.logger.Info("NotificationService", "Ignoring unknown subject", map[string]interface{}{"subject": subject})
		return nil
	}

	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Failed to save notification", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
		return err // NATS will retry
	}

	if s.delivery != nil {
		s.delivery.Send(userId, toNotificationResponse(&notif))
	}
	return nil
}

func (s *notificationService) GetAll(ctx context.Context, userId uuid.UUID) (*dto.ListNotificationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	notifications, err := repo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}

	unread, err := repo.Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Unread{},
	)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}

	res := dto.ListNotificationsResponse{
		Notifications: make([]dto.NotificationResponse, len(notifications)),
		UnreadCount:   unread,
	}
	for i, n := range notifications {
		res.Notifications[i] = toNotificationResponse(n)
	}
	return &res, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.MarkReadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	notif, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}
	if notif == nil {
		return nil, apperror.NewNotFound("Notification not found")
	}

	if err := repo.MarkRead(ctx, id, time.Now()); err != nil {
		return nil, apperror.NewPersistence(err)
	}
	return &dto.MarkReadResponse{Id: id}, nil
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		Id:        n.Id,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		Metadata:  n.Metadata,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
