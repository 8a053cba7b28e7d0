package service

import (
	"context"
	"testing"
	"time"

	"ai-quizforge-be/internal/constant"
	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/repository/unitofwork"
	"ai-quizforge-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingDelivery struct {
	sent []dto.NotificationResponse
}

func (d *capturingDelivery) Send(_ uuid.UUID, notification dto.NotificationResponse) {
	d.sent = append(d.sent, notification)
}

func lifecycleEvent(subject string, userId uuid.UUID, title, errMsg string) events.BaseEvent {
	return events.BaseEvent{
		Type: "events." + subject,
		Data: map[string]interface{}{
			"session_id": uuid.NewString(),
			"user_id":    userId.String(),
			"title":      title,
			"error":      errMsg,
		},
		OccurredAt: time.Now(),
	}
}

func TestNotificationHandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("completed event persists and delivers", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db)
		delivery := &capturingDelivery{}
		svc := &notificationService{
			uowFactory: unitofwork.NewRepositoryFactory(db),
			delivery:   delivery,
			logger:     nopLogger{},
		}

		err := svc.handleEvent(ctx, lifecycleEvent(constant.SubjectSessionCompleted, user.Id, "Ancient Rome", ""))
		require.NoError(t, err)

		res, err := svc.GetAll(ctx, user.Id)
		require.NoError(t, err)
		require.Len(t, res.Notifications, 1)
		assert.Equal(t, constant.NotificationSessionCompleted, res.Notifications[0].Type)
		assert.Contains(t, res.Notifications[0].Body, "Ancient Rome")
		assert.Equal(t, int64(1), res.UnreadCount)

		require.Len(t, delivery.sent, 1)
		assert.Equal(t, res.Notifications[0].Id, delivery.sent[0].Id)
	})

	t.Run("failed event carries the error message", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db)
		svc := &notificationService{
			uowFactory: unitofwork.NewRepositoryFactory(db),
			logger:     nopLogger{},
		}

		err := svc.handleEvent(ctx, lifecycleEvent(constant.SubjectSessionFailed, user.Id, "Ancient Rome", "model refused"))
		require.NoError(t, err)

		res, err := svc.GetAll(ctx, user.Id)
		require.NoError(t, err)
		require.Len(t, res.Notifications, 1)
		assert.Equal(t, constant.NotificationSessionFailed, res.Notifications[0].Type)
		assert.Contains(t, res.Notifications[0].Body, "model refused")
	})

	t.Run("event for a deleted user is dropped", func(t *testing.T) {
		db := newTestDB(t)
		svc := &notificationService{
			uowFactory: unitofwork.NewRepositoryFactory(db),
			logger:     nopLogger{},
		}

		gone := uuid.New()
		err := svc.handleEvent(ctx, lifecycleEvent(constant.SubjectSessionCompleted, gone, "Ancient Rome", ""))
		require.NoError(t, err)

		res, err := svc.GetAll(ctx, gone)
		require.NoError(t, err)
		assert.Empty(t, res.Notifications)
	})

	t.Run("unknown subject is ignored", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db)
		svc := &notificationService{
			uowFactory: unitofwork.NewRepositoryFactory(db),
			logger:     nopLogger{},
		}

		err := svc.handleEvent(ctx, lifecycleEvent("quizforge.session.something_else", user.Id, "Ancient Rome", ""))
		require.NoError(t, err)

		res, err := svc.GetAll(ctx, user.Id)
		require.NoError(t, err)
		assert.Empty(t, res.Notifications)
	})
}

func TestNotificationMarkRead(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := seedUser(t, db)
	svc := &notificationService{
		uowFactory: unitofwork.NewRepositoryFactory(db),
		logger:     nopLogger{},
	}

	require.NoError(t, svc.handleEvent(ctx, lifecycleEvent(constant.SubjectSessionCompleted, user.Id, "Ancient Rome", "")))

	res, err := svc.GetAll(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, res.Notifications, 1)
	id := res.Notifications[0].Id

	marked, err := svc.MarkRead(ctx, user.Id, id)
	require.NoError(t, err)
	assert.Equal(t, id, marked.Id)

	res, err = svc.GetAll(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.UnreadCount)
	require.NotNil(t, res.Notifications[0].ReadAt)

	// Someone else's notification cannot be marked.
	_, err = svc.MarkRead(ctx, uuid.New(), id)
	assert.Error(t, err)
}
