package service

import (
	"context"
	"testing"
	"time"

	"ai-quizforge-be/internal/constant"
	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/pkg/apperror"
	"ai-quizforge-be/internal/repository/specification"
	"ai-quizforge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newSessionService(db *gorm.DB, provider *fakeProvider, pub IPublisherService) IQuizSessionService {
	if pub == nil {
		pub = &capturingPublisher{}
	}
	return NewQuizSessionService(
		unitofwork.NewRepositoryFactory(db),
		newService(db, provider),
		pub,
		"openai/gpt-4o-mini",
		nopLogger{},
	)
}

func TestQuizSessionCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the outline stage and returns outlines", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		res, err := svc.Create(ctx, uuid.New(), &dto.CreateSessionRequest{Title: "Ancient Rome"})
		require.NoError(t, err)
		assert.Equal(t, constant.SessionStatusGeneratingOutline, res.Status)
		require.Len(t, res.Outlines, 3)
		assert.Equal(t, 1, res.Outlines[0].OrderIndex)
	})

	t.Run("defaults model and counts", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)
		userId := uuid.New()

		res, err := svc.Create(ctx, userId, &dto.CreateSessionRequest{Title: "Thermodynamics"})
		require.NoError(t, err)

		uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
		stored, err := uow.QuizSessionRepository().FindOne(ctx, specification.ByID{ID: res.SessionId})
		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-4o-mini", stored.Model)
		assert.Equal(t, constant.DefaultCount, stored.NumOutlines)
		assert.Equal(t, constant.DefaultCount, stored.QuestionsPerOutline)
	})

	t.Run("rejects a model without a provider half", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		_, err := svc.Create(ctx, uuid.New(), &dto.CreateSessionRequest{Title: "x", Model: "gpt-4o"})
		var validation *apperror.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("rejects a lone custom prompt", func(t *testing.T) {
		db := newTestDB(t)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		_, err := svc.Create(ctx, uuid.New(), &dto.CreateSessionRequest{
			Title:         "x",
			OutlinePrompt: "list chapters about x",
		})
		var validation *apperror.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("auto_generate enqueues the question stage", func(t *testing.T) {
		db := newTestDB(t)
		pub := &capturingPublisher{}
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, pub)

		_, err := svc.Create(ctx, uuid.New(), &dto.CreateSessionRequest{Title: "x", AutoGenerate: true})
		require.NoError(t, err)
		assert.Len(t, pub.payloads, 1)
	})
}

func TestQuizSessionOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("show distinguishes not found from unauthorized", func(t *testing.T) {
		db := newTestDB(t)
		session := seedSession(t, db, constant.SessionStatusCompleted)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		_, err := svc.Show(ctx, session.UserId, uuid.New())
		var notFound *apperror.NotFoundError
		assert.ErrorAs(t, err, &notFound)

		_, err = svc.Show(ctx, uuid.New(), session.Id)
		var unauthorized *apperror.UnauthorizedError
		assert.ErrorAs(t, err, &unauthorized)

		res, err := svc.Show(ctx, session.UserId, session.Id)
		require.NoError(t, err)
		assert.Equal(t, session.Id, res.Session.Id)
	})

	t.Run("show nests questions under their outline", func(t *testing.T) {
		db := newTestDB(t)
		session := seedSession(t, db, constant.SessionStatusCompleted)
		uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

		outline := &entity.Outline{
			Id:         uuid.New(),
			SessionId:  session.Id,
			Title:      "The Republic",
			OrderIndex: 1,
			Status:     constant.OutlineStatusCompleted,
			Cost:       "0",
			CreatedAt:  time.Now(),
		}
		require.NoError(t, uow.OutlineRepository().Create(ctx, outline))
		require.NoError(t, uow.QuestionRepository().Create(ctx, &entity.Question{
			Id:        uuid.New(),
			SessionId: session.Id,
			OutlineId: outline.Id,
			Content:   "Who founded it?",
			Type:      constant.QuestionTypeMultipleChoice,
			Options:   []string{"a", "b", "c", "d"},
			Answer:    "A",
			CreatedAt: time.Now(),
		}))

		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)
		res, err := svc.Show(ctx, session.UserId, session.Id)
		require.NoError(t, err)
		require.Len(t, res.Outlines, 1)
		require.Len(t, res.Outlines[0].Questions, 1)
		assert.Equal(t, "Who founded it?", res.Outlines[0].Questions[0].Content)
		assert.Equal(t, []string{"a", "b", "c", "d"}, res.Outlines[0].Questions[0].Options)
	})

	t.Run("delete by non-owner returns the combined error", func(t *testing.T) {
		db := newTestDB(t)
		session := seedSession(t, db, constant.SessionStatusCompleted)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		err := svc.Delete(ctx, uuid.New(), session.Id)
		var notFound *apperror.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Session not found or unauthorized", err.Error())

		// Still present for the owner.
		_, err = svc.Show(ctx, session.UserId, session.Id)
		assert.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, session.UserId, session.Id))
		_, err = svc.Show(ctx, session.UserId, session.Id)
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestQuizSessionList(t *testing.T) {
	ctx := context.Background()

	t.Run("owned only, newest first, empty for unknown user", func(t *testing.T) {
		db := newTestDB(t)
		first := seedSession(t, db, constant.SessionStatusCompleted)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		second, err := svc.Create(ctx, first.UserId, &dto.CreateSessionRequest{Title: "Later topic"})
		require.NoError(t, err)

		res, err := svc.GetAll(ctx, first.UserId, &dto.ListSessionsRequest{})
		require.NoError(t, err)
		require.Len(t, res.Sessions, 2)
		assert.Equal(t, int64(2), res.Total)
		assert.Equal(t, second.SessionId, res.Sessions[0].Id)

		empty, err := svc.GetAll(ctx, uuid.New(), &dto.ListSessionsRequest{})
		require.NoError(t, err)
		assert.Empty(t, empty.Sessions)
	})

	t.Run("status filter", func(t *testing.T) {
		db := newTestDB(t)
		session := seedSession(t, db, constant.SessionStatusFailed)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		res, err := svc.GetAll(ctx, session.UserId, &dto.ListSessionsRequest{Status: constant.SessionStatusFailed})
		require.NoError(t, err)
		assert.Len(t, res.Sessions, 1)

		res, err = svc.GetAll(ctx, session.UserId, &dto.ListSessionsRequest{Status: constant.SessionStatusCompleted})
		require.NoError(t, err)
		assert.Empty(t, res.Sessions)
	})
}

func TestQuizSessionCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("non-terminal session cancels", func(t *testing.T) {
		db := newTestDB(t)
		session := seedSession(t, db, constant.SessionStatusGeneratingOutline)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		res, err := svc.Cancel(ctx, session.UserId, session.Id)
		require.NoError(t, err)
		assert.Equal(t, constant.SessionStatusCancelled, res.Status)
	})

	t.Run("terminal session refuses", func(t *testing.T) {
		db := newTestDB(t)
		session := seedSession(t, db, constant.SessionStatusCompleted)
		svc := newSessionService(db, &fakeProvider{outlineJSON: threeOutlinesJSON()}, nil)

		_, err := svc.Cancel(ctx, session.UserId, session.Id)
		var validation *apperror.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}
