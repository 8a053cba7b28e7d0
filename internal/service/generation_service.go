package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ai-quizforge-be/internal/constant"
	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/pkg/apperror"
	"ai-quizforge-be/internal/pkg/logger"
	"ai-quizforge-be/internal/repository/memory"
	"ai-quizforge-be/internal/repository/specification"
	"ai-quizforge-be/internal/repository/unitofwork"
	"ai-quizforge-be/pkg/events"
	"ai-quizforge-be/pkg/llm"
	pktNats "ai-quizforge-be/pkg/nats"
	"ai-quizforge-be/pkg/pricing"
	"ai-quizforge-be/pkg/prompt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type IGenerationService interface {
	// GenerateOutlines runs the outline stage for a pending session.
	GenerateOutlines(ctx context.Context, sessionId uuid.UUID) ([]*entity.Outline, error)
	// GenerateQuestions runs the question stage across all outlines of a
	// session that already finished the outline stage.
	GenerateQuestions(ctx context.Context, sessionId uuid.UUID) error
}

type outlinesPayload struct {
	Outlines []struct {
		Title string `json:"title"`
	} `json:"outlines"`
}

type questionsPayload struct {
	Questions []struct {
		Content     string   `json:"content"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       llm.LLMProvider
	locks          *memory.LockRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	locks *memory.LockRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		provider:       provider,
		locks:          locks,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *generationService) GenerateOutlines(ctx context.Context, sessionId uuid.UUID) ([]*entity.Outline, error) {
	started := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.QuizSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}
	if session == nil {
		return nil, apperror.NewNotFound("Session not found")
	}
	if session.Status != constant.SessionStatusPending {
		return nil, apperror.NewValidation("Session is not pending (status: %s)", session.Status)
	}

	if err := uow.QuizSessionRepository().UpdateStatus(ctx, sessionId, constant.SessionStatusGeneratingOutline, ""); err != nil {
		return nil, apperror.NewPersistence(err)
	}

	outlinePrompt := session.OutlinePrompt
	if outlinePrompt == "" {
		outlinePrompt = prompt.Render(constant.DefaultOutlinePromptV1, map[string]string{
			"topic": session.Title,
			"count": strconv.Itoa(session.NumOutlines),
		})
	}

	res, err := s.provider.Generate(ctx, outlinePrompt, llm.WithModel(session.Model))
	if err != nil {
		s.failSession(ctx, session, fmt.Sprintf("outline generation: %v", err))
		return nil, apperror.NewUpstream(err)
	}

	var payload outlinesPayload
	if err := llm.DecodeJSON(res.Content, &payload); err != nil {
		s.failSession(ctx, session, fmt.Sprintf("outline response decode: %v", err))
		return nil, apperror.NewUpstream(err)
	}
	if len(payload.Outlines) == 0 {
		err := fmt.Errorf("model returned no outlines")
		s.failSession(ctx, session, err.Error())
		return nil, apperror.NewUpstream(err)
	}

	outlines := make([]*entity.Outline, 0, len(payload.Outlines))
	for i, o := range payload.Outlines {
		title := strings.TrimSpace(o.Title)
		if title == "" {
			err := fmt.Errorf("outline %d has an empty title", i+1)
			s.failSession(ctx, session, err.Error())
			return nil, apperror.NewUpstream(err)
		}
		outlines = append(outlines, &entity.Outline{
			Id:         uuid.New(),
			SessionId:  sessionId,
			Title:      title,
			OrderIndex: i + 1,
			Status:     constant.OutlineStatusPending,
			Cost:       "0",
			CreatedAt:  time.Now(),
		})
	}

	cost, _ := pricing.Cost(session.Model, res.Usage.InputTokens, res.Usage.OutputTokens)
	if cost == "" {
		cost = "0"
	}

	if err := uow.Begin(ctx); err != nil {
		s.failSession(ctx, session, "storage unavailable")
		return nil, apperror.NewPersistence(err)
	}
	defer uow.Rollback()

	if err := uow.OutlineRepository().CreateBulk(ctx, outlines); err != nil {
		// Release the tx before touching the session row from outside it.
		uow.Rollback()
		s.failSession(ctx, session, fmt.Sprintf("outline persist: %v", err))
		return nil, apperror.NewPersistence(err)
	}
	if err := uow.QuizSessionRepository().AddUsage(ctx, sessionId, res.Usage.InputTokens, res.Usage.OutputTokens, cost); err != nil {
		uow.Rollback()
		s.failSession(ctx, session, fmt.Sprintf("usage persist: %v", err))
		return nil, apperror.NewPersistence(err)
	}
	if err := uow.QuizSessionRepository().AddElapsed(ctx, sessionId, time.Since(started).Milliseconds()); err != nil {
		uow.Rollback()
		s.failSession(ctx, session, fmt.Sprintf("usage persist: %v", err))
		return nil, apperror.NewPersistence(err)
	}
	if err := uow.Commit(); err != nil {
		s.failSession(ctx, session, "storage unavailable")
		return nil, apperror.NewPersistence(err)
	}

	s.logger.Info("GenerationService", "Outline stage finished", map[string]interface{}{
		"session_id": sessionId,
		"outlines":   len(outlines),
		"tokens_in":  res.Usage.InputTokens,
		"tokens_out": res.Usage.OutputTokens,
	})

	return outlines, nil
}

func (s *generationService) GenerateQuestions(ctx context.Context, sessionId uuid.UUID) error {
	lockKey := "generate:" + sessionId.String()
	if !s.locks.Acquire(lockKey) {
		return apperror.NewValidation("Generation already running for this session")
	}
	defer s.locks.Release(lockKey)

	started := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.QuizSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return apperror.NewPersistence(err)
	}
	if session == nil {
		return apperror.NewNotFound("Session not found")
	}
	if session.Status != constant.SessionStatusGeneratingOutline {
		return apperror.NewValidation("Session has no outlines ready (status: %s)", session.Status)
	}

	outlines, err := uow.OutlineRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "order_index"},
	)
	if err != nil {
		return apperror.NewPersistence(err)
	}
	if len(outlines) == 0 {
		return apperror.NewValidation("Session has no outlines")
	}

	if err := uow.QuizSessionRepository().UpdateStatus(ctx, sessionId, constant.SessionStatusGeneratingQuestions, ""); err != nil {
		return apperror.NewPersistence(err)
	}

	type taskResult struct {
		usage llm.Usage
		cost  string
	}
	results := make([]taskResult, len(outlines))

	// A plain group, deliberately without shared cancellation: one outline
	// failing must not abort its siblings, whose writes always stand.
	var g errgroup.Group
	for i, outline := range outlines {
		g.Go(func() error {
			usage, cost, err := s.generateForOutline(ctx, session, outline)
			results[i] = taskResult{usage: usage, cost: cost}
			return err
		})
	}
	runErr := g.Wait()

	// Accounting for succeeded outlines is kept even when a sibling failed.
	var total llm.Usage
	totalCost := "0"
	for _, r := range results {
		total.Add(r.usage)
		if r.cost != "" {
			if summed, err := pricing.Add(totalCost, r.cost); err == nil {
				totalCost = summed
			}
		}
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).QuizSessionRepository()
	if err := repo.AddUsage(ctx, sessionId, total.InputTokens, total.OutputTokens, totalCost); err != nil {
		s.logger.Error("GenerationService", "Failed to persist session usage", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
	}
	if err := repo.AddElapsed(ctx, sessionId, time.Since(started).Milliseconds()); err != nil {
		s.logger.Error("GenerationService", "Failed to persist elapsed time", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
	}

	// A cancel issued mid-flight wins over both outcomes.
	current, err := repo.FindOne(ctx, specification.ByID{ID: sessionId})
	if err == nil && current != nil && current.Status == constant.SessionStatusCancelled {
		s.logger.Info("GenerationService", "Session cancelled during generation", map[string]interface{}{
			"session_id": sessionId,
		})
		return nil
	}

	if runErr != nil {
		if err := repo.UpdateStatus(ctx, sessionId, constant.SessionStatusFailed, runErr.Error()); err != nil {
			s.logger.Error("GenerationService", "Failed to mark session failed", map[string]interface{}{
				"session_id": sessionId, "error": err.Error(),
			})
		}
		s.publishLifecycle(ctx, session, constant.SessionStatusFailed, runErr.Error())
		return apperror.NewUpstream(runErr)
	}

	if err := repo.UpdateStatus(ctx, sessionId, constant.SessionStatusCompleted, ""); err != nil {
		return apperror.NewPersistence(err)
	}
	s.publishLifecycle(ctx, session, constant.SessionStatusCompleted, "")

	s.logger.Info("GenerationService", "Question stage finished", map[string]interface{}{
		"session_id": sessionId,
		"outlines":   len(outlines),
		"tokens_in":  total.InputTokens,
		"tokens_out": total.OutputTokens,
		"cost":       totalCost,
	})
	return nil
}

func (s *generationService) generateForOutline(ctx context.Context, session *entity.QuizSession, outline *entity.Outline) (llm.Usage, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	outlineRepo := uow.OutlineRepository()

	if err := outlineRepo.UpdateStatus(ctx, outline.Id, constant.OutlineStatusGenerating, ""); err != nil {
		return llm.Usage{}, "", err
	}

	quizPrompt := session.QuizPrompt
	if quizPrompt == "" {
		quizPrompt = prompt.Render(constant.DefaultQuizPromptV1, map[string]string{
			"count":   strconv.Itoa(session.QuestionsPerOutline),
			"outline": outline.Title,
			"topic":   session.Title,
		})
	}

	res, err := s.provider.ChatStream(ctx, []llm.Message{{Role: "user", Content: quizPrompt}}, llm.WithModel(session.Model))
	if err != nil {
		s.failOutline(ctx, outline.Id, fmt.Sprintf("question generation: %v", err))
		return llm.Usage{}, "", fmt.Errorf("outline %d: %w", outline.OrderIndex, err)
	}

	questions, err := s.decodeQuestions(res.Content, session, outline)
	if err != nil {
		s.failOutline(ctx, outline.Id, err.Error())
		return llm.Usage{}, "", fmt.Errorf("outline %d: %w", outline.OrderIndex, err)
	}

	cost, _ := pricing.Cost(session.Model, res.Usage.InputTokens, res.Usage.OutputTokens)
	if cost == "" {
		cost = "0"
	}

	if err := uow.QuestionRepository().CreateBulk(ctx, questions); err != nil {
		s.failOutline(ctx, outline.Id, fmt.Sprintf("question persist: %v", err))
		return llm.Usage{}, "", fmt.Errorf("outline %d: %w", outline.OrderIndex, err)
	}
	if err := outlineRepo.SetUsage(ctx, outline.Id, res.Usage.InputTokens, res.Usage.OutputTokens, cost); err != nil {
		return res.Usage, cost, fmt.Errorf("outline %d: %w", outline.OrderIndex, err)
	}
	if err := outlineRepo.UpdateStatus(ctx, outline.Id, constant.OutlineStatusCompleted, ""); err != nil {
		return res.Usage, cost, fmt.Errorf("outline %d: %w", outline.OrderIndex, err)
	}

	return res.Usage, cost, nil
}

func (s *generationService) decodeQuestions(content string, session *entity.QuizSession, outline *entity.Outline) ([]*entity.Question, error) {
	var payload questionsPayload
	if err := llm.DecodeJSON(content, &payload); err != nil {
		return nil, fmt.Errorf("question response decode: %w", err)
	}
	if len(payload.Questions) != session.QuestionsPerOutline {
		return nil, fmt.Errorf("expected %d questions, got %d", session.QuestionsPerOutline, len(payload.Questions))
	}

	questions := make([]*entity.Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		if strings.TrimSpace(q.Content) == "" {
			return nil, fmt.Errorf("question %d has empty content", i+1)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i+1, len(q.Options))
		}
		answer := strings.ToUpper(strings.TrimSpace(q.Answer))
		if answer != "A" && answer != "B" && answer != "C" && answer != "D" {
			return nil, fmt.Errorf("question %d has invalid answer %q", i+1, q.Answer)
		}
		questions = append(questions, &entity.Question{
			Id:          uuid.New(),
			SessionId:   session.Id,
			OutlineId:   outline.Id,
			Content:     q.Content,
			Type:        constant.QuestionTypeMultipleChoice,
			Options:     q.Options,
			Answer:      answer,
			Explanation: q.Explanation,
			CreatedAt:   time.Now(),
		})
	}
	return questions, nil
}

func (s *generationService) failSession(ctx context.Context, session *entity.QuizSession, msg string) {
	// Failure bookkeeping must land even when the caller's context died.
	ctx = context.WithoutCancel(ctx)
	repo := s.uowFactory.NewUnitOfWork(ctx).QuizSessionRepository()
	if err := repo.UpdateStatus(ctx, session.Id, constant.SessionStatusFailed, msg); err != nil {
		s.logger.Error("GenerationService", "Failed to mark session failed", map[string]interface{}{
			"session_id": session.Id, "error": err.Error(),
		})
	}
	s.publishLifecycle(ctx, session, constant.SessionStatusFailed, msg)
}

func (s *generationService) failOutline(ctx context.Context, outlineId uuid.UUID, msg string) {
	ctx = context.WithoutCancel(ctx)
	repo := s.uowFactory.NewUnitOfWork(ctx).OutlineRepository()
	if err := repo.UpdateStatus(ctx, outlineId, constant.OutlineStatusFailed, msg); err != nil {
		s.logger.Error("GenerationService", "Failed to mark outline failed", map[string]interface{}{
			"outline_id": outlineId, "error": err.Error(),
		})
	}
}

func (s *generationService) publishLifecycle(ctx context.Context, session *entity.QuizSession, status, errMsg string) {
	if s.eventPublisher == nil {
		return
	}
	eventType := constant.SubjectSessionCompleted
	if status != constant.SessionStatusCompleted {
		eventType = constant.SubjectSessionFailed
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"session_id": session.Id.String(),
			"user_id":    session.UserId.String(),
			"title":      session.Title,
			"status":     status,
			"error":      errMsg,
		},
		OccurredAt: time.Now(),
	}
	// Notification delivery is auxiliary; the run result stands either way.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("GenerationService", "Failed to publish lifecycle event", map[string]interface{}{
			"session_id": session.Id, "error": err.Error(),
		})
	}
}
