package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-quizforge-be/internal/constant"
	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/pkg/apperror"
	"ai-quizforge-be/internal/pkg/logger"
	"ai-quizforge-be/internal/repository/specification"
	"ai-quizforge-be/internal/repository/unitofwork"
	"ai-quizforge-be/pkg/llm"

	"github.com/google/uuid"
)

type IQuizSessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListSessionsRequest) (*dto.ListSessionsResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionDetailResponse, error)
	GetQuestions(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionQuestionsResponse, error)
	Generate(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CancelSessionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type quizSessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	generation       IGenerationService
	publisherService IPublisherService
	defaultModel     string
	logger           logger.ILogger
}

func NewQuizSessionService(
	uowFactory unitofwork.RepositoryFactory,
	generation IGenerationService,
	publisherService IPublisherService,
	defaultModel string,
	log logger.ILogger,
) IQuizSessionService {
	return &quizSessionService{
		uowFactory:       uowFactory,
		generation:       generation,
		publisherService: publisherService,
		defaultModel:     defaultModel,
		logger:           log,
	}
}

func (c *quizSessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	if _, err := llm.ParseModelRef(model); err != nil {
		return nil, apperror.NewValidation("Invalid model: %v", err)
	}

	// Custom prompt mode is all-or-nothing.
	if (req.OutlinePrompt == "") != (req.QuizPrompt == "") {
		return nil, apperror.NewValidation("Custom prompt mode requires both outline_prompt and quiz_prompt")
	}

	numOutlines := req.NumOutlines
	if numOutlines == 0 {
		numOutlines = constant.DefaultCount
	}
	questionsPerOutline := req.QuestionsPerOutline
	if questionsPerOutline == 0 {
		questionsPerOutline = constant.DefaultCount
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	session := entity.QuizSession{
		Id:                  uuid.New(),
		UserId:              userId,
		Title:               req.Title,
		Model:               model,
		NumOutlines:         numOutlines,
		QuestionsPerOutline: questionsPerOutline,
		Status:              constant.SessionStatusPending,
		OutlinePrompt:       req.OutlinePrompt,
		QuizPrompt:          req.QuizPrompt,
		Cost:                "0",
		CreatedAt:           time.Now(),
	}

	if err := uow.QuizSessionRepository().Create(ctx, &session); err != nil {
		return nil, apperror.NewPersistence(err)
	}

	outlines, err := c.generation.GenerateOutlines(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	if req.AutoGenerate {
		msg, err := json.Marshal(dto.GenerateQuestionsMessage{SessionId: session.Id, UserId: userId})
		if err != nil {
			return nil, err
		}
		if err := c.publisherService.Publish(ctx, msg); err != nil {
			c.logger.Warn("QuizSessionService", "Failed to enqueue question generation", map[string]interface{}{
				"session_id": session.Id, "error": err.Error(),
			})
		}
	}

	return &dto.CreateSessionResponse{
		SessionId: session.Id,
		Status:    constant.SessionStatusGeneratingOutline,
		Outlines:  toOutlineResponses(outlines),
	}, nil
}

func (c *quizSessionService) GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListSessionsRequest) (*dto.ListSessionsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.QuizSessionRepository()

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.Model != "" {
		specs = append(specs, specification.ByModel{Model: req.Model})
	}
	if req.Search != "" {
		specs = append(specs, specification.TitleContains{Fragment: req.Search})
	}

	total, err := repo.Count(ctx, specs...)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}

	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})
	if req.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: req.Limit, Offset: req.Offset})
	}

	sessions, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}

	res := dto.ListSessionsResponse{
		Sessions: make([]dto.SessionResponse, len(sessions)),
		Total:    total,
	}
	for i, s := range sessions {
		res.Sessions[i] = toSessionResponse(s)
	}
	return &res, nil
}

func (c *quizSessionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionDetailResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	outlines, err := uow.OutlineRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "order_index"},
	)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}

	questions, err := uow.QuestionRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}

	byOutline := make(map[uuid.UUID][]dto.QuestionResponse)
	for _, q := range questions {
		byOutline[q.OutlineId] = append(byOutline[q.OutlineId], toQuestionResponse(q))
	}

	detail := make([]dto.OutlineDetailResponse, len(outlines))
	for i, o := range outlines {
		detail[i] = dto.OutlineDetailResponse{
			OutlineResponse: toOutlineResponse(o),
			Questions:       byOutline[o.Id],
		}
	}

	return &dto.SessionDetailResponse{
		Session:  toSessionResponse(session),
		Outlines: detail,
	}, nil
}

func (c *quizSessionService) GetQuestions(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionQuestionsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := c.findOwned(ctx, uow, userId, id); err != nil {
		return nil, err
	}

	questions, err := uow.QuestionRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}

	res := dto.SessionQuestionsResponse{
		SessionId: id,
		Questions: make([]dto.QuestionResponse, len(questions)),
	}
	for i, q := range questions {
		res.Questions[i] = toQuestionResponse(q)
	}
	return &res, nil
}

func (c *quizSessionService) Generate(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if _, err := c.findOwned(ctx, uow, userId, id); err != nil {
		return err
	}
	return c.generation.GenerateQuestions(ctx, id)
}

func (c *quizSessionService) Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CancelSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if constant.TerminalSessionStatus(session.Status) {
		return nil, apperror.NewValidation("Session is already %s", session.Status)
	}

	if err := uow.QuizSessionRepository().UpdateStatus(ctx, id, constant.SessionStatusCancelled, ""); err != nil {
		return nil, apperror.NewPersistence(err)
	}

	return &dto.CancelSessionResponse{
		Id:     id,
		Status: constant.SessionStatusCancelled,
	}, nil
}

func (c *quizSessionService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.QuizSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return apperror.NewPersistence(err)
	}
	if session == nil {
		return apperror.NewNotFound("Session not found or unauthorized")
	}

	if err := uow.QuizSessionRepository().Delete(ctx, id); err != nil {
		return apperror.NewPersistence(err)
	}
	return nil
}

// findOwned distinguishes a missing session from someone else's session.
func (c *quizSessionService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.QuizSession, error) {
	session, err := uow.QuizSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.NewPersistence(err)
	}
	if session == nil {
		return nil, apperror.NewNotFound("Session not found")
	}
	if session.UserId != userId {
		return nil, apperror.NewUnauthorized("You do not own this session")
	}
	return session, nil
}

func toSessionResponse(s *entity.QuizSession) dto.SessionResponse {
	return dto.SessionResponse{
		Id:                  s.Id,
		Title:               s.Title,
		Model:               s.Model,
		NumOutlines:         s.NumOutlines,
		QuestionsPerOutline: s.QuestionsPerOutline,
		Status:              s.Status,
		ErrorMsg:            s.ErrorMsg,
		ElapsedMs:           s.ElapsedMs,
		InputTokens:         s.InputTokens,
		OutputTokens:        s.OutputTokens,
		Cost:                s.Cost,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toOutlineResponse(o *entity.Outline) dto.OutlineResponse {
	return dto.OutlineResponse{
		Id:           o.Id,
		Title:        o.Title,
		OrderIndex:   o.OrderIndex,
		Status:       o.Status,
		ErrorMsg:     o.ErrorMsg,
		InputTokens:  o.InputTokens,
		OutputTokens: o.OutputTokens,
		Cost:         o.Cost,
	}
}

func toOutlineResponses(outlines []*entity.Outline) []dto.OutlineResponse {
	res := make([]dto.OutlineResponse, len(outlines))
	for i, o := range outlines {
		res[i] = toOutlineResponse(o)
	}
	return res
}

func toQuestionResponse(q *entity.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		Id:          q.Id,
		OutlineId:   q.OutlineId,
		Content:     q.Content,
		Type:        q.Type,
		Options:     q.Options,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}
}
