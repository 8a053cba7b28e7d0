package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/pkg/serverutils"
	"ai-quizforge-be/internal/service"
	"ai-quizforge-be/pkg/puzzle"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IPuzzleController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Breakdown(ctx *fiber.Ctx) error
	GenerateStream(ctx *fiber.Ctx) error
}

type puzzleController struct {
	puzzleService service.IPuzzleService
}

func NewPuzzleController(puzzleService service.IPuzzleService) IPuzzleController {
	return &puzzleController{
		puzzleService: puzzleService,
	}
}

func (c *puzzleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/questions-game/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate/:type", c.Generate)
	h.Post("breakdown", c.Breakdown)
	h.Post("generate-stream", c.GenerateStream)
}

func (c *puzzleController) Generate(ctx *fiber.Ctx) error {
	var req dto.GeneratePuzzleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.puzzleService.Generate(ctx.Context(), ctx.Params("type"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate question", res))
}

func (c *puzzleController) Breakdown(ctx *fiber.Ctx) error {
	var req dto.BreakdownRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.puzzleService.Breakdown(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success breakdown knowledge point", res))
}

// GenerateStream relays pipeline step records as server-sent events. Each
// frame is one step record; the stream closes after the terminal record.
func (c *puzzleController) GenerateStream(ctx *fiber.Ctx) error {
	var req dto.PipelineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	runID := c.puzzleService.NewRunID()

	// Subscribe before the run starts so the first record is never missed.
	// The subscription is detached from the request context but cancelled
	// when the writer exits, so an abandoned stream never wedges the
	// publisher waiting on an ack.
	subCtx, cancel := context.WithCancel(context.Background())
	msgs, err := c.puzzleService.SubscribeLogs(subCtx, runID)
	if err != nil {
		cancel()
		return err
	}
	c.puzzleService.StartPipeline(runID, &req)

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for msg := range msgs {
			fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
			msg.Ack()
			if err := w.Flush(); err != nil {
				return
			}

			var record puzzle.Log
			if json.Unmarshal(msg.Payload, &record) == nil && terminalRecord(record) {
				return
			}
		}
	}))

	return nil
}

func terminalRecord(record puzzle.Log) bool {
	if record.Step == "complete" {
		return true
	}
	// A breakdown failure aborts the run with no terminal record.
	return record.Step == "breakdown" && record.Status == puzzle.LogError
}
