package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/service"
)

// errQuit ends the run without error.
var errQuit = errors.New("quit")

type Handler struct {
	quiz      QuizService
	screen    *Screen
	in        *bufio.Reader
	logger    *zap.Logger
	validator *AnswerValidator
	now       func() time.Time
}

func NewHandler(quiz QuizService, screen *Screen, in io.Reader, logger *zap.Logger) *Handler {
	return &Handler{
		quiz:      quiz,
		screen:    screen,
		in:        bufio.NewReader(in),
		logger:    logger,
		validator: NewAnswerValidator(),
		now:       time.Now,
	}
}

// Run shows the start screen and drives the question loop until the learner
// quits or input ends.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("terminal handler started")
	defer h.logger.Info("terminal handler stopped")

	err := h.run(ctx)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (h *Handler) run(ctx context.Context) error {
	h.screen.Clear()
	h.screen.RenderHeader()
	h.screen.Printf(msgInitialized+"\n", h.quiz.Snapshot().TotalInPool)
	h.screen.Printf(msgStartPrompt+"\n", h.screen.key(keyEnter), h.screen.key(keyQuit))

	if err := h.handleCommandLine(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !h.quiz.HasNext() {
			if err := h.handleExhausted(ctx); err != nil {
				return err
			}
			continue
		}

		if err := h.askQuestion(ctx); err != nil {
			return err
		}
	}
}

func (h *Handler) askQuestion(ctx context.Context) error {
	q, err := h.quiz.NextQuestion()
	if err != nil {
		return fmt.Errorf("next question: %w", err)
	}

	h.screen.Clear()
	h.screen.RenderStats(service.BuildStats(h.quiz.Snapshot()))
	h.screen.RenderQuestion(q)
	started := h.now()

	var selected []string
	for {
		h.screen.Print(h.screen.paint(styleCyan, msgAnswerPrompt))
		line, err := h.readLine()
		if err != nil {
			return errQuit
		}

		switch parseCommand(line) {
		case cmdQuit:
			return errQuit
		case cmdReload:
			return h.reload(ctx)
		}

		selected, err = h.validator.Parse(line, q)
		if err == nil {
			break
		}
		h.screen.Println(h.validator.Hint(q))
	}

	qa, err := h.quiz.RecordAnswer(ctx, selected, h.now().Sub(started))
	if err != nil && !errors.Is(err, service.ErrProgressNotSaved) {
		return fmt.Errorf("record answer: %w", err)
	}

	h.screen.RenderFeedback(qa)
	if err != nil {
		h.screen.Println(h.screen.paint(styleRed, msgNotSaved))
	}

	h.screen.Printf(msgContinue+"\n", h.screen.key(keyEnter))
	return h.handleCommandLine(ctx)
}

// handleCommandLine waits for a line and acts on ":q" / ":r"; anything else continues.
func (h *Handler) handleCommandLine(ctx context.Context) error {
	line, err := h.readLine()
	if err != nil {
		return errQuit
	}

	switch parseCommand(line) {
	case cmdQuit:
		return errQuit
	case cmdReload:
		return h.reload(ctx)
	}
	return nil
}

// reload refetches the catalog and merges it with the persisted history.
// On failure the current session stays in place.
func (h *Handler) reload(ctx context.Context) error {
	h.screen.Println(h.screen.paint(styleBrightYellow, msgReloading))
	if err := h.quiz.Reload(ctx); err != nil {
		h.logger.Error("failed to reload catalog", zap.Error(err))
		h.screen.Printf(msgReloadFailed+"\n", err)
	}
	return nil
}

// handleExhausted offers a fresh start once every question was answered.
func (h *Handler) handleExhausted(ctx context.Context) error {
	h.screen.Printf(msgAllAnswered+"\n", h.screen.key(keyRestart), h.screen.key(keyQuit))

	line, err := h.readLine()
	if err != nil || parseCommand(line) != cmdReload {
		return errQuit
	}

	if err := h.quiz.Restart(ctx); err != nil {
		h.logger.Error("failed to restart", zap.Error(err))
		return fmt.Errorf("restart: %w", err)
	}
	return nil
}

func (h *Handler) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
