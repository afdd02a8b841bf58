package terminal

import (
	"context"
	"time"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

// QuizService is the engine surface the terminal talks to.
type QuizService interface {
	HasNext() bool
	NextQuestion() (entities.Question, error)
	RecordAnswer(ctx context.Context, selected []string, elapsed time.Duration) (*entities.QuizAnswer, error)
	Snapshot() entities.Snapshot
	Reload(ctx context.Context) error
	Restart(ctx context.Context) error
}
