package quiz

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/quizforge/quizforge/internal/event"
)

// Processor is the bus's single long-lived consumer: it parses raw
// completion output into questions and materializes them, or removes the
// quiz if the output is unusable.
type Processor struct {
	store Store
	bus   *event.Bus
	log   zerolog.Logger
}

func NewProcessor(store Store, bus *event.Bus, log zerolog.Logger) *Processor {
	return &Processor{store: store, bus: bus, log: log}
}

// Run consumes generation events until ctx is done. Start it once, from
// the composition root.
func (p *Processor) Run(ctx context.Context) {
	p.log.Info().Msg("generation processor started")
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("generation processor stopped")
			return
		case ev := <-p.bus.Events():
			p.handle(ctx, ev)
		}
	}
}

func (p *Processor) handle(ctx context.Context, ev event.GenerationEvent) {
	log := p.log.With().Int64("quiz_id", ev.QuizID).Str("event_id", ev.ID).Logger()

	q, err := p.store.GetQuiz(ctx, ev.QuizID)
	if err != nil {
		log.Warn().Err(err).Msg("event for unknown quiz dropped")
		return
	}
	// Guard against redelivery: the bus has no dedup, so only a quiz
	// still awaiting generation is processed.
	if q.Status != StatusCreating {
		log.Warn().Str("status", q.Status).Msg("event for already-processed quiz dropped")
		return
	}

	questions, err := ParseGenerated(ev.Response)
	if err != nil {
		p.failClean(ctx, ev.QuizID, log, err, "unparseable generation response")
		return
	}
	if len(questions) != q.TotalQuestions {
		p.failClean(ctx, ev.QuizID, log,
			fmt.Errorf("generated question count mismatch: requested %d, got %d", q.TotalQuestions, len(questions)),
			"wrong question count")
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, gen := range questions {
		g.Go(func() error {
			return p.insertQuestion(gctx, ev.QuizID, gen)
		})
	}
	if err := g.Wait(); err != nil {
		p.failClean(ctx, ev.QuizID, log, err, "question insertion failed")
		return
	}

	if err := p.store.UpdateStatus(ctx, ev.QuizID, StatusReady); err != nil {
		log.Error().Err(err).Msg("failed to mark quiz ready")
		return
	}
	log.Info().Int("questions", len(questions)).Msg("quiz generation processed")
}

func (p *Processor) insertQuestion(ctx context.Context, quizID int64, gen GeneratedQuestion) error {
	questionID, err := p.store.InsertQuestion(ctx, quizID, gen.Description)
	if err != nil {
		return err
	}
	for i, opt := range gen.Options {
		if _, err := p.store.InsertOption(ctx, questionID, opt, i, i == gen.CorrectIndex); err != nil {
			return err
		}
	}
	return nil
}

// failClean implements the fail-clean policy: an event that cannot be
// fully materialized removes the quiz entirely instead of leaving it
// partially populated. Callers polling the quiz see not-found afterwards.
func (p *Processor) failClean(ctx context.Context, quizID int64, log zerolog.Logger, cause error, msg string) {
	if err := p.store.DeleteQuiz(ctx, quizID); err != nil {
		log.Error().Err(err).AnErr("cause", cause).Msg("failed to delete quiz after " + msg)
		return
	}
	log.Error().Err(cause).Msg(msg + "; quiz deleted")
}
