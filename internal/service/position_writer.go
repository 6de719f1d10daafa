package service

import (
	"context"
	"log"
	"sync"

	"github.com/kiru/beadtrack/internal/database/repository"
	"github.com/kiru/beadtrack/internal/pattern"
)

// PositionWriter persists committed cursor positions for one project. It
// implements nav.Notifier as a one-way queue: NotifyPosition enqueues and
// returns immediately, a single goroutine drains to sqlite. A slow or
// failing write never blocks or rolls back the in-memory cursor.
type PositionWriter struct {
	projectID string
	repo      *repository.PositionRepo
	intents   chan pattern.Position
	once      sync.Once
	done      chan struct{}
}

// NewPositionWriter starts the drain goroutine. Call Close to flush pending
// writes before shutdown.
func NewPositionWriter(ctx context.Context, repo *repository.PositionRepo, projectID string) *PositionWriter {
	w := &PositionWriter{
		projectID: projectID,
		repo:      repo,
		intents:   make(chan pattern.Position, 64),
		done:      make(chan struct{}),
	}
	go w.drain(ctx)
	return w
}

// NotifyPosition enqueues the new absolute position. When the queue is full
// the oldest pending intent is discarded in favor of the newest: every
// intent carries the absolute cursor, so dropping stale ones is safe.
func (w *PositionWriter) NotifyPosition(row, step int) {
	pos := pattern.Position{Row: row, Step: step}
	for {
		select {
		case w.intents <- pos:
			return
		default:
		}
		select {
		case <-w.intents:
		default:
		}
	}
}

// Close stops accepting intents and waits for the queue to flush.
func (w *PositionWriter) Close() {
	w.once.Do(func() { close(w.intents) })
	<-w.done
}

func (w *PositionWriter) drain(ctx context.Context) {
	defer close(w.done)
	for pos := range w.intents {
		if err := w.repo.Upsert(ctx, w.projectID, pos.Row, pos.Step); err != nil {
			log.Printf("warn: save position %d/%d: %v", pos.Row, pos.Step, err)
		}
	}
}

// MarkWriter persists mark changes for one project. Mark toggles are rare
// compared to navigation, so writes happen inline; failures are logged and
// the in-memory overlay stays authoritative.
type MarkWriter struct {
	ProjectID string
	Repo      *repository.MarkRepo
	Ctx       context.Context
}

func (w *MarkWriter) SaveStepMark(pos pattern.Position, mark int) {
	if err := w.Repo.SetStepMark(w.Ctx, w.ProjectID, pos.Row, pos.Step, mark); err != nil {
		log.Printf("warn: save step mark %d/%d: %v", pos.Row, pos.Step, err)
	}
}

func (w *MarkWriter) SaveRowMark(row, mark int) {
	if err := w.Repo.SetRowMark(w.Ctx, w.ProjectID, row, mark); err != nil {
		log.Printf("warn: save row mark %d: %v", row, err)
	}
}
