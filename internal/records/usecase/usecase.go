package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shandysiswandi/csvjson/internal/pkg/pkgerror"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkguid"
	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

// Upload outcomes reported to UploadRecorder.
const (
	UploadResultOK      = "ok"
	UploadResultInvalid = "invalid"
	UploadResultError   = "error"
)

type Store interface {
	Read(ctx context.Context) []entity.Record
	Replace(ctx context.Context, records []entity.Record)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.ReplacedEvent) error
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type Clock interface {
	Now() time.Time
}

type UploadRecorder interface {
	UploadFinished(result string)
}

type Dependency struct {
	Store   Store
	Events  EventPublisher
	Runner  Runner
	Clock   Clock
	ID      pkguid.NumberID
	Uploads UploadRecorder
	RootCtx context.Context
}

type Usecase struct {
	store   Store
	events  EventPublisher
	runner  Runner
	clock   Clock
	id      pkguid.NumberID
	uploads UploadRecorder
	rootCtx context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:   dep.Store,
		events:  dep.Events,
		runner:  dep.Runner,
		clock:   clock,
		id:      dep.ID,
		uploads: dep.Uploads,
		rootCtx: root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Data returns the current dataset.
func (u *Usecase) Data(ctx context.Context) []entity.Record {
	return u.store.Read(ctx)
}

// Upload parses r and, only if the whole input is valid, replaces the
// dataset with it. r must already hold the complete payload.
func (u *Usecase) Upload(ctx context.Context, r io.Reader) ([]entity.Record, error) {
	records, err := ParseCSV(r)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			u.recordUpload(UploadResultInvalid)
			slog.WarnContext(ctx, "rejected csv upload", "error", err)
			return nil, pkgerror.NewInvalidCSV(perr)
		}
		u.recordUpload(UploadResultError)
		return nil, pkgerror.NewServer(err)
	}

	u.store.Replace(ctx, records)
	u.recordUpload(UploadResultOK)
	u.announce(ctx, entity.ReplaceSourceUpload, len(records))

	return records, nil
}

// Preload fills the dataset from the CSV file at path.
func (u *Usecase) Preload(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open preload file: %w", err)
	}
	defer file.Close()

	records, err := ParseCSV(file)
	if err != nil {
		return fmt.Errorf("parse preload file %s: %w", path, err)
	}

	u.store.Replace(ctx, records)
	u.announce(ctx, entity.ReplaceSourceStartup, len(records))

	slog.InfoContext(ctx, "dataset preloaded", "path", path, "records", len(records))

	return nil
}

// Bootstrap runs the optional preload and applies policy to its failure.
// An empty path leaves the dataset empty.
func (u *Usecase) Bootstrap(ctx context.Context, path string, policy StartupPolicy) error {
	if path == "" {
		return nil
	}

	err := u.Preload(ctx, path)
	if err == nil {
		return nil
	}

	if policy == StartupPolicyFallback {
		slog.WarnContext(ctx, "preload failed, starting with empty dataset", "path", path, "error", err)
		u.store.Replace(ctx, nil)
		return nil
	}

	return err
}

func (u *Usecase) announce(ctx context.Context, source entity.ReplaceSource, count int) {
	if u.events == nil {
		return
	}

	event := entity.ReplacedEvent{
		Source:     source,
		Count:      count,
		ReplacedAt: u.clock.Now().UnixMilli(),
	}
	if u.id != nil {
		event.EventID = strconv.FormatInt(u.id.Generate(), 10)
	}

	publish := func(ctx context.Context) error {
		if err := u.events.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish replaced event", "event_id", event.EventID, "error", err)
			return err
		}
		return nil
	}

	if u.runner == nil {
		_ = publish(ctx)
		return
	}

	// the request context ends with the response; publishing must outlive it
	u.runner.Go(u.rootCtx, publish)
}

func (u *Usecase) recordUpload(result string) {
	if u.uploads != nil {
		u.uploads.UploadFinished(result)
	}
}
