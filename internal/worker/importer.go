package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"school-admin-api/internal/config"
	"school-admin-api/internal/excel"
	"school-admin-api/internal/logger"
	"school-admin-api/internal/model"
	"school-admin-api/internal/queue"
	"school-admin-api/internal/storage"
)

// GradeImporter stores imported rows and records the outcome of an import.
type GradeImporter interface {
	ImportGrade(ctx context.Context, row model.GradeRow) (bool, error)
	FinishImport(ctx context.Context, id string, status model.ImportStatus, inserted, skipped int, errs []string) error
}

type ImportWorker struct {
	cfg        *config.Config
	importer   GradeImporter
	storage    storage.Storage
	parser     excel.ParsingStrategy
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewImportWorker(
	cfg *config.Config,
	importer GradeImporter,
	storage storage.Storage,
	redisClient *queue.RedisClient,
) *ImportWorker {
	return &ImportWorker{
		cfg:        cfg,
		importer:   importer,
		storage:    storage,
		parser:     excel.NewExcelStrategy(),
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Import.Count),
		log:        logger.Component("import_worker"),
	}
}

func (w *ImportWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting import worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeImportQueue(ctx, w.handleMessage)
}

// Stop drains the pool. Call it only after Start has returned, so no
// message is still on its way into the pool.
func (w *ImportWorker) Stop() {
	w.log.Info().Msg("Stopping import worker")
	w.workerPool.Stop()
}

// handleMessage decodes a job and hands it to the pool. A malformed payload
// is returned as an error so the consumer dead-letters it.
func (w *ImportWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.GradeImportJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal import job")
		return err
	}
	if job.ImportID == "" || job.S3Path == "" {
		return fmt.Errorf("import job missing import_id or s3_path")
	}

	w.log.Info().Str("import_id", job.ImportID).Str("s3_path", job.S3Path).Msg("Processing import job")

	// The job has already been popped from Redis, so shutdown must not
	// abandon it between the queue and the pool.
	return w.workerPool.Submit(context.WithoutCancel(ctx), func(ctx context.Context) error {
		return w.processImport(ctx, job)
	})
}

func (w *ImportWorker) fail(ctx context.Context, job model.GradeImportJob, cause error) error {
	if err := w.importer.FinishImport(ctx, job.ImportID, model.ImportStatusParsedFail, 0, 0, []string{cause.Error()}); err != nil {
		w.log.Error().Err(err).Str("import_id", job.ImportID).Msg("Failed to update import status")
	}
	return cause
}

func (w *ImportWorker) processImport(ctx context.Context, job model.GradeImportJob) error {
	log := w.log.With().Str("import_id", job.ImportID).Logger()

	exists, err := w.storage.Exists(ctx, job.S3Path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up file")
		return w.fail(ctx, job, err)
	}
	if !exists {
		err := fmt.Errorf("import file %s not found", job.S3Path)
		log.Error().Err(err).Msg("Import file missing")
		return w.fail(ctx, job, err)
	}

	log.Debug().Msg("Downloading file from S3")
	reader, err := w.storage.Download(ctx, job.S3Path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to download file")
		return w.fail(ctx, job, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read file data")
		return w.fail(ctx, job, err)
	}

	log.Debug().Msg("Parsing Excel file")
	rows, err := w.parser.Parse(ctx, data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse Excel file")
		return w.fail(ctx, job, err)
	}

	log.Debug().Int("row_count", len(rows)).Msg("Validating parsed grades")
	if err := w.parser.Validate(ctx, rows); err != nil {
		log.Error().Err(err).Msg("Grade validation failed")
		return w.fail(ctx, job, err)
	}

	var (
		inserted, skipped int
		rowErrs           []string
	)
	for _, row := range rows {
		ok, err := w.importer.ImportGrade(ctx, row)
		switch {
		case err != nil:
			rowErrs = append(rowErrs, err.Error())
		case ok:
			inserted++
		default:
			skipped++
		}
	}

	status := model.ImportStatusParsedOK
	if len(rowErrs) > 0 {
		status = model.ImportStatusParsedFail
	}
	if err := w.importer.FinishImport(ctx, job.ImportID, status, inserted, skipped, rowErrs); err != nil {
		log.Error().Err(err).Msg("Failed to update import status")
		return err
	}

	log.Info().
		Int("inserted", inserted).
		Int("skipped", skipped).
		Int("failed", len(rowErrs)).
		Msg("Import processed")
	return nil
}
