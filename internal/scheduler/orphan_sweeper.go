package scheduler

import (
	"context"

	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/internal/storage"
	"github.com/jai-app/jai-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// OrphanSweeper periodically removes attachment rows whose owning company
// is gone, together with their blobs. Blob deletion during a company
// cascade is best-effort, so leftovers accumulate without this.
type OrphanSweeper struct {
	cron           *cron.Cron
	attachmentRepo repository.AttachmentRepository
	blobs          storage.BlobStore
	schedule       string
}

func NewOrphanSweeper(attachmentRepo repository.AttachmentRepository, blobs storage.BlobStore, schedule string) *OrphanSweeper {
	return &OrphanSweeper{
		cron:           cron.New(),
		attachmentRepo: attachmentRepo,
		blobs:          blobs,
		schedule:       schedule,
	}
}

func (s *OrphanSweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		logger.Error("Failed to add cron job for orphan sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Orphan sweeper started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

func (s *OrphanSweeper) Stop() {
	logger.Info("Stopping orphan sweeper...")
	s.cron.Stop()
	logger.Info("Orphan sweeper stopped")
}

// Sweep runs one pass. Exported so an operator command can trigger it
// outside the schedule.
func (s *OrphanSweeper) Sweep(ctx context.Context) {
	logger.Info("Starting orphan attachment sweep")

	orphaned, err := s.attachmentRepo.FindOrphaned()
	if err != nil {
		logger.Error("Failed to find orphaned attachments", err)
		return
	}

	if len(orphaned) == 0 {
		logger.Info("No orphaned attachments found")
		return
	}

	removed := 0
	for _, attachment := range orphaned {
		if err := s.blobs.Delete(ctx, attachment.StorageKey); err != nil {
			logger.Error("Failed to delete orphaned blob, keeping row for next sweep", err, map[string]interface{}{
				"storage_key": attachment.StorageKey,
				"company_id":  attachment.CompanyID,
			})
			continue
		}
		if _, err := s.attachmentRepo.DeleteByKey(attachment.CompanyID, attachment.StorageKey); err != nil {
			logger.Error("Failed to delete orphaned attachment row", err, map[string]interface{}{
				"storage_key": attachment.StorageKey,
			})
			continue
		}
		removed++
	}

	logger.Info("Orphan attachment sweep finished", map[string]interface{}{
		"found":   len(orphaned),
		"removed": removed,
	})
}
