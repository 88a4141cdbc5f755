package utils

import (
	"certchain/database"
	"certchain/models"
	"certchain/pipeline"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// staleAfter is how long a certificate may sit mid-pipeline before the
// sweeper reports it. Resumption itself is manual, via the per-step
// endpoints; the sweeper only surfaces candidates.
const staleAfter = time.Hour

// logSweeper logs sweeper events with timestamp
func logSweeper(message string) {
	log.Printf("[PIPELINE-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// findStalePipelines returns certificates that have sat mid-pipeline
// since before the cutoff, oldest first.
func findStalePipelines(db *gorm.DB, cutoff time.Time) ([]models.Certificate, error) {
	var stale []models.Certificate
	err := db.Where("is_deleted = false AND updated_at < ? AND (image_hash IS NULL OR transaction_hash IS NULL OR qr_url IS NULL)", cutoff).
		Order("updated_at asc").
		Limit(100).
		Find(&stale).Error
	return stale, err
}

// stalledStep names the pipeline step a certificate is stuck at, using
// the same labels the pipeline itself reports.
func stalledStep(cert *models.Certificate) string {
	switch {
	case cert.ImageHash == nil || cert.MetadataHash == nil:
		return pipeline.StepUpload
	case cert.TransactionHash == nil:
		return pipeline.StepAnchor
	default:
		return pipeline.StepQR
	}
}

// sweepStalePipelines reports certificates stuck between pipeline steps
func sweepStalePipelines() {
	stale, err := findStalePipelines(database.Database.Db, time.Now().Add(-staleAfter))
	if err != nil {
		logSweeper("Error fetching stale certificates: " + err.Error())
		return
	}

	if len(stale) == 0 {
		return
	}

	logSweeper(fmt.Sprintf("Found %d stale certificates", len(stale)))
	for _, cert := range stale {
		logSweeper("Certificate " + cert.ID + " stalled at: " + stalledStep(&cert))
	}
}

// StartPipelineSweeper schedules the stale-pipeline report every 15
// minutes. Returns the cron runner so callers can stop it.
func StartPipelineSweeper() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("*/15 * * * *", sweepStalePipelines); err != nil {
		log.Fatalf("Failed to schedule pipeline sweeper: %v", err)
	}

	c.Start()
	logSweeper("Pipeline sweeper started (every 15 minutes)")
	return c
}
