package utils

import (
	"certchain/models"
	"certchain/pipeline"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSchedulerDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Certificate{}))
	return db
}

// seedCertAged inserts a certificate and backdates its updated_at
func seedCertAged(t *testing.T, db *gorm.DB, age time.Duration, mutate func(*models.Certificate)) string {
	cert := models.Certificate{
		ID:            uuid.NewString(),
		RecipientName: "Jane Doe",
		CourseName:    "Blockchain 101",
		InstituteID:   1,
		IssuedAt:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(&cert)
	}
	require.NoError(t, db.Create(&cert).Error)
	require.NoError(t, db.Model(&models.Certificate{}).
		Where("id = ?", cert.ID).
		UpdateColumn("updated_at", time.Now().Add(-age)).Error)
	return cert.ID
}

func strPtr(s string) *string { return &s }

func TestFindStalePipelines(t *testing.T) {
	db := newSchedulerDB(t)

	oldIncomplete := seedCertAged(t, db, 2*time.Hour, nil)
	freshIncomplete := seedCertAged(t, db, time.Minute, nil)
	oldComplete := seedCertAged(t, db, 2*time.Hour, func(c *models.Certificate) {
		c.ImageHash = strPtr("QmImage")
		c.MetadataHash = strPtr("QmMeta")
		c.TransactionHash = strPtr("0xavax123")
		c.QRURL = strPtr("https://gw/ipfs/QmQR")
	})

	stale, err := findStalePipelines(db, time.Now().Add(-staleAfter))
	require.NoError(t, err)

	require.Len(t, stale, 1)
	assert.Equal(t, oldIncomplete, stale[0].ID)
	_ = freshIncomplete
	_ = oldComplete
}

func TestStalledStepMatchesPipelineLabels(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.Certificate)
		want   string
	}{
		{
			name:   "nothing uploaded",
			mutate: nil,
			want:   pipeline.StepUpload,
		},
		{
			name: "image only",
			mutate: func(c *models.Certificate) {
				c.ImageHash = strPtr("QmImage")
			},
			want: pipeline.StepUpload,
		},
		{
			name: "uploaded but not anchored",
			mutate: func(c *models.Certificate) {
				c.ImageHash = strPtr("QmImage")
				c.MetadataHash = strPtr("QmMeta")
			},
			want: pipeline.StepAnchor,
		},
		{
			name: "anchored but no qr",
			mutate: func(c *models.Certificate) {
				c.ImageHash = strPtr("QmImage")
				c.MetadataHash = strPtr("QmMeta")
				c.TransactionHash = strPtr("0xavax123")
			},
			want: pipeline.StepQR,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cert := models.Certificate{ID: uuid.NewString()}
			if tc.mutate != nil {
				tc.mutate(&cert)
			}
			assert.Equal(t, tc.want, stalledStep(&cert))
		})
	}
}
