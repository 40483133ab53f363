package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestOffer(t *testing.T, db *DB, key string) {
	t.Helper()
	_, err := db.InsertOffer(context.Background(), &Offer{
		Key:     key,
		Title:   "Senior Backend Engineer",
		Company: "Acme Corp",
	})
	require.NoError(t, err)
}

func TestInsertAndListResumes(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	insertTestOffer(t, db, "k1")

	id, err := db.InsertResume(ctx, &Resume{
		OfferKey: "k1",
		YAMLPath: "/out/jane_doe_cv.yaml",
		PDFPath:  "/out/jane_doe_cv.pdf",
		Model:    "gemini-1.5-pro",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	resumes, err := db.ListResumes(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, resumes, 1)
	assert.Equal(t, "default", resumes[0].ProfileName)
	assert.Equal(t, "/out/jane_doe_cv.pdf", resumes[0].PDFPath)
	assert.Equal(t, "gemini-1.5-pro", resumes[0].Model)
	assert.False(t, resumes[0].Selected)
	assert.False(t, resumes[0].GeneratedAt.IsZero())
}

func TestInsertResumeUnknownOffer(t *testing.T) {
	db := openTestDB(t)

	_, err := db.InsertResume(context.Background(), &Resume{OfferKey: "nope"})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Key)
}

func TestSelectResume(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	insertTestOffer(t, db, "k1")

	first, err := db.InsertResume(ctx, &Resume{OfferKey: "k1"})
	require.NoError(t, err)
	second, err := db.InsertResume(ctx, &Resume{OfferKey: "k1"})
	require.NoError(t, err)

	require.NoError(t, db.SelectResume(ctx, first))
	require.NoError(t, db.SelectResume(ctx, second))

	// Selecting one version clears the flag on its siblings.
	resumes, err := db.ListResumes(ctx, "k1")
	require.NoError(t, err)
	selected := make(map[int64]bool)
	for _, r := range resumes {
		selected[r.ID] = r.Selected
	}
	assert.False(t, selected[first])
	assert.True(t, selected[second])

	var notFound *NotFoundError
	err = db.SelectResume(ctx, 9999)
	require.ErrorAs(t, err, &notFound)
}

func TestSetApplicationStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	insertTestOffer(t, db, "k1")

	require.NoError(t, db.SetApplicationStatus(ctx, "k1", StatusResumeGenerated, ""))

	apps, err := db.ListApplications(ctx, "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, StatusResumeGenerated, apps[0].Status)
	assert.False(t, apps[0].AppliedAt.Valid)
	assert.Equal(t, "Senior Backend Engineer", apps[0].Title)
	assert.Equal(t, "Acme Corp", apps[0].Company)

	// Reaching "applied" stamps the timestamp once.
	require.NoError(t, db.SetApplicationStatus(ctx, "k1", StatusApplied, "sent via website"))
	apps, err = db.ListApplications(ctx, "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, StatusApplied, apps[0].Status)
	assert.True(t, apps[0].AppliedAt.Valid)
	assert.Equal(t, "sent via website", apps[0].Notes)
	appliedAt := apps[0].AppliedAt.Time

	require.NoError(t, db.SetApplicationStatus(ctx, "k1", StatusRejected, ""))
	apps, err = db.ListApplications(ctx, "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, StatusRejected, apps[0].Status)
	assert.Equal(t, appliedAt, apps[0].AppliedAt.Time)
}

func TestSetApplicationStatusErrors(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	insertTestOffer(t, db, "k1")

	var storeErr *StoreError
	err := db.SetApplicationStatus(ctx, "k1", "ghosted", "")
	require.ErrorAs(t, err, &storeErr)

	var notFound *NotFoundError
	err = db.SetApplicationStatus(ctx, "nope", StatusApplied, "")
	require.ErrorAs(t, err, &notFound)
}

func TestListApplicationsByStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	insertTestOffer(t, db, "k1")
	_, err := db.InsertOffer(ctx, &Offer{Key: "k2", Title: "Data Engineer", Company: "Globex"})
	require.NoError(t, err)

	require.NoError(t, db.SetApplicationStatus(ctx, "k1", StatusApplied, ""))
	require.NoError(t, db.SetApplicationStatus(ctx, "k2", StatusRejected, ""))

	applied, err := db.ListApplications(ctx, StatusApplied)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "k1", applied[0].OfferKey)

	all, err := db.ListApplications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	insertTestOffer(t, db, "k1")
	_, err := db.InsertOffer(ctx, &Offer{Key: "k2", Title: "Data Engineer", Company: "Globex"})
	require.NoError(t, err)

	require.NoError(t, db.MarkProcessed(ctx, "k1"))
	_, err = db.InsertResume(ctx, &Resume{OfferKey: "k1"})
	require.NoError(t, err)
	require.NoError(t, db.SetApplicationStatus(ctx, "k1", StatusApplied, ""))

	stats, err := db.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOffers)
	assert.Equal(t, 1, stats.ProcessedOffers)
	assert.Equal(t, 1, stats.TotalResumes)
	assert.Equal(t, 1, stats.ByStatus[StatusApplied])
	assert.Zero(t, stats.ByStatus[StatusRejected])
}

func TestApplicationStatusIsValid(t *testing.T) {
	for _, status := range ApplicationStatuses() {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, ApplicationStatus("ghosted").IsValid())
	assert.False(t, ApplicationStatus("").IsValid())
}
