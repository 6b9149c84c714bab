package services

import (
	"context"
	"testing"

	"clubhub-backend/internal/adapters/persistence/models"
	"clubhub-backend/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTaggedClub(t *testing.T, db *gorm.DB, slug string, tags []models.Tag) *models.Club {
	t.Helper()

	owner := &models.User{
		Email:    slug + "@clubs.edu",
		Password: "irrelevant",
		Role:     "officer",
	}
	require.NoError(t, db.Create(owner).Error)

	club := &models.Club{
		Slug:    slug,
		Name:    slug,
		OwnerID: owner.ID,
		Tags:    tags,
	}
	require.NoError(t, db.Create(club).Error)
	return club
}

func seedTags(t *testing.T, db *gorm.DB, names ...string) []models.Tag {
	t.Helper()

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		require.NoError(t, db.Create(&tag).Error)
		tags = append(tags, tag)
	}
	return tags
}

func TestRecommendBeforeTraining(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommenderService(repositories.NewClubRepository(db))

	require.False(t, svc.Ready())
	_, err := svc.Recommend(1, 5)
	require.ErrorIs(t, err, ErrModelNotReady)
}

func TestRecommendRanksByTagOverlap(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommenderService(repositories.NewClubRepository(db))

	tags := seedTags(t, db, "stem", "competition", "outdoors", "music")
	base := seedTaggedClub(t, db, "robotics", []models.Tag{tags[0], tags[1]})
	twin := seedTaggedClub(t, db, "math-olympiad", []models.Tag{tags[0], tags[1]})
	partial := seedTaggedClub(t, db, "hiking", []models.Tag{tags[1], tags[2]})
	seedTaggedClub(t, db, "choir", []models.Tag{tags[3]})

	require.NoError(t, svc.Train(context.Background()))
	require.True(t, svc.Ready())

	recs, err := svc.Recommend(base.ID, 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Full overlap outranks partial; the disjoint club never appears
	require.Equal(t, twin.ID, recs[0].ClubID)
	require.Equal(t, partial.ID, recs[1].ClubID)
	require.Greater(t, recs[0].Score, recs[1].Score)
}

func TestRecommendCapsResultCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommenderService(repositories.NewClubRepository(db))

	tags := seedTags(t, db, "stem")
	base := seedTaggedClub(t, db, "base", tags)
	for _, slug := range []string{"c1", "c2", "c3", "c4"} {
		seedTaggedClub(t, db, slug, tags)
	}

	require.NoError(t, svc.Train(context.Background()))

	recs, err := svc.Recommend(base.ID, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestRecommendUnknownClub(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommenderService(repositories.NewClubRepository(db))

	require.NoError(t, svc.Train(context.Background()))
	_, err := svc.Recommend(999, 5)
	require.ErrorIs(t, err, ErrModelNotReady)
}

func TestRetrainPicksUpNewClubs(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommenderService(repositories.NewClubRepository(db))

	tags := seedTags(t, db, "stem")
	base := seedTaggedClub(t, db, "base", tags)
	require.NoError(t, svc.Train(context.Background()))

	recs, err := svc.Recommend(base.ID, 5)
	require.NoError(t, err)
	require.Empty(t, recs)

	// A club registered after training shows up once the model is rebuilt
	newcomer := seedTaggedClub(t, db, "newcomer", tags)
	recs, err = svc.Recommend(base.ID, 5)
	require.NoError(t, err)
	require.Empty(t, recs)

	require.NoError(t, svc.Train(context.Background()))
	recs, err = svc.Recommend(base.ID, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, newcomer.ID, recs[0].ClubID)
}
