package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync/atomic"

	"clubhub-backend/internal/adapters/persistence/repositories"
)

// ErrModelNotReady is returned when recommendations are requested before
// the first training pass has completed.
var ErrModelNotReady = errors.New("recommender model not trained yet")

// Recommendation is a single scored club suggestion
type Recommendation struct {
	ClubID uint    `json:"club_id"`
	Slug   string  `json:"slug"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
}

// recommenderModel is an immutable snapshot of the trained model. A new
// snapshot is built on every retrain and swapped in atomically, so read
// paths never observe a half-built model.
type recommenderModel struct {
	clubTags  map[uint]map[uint]bool
	clubSlugs map[uint]string
	clubNames map[uint]string
	clubIDs   []uint
}

// RecommenderService serves club suggestions from tag similarity
type RecommenderService struct {
	clubRepo repositories.ClubRepository
	model    atomic.Pointer[recommenderModel]
}

// NewRecommenderService creates a new recommender service
func NewRecommenderService(clubRepo repositories.ClubRepository) *RecommenderService {
	return &RecommenderService{clubRepo: clubRepo}
}

// Ready reports whether a trained model has been published
func (s *RecommenderService) Ready() bool {
	return s.model.Load() != nil
}

// Train rebuilds the model from current club data and publishes it.
// Readers keep the previous snapshot until the swap.
func (s *RecommenderService) Train(ctx context.Context) error {
	clubs, err := s.clubRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	next := &recommenderModel{
		clubTags:  make(map[uint]map[uint]bool, len(clubs)),
		clubSlugs: make(map[uint]string, len(clubs)),
		clubNames: make(map[uint]string, len(clubs)),
		clubIDs:   make([]uint, 0, len(clubs)),
	}

	for _, club := range clubs {
		tagSet := make(map[uint]bool, len(club.Tags))
		for _, tag := range club.Tags {
			tagSet[tag.ID] = true
		}
		next.clubTags[club.ID] = tagSet
		next.clubSlugs[club.ID] = club.Slug
		next.clubNames[club.ID] = club.Name
		next.clubIDs = append(next.clubIDs, club.ID)
	}

	s.model.Store(next)

	log.Printf("🤖 Recommender model trained on %d clubs", len(clubs))
	return nil
}

// Recommend returns up to n clubs most similar to the given club by tag
// overlap (Jaccard similarity).
func (s *RecommenderService) Recommend(clubID uint, n int) ([]Recommendation, error) {
	model := s.model.Load()
	if model == nil {
		return nil, ErrModelNotReady
	}

	base, ok := model.clubTags[clubID]
	if !ok {
		return nil, ErrModelNotReady
	}

	recs := make([]Recommendation, 0, len(model.clubIDs))
	for _, otherID := range model.clubIDs {
		if otherID == clubID {
			continue
		}
		score := jaccard(base, model.clubTags[otherID])
		if score == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			ClubID: otherID,
			Slug:   model.clubSlugs[otherID],
			Name:   model.clubNames[otherID],
			Score:  score,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > n {
		recs = recs[:n]
	}
	return recs, nil
}

func jaccard(a, b map[uint]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for id := range a {
		if b[id] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
