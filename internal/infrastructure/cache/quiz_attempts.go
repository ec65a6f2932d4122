package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learnplatform/internal/quiz"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const attemptTTL = 2 * time.Hour

// AttemptStore keeps quiz attempts between answer selection and submission.
type AttemptStore struct {
	client *redis.Client
}

func NewAttemptStore(client *redis.Client) *AttemptStore {
	return &AttemptStore{client: client}
}

func attemptKey(wallet string, lessonID uuid.UUID, sectionID string) string {
	return fmt.Sprintf("quiz_attempt:%s:%s:%s", wallet, lessonID, sectionID)
}

// Load returns the stored attempt, or a fresh one when none exists.
func (s *AttemptStore) Load(ctx context.Context, wallet string, lessonID uuid.UUID, sectionID string) (*quiz.Attempt, error) {
	val, err := s.client.Get(ctx, attemptKey(wallet, lessonID, sectionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return quiz.NewAttempt(), nil
	}
	if err != nil {
		return nil, err
	}

	a := quiz.NewAttempt()
	if err := json.Unmarshal(val, a); err != nil {
		return quiz.NewAttempt(), nil
	}
	return a, nil
}

func (s *AttemptStore) Save(ctx context.Context, wallet string, lessonID uuid.UUID, sectionID string, a *quiz.Attempt) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, attemptKey(wallet, lessonID, sectionID), data, attemptTTL).Err()
}

func (s *AttemptStore) Clear(ctx context.Context, wallet string, lessonID uuid.UUID, sectionID string) error {
	return s.client.Del(ctx, attemptKey(wallet, lessonID, sectionID)).Err()
}
