package designs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	candidateKeyPrefix = "gen:candidates:" // gen:candidates:{session_id}
	candidateTTL       = 24 * time.Hour
)

var ErrCandidatesExpired = errors.New("generation session not found or expired")

// CandidateStore parks unsaved design candidates in Redis so the explicit
// save step can reference one by session id and index instead of re-uploading
// the whole design.
type CandidateStore struct {
	client *redis.Client
}

func NewCandidateStore(client *redis.Client) *CandidateStore {
	return &CandidateStore{client: client}
}

type candidateBatch struct {
	UserID  string   `json:"user_id"`
	Designs []Design `json:"designs"`
}

// Put stores a candidate batch under a fresh session id.
func (s *CandidateStore) Put(ctx context.Context, userID string, batch []Design) (string, error) {
	sessionID := uuid.New().String()

	data, err := json.Marshal(candidateBatch{UserID: userID, Designs: batch})
	if err != nil {
		return "", fmt.Errorf("marshal candidate batch: %w", err)
	}

	if err := s.client.Set(ctx, candidateKeyPrefix+sessionID, data, candidateTTL).Err(); err != nil {
		return "", fmt.Errorf("store candidate batch: %w", err)
	}
	return sessionID, nil
}

// Get returns one candidate from a stored batch. Sessions are scoped to the
// user that generated them.
func (s *CandidateStore) Get(ctx context.Context, userID, sessionID string, index int) (*Design, error) {
	data, err := s.client.Get(ctx, candidateKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, ErrCandidatesExpired
	}
	if err != nil {
		return nil, fmt.Errorf("load candidate batch: %w", err)
	}

	var batch candidateBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("decode candidate batch: %w", err)
	}
	if batch.UserID != userID {
		return nil, ErrCandidatesExpired
	}
	if index < 0 || index >= len(batch.Designs) {
		return nil, fmt.Errorf("candidate index %d out of range", index)
	}

	d := batch.Designs[index]
	d.Normalize()
	return &d, nil
}
