package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionCache guards against duplicate submissions. The SetNX lock is the
// caller-side concurrency control the scoring core deliberately does not do:
// it is claimed before scoring so two concurrent submits for the same
// form+respondent cannot both persist.
type SubmissionCache interface {
	ClaimSubmission(ctx context.Context, formID, respondentID string) (bool, error)
	ReleaseSubmission(ctx context.Context, formID, respondentID string) error
}

type submissionCache struct {
	client *redis.Client
}

// NewSubmissionCache creates a new submission cache
func NewSubmissionCache(client *redis.Client) SubmissionCache {
	return &submissionCache{
		client: client,
	}
}

func (c *submissionCache) ClaimSubmission(ctx context.Context, formID, respondentID string) (bool, error) {
	return c.client.SetNX(ctx, "submission:"+formID+":"+respondentID, 1, 24*time.Hour).Result()
}

func (c *submissionCache) ReleaseSubmission(ctx context.Context, formID, respondentID string) error {
	return c.client.Del(ctx, "submission:"+formID+":"+respondentID).Err()
}
