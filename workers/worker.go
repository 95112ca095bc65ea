package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"estatedesk/config"
	"estatedesk/services/listing"
	"estatedesk/services/media"
	"estatedesk/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeStagingPurge removes the staged blobs of a submitted draft.
	TypeStagingPurge = "staging:purge"
	// TypeListingCacheFlush drops the listing browse cache after a
	// submission lands a new listing.
	TypeListingCacheFlush = "listings:cacheFlush"
)

// stagingMaxAge is how long an abandoned staged file may linger before the
// periodic sweep removes it.
const stagingMaxAge = 24 * time.Hour

type stagingPurgePayload struct {
	FileIDs []string `json:"fileIds"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Client enqueues housekeeping tasks for the background worker. A nil client
// is safe: enqueue calls become no-ops.
type Client struct {
	inner *asynq.Client
}

// NewClient creates a task client against the queue Redis DB.
func NewClient() *Client {
	return &Client{inner: asynq.NewClient(redisOpts())}
}

// EnqueueStagingPurge schedules removal of the given staged files.
func (c *Client) EnqueueStagingPurge(fileIDs []string) {
	if c == nil || len(fileIDs) == 0 {
		return
	}
	payload, err := json.Marshal(stagingPurgePayload{FileIDs: fileIDs})
	if err != nil {
		return
	}
	if _, err := c.inner.Enqueue(asynq.NewTask(TypeStagingPurge, payload)); err != nil {
		utils.GetLogger().Warn("Failed to enqueue staging purge", zap.Error(err))
	}
}

// EnqueueListingCacheFlush schedules a browse-cache flush.
func (c *Client) EnqueueListingCacheFlush() {
	if c == nil {
		return
	}
	if _, err := c.inner.Enqueue(asynq.NewTask(TypeListingCacheFlush, nil)); err != nil {
		utils.GetLogger().Warn("Failed to enqueue cache flush", zap.Error(err))
	}
}

// InitWorker runs the async worker in background.
func InitWorker(staging *media.StagingStore, cache *redis.Client) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStagingPurge, handleStagingPurge(staging))
	mux.HandleFunc(TypeListingCacheFlush, handleCacheFlush(cache))

	// Sweep abandoned staged files on a fixed cadence.
	go runStagingSweep(staging)

	go func() {
		log.Println("[Worker] Starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[Worker] Failed to start worker: %v", err)
		}
	}()
}

func handleStagingPurge(staging *media.StagingStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p stagingPurgePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[Worker] Invalid staging purge payload: %v", err)
			return err
		}
		for _, id := range p.FileIDs {
			if err := staging.Remove(id); err != nil {
				log.Printf("[Worker] Failed to purge staged file %s: %v", id, err)
			}
		}
		return nil
	}
}

func handleCacheFlush(cache *redis.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		listing.FlushBrowseCache(ctx, cache)
		return nil
	}
}

// runStagingSweep periodically removes staged files from abandoned drafts.
func runStagingSweep(staging *media.StagingStore) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if n := staging.Sweep(stagingMaxAge); n > 0 {
			log.Printf("[Worker] Swept %d abandoned staged file(s)", n)
		}
	}
}
