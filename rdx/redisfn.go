package rdx

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voyago/models"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for budget summaries. Summaries are
// derived data, so a miss or a Redis outage only costs a recompute from
// the ledger; cache errors are logged and never surfaced to callers.
type Cache struct {
	conn *redis.Client
	ttl  time.Duration
}

func Connect(addr string) *Cache {
	return &Cache{
		conn: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:  5 * time.Minute,
	}
}

func summaryKey(itineraryID string) string {
	return "budget:summary:" + itineraryID
}

func (c *Cache) GetSummary(ctx context.Context, itineraryID string) (*models.BudgetSummary, bool) {
	raw, err := c.conn.Get(ctx, summaryKey(itineraryID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Redis get error:", err)
		}
		return nil, false
	}
	var summary models.BudgetSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		log.Println("Cached summary unmarshal error:", err)
		return nil, false
	}
	return &summary, true
}

func (c *Cache) SetSummary(ctx context.Context, summary models.BudgetSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		log.Println("Summary marshal error:", err)
		return
	}
	if err := c.conn.Set(ctx, summaryKey(summary.ItineraryID), data, c.ttl).Err(); err != nil {
		log.Println("Redis set error:", err)
	}
}

func (c *Cache) InvalidateSummary(ctx context.Context, itineraryID string) {
	if err := c.conn.Del(ctx, summaryKey(itineraryID)).Err(); err != nil {
		log.Println("Redis del error:", err)
	}
}

func (c *Cache) Close() error {
	return c.conn.Close()
}
