package taxation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hr-payroll/internal/taxengine"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("tax result not cached")

const resultTTL = 24 * time.Hour

// ResultCache holds computed tax results keyed by company and employee.
// Implementations must treat a miss as ErrCacheMiss, not an empty result.
type ResultCache interface {
	Get(ctx context.Context, companyID, employeeID string) (*taxengine.Result, error)
	Set(ctx context.Context, companyID string, result taxengine.Result) error
	GetProvision(ctx context.Context, companyID string) (*ProvisionResponse, error)
	SetProvision(ctx context.Context, companyID string, provision ProvisionResponse) error
	InvalidateProvision(ctx context.Context, companyID string) error
}

func resultKey(companyID, employeeID string) string {
	return fmt.Sprintf("tax:result:%s:%s", companyID, employeeID)
}

// ProvisionKey is shared with the kafka consumer that invalidates the
// dashboard aggregate when payroll lands.
func ProvisionKey(companyID string) string {
	return fmt.Sprintf("tax:provision:%s", companyID)
}

type redisResultCache struct {
	rdb *redis.Client
}

func NewRedisResultCache(rdb *redis.Client) ResultCache {
	return &redisResultCache{rdb: rdb}
}

func (c *redisResultCache) Get(ctx context.Context, companyID, employeeID string) (*taxengine.Result, error) {
	val, err := c.rdb.Get(ctx, resultKey(companyID, employeeID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var result taxengine.Result
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *redisResultCache) Set(ctx context.Context, companyID string, result taxengine.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, resultKey(companyID, result.EmployeeID), payload, resultTTL).Err()
}

func (c *redisResultCache) GetProvision(ctx context.Context, companyID string) (*ProvisionResponse, error) {
	val, err := c.rdb.Get(ctx, ProvisionKey(companyID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var provision ProvisionResponse
	if err := json.Unmarshal([]byte(val), &provision); err != nil {
		return nil, err
	}
	return &provision, nil
}

func (c *redisResultCache) SetProvision(ctx context.Context, companyID string, provision ProvisionResponse) error {
	payload, err := json.Marshal(provision)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ProvisionKey(companyID), payload, resultTTL).Err()
}

func (c *redisResultCache) InvalidateProvision(ctx context.Context, companyID string) error {
	return c.rdb.Del(ctx, ProvisionKey(companyID)).Err()
}
