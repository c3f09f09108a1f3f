package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/repositories"
)

// Load snapshots go stale quickly; a short TTL keeps ranking fresh while
// shielding the backend from per-request reads.
const doctorLoadTTL = 60 * time.Second

// CachedDoctorLoadAdapter wraps a DoctorLoadRepository with caching
type CachedDoctorLoadAdapter struct {
	adapter repositories.DoctorLoadRepository
	cache   providers.CacheProvider
}

// NewCachedDoctorLoadAdapter creates a new cached doctor load adapter
func NewCachedDoctorLoadAdapter(adapter repositories.DoctorLoadRepository, cache providers.CacheProvider) repositories.DoctorLoadRepository {
	return &CachedDoctorLoadAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

func doctorLoadCacheKey(id string) string {
	return fmt.Sprintf("doctors:load:%s", id)
}

func departmentLoadsCacheKey(department string) string {
	if department == "" {
		department = "_all"
	}
	return fmt.Sprintf("doctors:load:dept:%s", department)
}

// GetByID retrieves one doctor's load snapshot with caching
func (a *CachedDoctorLoadAdapter) GetByID(ctx context.Context, id string) (*entities.DoctorLoad, error) {
	cacheKey := doctorLoadCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var load entities.DoctorLoad
		if err := json.Unmarshal(cached, &load); err == nil {
			return &load, nil
		}
	}

	load, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		if data, err := json.Marshal(load); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, doctorLoadTTL); err != nil {
				log.Warn().Err(err).Str("doctor_id", id).Msg("failed to cache doctor load")
			}
		}
	}()

	return load, nil
}

// ListByDepartment retrieves department load snapshots with caching
func (a *CachedDoctorLoadAdapter) ListByDepartment(ctx context.Context, department string) ([]*entities.DoctorLoad, error) {
	cacheKey := departmentLoadsCacheKey(department)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var loads []*entities.DoctorLoad
		if err := json.Unmarshal(cached, &loads); err == nil {
			return loads, nil
		}
	}

	loads, err := a.adapter.ListByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}

	go func() {
		if data, err := json.Marshal(loads); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, doctorLoadTTL); err != nil {
				log.Warn().Err(err).Str("department", department).Msg("failed to cache department loads")
			}
		}
	}()

	return loads, nil
}
