package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/leadcallpro/LeadCallPro/app/models"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/cache"
	"github.com/leadcallpro/LeadCallPro/internal/pkg/database"
)

const (
	CacheKeyUsers           = "statistics:users:total"
	CacheKeyBusinesses      = "statistics:businesses:total"
	CacheKeyActiveCampaigns = "statistics:campaigns:active"
	CacheExpiration         = 30 * time.Minute
)

// StatisticsData holds the platform numbers shown on the landing page
// and the admin dashboard.
type StatisticsData struct {
	TotalUsers      int
	TotalBusinesses int
	ActiveCampaigns int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached numbers are older than the
// refresh interval.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached numbers when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded call to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts all platform numbers and stores them in Redis.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	var totalBusinesses int64
	if err := db.Model(&models.Business{}).Count(&totalBusinesses).Error; err != nil {
		log.Printf("Error counting total businesses: %v", err)
		return err
	}

	var activeCampaigns int64
	if err := db.Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusActive).Count(&activeCampaigns).Error; err != nil {
		log.Printf("Error counting active campaigns: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyBusinesses, strconv.FormatInt(totalBusinesses, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total businesses: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyActiveCampaigns, strconv.FormatInt(activeCampaigns, 10), CacheExpiration); err != nil {
		log.Printf("Error caching active campaigns: %v", err)
		return err
	}

	return nil
}

// GetTotalUsers returns the total number of accounts from cache or database.
func GetTotalUsers() int {
	return cachedOrCount(CacheKeyUsers, func() (int64, error) {
		var n int64
		err := database.GetDB().Model(&models.User{}).Count(&n).Error
		return n, err
	})
}

// GetTotalBusinesses returns the number of business profiles from cache or database.
func GetTotalBusinesses() int {
	return cachedOrCount(CacheKeyBusinesses, func() (int64, error) {
		var n int64
		err := database.GetDB().Model(&models.Business{}).Count(&n).Error
		return n, err
	})
}

// GetActiveCampaigns returns the number of running campaigns from cache or database.
func GetActiveCampaigns() int {
	return cachedOrCount(CacheKeyActiveCampaigns, func() (int64, error) {
		var n int64
		err := database.GetDB().Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusActive).Count(&n).Error
		return n, err
	})
}

func cachedOrCount(key string, count func() (int64, error)) int {
	val, err := cache.Get(key)
	if err == nil {
		n, perr := strconv.ParseInt(val, 10, 64)
		if perr != nil {
			return 0
		}
		return int(n)
	}

	n, err := count()
	if err != nil {
		log.Printf("Error counting for %s: %v", key, err)
		return 0
	}
	if err := cache.Set(key, strconv.FormatInt(n, 10), CacheExpiration); err != nil {
		log.Printf("Error caching %s: %v", key, err)
	}
	return int(n)
}

// GetStatisticsData returns all platform numbers, refreshing the cache first
// when it is stale.
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TotalUsers:      GetTotalUsers(),
		TotalBusinesses: GetTotalBusinesses(),
		ActiveCampaigns: GetActiveCampaigns(),
	}
}
