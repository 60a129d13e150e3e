package jobs

import (
	"encoding/json"
	"log"
	"time"

	"conputodo.GO/config"
	"conputodo.GO/core/cache"
	"conputodo.GO/cron"
	catalogRepo "conputodo.GO/model/repository/catalog"
	catalogService "conputodo.GO/service/catalog"
)

func init() {
	cron.Register("catalogfeedjob", "0 * * * *", CatalogFeedJob)
	cron.Register("inventoryrepairjob", "0 3 * * *", InventoryRepairJob)
}

// FeedCacheKey aliases the catalog service feed key.
const FeedCacheKey = catalogService.FeedCacheKey

const feedTTL = 2 * time.Hour

// CatalogFeedJob rebuilds the active-product JSON feed the storefront
// list views read, so they never hit the products table directly.
func CatalogFeedJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("catalogfeedjob: db: %v", err)
		return
	}
	repo, err := catalogRepo.NewProductRepository(db)
	if err != nil {
		log.Printf("catalogfeedjob: %v", err)
		return
	}
	products, err := repo.Active(1000, 0)
	if err != nil {
		log.Printf("catalogfeedjob: load products: %v", err)
		return
	}
	payload, err := json.Marshal(products)
	if err != nil {
		log.Printf("catalogfeedjob: marshal: %v", err)
		return
	}

	if config.RedisClient != nil {
		if err := config.RedisClient.Set(config.RedisCtx(), FeedCacheKey, payload, feedTTL).Err(); err == nil {
			log.Printf("catalogfeedjob: %d products -> redis", len(products))
			return
		}
	}
	cache.GetInstance().Set(FeedCacheKey, payload, int64(feedTTL/time.Second), nil)
	log.Printf("catalogfeedjob: %d products -> local cache", len(products))
}

// InventoryRepairJob runs the nightly repair pass over the catalog.
func InventoryRepairJob(args ...string) {
	resume := len(args) > 0 && args[0] == "resume"

	db, err := config.NewDB()
	if err != nil {
		log.Printf("inventoryrepairjob: db: %v", err)
		return
	}
	res, err := catalogService.RepairInventory(db, catalogService.RepairOptions{Resume: resume})
	if err != nil {
		log.Printf("inventoryrepairjob: %v", err)
		return
	}
	for _, w := range res.Warnings {
		log.Printf("inventoryrepairjob: [warn] %s", w)
	}
	log.Printf("inventoryrepairjob: scanned=%d fixed=%d batches=%d in %s",
		res.Scanned, res.Fixed, res.Batches, res.TotalTime.Round(time.Millisecond))
}
