package catalog

// FeedCacheKey is where the published-product feed JSON lives, in redis
// when configured, in the in-process cache otherwise. Written by the
// feed cron, read by the feed endpoint, invalidated on catalog writes.
const FeedCacheKey = "conputodo:catalog:feed"
