package config

// CronJob pairs a schedule with the job function.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds statically configured jobs. Job packages normally
// register themselves through cron.Register in init() instead.
var CronJobs = map[string]CronJob{}
