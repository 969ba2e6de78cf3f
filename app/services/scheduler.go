package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler runs the budget rollover once immediately (startup catch-up)
// and then starts the background task scheduler.
func StartScheduler(db *sql.DB) {
	RunMonthlyRollover(db)

	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger on the 1st of the month at 00:05
			if now.Day() == 1 && now.Hour() == 0 && now.Minute() == 5 {
				log.Println("Triggering scheduled tasks [monthly rollover]...")
				RunMonthlyRollover(db)
			}
		}
	}()
}
