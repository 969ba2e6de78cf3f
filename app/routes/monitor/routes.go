package monitor

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drager40/product-manager/app/config"
	"github.com/drager40/product-manager/app/models"
	"github.com/drager40/product-manager/app/routes/auth"
	"github.com/drager40/product-manager/app/services"
)

var startedAt = time.Now()

func SetupMonitorRoutes(app *fiber.App) {
	app.Get("/monitor", auth.AuthMiddleware, adminOrHome, MonitorPageHandler)
	app.Get("/api/monitor", auth.AuthMiddleware, adminOrHome, MonitorAPI)
}

// Non-admins are sent back to the dashboard instead of a denial page.
func adminOrHome(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)
	if user.Role != models.RoleAdmin {
		return c.Redirect("/")
	}
	return c.Next()
}

func MonitorPageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.AppUser)

	stats := collectStats()
	return c.Render("monitor/index", fiber.Map{
		"Title":       "Monitor - Product Manager",
		"CurrentPage": "monitor",
		"user":        user,
		"Stats":       stats,
	})
}

func MonitorAPI(c *fiber.Ctx) error {
	return c.JSON(collectStats())
}

func collectStats() fiber.Map {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	cacheStats := services.DistinctCacheStats()
	var hits, misses int64
	for _, s := range cacheStats {
		hits += s.Hits
		misses += s.Misses
	}

	dbStats := config.GetDB().Stats()

	return fiber.Map{
		"cache": fiber.Map{
			"entries":     cacheStats,
			"totalHits":   hits,
			"totalMisses": misses,
		},
		"db": fiber.Map{
			"openConnections": dbStats.OpenConnections,
			"inUse":           dbStats.InUse,
			"idle":            dbStats.Idle,
			"waitCount":       dbStats.WaitCount,
			"waitDuration":    dbStats.WaitDuration.String(),
			"maxOpen":         dbStats.MaxOpenConnections,
		},
		"runtime": fiber.Map{
			"goVersion":    runtime.Version(),
			"goroutines":   runtime.NumGoroutine(),
			"heapAllocMB":  mem.HeapAlloc / 1024 / 1024,
			"heapSysMB":    mem.HeapSys / 1024 / 1024,
			"numGC":        mem.NumGC,
			"uptimeSecond": int64(time.Since(startedAt).Seconds()),
		},
	}
}
