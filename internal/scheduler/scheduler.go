// Package scheduler runs the optional daily stats report: once a day it
// logs the dashboard aggregates for operator visibility and warms the
// listings cache.
package scheduler

import (
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"rajendranagar-portal/internal/config"
	"rajendranagar-portal/internal/listings"
)

// Scheduler handles the scheduled report job
type Scheduler struct {
	cron      *cron.Cron
	service   *listings.Service
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(service *listings.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		config:  cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Report.Enabled {
		log.Println("Scheduler: Daily report is disabled in configuration")
		return nil
	}

	cronSpec := parseDailyTime(s.config.Report.DailyTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Running daily report...")
		if err := s.RunNow(); err != nil {
			log.Printf("Scheduler: Daily report failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily report at %s (cron: %s)", s.config.Report.DailyTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunNow produces the report immediately and warms the listings cache.
func (s *Scheduler) RunNow() error {
	stats, err := s.service.Stats()
	if err != nil {
		return err
	}

	log.Printf("Scheduler: Daily report: %d active ads, %d posted today", stats.TotalAds, stats.TodaysAds)
	for _, area := range stats.TopAreas {
		log.Printf("Scheduler:   %s: %d active", area.Area, area.Count)
	}

	if err := s.service.WarmCache(); err != nil {
		log.Printf("Scheduler: Cache warm failed: %v", err)
	}

	return nil
}

// parseDailyTime converts "HH:MM" to a cron spec, falling back to 08:00 on
// malformed input.
func parseDailyTime(value string) string {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return "0 8 * * *"
	}

	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return "0 8 * * *"
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "0 8 * * *"
	}

	return fmt.Sprintf("%d %d * * *", minute, hour)
}
