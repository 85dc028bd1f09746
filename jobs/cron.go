package jobs

import (
	"context"
	"strings"
	"time"

	"script9/services/logger"

	"github.com/robfig/cron/v3"
)

// ScheduleOff disables a job.
const ScheduleOff = "off"

const autoCompleteTimeout = 5 * time.Minute

// BookingCompleter marks confirmed bookings that already ended as completed.
type BookingCompleter interface {
	CompleteEndedBookings(ctx context.Context) (int, error)
}

// InitCronJobs registers the booking auto completion job on c. The caller starts c.
func InitCronJobs(c *cron.Cron, schedule string, completer BookingCompleter, log logger.Logger) error {
	schedule = strings.TrimSpace(schedule)
	if strings.EqualFold(schedule, ScheduleOff) {
		log.Info("booking auto completion disabled")
		return nil
	}

	_, err := c.AddFunc(schedule, func() {
		runAutoComplete(completer, log)
	})
	if err != nil {
		return err
	}
	log.WithFields(logger.Fields{"schedule": schedule}).Info("booking auto completion scheduled")
	return nil
}

func runAutoComplete(completer BookingCompleter, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), autoCompleteTimeout)
	defer cancel()

	start := time.Now()
	n, err := completer.CompleteEndedBookings(ctx)
	if err != nil {
		log.Error("booking auto completion: %v", err)
		return
	}
	log.WithFields(logger.Fields{"completed": n, "took": time.Since(start).String()}).Info("booking auto completion finished")
}
