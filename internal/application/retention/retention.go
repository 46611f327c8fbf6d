package retention

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
)

// RunPurgeDeletedProjects finds projects soft-deleted before (now - purgeAfterDays), drops
// every table they own and removes the project row. Call periodically (e.g. daily cron).
// purgeAfterDays 0 = no-op.
func RunPurgeDeletedProjects(ctx context.Context, projects ports.ProjectRepository, tables ports.TableRepository, tasks ports.TaskEnqueuer, purgeAfterDays int) (purged int, err error) {
	return runPurge(ctx, projects, tables, tasks, purgeAfterDays, time.Now())
}

func runPurge(ctx context.Context, projects ports.ProjectRepository, tables ports.TableRepository, tasks ports.TaskEnqueuer, purgeAfterDays int, now time.Time) (purged int, err error) {
	if purgeAfterDays <= 0 {
		return 0, nil
	}
	threshold := now.Add(-time.Duration(purgeAfterDays) * 24 * time.Hour)
	list, err := projects.ListDeletedBefore(ctx, threshold)
	if err != nil {
		return 0, err
	}
	for _, p := range list {
		owned, err := tables.List(ctx, p.ID)
		if err != nil {
			return purged, err
		}
		for _, t := range owned {
			if err := tables.Drop(ctx, p.ID, t.Name); err != nil {
				return purged, err // stop on first error
			}
		}
		if err := projects.Delete(ctx, p.ID); err != nil {
			return purged, err
		}
		if tasks != nil {
			_ = tasks.EnqueueWebhook(ctx, ports.AuditEvent{Event: ports.EventProjectPurged, ProjectID: p.ID.String(), Success: true})
		}
		purged++
	}
	return purged, nil
}
