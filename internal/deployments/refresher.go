package deployments

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher polls the hosting provider on a schedule and advances any
// deployment rows still in a non-terminal status.
type Refresher struct {
	service *Service
	cron    *cron.Cron
}

func NewRefresher(service *Service) *Refresher {
	return &Refresher{
		service: service,
		cron:    cron.New(),
	}
}

// Start registers the refresh job under the given cron spec and launches the
// scheduler. Returns an error when the spec does not parse.
func (r *Refresher) Start(spec string) error {
	_, err := r.cron.AddFunc(spec, r.run)
	if err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("[info] operation=deploy_refresher message=scheduled spec=%q", spec)
	return nil
}

func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	updated, err := r.service.RefreshUnfinished(ctx)
	if err != nil {
		log.Printf("[error] operation=deploy_refresher message=%v", err)
		return
	}
	if updated > 0 {
		log.Printf("[info] operation=deploy_refresher message=advanced %d deployments", updated)
	}
}
