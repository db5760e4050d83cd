package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/armhub-seatdesk/internal/config"
	"github.com/iliyamo/armhub-seatdesk/internal/live"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
)

var reapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Delete bookings whose duration has elapsed, once",
	Long: `Run a single expiry sweep regardless of REAPER_ENABLED.

Suitable for a cron job when the in-process reaper is left disabled.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		st, err := openStores(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer st.close()

		var notifier live.Notifier = live.NewHub()
		if rdb := config.NewRedisClient(cfg.Redis); rdb != nil {
			defer func() { _ = rdb.Close() }()
			notifier = live.NewRedisBridge(live.NewHub(), rdb, cfg.Redis.Channel, log)
		}
		r := &service.Reaper{
			Enabled:  true,
			Bookings: st.bookings,
			Location: cfg.Location(),
			Notifier: notifier,
			Events:   publisher(cfg, log),
			Log:      log,
		}
		n, err := r.Sweep(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired booking(s)\n", n)
		return nil
	},
}
