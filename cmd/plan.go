package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/forcecharge/config"
	"github.com/kilianp07/forcecharge/connectors/store"
	"github.com/kilianp07/forcecharge/core/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute cheap windows once and print them without creating ranges",
	RunE:  planOnce,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func planOnce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client := store.New(cfg.Store)

	settings, err := client.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("fetch settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	now := time.Now()
	from := now
	if latest, err := client.LatestForceChargeRange(ctx); err != nil {
		return fmt.Errorf("latest range: %w", err)
	} else if latest != nil && latest.EndsAt.After(now) {
		from = latest.EndsAt
	}
	to := from.Add(settings.SearchWindowDuration())

	points, err := client.QueryPrices(ctx, from, to)
	if err != nil {
		return fmt.Errorf("query prices: %w", err)
	}

	groups := plan.Plan(points, settings)
	if len(groups) == 0 {
		fmt.Printf("no cheap windows in %d points between %s and %s\n",
			len(points), from.Format(time.RFC3339), to.Format(time.RFC3339))
		return nil
	}
	for i, g := range groups {
		start, end, ok := g.Span()
		if !ok {
			continue
		}
		fmt.Printf("%d: %s - %s (%d slots, %s)\n", i+1,
			start.Format(time.RFC3339), end.Format(time.RFC3339),
			len(g.Points), g.Duration().Round(time.Minute))
	}
	return nil
}
