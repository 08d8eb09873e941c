package main

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-maintenance/internal/format"
)

func (a *App) showDashboard(ctx context.Context, args []string) error {
	stats, err := a.dashboard.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Trucks:               %d\n", stats.TotalTrucks)
	fmt.Fprintf(a.out, "Services this month:  %d\n", stats.ServicesThisMonth)
	fmt.Fprintf(a.out, "Value this month:     %s\n", format.Currency(stats.ValueThisMonth.Dec()))
	fmt.Fprintf(a.out, "Pending services:     %d\n", stats.PendingServices)

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Recent services")
	if len(stats.RecentServices) == 0 {
		fmt.Fprintln(a.out, "No services yet.")
		return nil
	}
	a.printServices(stats.RecentServices, nil)
	return nil
}
