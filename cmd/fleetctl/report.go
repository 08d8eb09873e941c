package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ukydev/fleet-maintenance/internal/format"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/report"
)

func (a *App) reportCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("report", a.out)
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	truckID := fs.String("truck", "", "truck id")
	status := fs.String("status", "", "service status or ALL")
	details := fs.Bool("details", false, "list the matching services")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	filter, err := report.ParseFilter(*from, *to, *truckID, *status)
	if err != nil {
		return err
	}

	data, err := a.loader.Report(ctx)
	if err != nil {
		return err
	}
	r := report.Build(data.Services, data.Trucks, filter)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRUCK\tSERVICES\tMETERS\tVALUE")
	for _, g := range r.Groups {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", g.Key, g.Count, g.Meters.StringFixed(2), format.Currency(g.Value))
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%s\t%s\n", r.Totals.Count, r.Totals.Meters.StringFixed(2), format.Currency(r.Totals.Value))
	if err := w.Flush(); err != nil {
		return err
	}

	if *details && len(r.Services) > 0 {
		trucks := make(map[string]models.Truck, len(data.Trucks))
		for _, t := range data.Trucks {
			trucks[t.ID] = t
		}
		fmt.Fprintln(a.out)
		a.printServices(r.Services, trucks)
	}
	return nil
}
