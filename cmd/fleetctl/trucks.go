package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/ukydev/fleet-maintenance/internal/format"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/report"
)

func (a *App) trucksCmd(ctx context.Context, args []string) error {
	return dispatch(ctx, "trucks", args, map[string]middleware.Command{
		"list":   a.listTrucks,
		"show":   a.showTruck,
		"create": a.createTruck,
		"update": a.updateTruck,
		"delete": a.deleteTruck,
	})
}

func (a *App) listTrucks(ctx context.Context, args []string) error {
	fs := newFlagSet("trucks list", a.out)
	term := fs.String("q", "", "search brand, model or year")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	trucks, err := a.trucks.List(ctx)
	if err != nil {
		return err
	}
	trucks = report.SearchTrucks(trucks, *term)
	if len(trucks) == 0 {
		fmt.Fprintln(a.out, "No trucks found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRUCK\tYEAR\tSERVICES\tPENDING\tTOTAL")
	for _, t := range trucks {
		total := "-"
		if t.TotalValue != nil {
			total = format.Currency(t.TotalValue.Dec())
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", t.ID, t.Label(), t.Year, optionalInt(t.ServicesCount), optionalInt(t.PendingCount), total)
	}
	return w.Flush()
}

func (a *App) showTruck(ctx context.Context, args []string) error {
	if err := expectArgs(args, 1, "trucks show <id>"); err != nil {
		return err
	}
	detail, err := a.loader.TruckDetail(ctx, args[0])
	if err != nil {
		return err
	}

	t := detail.Truck
	fmt.Fprintf(a.out, "%s (%d)\n", t.Label(), t.Year)
	fmt.Fprintf(a.out, "ID: %s\n", t.ID)
	if t.Observations != "" {
		fmt.Fprintf(a.out, "Observations: %s\n", t.Observations)
	}
	totals := report.Summarize(detail.Services)
	fmt.Fprintf(a.out, "Services: %d  Meters: %s  Value: %s\n", totals.Count, totals.Meters.StringFixed(2), format.Currency(totals.Value))

	fmt.Fprintln(a.out)
	if len(detail.Services) == 0 {
		fmt.Fprintln(a.out, "No services for this truck.")
		return nil
	}
	a.printServices(detail.Services, map[string]models.Truck{t.ID: *t})
	return nil
}

func (a *App) createTruck(ctx context.Context, args []string) error {
	fs := newFlagSet("trucks create", a.out)
	var in models.TruckInput
	fs.StringVar(&in.Brand, "brand", "", "brand")
	fs.StringVar(&in.Model, "model", "", "model")
	fs.IntVar(&in.Year, "year", 0, "year")
	fs.StringVar(&in.Observations, "obs", "", "observations")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	truck, err := a.trucks.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created truck %s (%s)\n", truck.ID, truck.Label())
	return nil
}

func (a *App) updateTruck(ctx context.Context, args []string) error {
	fs := newFlagSet("trucks update", a.out)
	brand := fs.String("brand", "", "brand")
	model := fs.String("model", "", "model")
	year := fs.Int("year", 0, "year")
	obs := fs.String("obs", "", "observations")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(positional, 1, "trucks update <id> [-brand] [-model] [-year] [-obs]"); err != nil {
		return err
	}

	set := visited(fs)
	var patch models.TruckPatch
	if set["brand"] {
		patch.Brand = brand
	}
	if set["model"] {
		patch.Model = model
	}
	if set["year"] {
		patch.Year = year
	}
	if set["obs"] {
		patch.Observations = obs
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update")
	}

	truck, err := a.trucks.Update(ctx, positional[0], patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated truck %s (%s)\n", truck.ID, truck.Label())
	return nil
}

func (a *App) deleteTruck(ctx context.Context, args []string) error {
	if err := expectArgs(args, 1, "trucks delete <id>"); err != nil {
		return err
	}
	if err := a.trucks.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted truck %s\n", args[0])
	return nil
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
