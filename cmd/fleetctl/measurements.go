package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/ukydev/fleet-maintenance/internal/format"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/resources"
)

func (a *App) measurementsCmd(ctx context.Context, args []string) error {
	return dispatch(ctx, "measurements", args, map[string]middleware.Command{
		"list": a.listMeasurements,
		"add":  a.addMeasurement,
	})
}

func (a *App) listMeasurements(ctx context.Context, args []string) error {
	fs := newFlagSet("measurements list", a.out)
	var opts resources.MeasurementListOptions
	fs.StringVar(&opts.TruckID, "truck", "", "truck id")
	fs.StringVar(&opts.ServiceID, "service", "", "service id")
	fs.StringVar(&opts.StartDate, "from", "", "start date (YYYY-MM-DD)")
	fs.StringVar(&opts.EndDate, "to", "", "end date (YYYY-MM-DD)")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	data, err := a.loader.Measurements(ctx, opts)
	if err != nil {
		return err
	}
	if len(data.Measurements) == 0 {
		fmt.Fprintln(a.out, "No measurements found.")
		return nil
	}

	trucks := make(map[string]models.Truck, len(data.Trucks))
	for _, t := range data.Trucks {
		trucks[t.ID] = t
	}
	services := make(map[string]models.Service, len(data.Services))
	for _, s := range data.Services {
		services[s.ID] = s
	}

	unit := a.cfg.MeasurementUnit
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTRUCK\tSERVICE\tTECHNICIAN\tBEFORE\tAFTER\tDIFFERENCE")
	for _, m := range data.Measurements {
		truck := m.TruckID
		if m.Truck != nil {
			truck = m.Truck.Label()
		} else if t, ok := trucks[m.TruckID]; ok {
			truck = t.Label()
		}
		service := "-"
		if m.Service != nil {
			service = m.Service.OF
		} else if s, ok := services[m.ServiceID]; ok {
			service = s.OF
		} else if m.ServiceID != "" {
			service = m.ServiceID
		}
		diff, _ := format.Measure(m.Difference(), unit)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, format.Date(m.MeasurementDate), truck, service, m.Technician,
			measureValue(m.ValueBefore.Decimal, unit), measureValue(m.ValueAfter.Decimal, unit), diff)
	}
	return w.Flush()
}

func (a *App) addMeasurement(ctx context.Context, args []string) error {
	fs := newFlagSet("measurements add", a.out)
	var in models.MeasurementInput
	fs.StringVar(&in.TruckID, "truck", "", "truck id")
	fs.StringVar(&in.ServiceID, "service", "", "service id (optional)")
	fs.StringVar(&in.MeasurementDate, "date", "", "measurement date (YYYY-MM-DD)")
	fs.StringVar(&in.Technician, "tech", "", "technician")
	fs.Float64Var(&in.ValueBefore, "before", 0, "value before")
	fs.Float64Var(&in.ValueAfter, "after", 0, "value after")
	fs.StringVar(&in.Observations, "obs", "", "observations")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	m, err := a.measurements.Create(ctx, in)
	if err != nil {
		return err
	}
	diff, _ := format.Measure(decimal.NewFromFloat(in.ValueAfter).Sub(decimal.NewFromFloat(in.ValueBefore)), a.cfg.MeasurementUnit)
	fmt.Fprintf(a.out, "Recorded measurement %s (%s)\n", m.ID, diff)
	return nil
}

func measureValue(v decimal.Decimal, unit string) string {
	s := v.StringFixed(2)
	if unit != "" {
		s += " " + unit
	}
	return s
}
