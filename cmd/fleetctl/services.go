package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ukydev/fleet-maintenance/internal/format"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/report"
	"github.com/ukydev/fleet-maintenance/internal/resources"
)

func (a *App) servicesCmd(ctx context.Context, args []string) error {
	return dispatch(ctx, "services", args, map[string]middleware.Command{
		"list":   a.listServices,
		"show":   a.showService,
		"create": a.createService,
		"update": a.updateService,
		"delete": a.deleteService,
	})
}

func (a *App) listServices(ctx context.Context, args []string) error {
	fs := newFlagSet("services list", a.out)
	truckID := fs.String("truck", "", "only services of this truck")
	term := fs.String("q", "", "search equipment, OF or truck")
	statusFlag := fs.String("status", "", "PENDENTE, EM_ANDAMENTO, CONCLUIDO, CANCELADO or ALL")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	status, err := models.ParseServiceStatus(*statusFlag)
	if err != nil {
		return err
	}

	services, err := a.services.List(ctx, resources.ServiceListOptions{TruckID: *truckID})
	if err != nil {
		return err
	}
	services = report.SearchServices(services, *term, status)
	if len(services) == 0 {
		fmt.Fprintln(a.out, "No services found.")
		return nil
	}
	a.printServices(services, nil)
	return nil
}

func (a *App) showService(ctx context.Context, args []string) error {
	if err := expectArgs(args, 1, "services show <id>"); err != nil {
		return err
	}
	detail, err := a.loader.ServiceDetail(ctx, args[0])
	if err != nil {
		return err
	}

	s := detail.Service
	fmt.Fprintf(a.out, "%s  OF %s  [%s]\n", s.Equipment, s.OF, s.Status.Label())
	fmt.Fprintf(a.out, "ID:      %s\n", s.ID)
	fmt.Fprintf(a.out, "Date:    %s\n", format.Date(s.ServiceDate))
	if detail.Truck != nil {
		fmt.Fprintf(a.out, "Truck:   %s (%d)\n", detail.Truck.Label(), detail.Truck.Year)
	}
	fmt.Fprintf(a.out, "Meters:  %s\n", s.Meter.StringFixed(2))
	fmt.Fprintf(a.out, "Value:   %s\n", format.Currency(s.Value.Dec()))
	if s.Chassis != nil && *s.Chassis != "" {
		fmt.Fprintf(a.out, "Chassis: %s\n", *s.Chassis)
	}
	if s.Observations != nil && *s.Observations != "" {
		fmt.Fprintf(a.out, "Notes:   %s\n", *s.Observations)
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Materials")
	if len(detail.Materials) == 0 {
		fmt.Fprintln(a.out, "No materials recorded.")
		return nil
	}
	return a.printMaterials(detail.Materials)
}

func (a *App) createService(ctx context.Context, args []string) error {
	fs := newFlagSet("services create", a.out)
	var in models.ServiceInput
	var status string
	fs.StringVar(&in.TruckID, "truck", "", "truck id")
	fs.StringVar(&in.Equipment, "equipment", "", "equipment")
	fs.StringVar(&in.ServiceDate, "date", "", "service date (YYYY-MM-DD)")
	fs.StringVar(&in.OF, "of", "", "work order number")
	fs.Float64Var(&in.Meter, "meter", 0, "meters")
	fs.Float64Var(&in.Value, "value", 0, "value")
	fs.StringVar(&status, "status", string(models.StatusPending), "status")
	fs.StringVar(&in.Observations, "obs", "", "observations")
	fs.StringVar(&in.Chassis, "chassis", "", "chassis")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	in.Status = models.ServiceStatus(status)

	svc, err := a.services.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created service %s\n", svc.ID)
	return nil
}

func (a *App) updateService(ctx context.Context, args []string) error {
	fs := newFlagSet("services update", a.out)
	truckID := fs.String("truck", "", "truck id")
	equipment := fs.String("equipment", "", "equipment")
	date := fs.String("date", "", "service date (YYYY-MM-DD)")
	of := fs.String("of", "", "work order number")
	meter := fs.Float64("meter", 0, "meters")
	value := fs.Float64("value", 0, "value")
	status := fs.String("status", "", "status")
	obs := fs.String("obs", "", "observations")
	chassis := fs.String("chassis", "", "chassis")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(positional, 1, "services update <id> [flags]"); err != nil {
		return err
	}

	set := visited(fs)
	if len(set) == 0 {
		return fmt.Errorf("nothing to update")
	}
	var patch models.ServicePatch
	if set["truck"] {
		patch.TruckID = truckID
	}
	if set["equipment"] {
		patch.Equipment = equipment
	}
	if set["date"] {
		patch.ServiceDate = date
	}
	if set["of"] {
		patch.OF = of
	}
	if set["meter"] {
		patch.Meter = meter
	}
	if set["value"] {
		patch.Value = value
	}
	if set["status"] {
		s := models.ServiceStatus(*status)
		patch.Status = &s
	}
	if set["obs"] {
		patch.Observations = obs
	}
	if set["chassis"] {
		patch.Chassis = chassis
	}

	svc, err := a.services.Update(ctx, positional[0], patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated service %s\n", svc.ID)
	return nil
}

func (a *App) deleteService(ctx context.Context, args []string) error {
	if err := expectArgs(args, 1, "services delete <id>"); err != nil {
		return err
	}
	if err := a.services.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted service %s\n", args[0])
	return nil
}

// printServices renders a service table. Truck labels come from the service
// embed, then from trucks, then fall back to the raw id.
func (a *App) printServices(services []models.Service, trucks map[string]models.Truck) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTRUCK\tEQUIPMENT\tOF\tSTATUS\tMETERS\tVALUE")
	for _, s := range services {
		truck := s.TruckID
		if s.Truck != nil {
			truck = s.Truck.Label()
		} else if t, ok := trucks[s.TruckID]; ok {
			truck = t.Label()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, format.Date(s.ServiceDate), truck, s.Equipment, s.OF, s.Status.Label(),
			s.Meter.StringFixed(2), format.Currency(s.Value.Dec()))
	}
	if err := w.Flush(); err != nil {
		a.logger.WithError(err).Error("Failed to write service table")
	}
}
