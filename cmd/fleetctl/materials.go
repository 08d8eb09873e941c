package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

func (a *App) materialsCmd(ctx context.Context, args []string) error {
	return dispatch(ctx, "materials", args, map[string]middleware.Command{
		"list":   a.listMaterials,
		"add":    a.addMaterial,
		"update": a.updateMaterial,
		"delete": a.deleteMaterial,
	})
}

func (a *App) listMaterials(ctx context.Context, args []string) error {
	if err := expectArgs(args, 1, "materials list <service-id>"); err != nil {
		return err
	}
	materials, err := a.services.ListMaterials(ctx, args[0])
	if err != nil {
		return err
	}
	if len(materials) == 0 {
		fmt.Fprintln(a.out, "No materials recorded.")
		return nil
	}
	return a.printMaterials(materials)
}

func (a *App) addMaterial(ctx context.Context, args []string) error {
	fs := newFlagSet("materials add", a.out)
	var in models.MaterialInput
	fs.StringVar(&in.Name, "name", "", "material name")
	fs.Float64Var(&in.Quantity, "qty", 0, "quantity")
	fs.StringVar(&in.Unit, "unit", "un", "unit: un, kg, m, L, cx, pc or any other")
	fs.StringVar(&in.Observations, "obs", "", "observations")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(positional, 1, "materials add <service-id> -name <name> -qty <n> [-unit] [-obs]"); err != nil {
		return err
	}
	if !models.IsCommonUnit(in.Unit) {
		a.logger.WithField("unit", in.Unit).Debug("Using custom material unit")
	}

	m, err := a.services.AddMaterial(ctx, positional[0], in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added material %s to service %s\n", m.ID, positional[0])
	return nil
}

func (a *App) updateMaterial(ctx context.Context, args []string) error {
	fs := newFlagSet("materials update", a.out)
	name := fs.String("name", "", "material name")
	qty := fs.Float64("qty", 0, "quantity")
	unit := fs.String("unit", "", "unit")
	obs := fs.String("obs", "", "observations")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(positional, 2, "materials update <service-id> <material-id> [flags]"); err != nil {
		return err
	}

	set := visited(fs)
	if len(set) == 0 {
		return fmt.Errorf("nothing to update")
	}
	var patch models.MaterialPatch
	if set["name"] {
		patch.Name = name
	}
	if set["qty"] {
		patch.Quantity = qty
	}
	if set["unit"] {
		patch.Unit = unit
	}
	if set["obs"] {
		patch.Observations = obs
	}

	m, err := a.services.UpdateMaterial(ctx, positional[0], positional[1], patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated material %s\n", m.ID)
	return nil
}

func (a *App) deleteMaterial(ctx context.Context, args []string) error {
	if err := expectArgs(args, 2, "materials delete <service-id> <material-id>"); err != nil {
		return err
	}
	if err := a.services.DeleteMaterial(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted material %s\n", args[1])
	return nil
}

func (a *App) printMaterials(materials []models.Material) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tUNIT\tOBSERVATIONS")
	for _, m := range materials {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Quantity.String(), m.Unit, m.Observations)
	}
	return w.Flush()
}
