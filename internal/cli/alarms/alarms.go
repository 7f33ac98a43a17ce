package alarms

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mana2/mana-cli/internal/alarm"
	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/models"
)

type ListCmd struct {
	Sort bool `help:"Order by next occurrence." default:"true" negatable:""`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.API.Alarms(context.Background())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No tienes alarmas configuradas.")
		return nil
	}

	now := ctx.LocalNow()
	if c.Sort {
		alarm.SortByNext(list, now)
	}

	ctx.Printf("%-6s %-24s %-12s %-18s  %-16s %s\n", "ID", "Medicamento", "Dosis", "Frecuencia", "Próxima", "Estado")
	ctx.Println(strings.Repeat("-", 100))
	for _, a := range list {
		ctx.Println(cli.RenderAlarm(a, now))
	}
	return nil
}

type AddCmd struct {
	Medication string `help:"Medication name." short:"m"`
	Dosage     string `help:"Dose, e.g. 500mg." short:"d"`
	Every      int    `help:"Frequency in hours (1-24)." short:"e"`
	Start      string `help:"First dose time (HH:MM)." short:"s"`
}

// complete reports whether every field came from flags.
func (c *AddCmd) complete() bool {
	return c.Medication != "" && c.Dosage != "" && c.Every != 0 && c.Start != ""
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if !c.complete() {
		fm := cli.AlarmFormModel{MedicationName: c.Medication, Dosage: c.Dosage, StartTime: c.Start}
		if c.Every != 0 {
			fm.FrequencyHours = strconv.Itoa(c.Every)
		}
		if err := cli.NewAlarmForm(&fm).Run(); err != nil {
			return err
		}
		every, err := strconv.Atoi(strings.TrimSpace(fm.FrequencyHours))
		if err != nil {
			return fmt.Errorf("invalid frequency %q: %w", fm.FrequencyHours, err)
		}
		c.Medication, c.Dosage, c.Every, c.Start = fm.MedicationName, fm.Dosage, every, fm.StartTime
	}

	req, err := c.Request()
	if err != nil {
		return err
	}
	created, err := ctx.API.CreateAlarm(context.Background(), req)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Alarma creada: %s (%s) cada %dh\n", created.MedicationName, created.Dosage, created.FrequencyHours)
	d := alarm.ResolveAlarm(created, ctx.LocalNow())
	if d.OK() {
		ctx.Printf("  Próxima toma: %s\n", d.FormattedTime)
	}
	return nil
}

// Request builds the create payload from the command's fields.
func (c *AddCmd) Request() (models.NewAlarm, error) {
	start, err := models.StartTimeForAPI(c.Start)
	if err != nil {
		return models.NewAlarm{}, err
	}
	req := models.NewAlarm{
		MedicationName: strings.TrimSpace(c.Medication),
		Dosage:         strings.TrimSpace(c.Dosage),
		FrequencyHours: c.Every,
		StartTime:      start,
	}
	return req, req.Validate()
}

type DeleteCmd struct {
	ID  int  `arg:"" help:"Alarm ID."`
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

var errCancelled = errors.New("operación cancelada")

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		if err := cli.NewConfirmForm(fmt.Sprintf("¿Eliminar la alarma %d?", c.ID), &confirmed).Run(); err != nil {
			return err
		}
		if !confirmed {
			return errCancelled
		}
	}

	if err := ctx.API.DeleteAlarm(context.Background(), c.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Alarma %d eliminada\n", c.ID)
	return nil
}
