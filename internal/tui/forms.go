package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
)

// AddFormModel backs the add entry form.
type AddFormModel struct {
	Activity    string
	Custom      string
	Hours       string
	Minutes     string
	Description string
}

// Label is the activity that will be stored.
func (f *AddFormModel) Label() string {
	if f.Activity == constants.ActivityCustom {
		return strings.TrimSpace(f.Custom)
	}
	return f.Activity
}

// EditFormModel backs the edit entry form.
type EditFormModel struct {
	Hours       string
	Minutes     string
	Description string
}

// ConfirmFormModel backs yes/no prompts.
type ConfirmFormModel struct {
	Confirmed bool
}

func validateAmount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// parseAmount reads an optional non-negative number, empty meaning zero.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func NewAddForm(fm *AddFormModel) *huh.Form {
	options := make([]huh.Option[string], 0, len(constants.BuiltinActivities)+1)
	for _, a := range constants.BuiltinActivities {
		options = append(options, huh.NewOption(a, a))
	}
	options = append(options, huh.NewOption("Custom…", constants.ActivityCustom))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Activity").
				Options(options...).
				Value(&fm.Activity),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Custom activity").
				Value(&fm.Custom).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter an activity name")
					}
					return nil
				}),
		).WithHideFunc(func() bool {
			return fm.Activity != constants.ActivityCustom
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Hours").
				Value(&fm.Hours).
				Validate(validateAmount),
			huh.NewInput().
				Title("Minutes").
				Value(&fm.Minutes).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Description("Optional").
				Value(&fm.Description),
		).WithHideFunc(func() bool {
			return !models.ActivityAllowsDescription(fm.Label())
		}),
	).WithTheme(huh.ThemeDracula())
}

func NewEditForm(fm *EditFormModel, activity string, describable bool) *huh.Form {
	fields := []huh.Field{
		huh.NewNote().
			Title("Edit " + activity),
		huh.NewInput().
			Title("Hours").
			Value(&fm.Hours).
			Validate(validateAmount),
		huh.NewInput().
			Title("Minutes").
			Value(&fm.Minutes).
			Validate(validateAmount),
	}
	if describable {
		fields = append(fields, huh.NewInput().
			Title("Description").
			Value(&fm.Description))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

func NewConfirmForm(fm *ConfirmFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
