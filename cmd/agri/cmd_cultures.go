package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"agrigest/cmd/agri/ui"
	"agrigest/internal/api"
	"agrigest/internal/app"
	"agrigest/internal/controller"
	"agrigest/internal/forms"
	"agrigest/internal/types"
)

var culturesCmd = &cobra.Command{
	Use:   "cultures",
	Short: "Gérer les cultures",
}

var culturesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les cultures",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		zone, _ := cmd.Flags().GetString("zone")
		search, _ := cmd.Flags().GetString("search")

		list := controller.NewList(
			a.API.Cultures().GetAll,
			a.API.Cultures().Delete,
			func(c types.Culture) int { return c.ID },
			func(c types.Culture) []string { return []string{c.Nom, c.ZoneGeographique} },
			nil, nil,
		)
		filters := api.Filters{}
		if zone != "" {
			filters["zone"] = zone
		}
		if err := list.Load(context.Background(), filters); err != nil {
			return err
		}

		table := ui.NewSimpleTable("Cultures", "ID", "Nom", "Date", "Quantité", "Coût initial", "Zone", "Superficie")
		for _, c := range list.Search(search) {
			table.AddRow(
				strconv.Itoa(c.ID),
				c.Nom,
				c.DateCulture,
				fmt.Sprintf("%g %s", c.QuantiteSemee, c.UniteSemence),
				forms.FormatMontant(c.CoutTotalInitial),
				c.ZoneGeographique,
				fmt.Sprintf("%g ha", c.Superficie),
			)
		}
		fmt.Println(table.View(cliStyles(a)))
		return nil
	},
}

var culturesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Afficher une culture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("identifiant invalide: %q", args[0])
		}
		c, err := a.API.Cultures().GetByID(context.Background(), id)
		if err != nil {
			return err
		}

		table := ui.NewSimpleTable(c.Nom, "Champ", "Valeur")
		table.AddRow("Date de plantation", c.DateCulture)
		table.AddRow("Quantité semée", fmt.Sprintf("%g %s", c.QuantiteSemee, c.UniteSemence))
		table.AddRow("Coût des semences", forms.FormatMontant(c.CoutAchatSemences))
		table.AddRow("Coût main d'œuvre", forms.FormatMontant(c.CoutMainOeuvre))
		table.AddRow("Coût total initial", forms.FormatMontant(c.CoutTotalInitial))
		table.AddRow("Zone", c.ZoneGeographique)
		table.AddRow("Superficie", fmt.Sprintf("%g ha", c.Superficie))
		table.AddRow("Récoltes", strconv.Itoa(c.NombreRecoltes))
		table.AddRow("Revenus totaux", forms.FormatMontant(c.RevenusTotaux))
		table.AddRow("Rendement", fmt.Sprintf("%.2f /ha", c.RendementParHectare))
		if c.Notes != "" {
			table.AddRow("Notes", c.Notes)
		}
		fmt.Println(table.View(cliStyles(a)))
		return nil
	},
}

var culturesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Ajouter une culture",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		values := forms.CultureDefaults()
		overlayFlags(cmd, values, forms.CultureFields)
		if !reportRuleErrors(forms.CultureRules.Validate(values)) {
			return fmt.Errorf("culture invalide")
		}

		created, err := a.API.Cultures().Create(context.Background(), forms.ToCulture(values))
		if err != nil {
			return reportAPIError(err)
		}
		fmt.Printf("Culture %q créée (id %d).\n", created.Nom, created.ID)
		return nil
	},
}

var culturesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Modifier une culture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("identifiant invalide: %q", args[0])
		}
		current, err := a.API.Cultures().GetByID(context.Background(), id)
		if err != nil {
			return err
		}

		values := forms.CultureValues(*current)
		overlayFlags(cmd, values, forms.CultureFields)
		if !reportRuleErrors(forms.CultureRules.Validate(values)) {
			return fmt.Errorf("culture invalide")
		}

		updated, err := a.API.Cultures().Update(context.Background(), id, forms.ToCulture(values))
		if err != nil {
			return reportAPIError(err)
		}
		fmt.Printf("Culture %q mise à jour.\n", updated.Nom)
		return nil
	},
}

var culturesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Supprimer une culture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		return deleteByID(cmd, args[0], "la culture", a.API.Cultures().Delete)
	},
}

func init() {
	culturesListCmd.Flags().String("zone", "", "filtrer par zone géographique")
	culturesListCmd.Flags().String("search", "", "recherche locale (nom, zone)")
	addFieldFlags(culturesAddCmd, forms.CultureFields)
	addFieldFlags(culturesEditCmd, forms.CultureFields)
	culturesDeleteCmd.Flags().Bool("yes", false, "supprimer sans confirmation")

	culturesCmd.AddCommand(culturesListCmd)
	culturesCmd.AddCommand(culturesShowCmd)
	culturesCmd.AddCommand(culturesAddCmd)
	culturesCmd.AddCommand(culturesEditCmd)
	culturesCmd.AddCommand(culturesDeleteCmd)
}

// cliStyles resolves the render styles from the configured theme.
func cliStyles(a *app.App) ui.Styles {
	return ui.NewStyles(ui.ThemeByName(a.Config.UI.Theme))
}

// addFieldFlags registers one string flag per form field, so the same
// field names and validation rules the interactive forms use also
// drive the direct commands.
func addFieldFlags(cmd *cobra.Command, fields []forms.Field) {
	for _, f := range fields {
		name := strings.ReplaceAll(f.Name, "_", "-")
		cmd.Flags().String(name, "", f.Label)
	}
}

// overlayFlags copies every flag the user actually set onto the draft.
func overlayFlags(cmd *cobra.Command, values controller.Values, fields []forms.Field) {
	for _, f := range fields {
		name := strings.ReplaceAll(f.Name, "_", "-")
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			values[f.Name] = v
		}
	}
}

// reportRuleErrors prints field errors to stderr and reports whether
// the draft was clean.
func reportRuleErrors(errs map[string]string) bool {
	if len(errs) == 0 {
		return true
	}
	for field, msg := range errs {
		fmt.Fprintf(os.Stderr, "  --%s: %s\n", strings.ReplaceAll(field, "_", "-"), msg)
	}
	return false
}

// reportAPIError unwraps a field-keyed rejection into per-flag lines,
// passing other errors through.
func reportAPIError(err error) error {
	if fieldErrs, ok := api.AsFieldErrors(err); ok {
		reportRuleErrors(fieldErrs)
		return fmt.Errorf("requête refusée par le serveur")
	}
	return err
}

// stdinConfirm asks a o/n question on the terminal.
var stdinConfirm = controller.ConfirmerFunc(func(prompt string) bool {
	answer, err := promptLine(prompt + " (o/n) ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "o" || answer == "oui" || answer == "y"
})

// deleteByID parses the id, confirms unless --yes, and calls the
// facade delete.
func deleteByID(cmd *cobra.Command, arg, label string, remove func(context.Context, int) error) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("identifiant invalide: %q", arg)
	}
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !stdinConfirm.Confirm(fmt.Sprintf("Supprimer %s %d ?", label, id)) {
			fmt.Println("Abandonné.")
			return nil
		}
	}
	if err := remove(context.Background(), id); err != nil {
		return err
	}
	fmt.Println("Supprimé.")
	return nil
}
