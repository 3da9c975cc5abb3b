package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"agrigest/cmd/agri/ui"
	"agrigest/internal/api"
	"agrigest/internal/controller"
	"agrigest/internal/forms"
	"agrigest/internal/types"
)

var recoltesCmd = &cobra.Command{
	Use:   "recoltes",
	Short: "Gérer les récoltes",
}

var recoltesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les récoltes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		culture, _ := cmd.Flags().GetString("culture")
		search, _ := cmd.Flags().GetString("search")

		list := controller.NewList(
			a.API.Recoltes().GetAll,
			a.API.Recoltes().Delete,
			func(r types.Recolte) int { return r.ID },
			func(r types.Recolte) []string { return []string{r.CultureNom, r.QualiteRecolte} },
			nil, nil,
		)
		filters := api.Filters{}
		if culture != "" {
			filters["culture"] = culture
		}
		if err := list.Load(context.Background(), filters); err != nil {
			return err
		}

		table := ui.NewSimpleTable("Récoltes", "ID", "Culture", "Date", "Quantité", "Revenus", "Bénéfice", "Qualité")
		for _, r := range list.Search(search) {
			table.AddRow(
				strconv.Itoa(r.ID),
				r.CultureNom,
				r.DateRecolte,
				fmt.Sprintf("%g %s", r.QuantiteRecoltee, r.UniteRecolte),
				forms.FormatMontant(r.RevenusTotaux),
				forms.FormatMontant(r.BeneficeNet),
				r.QualiteRecolte,
			)
		}
		fmt.Println(table.View(cliStyles(a)))
		return nil
	},
}

var recoltesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Afficher une récolte",
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
		r, err := a.API.Recoltes().GetByID(context.Background(), id)
		if err != nil {
			return err
		}

		table := ui.NewSimpleTable("Récolte de "+r.CultureNom, "Champ", "Valeur")
		table.AddRow("Date", r.DateRecolte)
		table.AddRow("Quantité", fmt.Sprintf("%g %s", r.QuantiteRecoltee, r.UniteRecolte))
		table.AddRow("Prix unitaire", forms.FormatMontant(r.PrixVenteUnitaire))
		table.AddRow("Dépenses liées", forms.FormatMontant(r.DepensesLieesRecolte))
		table.AddRow("Revenus totaux", forms.FormatMontant(r.RevenusTotaux))
		table.AddRow("Bénéfice net", forms.FormatMontant(r.BeneficeNet))
		table.AddRow("Qualité", r.QualiteRecolte)
		if r.Notes != "" {
			table.AddRow("Notes", r.Notes)
		}
		fmt.Println(table.View(cliStyles(a)))
		return nil
	},
}

var recoltesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Ajouter une récolte",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		values := forms.RecolteDefaults()
		overlayFlags(cmd, values, forms.RecolteFields(nil))
		if !reportRuleErrors(forms.RecolteRules.Validate(values)) {
			return fmt.Errorf("récolte invalide")
		}

		preview := forms.Preview(values)
		fmt.Printf("Revenus estimés: %s, bénéfice estimé: %s\n",
			forms.FormatMontant(preview.Revenus), forms.FormatMontant(preview.Benefice))

		created, err := a.API.Recoltes().Create(context.Background(), forms.ToRecolte(values))
		if err != nil {
			return reportAPIError(err)
		}
		fmt.Printf("Récolte enregistrée (id %d).\n", created.ID)
		return nil
	},
}

var recoltesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Modifier une récolte",
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
		current, err := a.API.Recoltes().GetByID(context.Background(), id)
		if err != nil {
			return err
		}

		values := forms.RecolteValues(*current)
		overlayFlags(cmd, values, forms.RecolteFields(nil))
		if !reportRuleErrors(forms.RecolteRules.Validate(values)) {
			return fmt.Errorf("récolte invalide")
		}

		if _, err := a.API.Recoltes().Update(context.Background(), id, forms.ToRecolte(values)); err != nil {
			return reportAPIError(err)
		}
		fmt.Println("Récolte mise à jour.")
		return nil
	},
}

var recoltesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Supprimer une récolte",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		return deleteByID(cmd, args[0], "la récolte", a.API.Recoltes().Delete)
	},
}

func init() {
	recoltesListCmd.Flags().String("culture", "", "filtrer par identifiant de culture")
	recoltesListCmd.Flags().String("search", "", "recherche locale (culture, qualité)")
	addFieldFlags(recoltesAddCmd, forms.RecolteFields(nil))
	addFieldFlags(recoltesEditCmd, forms.RecolteFields(nil))
	recoltesDeleteCmd.Flags().Bool("yes", false, "supprimer sans confirmation")

	recoltesCmd.AddCommand(recoltesListCmd)
	recoltesCmd.AddCommand(recoltesShowCmd)
	recoltesCmd.AddCommand(recoltesAddCmd)
	recoltesCmd.AddCommand(recoltesEditCmd)
	recoltesCmd.AddCommand(recoltesDeleteCmd)
}
