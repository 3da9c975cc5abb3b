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

var depensesCmd = &cobra.Command{
	Use:   "depenses",
	Short: "Gérer les dépenses",
}

var depensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les dépenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		categorie, _ := cmd.Flags().GetString("categorie")
		search, _ := cmd.Flags().GetString("search")

		list := controller.NewList(
			a.API.Depenses().GetAll,
			a.API.Depenses().Delete,
			func(d types.Depense) int { return d.ID },
			func(d types.Depense) []string { return []string{d.Description, d.Categorie, d.Fournisseur} },
			nil, nil,
		)
		filters := api.Filters{}
		if categorie != "" {
			filters["categorie"] = categorie
		}
		if err := list.Load(context.Background(), filters); err != nil {
			return err
		}

		table := ui.NewSimpleTable("Dépenses", "ID", "Description", "Catégorie", "Montant", "Date", "Culture")
		for _, d := range list.Search(search) {
			table.AddRow(
				strconv.Itoa(d.ID),
				d.Description,
				d.Categorie,
				forms.FormatMontant(d.Montant),
				d.DateDepense,
				d.CultureNom,
			)
		}
		fmt.Println(table.View(cliStyles(a)))
		return nil
	},
}

var depensesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Afficher une dépense",
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
		d, err := a.API.Depenses().GetByID(context.Background(), id)
		if err != nil {
			return err
		}

		table := ui.NewSimpleTable(d.Description, "Champ", "Valeur")
		table.AddRow("Montant", forms.FormatMontant(d.Montant))
		table.AddRow("Catégorie", d.Categorie)
		table.AddRow("Date", d.DateDepense)
		if d.CultureNom != "" {
			table.AddRow("Culture", d.CultureNom)
		}
		if d.Fournisseur != "" {
			table.AddRow("Fournisseur", d.Fournisseur)
		}
		if d.Notes != "" {
			table.AddRow("Notes", d.Notes)
		}
		fmt.Println(table.View(cliStyles(a)))
		return nil
	},
}

var depensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Ajouter une dépense",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		values := forms.DepenseDefaults()
		overlayFlags(cmd, values, forms.DepenseFields(nil))
		if !reportRuleErrors(forms.DepenseRules.Validate(values)) {
			return fmt.Errorf("dépense invalide")
		}

		created, err := a.API.Depenses().Create(context.Background(), forms.ToDepense(values))
		if err != nil {
			return reportAPIError(err)
		}
		fmt.Printf("Dépense enregistrée (id %d).\n", created.ID)
		return nil
	},
}

var depensesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Modifier une dépense",
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
		current, err := a.API.Depenses().GetByID(context.Background(), id)
		if err != nil {
			return err
		}

		values := forms.DepenseValues(*current)
		overlayFlags(cmd, values, forms.DepenseFields(nil))
		if !reportRuleErrors(forms.DepenseRules.Validate(values)) {
			return fmt.Errorf("dépense invalide")
		}

		if _, err := a.API.Depenses().Update(context.Background(), id, forms.ToDepense(values)); err != nil {
			return reportAPIError(err)
		}
		fmt.Println("Dépense mise à jour.")
		return nil
	},
}

var depensesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Supprimer une dépense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		return deleteByID(cmd, args[0], "la dépense", a.API.Depenses().Delete)
	},
}

func init() {
	depensesListCmd.Flags().String("categorie", "", "filtrer par catégorie")
	depensesListCmd.Flags().String("search", "", "recherche locale (description, catégorie, fournisseur)")
	addFieldFlags(depensesAddCmd, forms.DepenseFields(nil))
	addFieldFlags(depensesEditCmd, forms.DepenseFields(nil))
	depensesDeleteCmd.Flags().Bool("yes", false, "supprimer sans confirmation")

	depensesCmd.AddCommand(depensesListCmd)
	depensesCmd.AddCommand(depensesShowCmd)
	depensesCmd.AddCommand(depensesAddCmd)
	depensesCmd.AddCommand(depensesEditCmd)
	depensesCmd.AddCommand(depensesDeleteCmd)
}
