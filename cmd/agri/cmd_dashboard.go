package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"agrigest/cmd/agri/ui"
	"agrigest/internal/api"
	"agrigest/internal/forms"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Afficher les statistiques de l'exploitation",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		view, err := a.LoadDashboard(context.Background(), api.Period12Months)
		if err != nil {
			return err
		}
		styles := cliStyles(a)

		table := ui.NewSimpleTable("Tableau de bord", "Indicateur", "Valeur")
		table.AddRow("Cultures", strconv.Itoa(view.Stats.TotalCultures))
		table.AddRow("Récoltes", strconv.Itoa(view.Stats.TotalRecoltes))
		table.AddRow("Revenus totaux", forms.FormatMontant(view.Stats.RevenusTotaux))
		table.AddRow("Dépenses totales", forms.FormatMontant(view.Stats.DepensesTotales))
		table.AddRow("Bénéfice net", forms.FormatMontant(view.Stats.BeneficeNet))
		table.AddRow("Culture la plus rentable", view.Stats.CulturePlusRentable)
		table.AddRow("Rendement moyen", fmt.Sprintf("%.2f /ha", view.Stats.RendementMoyen))
		table.AddRow("Conseils non lus", strconv.Itoa(view.Stats.ConseilsNonLus))
		fmt.Println(table.View(styles))

		if len(view.Conseils) > 0 {
			fmt.Println(styles.Title.Render("Conseils non lus"))
			for _, c := range view.Conseils {
				fmt.Println(styles.Body.Render("  ● " + c.Titre + " (" + c.Priorite + ")"))
			}
		}
		return nil
	},
}

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Afficher les graphiques de revenus et dépenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		period, _ := cmd.Flags().GetString("period")
		if !validPeriod(period) {
			return fmt.Errorf("période invalide %q (valeurs: %s)", period, strings.Join(api.ChartPeriods, ", "))
		}

		charts, err := a.API.Dashboard().Charts(context.Background(), period)
		if err != nil {
			return err
		}
		styles := cliStyles(a)

		revenus := ui.NewBarChart("Revenus par mois ("+period+")", 40, ui.ChartRevenus)
		for _, p := range charts.RevenusParMois {
			revenus.Add(p.Mois, p.Revenus)
		}
		fmt.Println(revenus.View(styles))

		depenses := ui.NewBarChart("Dépenses par mois", 40, ui.ChartDepenses)
		for _, p := range charts.DepensesParMois {
			depenses.Add(p.Mois, p.Depenses)
		}
		fmt.Println(depenses.View(styles))

		categories := ui.NewBarChart("Dépenses par catégorie", 40, ui.ChartNeutral)
		for _, p := range charts.DepensesParCategorie {
			categories.Add(p.Categorie, p.Total)
		}
		fmt.Println(categories.View(styles))

		rendement := ui.NewBarChart("Rendement par culture (/ha)", 40, ui.ChartRevenus)
		for _, p := range charts.CulturesRendement {
			rendement.Add(p.Nom, p.Rendement)
		}
		fmt.Println(rendement.View(styles))
		return nil
	},
}

func validPeriod(period string) bool {
	for _, p := range api.ChartPeriods {
		if p == period {
			return true
		}
	}
	return false
}

func init() {
	chartsCmd.Flags().String("period", api.Period12Months, "période des séries (3months, 6months, 12months, all)")
}
