package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agrigest/internal/export"
	"agrigest/internal/forms"
	"agrigest/internal/history"
)

// exportCmd writes the merged activity history to a CSV or XLSX file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporter l'historique des activités",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		typ, _ := cmd.Flags().GetString("type")
		debut, _ := cmd.Flags().GetString("date-debut")
		fin, _ := cmd.Flags().GetString("date-fin")

		if format != "csv" && format != "xlsx" {
			return fmt.Errorf("format invalide %q (csv ou xlsx)", format)
		}
		switch typ {
		case "", history.TypeCulture, history.TypeRecolte, history.TypeDepense:
		default:
			return fmt.Errorf("type invalide %q (culture, recolte ou depense)", typ)
		}

		data, err := a.LoadHistory(context.Background())
		if err != nil {
			return err
		}
		activities := history.Build(data.Cultures, data.Recoltes, data.Depenses, history.Filter{
			Type:      typ,
			DateDebut: debut,
			DateFin:   fin,
		})

		if output == "" {
			output = export.DefaultFileName(format)
		}
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()

		switch format {
		case "csv":
			err = export.CSV(f, activities)
		case "xlsx":
			err = export.XLSX(f, activities)
		}
		if err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		totals := history.Sum(activities)
		fmt.Printf("%d activités exportées vers %s (solde %s).\n",
			len(activities), output, forms.FormatMontant(totals.Solde))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "csv", "format d'export (csv ou xlsx)")
	exportCmd.Flags().String("output", "", "fichier de sortie (défaut: historique_<date>.<format>)")
	exportCmd.Flags().String("type", "", "limiter à un type d'activité (culture, recolte, depense)")
	exportCmd.Flags().String("date-debut", "", "date minimale (AAAA-MM-JJ)")
	exportCmd.Flags().String("date-fin", "", "date maximale (AAAA-MM-JJ)")
}
