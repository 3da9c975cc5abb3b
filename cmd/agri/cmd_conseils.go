package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"agrigest/cmd/agri/ui"
	"agrigest/internal/api"
)

var conseilsCmd = &cobra.Command{
	Use:   "conseils",
	Short: "Consulter les conseils agricoles",
}

var conseilsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lister les conseils",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		unread, _ := cmd.Flags().GetBool("unread")
		priorite, _ := cmd.Flags().GetString("priorite")

		filters := api.Filters{}
		if unread {
			filters["lu"] = "false"
		}
		if priorite != "" {
			filters["priorite"] = priorite
		}
		conseils, err := a.API.Conseils().GetAll(context.Background(), filters)
		if err != nil {
			return err
		}

		table := ui.NewSimpleTable("Conseils", "", "ID", "Titre", "Priorité", "Date")
		for _, c := range conseils {
			flag := " "
			if !c.Lu {
				flag = "●"
			}
			table.AddRow(flag, strconv.Itoa(c.ID), c.Titre, c.Priorite, c.DateCreation)
		}
		fmt.Println(table.View(cliStyles(a)))
		return nil
	},
}

var conseilsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Lire un conseil (le marque comme lu)",
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
		conseil, err := a.API.Conseils().MarkRead(context.Background(), id)
		if err != nil {
			return err
		}

		styles := cliStyles(a)
		fmt.Println(styles.Title.Render(conseil.Titre))
		fmt.Println(styles.Muted.Render("Priorité: " + conseil.Priorite))

		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(76))
		if err != nil {
			fmt.Println(conseil.Contenu)
			return nil
		}
		rendered, err := r.Render(conseil.Contenu)
		if err != nil {
			fmt.Println(conseil.Contenu)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	conseilsListCmd.Flags().Bool("unread", false, "uniquement les conseils non lus")
	conseilsListCmd.Flags().String("priorite", "", "filtrer par priorité (urgente, haute, moyenne, basse)")

	conseilsCmd.AddCommand(conseilsListCmd)
	conseilsCmd.AddCommand(conseilsReadCmd)
}
