package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agrigest/cmd/agri/ui"
	"agrigest/internal/app"
	"agrigest/internal/config"
	"agrigest/internal/logging"
	"agrigest/internal/session"
)

var (
	// Global flags
	verbose bool
	apiURL  string

	logger *zap.Logger
)

// rootCmd is the base command. Without arguments it starts the
// interactive interface.
var rootCmd = &cobra.Command{
	Use:   "agri",
	Short: "AgriGest - suivi des cultures, récoltes et dépenses",
	Long: `AgriGest est le client terminal de la plateforme AgriGest.

Il permet à un agriculteur d'enregistrer ses cultures, récoltes et
dépenses, de consulter les statistiques calculées par le serveur, et
d'exporter l'historique de ses activités.

Lancé sans arguments, il démarre l'interface interactive.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cmd.CalledAs() == "agri" && len(args) == 0 {
			// The TUI owns the terminal; logs go to a file.
			logger, err = logging.NewFileLogger(verbose)
		} else {
			logger, err = logging.New(verbose)
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		return ui.Run(a, a.Config.UI.Theme)
	},
}

// buildApp assembles the shared application state.
func buildApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	store, err := session.NewStore()
	if err != nil {
		return nil, err
	}

	return app.New(cfg, logger, store)
}

// requireAuth builds the app and fails fast when no session is held.
func requireAuth() (*app.App, error) {
	a, err := buildApp()
	if err != nil {
		return nil, err
	}
	if !a.Session.Authenticated() {
		return nil, fmt.Errorf("non connecté: lancez 'agri login' d'abord")
	}
	a.SetSessionExpiredHook(func() {
		fmt.Fprintln(os.Stderr, "Session expirée, reconnectez-vous avec 'agri login'.")
	})
	return a, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "journalisation détaillée")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "URL de base de l'API (défaut: configuration)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(culturesCmd)
	rootCmd.AddCommand(recoltesCmd)
	rootCmd.AddCommand(depensesCmd)
	rootCmd.AddCommand(conseilsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erreur: %v\n", err)
		os.Exit(1)
	}
}
