package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"agrigest/internal/api"
	"agrigest/internal/controller"
	"agrigest/internal/forms"
)

// loginCmd opens a session.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Se connecter au serveur AgriGest",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		username, err := promptLine("Nom d'utilisateur: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Mot de passe: ")
		if err != nil {
			return err
		}

		user, err := a.Login(context.Background(), username, password)
		if err != nil {
			return fmt.Errorf("connexion refusée: %w", err)
		}
		fmt.Printf("Connecté en tant que %s.\n", user.FullName())
		return nil
	},
}

// registerCmd creates an account, then logs in.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Créer un compte agriculteur",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		draft := controller.Values{}
		prompts := []struct {
			field, label string
			secret       bool
		}{
			{"username", "Nom d'utilisateur", false},
			{"email", "Email", false},
			{"first_name", "Prénom", false},
			{"last_name", "Nom", false},
			{"telephone", "Téléphone (optionnel)", false},
			{"zone_geographique", "Zone géographique", false},
			{"type_agriculture", "Type d'agriculture (vivriere/commerciale/mixte)", false},
			{"password", "Mot de passe", true},
			{"password_confirm", "Confirmer le mot de passe", true},
		}
		for _, p := range prompts {
			var value string
			var err error
			if p.secret {
				value, err = promptPassword(p.label + ": ")
			} else {
				value, err = promptLine(p.label + ": ")
			}
			if err != nil {
				return err
			}
			draft[p.field] = value
		}

		if errs := forms.ValidateRegistration(draft); len(errs) > 0 {
			for field, msg := range errs {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
			}
			return fmt.Errorf("inscription invalide")
		}

		user, err := a.Register(context.Background(), api.Registration{
			Username:         draft["username"],
			Email:            draft["email"],
			FirstName:        draft["first_name"],
			LastName:         draft["last_name"],
			Telephone:        draft["telephone"],
			TypeAgriculture:  draft["type_agriculture"],
			ZoneGeographique: draft["zone_geographique"],
			Password:         draft["password"],
			PasswordConfirm:  draft["password_confirm"],
		})
		if err != nil {
			if fieldErrs, ok := api.AsFieldErrors(err); ok {
				for field, msg := range fieldErrs {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
				}
				return fmt.Errorf("inscription refusée")
			}
			return err
		}
		fmt.Printf("Compte créé, connecté en tant que %s.\n", user.FullName())
		return nil
	},
}

// logoutCmd closes the session. The remote call is best-effort; local
// credentials are always cleared.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Se déconnecter",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		if err := a.Logout(context.Background()); err != nil {
			return err
		}
		fmt.Println("Déconnecté.")
		return nil
	},
}

// whoamiCmd shows the persisted profile snapshot.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Afficher l'utilisateur connecté",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		user, ok := a.Session.User()
		if !ok {
			fmt.Println("Non connecté.")
			return nil
		}
		fmt.Printf("%s (%s)\n", user.FullName(), user.Username)
		if user.ZoneGeographique != "" {
			fmt.Printf("Zone: %s\n", user.ZoneGeographique)
		}
		if user.TypeAgriculture != "" {
			fmt.Printf("Type d'agriculture: %s\n", user.TypeAgriculture)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Consulter ou modifier le profil",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Afficher le profil depuis le serveur",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		user, err := a.API.Auth().Profile(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Nom: %s\nEmail: %s\nTéléphone: %s\nZone: %s\nType: %s\n",
			user.FullName(), user.Email, user.Telephone, user.ZoneGeographique, user.TypeAgriculture)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <champ> <valeur>",
	Short: "Modifier un champ du profil (email, telephone, zone_geographique, type_agriculture, first_name, last_name)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireAuth()
		if err != nil {
			return err
		}
		user, err := a.UpdateProfile(context.Background(), map[string]any{args[0]: args[1]})
		if err != nil {
			if fieldErrs, ok := api.AsFieldErrors(err); ok {
				return fmt.Errorf("champ refusé: %s", fieldErrs.Error())
			}
			return err
		}
		fmt.Printf("Profil mis à jour pour %s.\n", user.FullName())
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
