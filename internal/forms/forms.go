// Package forms declares the field sets, defaults and validation rules
// for each resource form, plus the draft <-> record conversions. The
// generic controllers consume these; nothing here talks to the network.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"agrigest/internal/controller"
	"agrigest/internal/types"
)

// FieldKind selects the input widget for a field.
type FieldKind int

const (
	Text FieldKind = iota
	Number
	Date
	Select
	TextArea
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Options     []Option
	Placeholder string
}

func unitOptions() []Option {
	opts := make([]Option, 0, len(types.SeedUnits))
	for _, u := range types.SeedUnits {
		opts = append(opts, Option{Value: u, Label: u})
	}
	return opts
}

// CultureFields is the crop form layout.
var CultureFields = []Field{
	{Name: "nom", Label: "Nom de la culture", Kind: Text, Placeholder: "Maïs, Riz, Tomate..."},
	{Name: "date_culture", Label: "Date de plantation", Kind: Date, Placeholder: "AAAA-MM-JJ"},
	{Name: "quantite_semee", Label: "Quantité semée", Kind: Number},
	{Name: "unite_semence", Label: "Unité", Kind: Select, Options: unitOptions()},
	{Name: "cout_achat_semences", Label: "Coût des semences (FCFA)", Kind: Number},
	{Name: "cout_main_oeuvre", Label: "Coût main d'œuvre (FCFA)", Kind: Number},
	{Name: "zone_geographique", Label: "Zone géographique", Kind: Text},
	{Name: "superficie", Label: "Superficie (ha)", Kind: Number},
	{Name: "notes", Label: "Notes", Kind: TextArea},
}

// CultureRules is the crop validation pass.
var CultureRules = controller.RuleSet{
	{Field: "nom", Kind: controller.Required, Message: "Le nom de la culture est requis"},
	{Field: "date_culture", Kind: controller.RequiredDate, Message: "La date de culture est requise"},
	{Field: "quantite_semee", Kind: controller.Positive, Message: "La quantité semée doit être supérieure à 0"},
	{Field: "cout_achat_semences", Kind: controller.NonNegative, Message: "Le coût d'achat des semences est requis"},
	{Field: "cout_main_oeuvre", Kind: controller.NonNegative, Message: "Le coût de la main d'œuvre est requis"},
	{Field: "zone_geographique", Kind: controller.Required, Message: "La zone géographique est requise"},
	{Field: "superficie", Kind: controller.Positive, Message: "La superficie doit être supérieure à 0"},
}

// CultureDefaults are the create-mode initial values.
func CultureDefaults() controller.Values {
	return controller.Values{"unite_semence": "kg"}
}

// CultureValues converts a fetched record into draft values.
func CultureValues(c types.Culture) controller.Values {
	return controller.Values{
		"nom":                 c.Nom,
		"date_culture":        c.DateCulture,
		"quantite_semee":      formatNumber(c.QuantiteSemee),
		"unite_semence":       c.UniteSemence,
		"cout_achat_semences": formatNumber(c.CoutAchatSemences),
		"cout_main_oeuvre":    formatNumber(c.CoutMainOeuvre),
		"zone_geographique":   c.ZoneGeographique,
		"superficie":          formatNumber(c.Superficie),
		"notes":               c.Notes,
	}
}

// ToCulture coerces a validated draft into the submit payload.
func ToCulture(v controller.Values) types.Culture {
	return types.Culture{
		Nom:               strings.TrimSpace(v["nom"]),
		DateCulture:       v["date_culture"],
		QuantiteSemee:     v.Number("quantite_semee"),
		UniteSemence:      v["unite_semence"],
		CoutAchatSemences: v.Number("cout_achat_semences"),
		CoutMainOeuvre:    v.Number("cout_main_oeuvre"),
		ZoneGeographique:  strings.TrimSpace(v["zone_geographique"]),
		Superficie:        v.Number("superficie"),
		Notes:             v["notes"],
	}
}

// RecolteFields is the harvest form layout. Culture options are
// injected at page build time from /cultures/options/.
func RecolteFields(cultures []types.CultureOption) []Field {
	opts := make([]Option, 0, len(cultures))
	for _, c := range cultures {
		opts = append(opts, Option{Value: strconv.Itoa(c.ID), Label: c.Nom})
	}
	return []Field{
		{Name: "culture", Label: "Culture", Kind: Select, Options: opts},
		{Name: "date_recolte", Label: "Date de récolte", Kind: Date, Placeholder: "AAAA-MM-JJ"},
		{Name: "quantite_recoltee", Label: "Quantité récoltée", Kind: Number},
		{Name: "unite_recolte", Label: "Unité", Kind: Select, Options: unitOptions()},
		{Name: "prix_vente_unitaire", Label: "Prix de vente unitaire (FCFA)", Kind: Number},
		{Name: "depenses_liees_recolte", Label: "Dépenses liées (FCFA)", Kind: Number},
		{Name: "qualite_recolte", Label: "Qualité", Kind: Select, Options: qualityOptions()},
		{Name: "notes", Label: "Notes", Kind: TextArea},
	}
}

func qualityOptions() []Option {
	opts := make([]Option, 0, len(types.Qualities))
	for _, q := range types.Qualities {
		opts = append(opts, Option{Value: q, Label: q})
	}
	return opts
}

// RecolteRules is the harvest validation pass.
var RecolteRules = controller.RuleSet{
	{Field: "culture", Kind: controller.Required, Message: "La culture est requise"},
	{Field: "date_recolte", Kind: controller.RequiredDate, Message: "La date de récolte est requise"},
	{Field: "quantite_recoltee", Kind: controller.Positive, Message: "La quantité récoltée doit être supérieure à 0"},
	{Field: "prix_vente_unitaire", Kind: controller.NonNegative, Message: "Le prix de vente unitaire est requis"},
	{Field: "depenses_liees_recolte", Kind: controller.OptionalNonNegative, Message: "Les dépenses ne peuvent pas être négatives"},
}

// RecolteDefaults are the create-mode initial values.
func RecolteDefaults() controller.Values {
	return controller.Values{
		"unite_recolte":          "kg",
		"qualite_recolte":        types.QualityBonne,
		"depenses_liees_recolte": "0",
	}
}

// RecolteValues converts a fetched record into draft values.
func RecolteValues(r types.Recolte) controller.Values {
	return controller.Values{
		"culture":                strconv.Itoa(r.Culture),
		"date_recolte":           r.DateRecolte,
		"quantite_recoltee":      formatNumber(r.QuantiteRecoltee),
		"unite_recolte":          r.UniteRecolte,
		"prix_vente_unitaire":    formatNumber(r.PrixVenteUnitaire),
		"depenses_liees_recolte": formatNumber(r.DepensesLieesRecolte),
		"qualite_recolte":        r.QualiteRecolte,
		"notes":                  r.Notes,
	}
}

// ToRecolte coerces a validated draft into the submit payload.
func ToRecolte(v controller.Values) types.Recolte {
	cultureID, _ := strconv.Atoi(strings.TrimSpace(v["culture"]))
	return types.Recolte{
		Culture:              cultureID,
		DateRecolte:          v["date_recolte"],
		QuantiteRecoltee:     v.Number("quantite_recoltee"),
		UniteRecolte:         v["unite_recolte"],
		PrixVenteUnitaire:    v.Number("prix_vente_unitaire"),
		DepensesLieesRecolte: v.Number("depenses_liees_recolte"),
		QualiteRecolte:       v["qualite_recolte"],
		Notes:                v["notes"],
	}
}

// Preview computes the live revenue estimate for a harvest draft.
func Preview(v controller.Values) types.HarvestPreview {
	return types.PreviewHarvest(
		v.Number("quantite_recoltee"),
		v.Number("prix_vente_unitaire"),
		v.Number("depenses_liees_recolte"),
	)
}

// DepenseFields is the expense form layout.
func DepenseFields(cultures []types.CultureOption) []Field {
	cultureOpts := []Option{{Value: "", Label: "Aucune"}}
	for _, c := range cultures {
		cultureOpts = append(cultureOpts, Option{Value: strconv.Itoa(c.ID), Label: c.Nom})
	}
	categoryOpts := make([]Option, 0, len(types.Categories))
	for _, c := range types.Categories {
		categoryOpts = append(categoryOpts, Option{Value: c, Label: c})
	}
	return []Field{
		{Name: "description", Label: "Description", Kind: Text},
		{Name: "montant", Label: "Montant (FCFA)", Kind: Number},
		{Name: "date_depense", Label: "Date", Kind: Date, Placeholder: "AAAA-MM-JJ"},
		{Name: "categorie", Label: "Catégorie", Kind: Select, Options: categoryOpts},
		{Name: "culture", Label: "Culture associée", Kind: Select, Options: cultureOpts},
		{Name: "fournisseur", Label: "Fournisseur", Kind: Text},
		{Name: "notes", Label: "Notes", Kind: TextArea},
	}
}

// DepenseRules is the expense validation pass.
var DepenseRules = controller.RuleSet{
	{Field: "description", Kind: controller.Required, Message: "La description est requise"},
	{Field: "montant", Kind: controller.Positive, Message: "Le montant doit être supérieur à 0"},
	{Field: "date_depense", Kind: controller.RequiredDate, Message: "La date de dépense est requise"},
	{Field: "categorie", Kind: controller.Required, Message: "La catégorie est requise"},
}

// DepenseDefaults are the create-mode initial values; the date starts
// at today.
func DepenseDefaults() controller.Values {
	return controller.Values{
		"categorie":    types.CategoryAutre,
		"date_depense": types.Today(),
	}
}

// DepenseValues converts a fetched record into draft values.
func DepenseValues(d types.Depense) controller.Values {
	culture := ""
	if d.Culture != 0 {
		culture = strconv.Itoa(d.Culture)
	}
	return controller.Values{
		"description":  d.Description,
		"montant":      formatNumber(d.Montant),
		"date_depense": d.DateDepense,
		"categorie":    d.Categorie,
		"culture":      culture,
		"fournisseur":  d.Fournisseur,
		"notes":        d.Notes,
	}
}

// ToDepense coerces a validated draft into the submit payload.
func ToDepense(v controller.Values) types.Depense {
	cultureID, _ := strconv.Atoi(strings.TrimSpace(v["culture"]))
	return types.Depense{
		Culture:     cultureID,
		Description: strings.TrimSpace(v["description"]),
		Categorie:   v["categorie"],
		Montant:     v.Number("montant"),
		DateDepense: v["date_depense"],
		Fournisseur: strings.TrimSpace(v["fournisseur"]),
		Notes:       v["notes"],
	}
}

// ValidateRegistration checks the signup draft. Registration has two
// cross-field checks (email shape, password confirmation) the generic
// rule kinds do not cover.
func ValidateRegistration(v controller.Values) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(v["username"]) == "" {
		errs["username"] = "Le nom d'utilisateur est requis"
	}
	email := strings.TrimSpace(v["email"])
	switch {
	case email == "":
		errs["email"] = "L'email est requis"
	case !strings.Contains(email, "@") || !strings.Contains(email, "."):
		errs["email"] = "L'email n'est pas valide"
	}
	if strings.TrimSpace(v["first_name"]) == "" {
		errs["first_name"] = "Le prénom est requis"
	}
	if strings.TrimSpace(v["last_name"]) == "" {
		errs["last_name"] = "Le nom est requis"
	}
	switch {
	case v["password"] == "":
		errs["password"] = "Le mot de passe est requis"
	case len(v["password"]) < 8:
		errs["password"] = "Le mot de passe doit contenir au moins 8 caractères"
	case v["password"] != v["password_confirm"]:
		errs["password_confirm"] = "Les mots de passe ne correspondent pas"
	}
	if strings.TrimSpace(v["zone_geographique"]) == "" {
		errs["zone_geographique"] = "La zone géographique est requise"
	}
	return errs
}

// formatNumber renders a float the way the forms expect it back:
// no exponent, no trailing zeros, blank for zero.
func formatNumber(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatMontant renders an amount for display, e.g. "12500 FCFA".
func FormatMontant(f float64) string {
	return fmt.Sprintf("%.0f FCFA", f)
}
