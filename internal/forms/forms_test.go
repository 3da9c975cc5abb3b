package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrigest/internal/controller"
	"agrigest/internal/types"
)

func validCultureDraft() controller.Values {
	return controller.Values{
		"nom":                 "Maïs",
		"date_culture":        "2025-03-15",
		"quantite_semee":      "50",
		"unite_semence":       "kg",
		"cout_achat_semences": "25000",
		"cout_main_oeuvre":    "0",
		"zone_geographique":   "Thiès",
		"superficie":          "2.5",
	}
}

func TestCultureRules(t *testing.T) {
	require.Empty(t, CultureRules.Validate(validCultureDraft()))

	t.Run("quantity must be strictly positive", func(t *testing.T) {
		draft := validCultureDraft()
		draft["quantite_semee"] = "0"
		errs := CultureRules.Validate(draft)
		assert.Equal(t, "La quantité semée doit être supérieure à 0", errs["quantite_semee"])
	})

	t.Run("costs accept zero but not absence", func(t *testing.T) {
		draft := validCultureDraft()
		draft["cout_main_oeuvre"] = ""
		errs := CultureRules.Validate(draft)
		assert.Equal(t, "Le coût de la main d'œuvre est requis", errs["cout_main_oeuvre"])
	})

	t.Run("every missing field reports at once", func(t *testing.T) {
		errs := CultureRules.Validate(controller.Values{})
		assert.Len(t, errs, len(CultureRules))
	})
}

func TestCultureDefaults(t *testing.T) {
	assert.Equal(t, "kg", CultureDefaults()["unite_semence"])
}

func TestCultureRoundTrip(t *testing.T) {
	c := types.Culture{
		Nom:               "Riz",
		DateCulture:       "2025-06-01",
		QuantiteSemee:     30,
		UniteSemence:      "sacs",
		CoutAchatSemences: 15000,
		ZoneGeographique:  "Saint-Louis",
		Superficie:        1.2,
		Notes:             "parcelle nord",
	}

	values := CultureValues(c)
	assert.Equal(t, "30", values["quantite_semee"])
	assert.Equal(t, "", values["cout_main_oeuvre"], "zero renders blank")

	back := ToCulture(values)
	assert.Equal(t, c.Nom, back.Nom)
	assert.Equal(t, c.QuantiteSemee, back.QuantiteSemee)
	assert.Equal(t, c.Superficie, back.Superficie)
	assert.Equal(t, c.Notes, back.Notes)
}

func TestRecolteDefaults(t *testing.T) {
	d := RecolteDefaults()
	assert.Equal(t, "kg", d["unite_recolte"])
	assert.Equal(t, types.QualityBonne, d["qualite_recolte"])
	assert.Equal(t, "0", d["depenses_liees_recolte"])
}

func TestRecolteRulesOptionalExpenses(t *testing.T) {
	draft := controller.Values{
		"culture":             "4",
		"date_recolte":        "2025-09-10",
		"quantite_recoltee":   "120",
		"prix_vente_unitaire": "0",
	}
	require.Empty(t, RecolteRules.Validate(draft), "blank linked expenses are allowed")

	draft["depenses_liees_recolte"] = "-5"
	errs := RecolteRules.Validate(draft)
	assert.Equal(t, "Les dépenses ne peuvent pas être négatives", errs["depenses_liees_recolte"])
}

func TestPreview(t *testing.T) {
	p := Preview(controller.Values{
		"quantite_recoltee":      "100",
		"prix_vente_unitaire":    "250",
		"depenses_liees_recolte": "5000",
	})
	assert.Equal(t, 25000.0, p.Revenus)
	assert.Equal(t, 20000.0, p.Benefice)

	// Malformed numbers degrade to zero rather than crashing the
	// live preview while the user types.
	p = Preview(controller.Values{"quantite_recoltee": "1OO"})
	assert.Equal(t, 0.0, p.Revenus)
}

func TestToRecolte(t *testing.T) {
	r := ToRecolte(controller.Values{
		"culture":             "7",
		"date_recolte":        "2025-09-10",
		"quantite_recoltee":   "120",
		"unite_recolte":       "kg",
		"prix_vente_unitaire": "150",
		"qualite_recolte":     types.QualityExcellente,
	})
	assert.Equal(t, 7, r.Culture)
	assert.Equal(t, 120.0, r.QuantiteRecoltee)
	assert.Equal(t, types.QualityExcellente, r.QualiteRecolte)
}

func TestDepenseDefaults(t *testing.T) {
	d := DepenseDefaults()
	assert.Equal(t, types.CategoryAutre, d["categorie"])
	assert.Equal(t, types.Today(), d["date_depense"])
}

func TestDepenseCultureOptional(t *testing.T) {
	values := DepenseValues(types.Depense{Description: "Engrais", Montant: 8000, Categorie: "engrais", DateDepense: "2025-05-02"})
	assert.Equal(t, "", values["culture"], "unlinked expense renders a blank culture")

	d := ToDepense(controller.Values{
		"description":  "Engrais",
		"montant":      "8000",
		"categorie":    "engrais",
		"date_depense": "2025-05-02",
		"culture":      "",
	})
	assert.Equal(t, 0, d.Culture)
}

func TestValidateRegistration(t *testing.T) {
	valid := controller.Values{
		"username":          "moussa",
		"email":             "moussa@example.sn",
		"first_name":        "Moussa",
		"last_name":         "Diop",
		"password":          "motdepasse",
		"password_confirm":  "motdepasse",
		"zone_geographique": "Kaolack",
	}
	require.Empty(t, ValidateRegistration(valid))

	t.Run("email shape", func(t *testing.T) {
		draft := valid.Clone()
		draft["email"] = "pas-un-email"
		errs := ValidateRegistration(draft)
		assert.Equal(t, "L'email n'est pas valide", errs["email"])
	})

	t.Run("password length", func(t *testing.T) {
		draft := valid.Clone()
		draft["password"] = "court"
		draft["password_confirm"] = "court"
		errs := ValidateRegistration(draft)
		assert.Equal(t, "Le mot de passe doit contenir au moins 8 caractères", errs["password"])
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		draft := valid.Clone()
		draft["password_confirm"] = "autrechose"
		errs := ValidateRegistration(draft)
		assert.Equal(t, "Les mots de passe ne correspondent pas", errs["password_confirm"])
	})
}

func TestFormatMontant(t *testing.T) {
	if got := FormatMontant(12500); got != "12500 FCFA" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := FormatMontant(-300.4); got != "-300 FCFA" {
		t.Fatalf("unexpected format: %s", got)
	}
}
