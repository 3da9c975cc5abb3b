// Package types defines the AgriGest record types exchanged with the
// backend. All records are owned and persisted server-side; the client
// holds transient copies only. JSON field names match the backend API.
package types

import "time"

// DateOnly is the wire format for date fields (YYYY-MM-DD).
const DateOnly = "2006-01-02"

// Harvest quality levels.
const (
	QualityExcellente = "excellente"
	QualityBonne      = "bonne"
	QualityMoyenne    = "moyenne"
	QualityFaible     = "faible"
)

// Expense categories.
const (
	CategorySemences   = "semences"
	CategoryEngrais    = "engrais"
	CategoryPesticides = "pesticides"
	CategoryEquipement = "equipement"
	CategoryCarburant  = "carburant"
	CategoryTransport  = "transport"
	CategoryMainOeuvre = "main_oeuvre"
	CategoryIrrigation = "irrigation"
	CategoryStockage   = "stockage"
	CategoryAutre      = "autre"
)

// Advice priorities.
const (
	PrioriteHaute   = "haute"
	PrioriteMoyenne = "moyenne"
	PrioriteBasse   = "basse"
	PrioriteUrgente = "urgente"
)

// Farming types.
const (
	AgricultureVivriere    = "vivriere"
	AgricultureCommerciale = "commerciale"
	AgricultureMixte       = "mixte"
)

// SeedUnits lists the measurement units offered in crop and harvest forms.
var SeedUnits = []string{"kg", "sacs", "litres", "tonnes", "unites"}

// Qualities lists harvest quality levels in display order.
var Qualities = []string{QualityExcellente, QualityBonne, QualityMoyenne, QualityFaible}

// Categories lists expense categories in display order.
var Categories = []string{
	CategorySemences, CategoryEngrais, CategoryPesticides, CategoryEquipement,
	CategoryCarburant, CategoryTransport, CategoryMainOeuvre, CategoryIrrigation,
	CategoryStockage, CategoryAutre,
}

// User is the farmer profile attached to the session.
type User struct {
	ID               int    `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Telephone        string `json:"telephone,omitempty"`
	TypeAgriculture  string `json:"type_agriculture,omitempty"`
	ZoneGeographique string `json:"zone_geographique,omitempty"`
	DateCreation     string `json:"date_creation,omitempty"`
}

// FullName returns "First Last", falling back to the username.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Culture is a planted crop. The aggregate fields at the bottom are
// computed server-side and never submitted.
type Culture struct {
	ID                int     `json:"id,omitempty"`
	Nom               string  `json:"nom"`
	DateCulture       string  `json:"date_culture"`
	QuantiteSemee     float64 `json:"quantite_semee"`
	UniteSemence      string  `json:"unite_semence"`
	CoutAchatSemences float64 `json:"cout_achat_semences"`
	CoutMainOeuvre    float64 `json:"cout_main_oeuvre"`
	ZoneGeographique  string  `json:"zone_geographique"`
	Superficie        float64 `json:"superficie"`
	Notes             string  `json:"notes,omitempty"`

	CoutTotalInitial    float64 `json:"cout_total_initial,omitempty"`
	NombreRecoltes      int     `json:"nombre_recoltes,omitempty"`
	RevenusTotaux       float64 `json:"revenus_totaux,omitempty"`
	RendementParHectare float64 `json:"rendement_par_hectare,omitempty"`
}

// CultureOption is the lightweight shape returned by /cultures/options/
// for select inputs.
type CultureOption struct {
	ID  int    `json:"id"`
	Nom string `json:"nom"`
}

// Recolte is one harvest of a culture. RevenusTotaux and BeneficeNet
// are server-computed; HarvestPreview gives the client-side estimate
// shown while editing.
type Recolte struct {
	ID                   int     `json:"id,omitempty"`
	Culture              int     `json:"culture"`
	CultureNom           string  `json:"culture_nom,omitempty"`
	CultureZone          string  `json:"culture_zone,omitempty"`
	DateRecolte          string  `json:"date_recolte"`
	QuantiteRecoltee     float64 `json:"quantite_recoltee"`
	UniteRecolte         string  `json:"unite_recolte"`
	PrixVenteUnitaire    float64 `json:"prix_vente_unitaire"`
	DepensesLieesRecolte float64 `json:"depenses_liees_recolte"`
	QualiteRecolte       string  `json:"qualite_recolte"`
	Notes                string  `json:"notes,omitempty"`

	RevenusTotaux float64 `json:"revenus_totaux,omitempty"`
	BeneficeNet   float64 `json:"benefice_net,omitempty"`
}

// HarvestPreview is the client-side revenue estimate for a draft
// harvest. It is display-only; the server recomputes the real figures.
type HarvestPreview struct {
	Revenus  float64
	Benefice float64
}

// PreviewHarvest computes revenus = q*p and benefice = q*p - d.
func PreviewHarvest(quantite, prixUnitaire, depensesLiees float64) HarvestPreview {
	revenus := quantite * prixUnitaire
	return HarvestPreview{Revenus: revenus, Benefice: revenus - depensesLiees}
}

// Depense is a general expense, optionally tied to a culture.
type Depense struct {
	ID          int     `json:"id,omitempty"`
	Culture     int     `json:"culture,omitempty"`
	CultureNom  string  `json:"culture_nom,omitempty"`
	Description string  `json:"description"`
	Categorie   string  `json:"categorie"`
	Montant     float64 `json:"montant"`
	DateDepense string  `json:"date_depense"`
	Fournisseur string  `json:"fournisseur,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// Conseil is an advisory note. Read-only from the client except for
// the mark-read mutation.
type Conseil struct {
	ID           int    `json:"id"`
	Titre        string `json:"titre"`
	Contenu      string `json:"contenu"`
	TypeConseil  string `json:"type_conseil,omitempty"`
	Priorite     string `json:"priorite"`
	Lu           bool   `json:"lu"`
	DateCreation string `json:"date_creation,omitempty"`
}

// DashboardStats is the aggregate projection for the dashboard, all
// server-computed.
type DashboardStats struct {
	TotalCultures       int     `json:"total_cultures"`
	TotalRecoltes       int     `json:"total_recoltes"`
	RevenusTotaux       float64 `json:"revenus_totaux"`
	DepensesTotales     float64 `json:"depenses_totales"`
	BeneficeNet         float64 `json:"benefice_net"`
	CulturePlusRentable string  `json:"culture_plus_rentable"`
	RendementMoyen      float64 `json:"rendement_moyen"`
	ConseilsNonLus      int     `json:"conseils_non_lus"`
}

// MonthPoint is one month of a revenue or expense series.
type MonthPoint struct {
	Mois     string  `json:"mois"`
	Revenus  float64 `json:"revenus,omitempty"`
	Depenses float64 `json:"depenses,omitempty"`
}

// YieldPoint is per-culture yield data.
type YieldPoint struct {
	Nom        string  `json:"nom"`
	Rendement  float64 `json:"rendement"`
	Superficie float64 `json:"superficie"`
}

// CategoryPoint is a per-category expense total.
type CategoryPoint struct {
	Categorie string  `json:"categorie"`
	Total     float64 `json:"total"`
}

// ChartData bundles the chart series returned by /dashboard/graphiques/.
type ChartData struct {
	RevenusParMois       []MonthPoint    `json:"revenus_par_mois"`
	DepensesParMois      []MonthPoint    `json:"depenses_par_mois"`
	CulturesRendement    []YieldPoint    `json:"cultures_rendement"`
	DepensesParCategorie []CategoryPoint `json:"depenses_par_categorie"`
}

// Today returns the current date in wire format (used as the default
// for new expense drafts).
func Today() string {
	return time.Now().Format(DateOnly)
}
