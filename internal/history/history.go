// Package history merges crops, harvests and expenses into one
// chronological activity feed: outflows negative, inflows positive.
// Everything here runs over already-fetched data; no network calls.
package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"agrigest/internal/types"
)

// Activity types.
const (
	TypeCulture = "culture"
	TypeRecolte = "recolte"
	TypeDepense = "depense"
)

// Activity is the uniform record each resource maps to.
type Activity struct {
	ID          string
	Type        string
	Title       string
	Description string
	Date        string
	Montant     float64
	Zone        string
}

// Filter narrows the merged feed. Zero values mean "no constraint".
type Filter struct {
	Type      string
	DateDebut string
	DateFin   string
}

// Build merges the three collections into a date-descending feed.
// Culture and expense amounts are negated (money out); harvest
// revenues stay positive (money in).
func Build(cultures []types.Culture, recoltes []types.Recolte, depenses []types.Depense, f Filter) []Activity {
	activities := make([]Activity, 0, len(cultures)+len(recoltes)+len(depenses))

	if f.Type == "" || f.Type == TypeCulture {
		for _, c := range cultures {
			activities = append(activities, Activity{
				ID:          fmt.Sprintf("culture-%d", c.ID),
				Type:        TypeCulture,
				Title:       "Culture: " + c.Nom,
				Description: fmt.Sprintf("Plantation de %g %s sur %g ha", c.QuantiteSemee, c.UniteSemence, c.Superficie),
				Date:        c.DateCulture,
				Montant:     -c.CoutTotalInitial,
				Zone:        c.ZoneGeographique,
			})
		}
	}

	if f.Type == "" || f.Type == TypeRecolte {
		for _, r := range recoltes {
			activities = append(activities, Activity{
				ID:          fmt.Sprintf("recolte-%d", r.ID),
				Type:        TypeRecolte,
				Title:       "Récolte: " + r.CultureNom,
				Description: fmt.Sprintf("Récolte de %g %s", r.QuantiteRecoltee, r.UniteRecolte),
				Date:        r.DateRecolte,
				Montant:     r.RevenusTotaux,
				Zone:        r.CultureZone,
			})
		}
	}

	if f.Type == "" || f.Type == TypeDepense {
		for _, d := range depenses {
			activities = append(activities, Activity{
				ID:          fmt.Sprintf("depense-%d", d.ID),
				Type:        TypeDepense,
				Title:       "Dépense: " + d.Description,
				Description: "Catégorie: " + d.Categorie,
				Date:        d.DateDepense,
				Montant:     -d.Montant,
				Zone:        "",
			})
		}
	}

	activities = filterByDate(activities, f.DateDebut, f.DateFin)

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date > activities[j].Date
	})
	return activities
}

func filterByDate(activities []Activity, debut, fin string) []Activity {
	if debut == "" && fin == "" {
		return activities
	}
	kept := activities[:0]
	for _, a := range activities {
		d, err := time.Parse(types.DateOnly, a.Date)
		if err != nil {
			continue
		}
		if debut != "" {
			if min, err := time.Parse(types.DateOnly, debut); err == nil && d.Before(min) {
				continue
			}
		}
		if fin != "" {
			if max, err := time.Parse(types.DateOnly, fin); err == nil && d.After(max) {
				continue
			}
		}
		kept = append(kept, a)
	}
	return kept
}

// Search narrows a feed by case-insensitive substring match over title
// and description.
func Search(activities []Activity, term string) []Activity {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return activities
	}
	var out []Activity
	for _, a := range activities {
		if strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Description), term) {
			out = append(out, a)
		}
	}
	return out
}

// Totals are the running sums displayed under the feed.
type Totals struct {
	Revenus  float64
	Depenses float64
	Solde    float64
}

// Sum computes income (positive amounts), outflow (absolute value of
// negative amounts) and net balance.
func Sum(activities []Activity) Totals {
	var t Totals
	for _, a := range activities {
		if a.Montant > 0 {
			t.Revenus += a.Montant
		} else {
			t.Depenses += -a.Montant
		}
		t.Solde += a.Montant
	}
	return t
}
