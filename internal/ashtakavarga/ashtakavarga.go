// Package ashtakavarga implements the bindu-table scorer. For each of the
// seven subject bodies, eight contributors (the seven bodies plus the
// lagna) grant benefic points to fixed houses counted from the
// contributor's own natal sign; a sign's bindu is the count of grants it
// receives, 0–8. The tables are static classical data, loaded once and
// never mutated.
package ashtakavarga

import (
	"fmt"

	"github.com/seenimoa/jyotish/pkg/models"
)

// Options tunes the classical rule set.
type Options struct {
	IncludeNodes bool // score Rahu/Ketu as subjects via their proxy tables
}

// contributors lists the eight granting chart points in table order.
var contributors = []models.Body{
	models.Sun, models.Moon, models.Mars, models.Mercury,
	models.Jupiter, models.Venus, models.Saturn, models.Ascendant,
}

// nodeProxy maps each node to the graha whose grant table scores it,
// following the shanivat-Rahu kujavat-Ketu dictum. The nodes have no
// tables of their own and never contribute.
var nodeProxy = map[models.Body]models.Body{
	models.Rahu: models.Saturn,
	models.Ketu: models.Mars,
}

// beneficHouses holds, per subject body and contributor, the 1-based house
// positions (counted from the contributor) that receive a point. The table
// totals are the classical split: Sun 48, Moon 49, Mars 39, Mercury 54,
// Jupiter 56, Venus 52, Saturn 39 — 337 in all.
var beneficHouses = map[models.Body]map[models.Body][]int{
	models.Sun: {
		models.Sun:       {1, 2, 4, 7, 8, 9, 10, 11},
		models.Moon:      {3, 6, 10, 11},
		models.Mars:      {1, 2, 4, 7, 8, 9, 10, 11},
		models.Mercury:   {3, 5, 6, 9, 10, 11, 12},
		models.Jupiter:   {5, 6, 9, 11},
		models.Venus:     {6, 7, 12},
		models.Saturn:    {1, 2, 4, 7, 8, 9, 10, 11},
		models.Ascendant: {3, 4, 6, 10, 11, 12},
	},
	models.Moon: {
		models.Sun:       {3, 6, 7, 8, 10, 11},
		models.Moon:      {1, 3, 6, 7, 10, 11},
		models.Mars:      {2, 3, 5, 6, 9, 10, 11},
		models.Mercury:   {1, 3, 4, 5, 7, 8, 10, 11},
		models.Jupiter:   {1, 4, 7, 8, 10, 11, 12},
		models.Venus:     {3, 4, 5, 7, 9, 10, 11},
		models.Saturn:    {3, 5, 6, 11},
		models.Ascendant: {3, 6, 10, 11},
	},
	models.Mars: {
		models.Sun:       {3, 5, 6, 10, 11},
		models.Moon:      {3, 6, 11},
		models.Mars:      {1, 2, 4, 7, 8, 10, 11},
		models.Mercury:   {3, 5, 6, 11},
		models.Jupiter:   {6, 10, 11, 12},
		models.Venus:     {6, 8, 11, 12},
		models.Saturn:    {1, 4, 7, 8, 9, 10, 11},
		models.Ascendant: {1, 3, 6, 10, 11},
	},
	models.Mercury: {
		models.Sun:       {5, 6, 9, 11, 12},
		models.Moon:      {2, 4, 6, 8, 10, 11},
		models.Mars:      {1, 2, 4, 7, 8, 9, 10, 11},
		models.Mercury:   {1, 3, 5, 6, 9, 10, 11, 12},
		models.Jupiter:   {6, 8, 11, 12},
		models.Venus:     {1, 2, 3, 4, 5, 8, 9, 11},
		models.Saturn:    {1, 2, 4, 7, 8, 9, 10, 11},
		models.Ascendant: {1, 2, 4, 6, 8, 10, 11},
	},
	models.Jupiter: {
		models.Sun:       {1, 2, 3, 4, 7, 8, 9, 10, 11},
		models.Moon:      {2, 5, 7, 9, 11},
		models.Mars:      {1, 2, 4, 7, 8, 10, 11},
		models.Mercury:   {1, 2, 4, 5, 6, 9, 10, 11},
		models.Jupiter:   {1, 2, 3, 4, 7, 8, 10, 11},
		models.Venus:     {2, 5, 6, 9, 10, 11},
		models.Saturn:    {3, 5, 6, 12},
		models.Ascendant: {1, 2, 4, 5, 6, 7, 9, 10, 11},
	},
	models.Venus: {
		models.Sun:       {8, 11, 12},
		models.Moon:      {1, 2, 3, 4, 5, 8, 9, 11, 12},
		models.Mars:      {3, 5, 6, 9, 11, 12},
		models.Mercury:   {3, 5, 6, 9, 11},
		models.Jupiter:   {5, 8, 9, 10, 11},
		models.Venus:     {1, 2, 3, 4, 5, 8, 9, 10, 11},
		models.Saturn:    {3, 4, 5, 8, 9, 10, 11},
		models.Ascendant: {1, 2, 3, 4, 5, 8, 9, 11},
	},
	models.Saturn: {
		models.Sun:       {1, 2, 4, 7, 8, 10, 11},
		models.Moon:      {3, 6, 11},
		models.Mars:      {3, 5, 6, 10, 11, 12},
		models.Mercury:   {6, 8, 9, 10, 11, 12},
		models.Jupiter:   {5, 6, 11, 12},
		models.Venus:     {6, 11, 12},
		models.Saturn:    {3, 5, 6, 11},
		models.Ascendant: {1, 3, 4, 6, 10, 11},
	},
}

// Subjects returns the subject bodies in table order. With IncludeNodes
// set, Rahu and Ketu follow the seven classical subjects.
func Subjects(opts Options) []models.Body {
	subjects := []models.Body{
		models.Sun, models.Moon, models.Mars, models.Mercury,
		models.Jupiter, models.Venus, models.Saturn,
	}
	if opts.IncludeNodes {
		subjects = append(subjects, models.Rahu, models.Ketu)
	}
	return subjects
}

// grants resolves a subject's table, routing the nodes through their
// proxy graha.
func grants(subject models.Body) map[models.Body][]int {
	if proxy, ok := nodeProxy[subject]; ok {
		subject = proxy
	}
	return beneficHouses[subject]
}

// Compute builds the per-subject bindu arrays and the combined
// sarvashtakavarga for a natal chart. Pure and deterministic.
func Compute(chart *models.NatalChart, opts Options) (*models.AshtakavargaSet, error) {
	if chart == nil || len(chart.Positions) == 0 {
		return nil, fmt.Errorf("ashtakavarga: empty natal chart")
	}

	// Resolve each contributor's natal sign up front.
	natal := make(map[models.Body]models.Sign, len(contributors))
	for _, c := range contributors {
		if c == models.Ascendant {
			natal[c] = chart.AscendantSign()
			continue
		}
		pos, ok := chart.Positions[c]
		if !ok {
			return nil, fmt.Errorf("ashtakavarga: chart has no position for contributor %s", c)
		}
		natal[c] = pos.Sign()
	}

	subjects := Subjects(opts)
	set := &models.AshtakavargaSet{Tables: make(map[models.Body][12]int, len(subjects))}
	for _, subject := range subjects {
		var bindus [12]int
		for _, c := range contributors {
			from := natal[c]
			for _, house := range grants(subject)[c] {
				bindus[int(from.Add(house-1))]++
			}
		}
		set.Tables[subject] = bindus
		// Sarva stays the classical seven-table sum; node tables ride
		// alongside without inflating it.
		if subject.IsNode() {
			continue
		}
		for i, b := range bindus {
			set.Sarva[i] += b
		}
	}
	return set, nil
}

// TableTotal returns the total bindus a subject's table grants across all
// contributors; a fixed property of the static data, useful for verifying
// a swapped-in table.
func TableTotal(subject models.Body) int {
	total := 0
	for _, houses := range grants(subject) {
		total += len(houses)
	}
	return total
}
