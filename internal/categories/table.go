// Package categories maps commodity codes and item names to ledger
// categories. The static table mirrors the hierarchical commodity taxonomy of
// the source catalog: codes are eight digits split into two-digit segment,
// family, class, and commodity levels, and the deepest matching rule wins.
package categories

import "strconv"

// rule matches a half-open range at one taxonomy level. Zero hi at a level
// means "any value at this level and below". An empty category marks a
// subtree that deliberately falls through to the configured fallback.
type rule struct {
	segLo, segHi int
	famLo, famHi int
	clsLo, clsHi int
	comLo, comHi int
	category     string
}

var codeRules = []rule{
	{segLo: 10, segHi: 11, category: "Lawn & Garden"},
	{segLo: 10, segHi: 11, famLo: 10, famHi: 11, category: "Pets"},
	{segLo: 10, segHi: 11, famLo: 11, famHi: 15, category: "Pet Food & Supplies"},
	{segLo: 10, segHi: 11, famLo: 16, famHi: 17, category: "Arts"}, // fabric
	{segLo: 13, segHi: 14, category: "Home Supplies"},
	{segLo: 14, segHi: 15, famLo: 11, famHi: 12, category: "Office Supplies"},
	{segLo: 14, segHi: 15, famLo: 11, famHi: 12, clsLo: 17, clsHi: 18, category: "Home Supplies"}, // paper products
	{segLo: 15, segHi: 16, category: "Home Supplies"},
	{segLo: 20, segHi: 25, category: "Home Supplies"},
	{segLo: 25, segHi: 26, category: "Service & Parts"},          // auto
	{segLo: 26, segHi: 27, category: "Electronics & Software"},   // batteries/cables
	{segLo: 27, segHi: 28, category: "Home Improvement"},         // tools
	{segLo: 30, segHi: 32, category: "Home Improvement"},         // building materials
	{segLo: 32, segHi: 33, category: "Electronics & Software"},   // computers
	{segLo: 39, segHi: 40, category: "Furnishings"},              // lighting
	{segLo: 40, segHi: 41, category: "Home Improvement"},
	{segLo: 40, segHi: 41, famLo: 16, famHi: 17, clsLo: 15, clsHi: 16, comLo: 4, comHi: 6, category: "Service & Parts"}, // car filters
	{segLo: 41, segHi: 42, category: "Home Supplies"},            // measurement equipment
	{segLo: 42, segHi: 43, category: "Personal Care"},            // medical
	{segLo: 43, segHi: 44, category: "Electronics & Software"},   // networking/gaming
	{segLo: 44, segHi: 45, category: "Office Supplies"},
	{segLo: 45, segHi: 46, category: "Electronics & Software"},   // cameras and AV gear
	{segLo: 46, segHi: 47, category: "Home Improvement"},         // security/smoke detectors
	{segLo: 46, segHi: 47, famLo: 18, famHi: 19, category: "Clothing"}, // gloves
	{segLo: 47, segHi: 49, category: "Home Supplies"},
	{segLo: 49, segHi: 50, category: "Sporting Goods"},
	{segLo: 50, segHi: 51, category: "Groceries"},
	{segLo: 51, segHi: 52, category: "Personal Care"},
	{segLo: 52, segHi: 53, category: "Home Supplies"},
	{segLo: 52, segHi: 53, famLo: 14, famHi: 15, category: ""}, // grab bag, falls to fallback
	{segLo: 52, segHi: 53, famLo: 16, famHi: 17, category: "Electronics & Software"}, // speakers
	{segLo: 53, segHi: 54, category: "Clothing"},
	{segLo: 53, segHi: 54, famLo: 13, famHi: 14, category: "Personal Care"},
	{segLo: 54, segHi: 55, category: "Clothing"},
	{segLo: 55, segHi: 56, famLo: 10, famHi: 11, category: "Books"},
	{segLo: 55, segHi: 56, famLo: 11, famHi: 12, clsLo: 15, clsHi: 16, comLo: 12, comHi: 13, category: "Music"},
	{segLo: 55, segHi: 56, famLo: 11, famHi: 12, clsLo: 15, clsHi: 16, comLo: 14, comHi: 15, category: "Movies & DVDs"},
	{segLo: 55, segHi: 56, famLo: 12, famHi: 13, category: "Office Supplies"},
	{segLo: 56, segHi: 57, category: "Home Supplies"},
	{segLo: 56, segHi: 57, famLo: 10, famHi: 11, clsLo: 16, clsHi: 17, category: "Lawn & Garden"},
	{segLo: 56, segHi: 57, famLo: 10, famHi: 11, clsLo: 17, clsHi: 18, category: "Furnishings"},
	{segLo: 56, segHi: 57, famLo: 10, famHi: 11, clsLo: 18, clsHi: 19, category: "Baby Supplies"},
	{segLo: 60, segHi: 61, famLo: 10, famHi: 11, category: "Electronics & Software"},
	{segLo: 60, segHi: 61, famLo: 12, famHi: 13, category: "Arts"},
	{segLo: 60, segHi: 61, famLo: 13, famHi: 14, category: "Music"},
	{segLo: 60, segHi: 61, famLo: 14, famHi: 15, category: "Toys"},
}

// Lookup resolves a commodity code to a category. The second return is false
// when the code is absent from the table (or deliberately unmapped) and the
// caller should use its configured fallback.
func Lookup(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	numeric, err := strconv.ParseInt(code, 10, 64)
	if err != nil || numeric < 0 {
		return "", false
	}
	seg := int(numeric / 1000000 % 100)
	fam := int(numeric / 10000 % 100)
	cls := int(numeric / 100 % 100)
	com := int(numeric % 100)

	bestDepth := -1
	best := ""
	for _, r := range codeRules {
		depth, ok := r.match(seg, fam, cls, com)
		if ok && depth > bestDepth {
			bestDepth = depth
			best = r.category
		}
	}
	if bestDepth < 0 || best == "" {
		return "", false
	}
	return best, true
}

func (r rule) match(seg, fam, cls, com int) (int, bool) {
	if seg < r.segLo || seg >= r.segHi {
		return 0, false
	}
	depth := 0
	if r.famHi != 0 {
		if fam < r.famLo || fam >= r.famHi {
			return 0, false
		}
		depth = 1
	}
	if r.clsHi != 0 {
		if cls < r.clsLo || cls >= r.clsHi {
			return 0, false
		}
		depth = 2
	}
	if r.comHi != 0 {
		if com < r.comLo || com >= r.comHi {
			return 0, false
		}
		depth = 3
	}
	return depth, true
}
