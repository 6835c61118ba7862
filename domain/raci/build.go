package raci

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRe       = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	labelWordsRe     = regexp.MustCompile(`[A-Z][a-z]*|[a-z]+`)
	vowelsRe         = regexp.MustCompile(`(?i)[aeiou\s\W]`)
	categoryNumberRe = regexp.MustCompile(`^[\d]+[.):\-]\s*`)
	categoryLetterRe = regexp.MustCompile(`^[a-zA-Z][.)]\s*`)
	categoryBulletRe = regexp.MustCompile(`^[•●○◦▪▸►→–—]\s*`)
)

// MakeID derives a stable snake_case identifier from a label.
func MakeID(label string) string {
	s := nonAlnumRe.ReplaceAllString(label, "")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), "_")
	return strings.ToLower(s)
}

// MakeShortCode derives a display abbreviation from a role label: the label
// itself when already short, else initials, else leading consonants, else
// the first four characters.
func MakeShortCode(label string) string {
	label = strings.TrimSpace(label)
	runes := []rune(label)
	if len(runes) <= 5 {
		return strings.ToUpper(label)
	}

	words := labelWordsRe.FindAllString(label, -1)
	if len(words) >= 2 {
		var initials []rune
		for _, w := range words {
			first := []rune(w)[0]
			if isLetter(first) {
				initials = append(initials, first)
			}
		}
		if len(initials) >= 2 && len(initials) <= 5 {
			return strings.ToUpper(string(initials))
		}
	}

	consonants := []rune(vowelsRe.ReplaceAllString(label, ""))
	if len(consonants) >= 3 {
		if len(consonants) > 4 {
			consonants = consonants[:4]
		}
		return strings.ToUpper(string(consonants))
	}

	if len(runes) > 4 {
		runes = runes[:4]
	}
	return strings.ToUpper(string(runes))
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// detectUnfilled reports whether a role label marks a vacant position.
func detectUnfilled(label string) bool {
	lower := strings.ToLower(label)
	for _, kw := range unfilledKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isSummaryRow(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, kw := range summaryRowKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isSummaryCategory(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, kw := range summaryCategoryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// stripCategoryNumbering removes leading list markers: "1. Strategy",
// "a) Strategy" and bullet glyphs all reduce to "Strategy".
func stripCategoryNumbering(name string) string {
	s := categoryNumberRe.ReplaceAllString(strings.TrimSpace(name), "")
	s = categoryLetterRe.ReplaceAllString(s, "")
	s = categoryBulletRe.ReplaceAllString(s, "")
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return strings.TrimSpace(name)
}

// BuildRoles constructs one Role per raci column. The display label prefers
// a sub-header cell (full name) over the header cell (often an
// abbreviation); the short code keeps the abbreviation when the header is
// already short and uppercase.
func BuildRoles(headers []string, subheaders [][]string, classes map[int]Classification) []*Role {
	raciCols := columnsOf(classes, ClassRACI)

	subLabels := make(map[int]string)
	for _, sub := range subheaders {
		for _, ci := range raciCols {
			if ci < len(sub) {
				if v := cellStr(sub[ci]); len(v) > 1 {
					subLabels[ci] = v
				}
			}
		}
	}

	roles := make([]*Role, 0, len(raciCols))
	for i, ci := range raciCols {
		header := ""
		if ci < len(headers) {
			header = cellStr(headers[ci])
		}
		label := header
		if full, ok := subLabels[ci]; ok {
			label = full
		}

		short := MakeShortCode(header)
		if len(header) <= 6 && header == strings.ToUpper(header) && header != "" {
			short = header
		}

		status := StatusFilled
		if detectUnfilled(header) || detectUnfilled(label) {
			status = StatusUnfilled
		}

		roles = append(roles, &Role{
			ID:       MakeID(label),
			Label:    label,
			Short:    short,
			Color:    rolePalette[i%len(rolePalette)],
			Status:   status,
			colIndex: ci,
		})
	}
	return roles
}

// BuildCategories walks the data rows once, threading a current-category
// accumulator, and returns the surviving categories in first-seen order.
//
// With an explicit category column, non-blank cells in it switch the
// accumulator. Without one, a row that has a name but no RACI value in any
// role column is an inline category banner, not a capability. Categories
// that end up with no items, a summary-style name, or no R assignment
// anywhere are noise (legend or aggregate blocks) and are dropped.
func BuildCategories(dataRows [][]string, classes map[int]Classification, roles []*Role) []*Category {
	nameCol := firstOf(classes, ClassName)
	catCol := firstOf(classes, ClassCategory)
	descCol := firstOf(classes, ClassDescription)
	nowCol := firstOf(classes, ClassMaturityNow)
	tgtCol := firstOf(classes, ClassMaturityTarget)

	var order []string
	byName := make(map[string]*Category)
	current := DefaultCategory

	appendItem := func(cat string, item *Capability) {
		c, ok := byName[cat]
		if !ok {
			c = &Category{Name: cat}
			byName[cat] = c
			order = append(order, cat)
		}
		c.Items = append(c.Items, item)
	}

	for _, row := range dataRows {
		if len(nonBlank(row)) == 0 {
			continue
		}

		name := ""
		if nameCol >= 0 && nameCol < len(row) {
			name = cellStr(row[nameCol])
		}

		allRACIEmpty := true
		for _, role := range roles {
			if role.colIndex < len(row) && cellStr(row[role.colIndex]) != "" {
				allRACIEmpty = false
				break
			}
		}

		// Inline banner detection runs before the summary-row skip so that
		// aggregate blocks become their own category and get filtered with
		// the rest of the noise below.
		if name != "" && allRACIEmpty && catCol < 0 {
			current = stripCategoryNumbering(name)
			continue
		}
		if name == "" || isSummaryRow(name) {
			continue
		}

		if catCol >= 0 && catCol < len(row) {
			if v := cellStr(row[catCol]); v != "" {
				current = stripCategoryNumbering(v)
			}
		}

		item := &Capability{Name: name, Assignments: make(map[string]string)}
		if descCol >= 0 && descCol < len(row) {
			item.Description = cellStr(row[descCol])
		}
		for _, role := range roles {
			if role.colIndex < len(row) {
				if letter := NormalizeRACI(row[role.colIndex]); letter != "" {
					item.Assignments[role.ID] = letter
				}
			}
		}
		if nowCol >= 0 && nowCol < len(row) {
			if v, ok := NormalizeMaturity(row[nowCol]); ok {
				item.Now = &v
			}
		}
		if tgtCol >= 0 && tgtCol < len(row) {
			if v, ok := NormalizeMaturity(row[tgtCol]); ok {
				item.Target = &v
			}
		}

		appendItem(current, item)
	}

	var categories []*Category
	colorIdx := 0
	for _, catName := range order {
		cat := byName[catName]
		if len(cat.Items) == 0 || isSummaryCategory(cat.Name) {
			continue
		}
		hasR := false
		for _, item := range cat.Items {
			if item.HasResponsible() {
				hasR = true
				break
			}
		}
		if !hasR {
			continue
		}
		cat.Color = categoryPalette[colorIdx%len(categoryPalette)]
		colorIdx++
		categories = append(categories, cat)
	}
	return categories
}
