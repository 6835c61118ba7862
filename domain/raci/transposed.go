package raci

// detectTransposed checks for a roles-as-rows layout: few data rows, many
// columns, and a RACI-dense body even though column classification found at
// most one raci column.
func detectTransposed(g *Grid, headerIdx int, classes map[int]Classification) bool {
	if len(columnsOf(classes, ClassRACI)) >= 2 {
		return false
	}
	if headerIdx >= len(g.Rows) {
		return false
	}
	headers := g.Rows[headerIdx]
	dataRows := g.Rows[headerIdx+1:]
	if len(dataRows) < 2 {
		return false
	}

	totalCells, raciCells := 0, 0
	sample := dataRows
	if len(sample) > 20 {
		sample = sample[:20]
	}
	for _, row := range sample {
		for ci := 1; ci < len(row) && ci < len(headers); ci++ {
			if v := cellStr(row[ci]); v != "" {
				totalCells++
				if IsRACI(v) {
					raciCells++
				}
			}
		}
	}
	if totalCells == 0 || float64(raciCells)/float64(totalCells) <= 0.3 {
		return false
	}
	return len(dataRows) < 20 && len(headers) > len(dataRows)*2
}

// parseTransposed reads a transposed matrix: the first column holds role
// labels, header cells hold capability names. Everything lands in a single
// default category.
func parseTransposed(g *Grid, headerIdx int) *Dataset {
	headers := g.Rows[headerIdx]
	dataRows := g.Rows[headerIdx+1:]

	var roles []*Role
	var capOrder []string
	assignments := make(map[string]map[string]string) // capability -> role id -> letter

	for i, row := range dataRows {
		if len(row) == 0 {
			continue
		}
		label := cellStr(row[0])
		if label == "" || isSummaryRow(label) {
			continue
		}

		status := StatusFilled
		if detectUnfilled(label) {
			status = StatusUnfilled
		}
		role := &Role{
			ID:     MakeID(label),
			Label:  label,
			Short:  MakeShortCode(label),
			Color:  rolePalette[i%len(rolePalette)],
			Status: status,
		}
		roles = append(roles, role)

		for ci := 1; ci < len(row) && ci < len(headers); ci++ {
			capName := cellStr(headers[ci])
			if capName == "" {
				continue
			}
			letter := NormalizeRACI(row[ci])
			if letter == "" {
				continue
			}
			if _, ok := assignments[capName]; !ok {
				assignments[capName] = make(map[string]string)
				capOrder = append(capOrder, capName)
			}
			assignments[capName][role.ID] = letter
		}
	}

	var categories []*Category
	if len(capOrder) > 0 {
		cat := &Category{Name: DefaultCategory, Color: categoryPalette[0]}
		for _, capName := range capOrder {
			cat.Items = append(cat.Items, &Capability{
				Name:        capName,
				Assignments: assignments[capName],
			})
		}
		categories = append(categories, cat)
	}

	meta := BuildMeta(roles, categories, map[int]Classification{}, headers)
	meta.Layout = "transposed"
	meta.ColumnClassifications = map[int]ColumnReport{}
	return &Dataset{Roles: roles, Categories: categories, Meta: meta}
}
