package raci

// Extended single-letter variants mapped to the standard letters.
// Covers RASCI (S), RACI-VS (V), DACI (D), RAPID (P) and common marks.
var raciExtended = map[string]string{
	"R": "R", "A": "A", "C": "C", "I": "I",
	"S": "C",
	"V": "C",
	"D": "R",
	"P": "R",
	"X": "R",
	"O": "R",
	"L": "R",
}

// Full-word values mapped to letters, matched case-insensitively.
var raciFullWords = map[string]string{
	"responsible": "R", "accountable": "A", "consulted": "C", "informed": "I",
	"supportive": "C", "support": "C",
	"driver": "R", "approver": "A", "contributor": "C",
	"perform": "R", "recommend": "C", "input": "C", "decide": "A",
	"lead": "R", "owner": "R", "participant": "C",
	"verify": "C", "sign-off": "A", "sign off": "A",
	"yes": "R", "y": "R",
}

// Responsibility priority used to reduce multi-value cells. Higher wins.
var raciPriority = map[string]int{"R": 4, "A": 3, "C": 2, "I": 1}

var rolePalette = []string{
	"#4ae0b0", "#e0a040", "#6090e0", "#a0b8d0",
	"#e06080", "#80d0d0", "#d080e0", "#c0c060",
	"#50b890", "#d09060", "#7080d0", "#b0c8e0",
	"#d070a0", "#60c0b0", "#c090d0", "#b0b070",
}

var categoryPalette = []string{
	"#8090CC", "#50C890", "#90C850", "#B888CC",
	"#C8A050", "#A080C0", "#C89850", "#6898B8", "#58A8C0",
	"#7888B8", "#60B880", "#A0B850", "#C898C0",
	"#B8A060", "#9078B0", "#D0A858", "#5890A8",
}

var nameKeywords = []string{
	"capability", "name", "activity", "task", "function", "process",
	"item", "deliverable", "work package", "work item", "responsibility",
	"action", "objective", "requirement", "service", "control",
}

var descriptionKeywords = []string{
	"desc", "description", "details", "notes", "comment", "explanation",
	"definition", "summary", "scope",
}

var categoryKeywords = []string{
	"category", "domain", "area", "group", "pillar", "section",
	"phase", "stream", "workstream", "department", "team", "module",
	"tower", "theme", "bucket", "cluster",
}

var deltaKeywords = []string{
	"delta", "uplift", "gap", "Δ", "diff", "difference", "variance",
	"change", "improvement",
}

var statusKeywords = []string{
	"status", "state", "fill", "progress", "completion",
}

var priorityKeywords = []string{
	"priority", "prio", "importance", "urgency", "rank", "weight",
}

var idKeywords = []string{
	"id", "#", "no", "number", "ref", "reference", "code", "key",
}

var targetKeywords = []string{
	"target", "tgt", "future", "goal", "projected", "to-be", "to be",
	"desired", "planned", "expected", "with",
}

var unfilledKeywords = []string{
	"open", "unfilled", "vacant", "★", "tbd", "tbc", "hire", "needed", "new",
}

// Row names that mark aggregate rows rather than real capabilities.
var summaryRowKeywords = []string{
	"average", "avg", "total", "sum", "count", "mean", "median",
	"grand total", "subtotal", "sub-total", "summary",
	"category average", "section total",
}

// Category names that mark footer/legend sections rather than real data.
var summaryCategoryKeywords = []string{
	"average", "avg", "total", "sum", "count", "legend", "key",
	"summary", "appendix", "reference", "notes", "glossary",
	"responsible (r)", "accountable (a)", "consulted (c)", "informed (i)",
	"raci legend", "raci key", "raci count", "count by role",
}

// DefaultCategory is the grouping used before any category signal appears.
const DefaultCategory = "General"
