package raci

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// BuildMeta computes the dataset-level integrity facts: orphaned
// capabilities (no role holds R), roles with zero R assignments, maturity
// presence and averages, and the per-column classification report.
func BuildMeta(roles []*Role, categories []*Category, classes map[int]Classification, headers []string) Meta {
	meta := Meta{
		RoleCount:             len(roles),
		CategoryCount:         len(categories),
		OrphanedCapabilities:  []string{},
		ZeroRRoles:            []string{},
		ColumnClassifications: make(map[int]ColumnReport),
		Layout:                "standard",
	}

	for _, cat := range categories {
		meta.CapabilityCount += len(cat.Items)
		for _, item := range cat.Items {
			if !item.HasResponsible() {
				meta.OrphanedCapabilities = append(meta.OrphanedCapabilities,
					fmt.Sprintf("%s > %s", cat.Name, item.Name))
			}
		}
	}

	for _, role := range roles {
		rCount := 0
		for _, cat := range categories {
			for _, item := range cat.Items {
				if item.Assignments[role.ID] == "R" {
					rCount++
				}
			}
		}
		if rCount == 0 {
			meta.ZeroRRoles = append(meta.ZeroRRoles, role.Label)
		}
	}

	meta.HasMaturity = firstOf(classes, ClassMaturityNow) >= 0
	if meta.HasMaturity {
		var nowVals, tgtVals []float64
		for _, cat := range categories {
			for _, item := range cat.Items {
				if item.Now != nil {
					nowVals = append(nowVals, float64(*item.Now))
				}
				if item.Target != nil {
					tgtVals = append(tgtVals, float64(*item.Target))
				}
			}
		}
		if avg, err := stats.Mean(nowVals); err == nil {
			meta.AvgMaturityNow = round2(avg)
		}
		if avg, err := stats.Mean(tgtVals); err == nil {
			meta.AvgMaturityTarget = round2(avg)
		}
	}

	for ci, t := range classes {
		switch t {
		case ClassEmpty, ClassDelta, ClassUnknown:
			continue
		}
		header := ""
		if ci < len(headers) {
			header = cellStr(headers[ci])
		}
		meta.ColumnClassifications[ci] = ColumnReport{Header: header, Classification: t}
	}

	return meta
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
