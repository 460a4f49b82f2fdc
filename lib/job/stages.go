package jobhandler

import (
	"sort"

	dbmodels "campus-jobs-backend/models/db"
)

// reorderStages moves stageID to position newOrder (1-based) and renumbers the pipeline 1..n.
// changed is false when the stage is unknown or already in place.
func reorderStages(list []dbmodels.JobHiringStage, stageID string, newOrder int) (result []dbmodels.JobHiringStage, changed bool) {
	sorted := make([]dbmodels.JobHiringStage, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	var moved *dbmodels.JobHiringStage
	rest := make([]dbmodels.JobHiringStage, 0, len(sorted))
	for k, rec := range sorted {
		if rec.HiringStageID == stageID || rec.ID == stageID {
			if k+1 == newOrder && rec.OrderIndex == newOrder {
				return nil, false
			}
			r := rec
			moved = &r
			continue
		}
		rest = append(rest, rec)
	}
	if moved == nil {
		return nil, false
	}
	if newOrder > len(rest)+1 {
		newOrder = len(rest) + 1
	}
	if newOrder < 1 {
		newOrder = 1
	}
	result = make([]dbmodels.JobHiringStage, 0, len(sorted))
	result = append(result, rest[:newOrder-1]...)
	result = append(result, *moved)
	result = append(result, rest[newOrder-1:]...)
	for k := range result {
		result[k].OrderIndex = k + 1
	}
	return result, true
}
