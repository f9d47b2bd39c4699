package reputation

// Flatten converts wide rows into flat records, dropping zero-valued
// columns. Emission order follows row order then column order. No
// deduplication happens here: duplicate (user, action) pairs across
// different queries are disjoint by construction and are summed at
// persistence time, not merged.
func Flatten(rows []Row) []Record {
	var records []Record
	for _, row := range rows {
		for _, col := range row.Columns {
			if col.Count == 0 {
				continue
			}
			records = append(records, Record{
				UserID:   row.UserID,
				ActionID: col.Action,
				Count:    col.Count,
			})
		}
	}
	return records
}
