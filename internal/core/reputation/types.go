package reputation

// CountColumn is one action column of a wide row.
type CountColumn struct {
	Action ActionID
	Count  int64
}

// Row is the wide shape an action query produces: one user plus one count
// column per action the query covers. Column order is fixed by the query and
// preserved through flattening. Rows are ephemeral; they exist only between
// query execution and flattening.
type Row struct {
	UserID  int64
	Columns []CountColumn
}

// Record is the flat (user, action, count) triple exchanged between
// aggregation and persistence. Count is always strictly positive; a user who
// performed an action zero times produces no record at all.
type Record struct {
	UserID   int64    `json:"user_id"`
	ActionID ActionID `json:"action_id"`
	Count    int64    `json:"count"`
}
