package router

import "fmt"

// IDField is the column every queryable worksheet keys its records on.
const IDField = "user_id"

// Row is one worksheet record keyed by header name.
type Row map[string]string

// QueryResult is the response envelope for a UID lookup. It is constructed
// fresh per invocation and never mutated afterwards.
type QueryResult struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
	Sheet   Source `json:"sheet"`
	Data    Row    `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// Lookup scans rows in order and returns the first record whose user_id
// equals uid. Comparison is textual, never numeric: "007" and "7" are
// distinct identifiers. Performs no I/O and cannot fail; a miss is a normal
// negative result with nil Data and no Error.
func Lookup(uid string, source Source, rows []Row) QueryResult {
	for _, row := range rows {
		if row[IDField] == uid {
			return QueryResult{
				Success: true,
				UID:     uid,
				Sheet:   source,
				Data:    row,
				Message: fmt.Sprintf("Successfully found user data for UID: %s in sheet '%s'", uid, source),
			}
		}
	}

	return QueryResult{
		Success: false,
		UID:     uid,
		Sheet:   source,
		Data:    nil,
		Message: fmt.Sprintf("No user found with UID: %s in sheet '%s'", uid, source),
	}
}
