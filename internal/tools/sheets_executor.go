package tools

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ocrandkong/ragflow/internal/router"
)

// executeSheetsUIDQuery resolves the worksheet from the query context,
// fetches its rows, and scans them for the UID.
func (e *Executor) executeSheetsUIDQuery(ctx context.Context, args map[string]interface{}) string {
	uid, _ := args["uid"].(string)
	if uid == "" {
		return encodeResult(errorEnvelope{
			Success: false,
			Error:   "uid is required",
			Message: "The uid parameter must be provided",
		})
	}

	queryContext := argString(args, "query_context", "")
	source := router.Resolve(queryContext)

	e.logger.Info("Sheets UID query",
		zap.String("uid", uid),
		zap.String("sheet", string(source)),
		zap.String("query_context", queryContext),
	)

	rows, err := e.sheets.Rows(ctx, string(source))
	if err != nil {
		e.logger.Error("Sheets query failed",
			zap.String("uid", uid),
			zap.String("sheet", string(source)),
			zap.Error(err),
		)
		return encodeResult(errorEnvelope{
			Success: false,
			UID:     uid,
			Sheet:   string(source),
			Error:   err.Error(),
			Message: fmt.Sprintf("Failed to query user data: %v", err),
		})
	}

	result := router.Lookup(uid, source, rows)
	if result.Success {
		e.logger.Info("Found user data",
			zap.String("uid", uid),
			zap.String("sheet", string(source)),
		)
	} else {
		e.logger.Warn("No user found",
			zap.String("uid", uid),
			zap.String("sheet", string(source)),
		)
	}

	return encodeResult(result)
}
