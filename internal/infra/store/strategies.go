package store

// WriteStrategy is one request shape for a write. The store's write contract differs by table
// and deployment, so writes walk an ordered list of shapes until one is accepted.
type WriteStrategy struct {
	Name  string
	Build func(tableID, recordID string, fields map[string]string) (path string, body any)
}

func recordPath(tableID string) string {
	return "/table/" + tableID + "/record"
}

func recordsPath(tableID string) string {
	return "/table/" + tableID + "/records"
}

func recordItemPath(tableID, recordID string) string {
	return recordPath(tableID) + "/" + recordID
}

func wrapped(fields map[string]string) map[string]any {
	return map[string]any{"fields": fields}
}

var (
	CreateSingularRecord = WriteStrategy{
		Name: "singular-endpoint/record",
		Build: func(tableID, _ string, fields map[string]string) (string, any) {
			return recordPath(tableID), map[string]any{"record": wrapped(fields)}
		},
	}
	CreateSingularRecords = WriteStrategy{
		Name: "singular-endpoint/records",
		Build: func(tableID, _ string, fields map[string]string) (string, any) {
			return recordPath(tableID), map[string]any{"records": []any{wrapped(fields)}}
		},
	}
	CreatePluralRecords = WriteStrategy{
		Name: "plural-endpoint/records",
		Build: func(tableID, _ string, fields map[string]string) (string, any) {
			return recordsPath(tableID), map[string]any{"records": []any{wrapped(fields)}}
		},
	}

	UpdateDirect = WriteStrategy{
		Name: "patch/fields",
		Build: func(tableID, recordID string, fields map[string]string) (string, any) {
			return recordItemPath(tableID, recordID), wrapped(fields)
		},
	}
	UpdateWrapped = WriteStrategy{
		Name: "patch/record",
		Build: func(tableID, recordID string, fields map[string]string) (string, any) {
			return recordItemPath(tableID, recordID), map[string]any{"record": wrapped(fields)}
		},
	}
)

var (
	DefaultCreateStrategies = []WriteStrategy{CreateSingularRecord, CreateSingularRecords, CreatePluralRecords}
	DefaultUpdateStrategies = []WriteStrategy{UpdateDirect, UpdateWrapped}
)
