package errs

// Sentinel errors shared by the sync and revenue layers
var (
	// Configuration errors: fatal at the operation boundary, never retried
	ErrMissingToken    = New("missing api token")
	ErrMissingTableURL = New("missing store table configuration")
	ErrNoUsableToken   = New("no configured store token was accepted")

	// Fetch errors
	ErrFetchAborted = New("authoritative fetch aborted")

	// Sync errors
	ErrSyncInProgress = New("reservation sync already in progress")

	// Revenue errors
	ErrSnapshotUpsertFailed = New("revenue snapshot upsert failed")
	ErrInvalidDateRange     = New("invalid date range")
)
