package model

// RowStatus tags the outcome of processing one row.
type RowStatus string

const (
	// RowStatusOK means the model produced a record and it was merged.
	RowStatusOK RowStatus = "ok"
	// RowStatusSkipped means the row was already enriched; no model call.
	RowStatusSkipped RowStatus = "skipped"
	// RowStatusFailed means processing failed; all fields are empty so the
	// row stays eligible on the next run.
	RowStatusFailed RowStatus = "failed"
)

// RowResult is the outcome of enriching a single row. Fields always holds
// exactly the target-field keys declared in the FieldSpec, whatever the
// status, so the merge step never has to branch on success.
type RowResult struct {
	Index  int
	Fields map[string]string
	Status RowStatus
	Reason string
}

// NewRowResult builds a result with every declared target field present and
// empty, tagged as failed until the processor says otherwise.
func NewRowResult(index int, spec FieldSpec) RowResult {
	fields := make(map[string]string, len(spec))
	for _, f := range spec {
		fields[f.Name] = ""
	}
	return RowResult{
		Index:  index,
		Fields: fields,
		Status: RowStatusFailed,
	}
}
