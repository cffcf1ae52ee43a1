package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Fetch failures, one per branch of the fetcher error contract.
	CodeFetchTimeout      Code = "FETCH_TIMEOUT"
	CodeFetchCancelled    Code = "FETCH_CANCELLED"
	CodeFetchTransport    Code = "FETCH_TRANSPORT_ERROR"
	CodeFetchUnauthorized Code = "FETCH_UNAUTHORIZED"
	CodeFetchEmpty        Code = "FETCH_EMPTY_RESPONSE"

	CodeNormalizeMalformed Code = "NORMALIZE_MALFORMED_INPUT"
	CodeSchemaMapping      Code = "SCHEMA_MAPPING_ERROR"
	CodeArtifactWrite      Code = "ARTIFACT_WRITE_ERROR"

	// Documents disagree. A reported finding, not a harness fault.
	CodeReconciliationFailed Code = "RECONCILIATION_FAILED"
)

func (c Code) String() string {
	return string(c)
}
