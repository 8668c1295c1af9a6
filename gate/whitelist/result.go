package whitelist

// Result means result of one whitelist operation
type Result int

// results of whitelist operations, mutations either succeed or
// report exactly one of the error results
const (
	Success Result = iota
	ErrorEmptyEntry
	ErrorInvalidEntry
	ErrorDuplicatedEntry
	ErrorExistingEntry
	ErrorAbsentEntry
	ErrorWhitelistPersistFail
	ErrorWhitelistFileSync
)

// String implement fmt.Stringer
func (r Result) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case ErrorEmptyEntry:
		return "ERROR_EMPTY_ENTRY"
	case ErrorInvalidEntry:
		return "ERROR_INVALID_ENTRY"
	case ErrorDuplicatedEntry:
		return "ERROR_DUPLICATED_ENTRY"
	case ErrorExistingEntry:
		return "ERROR_EXISTING_ENTRY"
	case ErrorAbsentEntry:
		return "ERROR_ABSENT_ENTRY"
	case ErrorWhitelistPersistFail:
		return "ERROR_WHITELIST_PERSIST_FAIL"
	case ErrorWhitelistFileSync:
		return "ERROR_WHITELIST_FILE_SYNC"
	}
	return "ERROR_UNKNOWN"
}
