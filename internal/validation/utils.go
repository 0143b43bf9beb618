package validation

import "regexp"

// uuidRegex matches standard UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format.
//
// Note: this validates format only, not version/variant semantics.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
