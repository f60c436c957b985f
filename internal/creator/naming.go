package creator

import (
	"strings"

	pkgstrings "n8nmcp/pkg/strings"
)

// maxNameLen is the longest workflow name derived from a description.
const maxNameLen = 60

// WorkflowName returns explicit when it is non-blank, otherwise the
// description cut to 60 characters (ending in "...") with its first letter
// upper-cased.
func WorkflowName(description, explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return pkgstrings.CapitalizeFirst(pkgstrings.Truncate(description, maxNameLen))
}
