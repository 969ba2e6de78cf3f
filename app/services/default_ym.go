package services

import "github.com/drager40/product-manager/app/database"

// ResolveDefaultYms implements the default-month policy: when the caller
// supplied no filter at all, the single most recent month substitutes as an
// implicit filter so the list page opens on current activity instead of the
// whole history. Any non-empty dimension suppresses the substitution.
// distinctYms must be ordered most recent first.
func ResolveDefaultYms(f database.ExpenseFilter, distinctYms []string) []string {
	if f.IsEmpty() && len(distinctYms) > 0 {
		return []string{distinctYms[0]}
	}
	return f.Yms
}
