package repository

import (
	"fmt"

	"github.com/sigma-matching/api-server-go/internal/model"
)

// Scope is the row-visibility rule derived from the authenticated caller:
// administrators see every row, agents only rows whose owner column matches
// their id. Every lead query goes through ownerFilter so no call site can
// accidentally omit the restriction; properties inherit the scope
// transitively through their parent lead.
type Scope struct {
	UserID  int64
	IsAdmin bool
}

func ScopeFor(u *model.User) Scope {
	return Scope{UserID: u.ID, IsAdmin: u.IsAdmin()}
}

// ownerFilter returns the SQL predicate restricting col to the scope's owner,
// together with the extended argument list. Admins get the unrestricted
// predicate (empty clause). The clause is meant to be appended to an existing
// WHERE section.
func (s Scope) ownerFilter(col string, args []any) (string, []any) {
	if s.IsAdmin {
		return "", args
	}
	args = append(args, s.UserID)
	return fmt.Sprintf(" AND %s = $%d", col, len(args)), args
}
