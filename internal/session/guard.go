package session

import "github.com/asalazarq/fracturas-client/internal/errs"

// Guard gates operations that require an authenticated session, standing
// between the store and anything that would issue a bearer-auth call.
type Guard struct {
	store *Store
}

func NewGuard(store *Store) *Guard { return &Guard{store: store} }

// RequireAuth returns the session token. It fails with ErrNotAuthenticated
// while the initial session check is still pending or when no session is
// established.
func (g *Guard) RequireAuth() (string, error) {
	if g.store.Loading() {
		return "", errs.ErrNotAuthenticated
	}
	st := g.store.Session()
	if !st.IsAuthenticated || st.Token == "" {
		return "", errs.ErrNotAuthenticated
	}
	return st.Token, nil
}
