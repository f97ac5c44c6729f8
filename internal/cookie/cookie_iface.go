package cookie

import (
	"net/http"

	"github.com/crealaunch/gate/internal/types"
)

// Manager is the interface implemented by the cookie Client. It exists
// for testability of the packages built on top of it.
type Manager interface {
	ReadAuthCookie(r *http.Request) (map[types.SCKey]string, bool)
	BakeAuthCookie(sameSiteStrict bool, cval map[types.SCKey]string) (*http.Cookie, error)
	WriteAuthCookie(w http.ResponseWriter, sameSiteStrict bool, cval map[types.SCKey]string) error
	ExpiredAuthCookie() *http.Cookie
}
