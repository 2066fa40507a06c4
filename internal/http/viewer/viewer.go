// Package viewer resolves the active viewer identity on API requests. The
// identity-selection collaborator (the UI's profile screen) sets the header;
// there is no authentication behind it.
package viewer

import (
	"net/http"

	"github.com/lbarreto/equifinance/internal/participant"
)

// Header carries the active viewer's participant id.
const Header = "X-Viewer"

// ID extracts the viewer id from the request. Empty means the caller did not
// identify a viewer.
func ID(r *http.Request) participant.ID {
	return participant.ID(r.Header.Get(Header))
}
