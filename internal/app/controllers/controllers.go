// Package controllers contains the gin handlers. Controllers bind and
// validate payloads, delegate to the services, and translate results into
// the response envelope; no business rules live here.
package controllers

import (
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
)

// errMissingAdmin fires when a protected handler runs without the auth
// middleware having resolved an admin. It indicates a wiring bug, not a
// client error.
var errMissingAdmin = apperrors.NewCustomError(apperrors.ErrTokenInvalid, "no authenticated admin in request context")
