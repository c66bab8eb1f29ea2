package handler

import (
	"errors"
	"net/http"

	"banking-service/pkg/xerrors"
)

// errStatus maps the error taxonomy onto HTTP statuses. Store failures come
// back as a generic 500: the underlying driver detail was already logged and
// is never echoed to the caller.
func errStatus(err error) (int, string) {
	switch {
	case errors.Is(err, xerrors.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, xerrors.ErrAccountNotFound), errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, xerrors.ErrAccountNotActive):
		return http.StatusConflict, err.Error()
	case errors.Is(err, xerrors.ErrInsufficientFunds):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, xerrors.ErrAllocationConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, xerrors.ErrUnauthorized), errors.Is(err, xerrors.ErrSessionExpired):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
