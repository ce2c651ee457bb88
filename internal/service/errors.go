package service

import (
	"fmt"

	"github.com/dtroode/lostfound-server/internal/model"
)

var (
	ErrUserIDRequired     = fmt.Errorf("%w: user id required", model.ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", model.ErrUnauthorized)
	ErrNotItemOwner       = fmt.Errorf("%w: only the owner may change this item", model.ErrForbidden)
)
