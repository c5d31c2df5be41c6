package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrInvalidRange = errors.New("end time is before start time")
var ErrForbidden = errors.New("access to resource is forbidden")
var ErrUnauthorized = errors.New("acting user is not known")
var ErrLocked = errors.New("resource is locked by another request")
