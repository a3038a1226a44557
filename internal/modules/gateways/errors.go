package gateways

import "errors"

var (
	ErrConfigMissing = errors.New("gateway config missing")
	ErrUnknownMode   = errors.New("gateway config mode unknown")
	ErrBadValues     = errors.New("gateway config values unreadable")
)
