// Package location abstracts the device location subsystem.
package location

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/shoptrack/pkg/poi"
)

// ErrPermissionDenied is returned when the user did not grant access to the
// device position.
var ErrPermissionDenied = errors.New("location: permission to access location was denied")

// Permission is the outcome of a permission request.
type Permission int

const (
	Undetermined Permission = iota
	Granted
	Denied
)

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "undetermined"
	}
}

// Error wraps a failure of the provider itself.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("location: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Provider reports the device position once permission is granted.
type Provider interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentPosition(ctx context.Context) (poi.Position, error)
}

// Locate asks for permission and then for the current position.
func Locate(ctx context.Context, p Provider) (poi.Position, error) {
	perm, err := p.RequestPermission(ctx)
	if err != nil {
		return poi.Position{}, &Error{Op: "request permission", Err: err}
	}
	if perm != Granted {
		return poi.Position{}, ErrPermissionDenied
	}
	pos, err := p.CurrentPosition(ctx)
	if err != nil {
		return poi.Position{}, &Error{Op: "current position", Err: err}
	}
	return pos, nil
}

// Static is a provider with a fixed, already granted position.
type Static struct {
	Position poi.Position
}

func (s Static) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return Undetermined, err
	}
	return Granted, nil
}

func (s Static) CurrentPosition(ctx context.Context) (poi.Position, error) {
	if err := ctx.Err(); err != nil {
		return poi.Position{}, err
	}
	return s.Position, nil
}

// DeniedProvider always refuses permission.
type DeniedProvider struct{}

func (DeniedProvider) RequestPermission(context.Context) (Permission, error) {
	return Denied, nil
}

func (DeniedProvider) CurrentPosition(context.Context) (poi.Position, error) {
	return poi.Position{}, ErrPermissionDenied
}

// FromConfig returns Static when enabled and DeniedProvider otherwise.
func FromConfig(enabled bool, lat, lon float64) Provider {
	if !enabled {
		return DeniedProvider{}
	}
	return Static{Position: poi.Position{Latitude: lat, Longitude: lon}}
}
