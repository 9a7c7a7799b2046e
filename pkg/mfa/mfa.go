// Package mfa verifies one-time codes against a set of enrolled devices.
//
// A user may hold several authenticators (for example a phone app and a
// backup engine with a different secret). A Service tries each enrolled
// device in order and reports which one accepted the code.
package mfa

import (
	"errors"
	"fmt"

	"github.com/jhahn/go-totp/pkg/totp"
)

// Handler defines the contract for a device that can verify a code.
// The implementation reports whether the code matched; an error means the
// device could not evaluate the code at all.
type Handler interface {
	Verify(code string) (bool, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(code string) (bool, error)

// Verify executes the underlying function.
func (f HandlerFunc) Verify(code string) (bool, error) {
	return f(code)
}

// TOTP creates a Handler backed by a time-based engine.
func TOTP(engine *totp.Engine) Handler {
	return HandlerFunc(engine.VerifyString)
}

// DeviceName identifies an enrolled device.
type DeviceName string

// Device represents a named, enrolled authenticator.
type Device struct {
	Name    DeviceName
	Handler Handler
}

// Config contains the ordered list of devices the service should attempt.
type Config struct {
	Devices []Device
}

// Service coordinates code verification across enrolled devices.
type Service struct {
	devices []Device
}

var (
	// ErrNoDevices indicates the service was initialised without any devices.
	ErrNoDevices = errors.New("mfa: no devices enrolled")
	// ErrDeviceNotFound indicates a requested device name does not exist.
	ErrDeviceNotFound = errors.New("mfa: requested device not enrolled")
	// ErrMissingCode indicates the request does not contain a code.
	ErrMissingCode = errors.New("mfa: code is required")
	// ErrCodeRejected indicates no device accepted the code.
	ErrCodeRejected = errors.New("mfa: code rejected")
)

// NewService builds a Service from the supplied configuration.
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Devices) == 0 {
		return nil, ErrNoDevices
	}

	devices := make([]Device, 0, len(cfg.Devices))
	seen := map[DeviceName]struct{}{}
	for i, d := range cfg.Devices {
		if d.Handler == nil {
			return nil, fmt.Errorf("mfa: device at index %d has no handler", i)
		}
		if _, ok := seen[d.Name]; ok {
			return nil, fmt.Errorf("mfa: duplicate device name %q", d.Name)
		}
		seen[d.Name] = struct{}{}
		devices = append(devices, d)
	}

	return &Service{devices: devices}, nil
}

// VerifyRequest contains the submitted code and optional target device.
type VerifyRequest struct {
	Device DeviceName
	Code   string
}

// Verify attempts the code against the enrolled devices in order and
// returns the name of the first device that accepted it. When no device
// accepts the code, the returned error matches ErrCodeRejected and carries
// any device evaluation errors encountered along the way.
func (s *Service) Verify(req VerifyRequest) (DeviceName, error) {
	if s == nil || len(s.devices) == 0 {
		return "", ErrNoDevices
	}
	if req.Code == "" {
		return "", ErrMissingCode
	}

	var targets []Device
	if req.Device != "" {
		for _, d := range s.devices {
			if d.Name == req.Device {
				targets = append(targets, d)
				break
			}
		}
		if len(targets) == 0 {
			return "", ErrDeviceNotFound
		}
	} else {
		targets = s.devices
	}

	errs := []error{ErrCodeRejected}
	for _, d := range targets {
		ok, err := d.Handler.Verify(req.Code)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.Name, err))
			continue
		}
		if ok {
			return d.Name, nil
		}
	}

	return "", errors.Join(errs...)
}
