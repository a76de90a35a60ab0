//go:build !linux

package vt

import "errors"

func newLinuxController() (Controller, error) {
	return nil, errors.New("VT switching requires linux")
}
