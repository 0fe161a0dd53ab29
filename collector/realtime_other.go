// Copyright 2017 by Thorsten von Eicken, see LICENSE file

//go:build !linux

package collector

import "errors"

// setRealtime is only implemented on Linux; elsewhere Loop logs and
// continues at the default scheduling priority.
func setRealtime() error {
	return errors.New("collector: realtime scheduling is only supported on linux")
}
