// Copyright 2026 Spindle Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device defines the execution capability a quantum tape dispatches
// to.
package device

import (
	internaldevice "github.com/spindle-qc/spindle/internal/device"
)

// Device executes an operation sequence and evaluates measurement
// terminators.
type Device = internaldevice.Device
