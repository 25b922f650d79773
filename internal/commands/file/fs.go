// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package file

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Now returns the time used in backup names.
var Now = time.Now

const osCreateFlags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
