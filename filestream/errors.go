// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import "errors"

var (
	// ErrNotRegularFile reports that the reader's path does not name a
	// regular file (directory, device, missing, ...).
	ErrNotRegularFile = errors.New("filestream: not a regular file")

	// ErrAlreadyExists reports that the writer's path is already occupied by
	// a file or directory.
	ErrAlreadyExists = errors.New("filestream: path already exists")
)
