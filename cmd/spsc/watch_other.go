//go:build !linux

package main

import (
	"context"
	"errors"
)

func watchFile(ctx context.Context, path string, onChange func()) error {
	return errors.New("watch mode is only supported on linux")
}
