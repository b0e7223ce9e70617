// Imbue - wallpaper-driven desktop theming
//
// Imbue derives a colour scheme from a wallpaper and applies it across
// the desktop, tracking every change so it can be undone.
//
// Copyright (c) 2026 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/imbue/internal/cli"
)

func main() {
	cli.Execute()
}
