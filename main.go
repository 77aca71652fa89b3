// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/questionlp/wwdtm-import-location-latlong/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
