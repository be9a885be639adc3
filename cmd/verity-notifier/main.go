/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/calyptra/verity/pkg/notifier/cmd"
)

func main() {
	cmd.Execute()
}
