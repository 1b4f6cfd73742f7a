// Package testutil holds helpers shared by the package tests.
package testutil

import "regexp"

// csi matches SGR and other CSI escape sequences, which is everything the
// ui themes emit.
var csi = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripAnsiCodes returns s without terminal escape sequences so colored
// output can be compared against plain text.
func StripAnsiCodes(s string) string {
	return csi.ReplaceAllString(s, "")
}
