package qsm

import "github.com/blang/semver/v4"

// Version is the package's semantic version. cmd/qsm has no flag that
// prints it.
var Version = semver.MustParse("0.1.0")
