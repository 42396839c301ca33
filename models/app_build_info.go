// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// notAvailable is reported for build metadata the linker did not set.
const notAvailable = "N/A"

// AppBuildInfo carries build-time metadata injected by linker flags. It is
// printed by both binaries on startup and served by GET /api/version/.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewAppBuildInfo constructs [AppBuildInfo]; empty values become "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNotAvailable(buildVersion),
		Date:    orNotAvailable(buildDate),
		Commit:  orNotAvailable(buildCommit),
	}
}

// WithVersion returns a copy carrying version when the linker left it unset.
func (a AppBuildInfo) WithVersion(version string) AppBuildInfo {
	if (a.Version == "" || a.Version == notAvailable) && version != "" {
		a.Version = version
	}
	return a
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.Version, a.Date, a.Commit)
}

func orNotAvailable(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
