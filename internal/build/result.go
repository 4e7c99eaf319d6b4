package build

import "time"

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed successfully.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// BuildID identifies the build in logs.
	BuildID string

	Status BuildStatus

	// SiteDir is the directory the site was written to.
	SiteDir string

	// FilesDiscovered counts the files found under the docs directory.
	FilesDiscovered int

	// PagesBuilt counts every page written, including plugin render passes.
	PagesBuilt int

	// StageDurations records how long each completed stage took.
	StageDurations map[StageName]time.Duration

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
