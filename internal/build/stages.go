package build

import (
	"context"
	"errors"
	"fmt"
	"time"

	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/metrics"
	"git.home.luguber.info/inful/docbabel/internal/observability"
	"git.home.luguber.info/inful/docbabel/internal/plugin"
	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput StageName = "prepare_output"
	StagePreBuild      StageName = "pre_build"
	StageDiscover      StageName = "discover"
	StageFiles         StageName = "files"
	StageNav           StageName = "nav"
	StageCopyStatic    StageName = "copy_static"
	StagePopulate      StageName = "populate"
	StageRender        StageName = "render"
	StagePostBuild     StageName = "post_build"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the failed stage and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// BuildState carries mutable state across stages.
type BuildState struct {
	Builder *Builder
	Files   *structure.Files
	Nav     *structure.Navigation
	Result  *BuildResult
}

func newStageError(stage StageName, err error) *StageError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
	}
	var perr *plugin.PluginError
	if errors.As(err, &perr) {
		err = derrors.PluginFailed(perr.PluginName, string(perr.Event), err)
	} else if _, ok := derrors.As(err); !ok {
		err = derrors.BuildFailed(string(stage), err)
	}
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

// runStages executes stages in order, recording timing and stopping on the first error.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	recorder := bs.Builder.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return newStageError(st.Name, ctx.Err())
		default:
		}
		stageCtx := observability.WithStage(ctx, string(st.Name))
		t0 := time.Now()
		err := st.Fn(stageCtx, bs)
		dur := time.Since(t0)
		bs.Result.StageDurations[st.Name] = dur
		recorder.ObserveStageDuration(string(st.Name), dur)
		if err != nil {
			se := newStageError(st.Name, err)
			if se.Kind == StageErrorCanceled {
				recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			} else {
				recorder.IncStageResult(string(st.Name), metrics.ResultFailed)
				observability.ErrorContext(stageCtx, "Stage failed", logfields.Error(err))
			}
			return se
		}
		recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
		observability.DebugContext(stageCtx, "Stage complete", logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}
