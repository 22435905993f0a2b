package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Build hooks
	b := NoopBuildHooks{}
	b.OnStageStart(ctx, "outer")
	b.OnStageComplete(ctx, "outer", time.Second, nil)
	b.OnBuildComplete(ctx, "80/20 1010 (1\" x 1\")", 2, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "build")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Build() should return NoopBuildHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customBuild := &testBuildHooks{}
	SetBuildHooks(customBuild)
	if Build() != customBuild {
		t.Error("SetBuildHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Reset() should restore NoopBuildHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBuildHooks{}
	SetBuildHooks(custom)

	// Setting nil should be ignored
	SetBuildHooks(nil)

	if Build() != custom {
		t.Error("SetBuildHooks(nil) should be ignored")
	}

	Reset()
}

func TestHooksReceiveBuildEvents(t *testing.T) {
	Reset()
	defer Reset()

	recorder := &recordingBuildHooks{}
	SetBuildHooks(recorder)

	ctx := context.Background()
	Build().OnStageStart(ctx, "slots")
	Build().OnStageComplete(ctx, "slots", 2*time.Millisecond, nil)
	Build().OnBuildComplete(ctx, "Misumi 3030", 1, 5*time.Millisecond, nil)

	if got, want := recorder.stages, 1; got != want {
		t.Errorf("stages = %v, want %v", got, want)
	}
	if got, want := recorder.lastStage, "slots"; got != want {
		t.Errorf("lastStage = %v, want %v", got, want)
	}
	if got, want := recorder.lastProfile, "Misumi 3030"; got != want {
		t.Errorf("lastProfile = %v, want %v", got, want)
	}
	if got, want := recorder.lastHoles, 1; got != want {
		t.Errorf("lastHoles = %v, want %v", got, want)
	}
}

// Test implementations
type testBuildHooks struct{ NoopBuildHooks }
type testCacheHooks struct{ NoopCacheHooks }

type recordingBuildHooks struct {
	NoopBuildHooks
	stages      int
	lastStage   string
	lastProfile string
	lastHoles   int
}

func (r *recordingBuildHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	r.stages++
	r.lastStage = stage
}

func (r *recordingBuildHooks) OnBuildComplete(_ context.Context, profile string, holes int, _ time.Duration, _ error) {
	r.lastProfile = profile
	r.lastHoles = holes
}
