package network

import (
	"testing"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/shared/gamemath"
)

func TestValidatorAcceptsPlausibleSteps(t *testing.T) {
	t.Parallel()

	v := NewValidator("actor", gamemath.Vector{})
	dt := config.Tick.PhysicsDt

	pos := gamemath.Vector{}
	for i := 0; i < 10; i++ {
		pos = pos.Add(gamemath.Vector{X: 5})
		got, ok := v.Check(pos, dt)
		if !ok || got != pos {
			t.Fatalf("step %d: Check = %v/%v, want accepted", i, got, ok)
		}
	}

	accepted, rejected := v.Stats()
	if accepted != 10 || rejected != 0 {
		t.Fatalf("stats = %d/%d, want 10 accepted", accepted, rejected)
	}
}

func TestValidatorMeasuresFirstReportFromSpawn(t *testing.T) {
	t.Parallel()

	spawn := gamemath.Vector{X: 100, Y: 100}
	v := NewValidator("actor", spawn)
	dt := config.Tick.PhysicsDt

	// The very first report gets no free pass: a jump far from the
	// spawn transform is rejected like any other teleport.
	got, ok := v.Check(gamemath.Vector{X: 600, Y: 100}, dt)
	if ok {
		t.Fatal("implausible first report accepted")
	}
	if got != spawn {
		t.Fatalf("trusted position = %v, want the spawn %v", got, spawn)
	}

	if _, ok := v.Check(gamemath.Vector{X: 105, Y: 100}, dt); !ok {
		t.Fatal("plausible first step from spawn rejected")
	}
}

func TestValidatorRejectsTeleportKeepingLastTransform(t *testing.T) {
	t.Parallel()

	v := NewValidator("actor", gamemath.Vector{})
	dt := config.Tick.PhysicsDt

	v.Check(gamemath.Vector{X: 5}, dt)

	got, ok := v.Check(gamemath.Vector{X: 500}, dt)
	if ok {
		t.Fatal("teleport accepted")
	}
	if got != (gamemath.Vector{X: 5}) {
		t.Fatalf("trusted position = %v, want the previously accepted one", got)
	}

	// Rejection does not poison future plausible reports measured from
	// the last trusted transform.
	if _, ok := v.Check(gamemath.Vector{X: 10}, dt); !ok {
		t.Fatal("plausible follow-up rejected")
	}
}

func TestValidatorScalesAllowanceWithDt(t *testing.T) {
	t.Parallel()

	v := NewValidator("actor", gamemath.Vector{})

	// A step far beyond the single-tick ceiling is fine when the report
	// covers enough wall time at the speed cap.
	step := config.Net.MaxReportStep * 3
	if _, ok := v.Check(gamemath.Vector{X: step}, 1.01*step/config.Net.MaxReportSpeed); !ok {
		t.Fatal("long-dt report rejected")
	}

	if _, ok := v.Check(gamemath.Vector{X: step * 2}, config.Tick.PhysicsDt); ok {
		t.Fatal("same displacement over one tick accepted")
	}
}

func TestValidatorStreakDecaysOnAccept(t *testing.T) {
	t.Parallel()

	v := NewValidator("actor", gamemath.Vector{})
	dt := config.Tick.PhysicsDt

	for i := 0; i < config.Net.ViolationThreshold; i++ {
		v.Check(gamemath.Vector{X: 1000}, dt)
	}
	_, rejected := v.Stats()
	if int(rejected) != config.Net.ViolationThreshold {
		t.Fatalf("rejected = %d, want %d", rejected, config.Net.ViolationThreshold)
	}

	if _, ok := v.Check(gamemath.Vector{X: 5}, dt); !ok {
		t.Fatal("plausible report rejected after a violation streak")
	}
}

func TestForceAcceptResetsReference(t *testing.T) {
	t.Parallel()

	v := NewValidator("actor", gamemath.Vector{})
	spawn := gamemath.Vector{X: 400, Y: 300}
	v.ForceAccept(spawn)

	got, ok := v.Check(spawn.Add(gamemath.Vector{X: 5}), config.Tick.PhysicsDt)
	if !ok {
		t.Fatal("report near the forced transform rejected")
	}
	if got != spawn.Add(gamemath.Vector{X: 5}) {
		t.Fatalf("trusted position = %v", got)
	}
}
