package systems

import (
	"testing"

	"github.com/emberworks/brawlcore/components"
	"github.com/emberworks/brawlcore/shared/netcomponents"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

func newTestMirror() *Mirror {
	m := NewMirror(donburi.NewWorld(), func() esync.NetworkId { return 1 })
	ts := int64(1000)
	m.nowMs = func() int64 { ts += 50; return ts }
	return m
}

func TestSpawnMirroredClassifiesAuthority(t *testing.T) {
	t.Parallel()

	m := newTestMirror()
	pos := &netcomponents.NetPositionData{X: 10, Y: 20}

	local := m.world.Entry(m.spawnMirrored(1, true, pos))
	a := components.LocalActor.Get(local).Actor
	if a.Authority != netconfig.LocalAuthority {
		t.Fatalf("local actor authority = %v, want LocalAuthority", a.Authority)
	}
	if !a.Simulated {
		t.Fatal("local actor not simulated")
	}

	remote := m.world.Entry(m.spawnMirrored(2, false, pos))
	b := components.RemoteActor.Get(remote).Actor
	if b.Authority != netconfig.RemoteAuthority {
		t.Fatalf("remote actor authority = %v, want RemoteAuthority", b.Authority)
	}
	if b.Simulated {
		t.Fatal("remote actor simulated")
	}
}

func TestBufferRemoteSkipsUnchangedSnapshots(t *testing.T) {
	t.Parallel()

	m := newTestMirror()
	entry := m.world.Entry(m.spawnMirrored(2, false, &netcomponents.NetPositionData{X: 10}))
	data := components.RemoteActor.Get(entry)

	pos := &netcomponents.NetPositionData{X: 10, Height: 4}
	state := &netcomponents.NetActorStateData{StateID: netconfig.Moving, Health: 100, Shield: 50}

	m.bufferRemote(entry, pos, nil, state)
	if data.Buffer.Len() != 1 {
		t.Fatalf("buffer len = %d after first snapshot, want 1", data.Buffer.Len())
	}

	// A tick that changed nothing must not occupy a buffer slot.
	m.bufferRemote(entry, pos, nil, state)
	if data.Buffer.Len() != 1 {
		t.Fatalf("buffer len = %d after unchanged snapshot, want 1", data.Buffer.Len())
	}

	moved := &netcomponents.NetPositionData{X: 16, Height: 4}
	m.bufferRemote(entry, moved, nil, state)
	if data.Buffer.Len() != 2 {
		t.Fatalf("buffer len = %d after moved snapshot, want 2", data.Buffer.Len())
	}

	latest, ok := data.Buffer.Latest()
	if !ok {
		t.Fatal("no latest snapshot")
	}
	if latest.Position.X != 16 || latest.Height != 4 {
		t.Fatalf("latest pose = %v/%v, want 16/4", latest.Position, latest.Height)
	}
	// Unflagged fields carry over from the last applied snapshot.
	if latest.Health != 100 || latest.State != netconfig.Moving {
		t.Fatalf("latest carried health %v state %v", latest.Health, latest.State)
	}
}
