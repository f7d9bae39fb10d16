package evergreen

import "testing"

func TestTrailDefaultPool(t *testing.T) {
	tr := newTrail(0)
	if len(tr.particles) != defaultMaxDust {
		t.Errorf("pool size = %d, want %d", len(tr.particles), defaultMaxDust)
	}
}

func TestTrailSpawn(t *testing.T) {
	tr := newTrail(16)
	rng := testRNG()
	for range 10 {
		tr.spawn(100, 50, rng)
	}
	if tr.AliveCount() != 10 {
		t.Fatalf("AliveCount = %d, want 10", tr.AliveCount())
	}
	for i := 0; i < tr.alive; i++ {
		p := tr.particles[i]
		assertNear(t, "x", p.x, 120)
		assertNear(t, "y", p.y, 60)
		assertNear(t, "life", p.life, 1)
		if p.vx < 1 || p.vx >= 3 {
			t.Errorf("vx = %v outside [1, 3)", p.vx)
		}
		if p.vy < -1 || p.vy >= 1 {
			t.Errorf("vy = %v outside [-1, 1)", p.vy)
		}
		if p.size < 1 || p.size >= 3 {
			t.Errorf("size = %v outside [1, 3)", p.size)
		}
		if p.color != trailGold && p.color != trailWhite {
			t.Errorf("color = %v, want gold or white", p.color)
		}
	}
}

func TestTrailPoolCap(t *testing.T) {
	tr := newTrail(4)
	rng := testRNG()
	for range 10 {
		tr.spawn(0, 0, rng)
	}
	if tr.AliveCount() != 4 {
		t.Errorf("AliveCount = %d, want 4 (spawns beyond capacity dropped)", tr.AliveCount())
	}
}

func TestTrailLifeDecreasesAndExpires(t *testing.T) {
	tr := newTrail(4)
	tr.spawn(0, 0, testRNG())
	vy := tr.particles[0].vy
	prev := tr.particles[0].life
	for i := range 66 {
		tr.update()
		if tr.AliveCount() != 1 {
			t.Fatalf("particle removed early on tick %d", i)
		}
		life := tr.particles[0].life
		if life >= prev {
			t.Fatalf("tick %d: life %v did not decrease from %v", i, life, prev)
		}
		prev = life
	}
	assertNear(t, "vy after 66 ticks", tr.particles[0].vy, vy+66*trailGravity)

	tr.update()
	if tr.AliveCount() != 0 {
		t.Errorf("AliveCount = %d after life ran out, want 0", tr.AliveCount())
	}
}

func TestTrailSwapRemoveKeepsSurvivors(t *testing.T) {
	tr := newTrail(8)
	rng := testRNG()
	tr.spawn(0, 0, rng)
	tr.spawn(0, 0, rng)
	tr.spawn(0, 0, rng)
	tr.particles[0].life = 0.01
	tr.particles[2].life = 0.5
	tr.update()
	if tr.AliveCount() != 2 {
		t.Fatalf("AliveCount = %d, want 2", tr.AliveCount())
	}
	for i := 0; i < tr.alive; i++ {
		if tr.particles[i].life <= 0 {
			t.Errorf("particle %d survived with life %v", i, tr.particles[i].life)
		}
	}
}

func TestTrailDrawUsesLifeAsAlpha(t *testing.T) {
	tr := newTrail(2)
	tr.spawn(0, 0, testRNG())
	tr.particles[0].life = 0.4
	var rec recordingSurface
	tr.draw(&rec)
	if len(rec.ops) != 1 {
		t.Fatalf("ops = %d, want 1", len(rec.ops))
	}
	assertNear(t, "alpha", rec.ops[0].c.A, 0.4)
}

func TestTrailReset(t *testing.T) {
	tr := newTrail(2)
	tr.spawn(0, 0, testRNG())
	tr.Reset()
	if tr.AliveCount() != 0 {
		t.Errorf("AliveCount after Reset = %d", tr.AliveCount())
	}
}
