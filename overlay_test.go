package evergreen

import "testing"

func TestGreetingFadesInOnce(t *testing.T) {
	o := newOverlay(GreetingConfig{Title: "Hi", Subtitle: "there", FadeSeconds: 1})
	if o.GreetingAlpha() != 0 {
		t.Fatal("greeting visible before showGreeting")
	}
	o.showGreeting()
	for range 30 {
		o.update(tickSeconds)
	}
	half := o.GreetingAlpha()
	if half <= 0 || half >= 1 {
		t.Fatalf("alpha after half the fade = %v", half)
	}
	o.showGreeting() // ignored, does not restart the fade
	if o.GreetingAlpha() != half {
		t.Error("second showGreeting restarted the fade")
	}
	for range 40 {
		o.update(tickSeconds)
	}
	assertNear(t, "alpha", o.GreetingAlpha(), 1)
}

func TestGreetingInstant(t *testing.T) {
	o := newOverlay(GreetingConfig{Title: "Hi"})
	o.showGreeting()
	assertNear(t, "alpha", o.GreetingAlpha(), 1)

	var rec recordingSurface
	o.draw(&rec, 800, 600)
	if rec.count("text") != 2 {
		t.Fatalf("text ops = %d, want 2", rec.count("text"))
	}
	title := rec.ops[0]
	if title.text != "Hi" || title.x != 400 {
		t.Errorf("title op = %+v, want centered at x 400", title)
	}
}

func TestViewerOpenClose(t *testing.T) {
	o := newOverlay(DefaultConfig().Greeting)
	asset := &fakeAsset{ref: "a.png", ready: true, w: 2000, h: 1000}
	o.open(Selection{Ref: "a.png", Title: "Trip", Asset: asset})
	sel, open := o.Viewing()
	if !open || sel.Title != "Trip" {
		t.Fatalf("Viewing = (%+v, %v)", sel, open)
	}
	for range 30 {
		o.update(tickSeconds)
	}

	var rec recordingSurface
	o.draw(&rec, 800, 600)
	var img *drawOp
	for i := range rec.ops {
		if rec.ops[i].op == "image" {
			img = &rec.ops[i]
		}
	}
	if img == nil {
		t.Fatal("viewer drew no image")
	}
	// 2000x1000 fits into 640x420 at scale 0.32.
	assertNear(t, "width", img.w, 640)
	assertNear(t, "height", img.h, 320)
	assertNear(t, "x", img.x, 80)
	if rec.ops[0].op != "rect" || rec.ops[0].w != 800 || rec.ops[0].h != 600 {
		t.Errorf("first op = %+v, want full-screen shade", rec.ops[0])
	}
	assertNear(t, "shade alpha", rec.ops[0].c.A, colorShade.A)

	o.close()
	if _, open := o.Viewing(); open {
		t.Error("viewer open after close")
	}
	rec = recordingSurface{}
	o.draw(&rec, 800, 600)
	if len(rec.ops) != 0 {
		t.Errorf("closed viewer without greeting drew %d ops", len(rec.ops))
	}
}

func TestViewerDoesNotUpscale(t *testing.T) {
	o := newOverlay(GreetingConfig{})
	o.open(Selection{Asset: &fakeAsset{ready: true, w: 40, h: 30}})
	var rec recordingSurface
	o.draw(&rec, 800, 600)
	for _, op := range rec.ops {
		if op.op == "image" {
			assertNear(t, "width", op.w, 40)
			assertNear(t, "height", op.h, 30)
			return
		}
	}
	t.Fatal("viewer drew no image")
}
