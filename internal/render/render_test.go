package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
	"github.com/ironsheep/poster-tools-mcp/internal/placement"
	"github.com/ironsheep/poster-tools-mcp/internal/style"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

type strokeCall struct {
	rect  geom.Rect
	color color.Color
	width int
}

// recorder is a Surface that remembers every call.
type recorder struct {
	rects   []strokeCall
	runs    []TextRun
	failAt  int
	callErr error
}

func (r *recorder) StrokeRect(rect geom.Rect, c color.Color, width int) {
	r.rects = append(r.rects, strokeCall{rect, c, width})
}

func (r *recorder) DrawText(run TextRun) error {
	if r.callErr != nil && len(r.runs) == r.failAt {
		return r.callErr
	}
	r.runs = append(r.runs, run)
	return nil
}

func TestDraw(t *testing.T) {
	block := textfit.Block{
		Size:        40,
		LineSpacing: 48,
		Height:      144,
		Lines: []textfit.Line{
			{Text: "SUMMER", X: 100, Y: 200, Width: 180},
			{Text: "", X: 190, Y: 248},
			{Text: "SALE", X: 130, Y: 296, Width: 120},
		},
	}
	st := style.TextStyle{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}, Stroke: true}

	rec := &recorder{}
	if err := Draw(rec, block, st); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	want := []TextRun{
		{Text: "SUMMER", X: 100, Y: 200, Size: 40, Color: st.Color, Stroke: true},
		{Text: "SALE", X: 130, Y: 296, Size: 40, Color: st.Color, Stroke: true},
	}
	if len(rec.runs) != len(want) {
		t.Fatalf("got %d runs, want %d", len(rec.runs), len(want))
	}
	for i := range want {
		if rec.runs[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, rec.runs[i], want[i])
		}
	}
}

func TestDraw_EmptyBlock(t *testing.T) {
	rec := &recorder{}
	if err := Draw(rec, textfit.Block{}, style.TextStyle{}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.runs) != 0 || len(rec.rects) != 0 {
		t.Errorf("empty block drew something: %+v", rec)
	}
}

func TestDraw_PropagatesError(t *testing.T) {
	block := textfit.Block{Size: 20, Lines: []textfit.Line{{Text: "A"}, {Text: "B"}}}
	boom := errors.New("boom")
	rec := &recorder{failAt: 1, callErr: boom}

	err := Draw(rec, block, style.TextStyle{})
	if !errors.Is(err, boom) {
		t.Fatalf("Draw error = %v, want wrapped boom", err)
	}
	if len(rec.runs) != 1 {
		t.Errorf("got %d runs before the failure, want 1", len(rec.runs))
	}
}

func TestDrawOverlay(t *testing.T) {
	dets := []detection.Detection{
		{Label: "person", Box: geom.Rect{Left: 10, Top: 10, Right: 50, Bottom: 90}},
	}
	cands := []placement.Candidate{
		{Rect: geom.Rect{Left: 100, Top: 0, Right: 300, Bottom: 100}},
		{Rect: geom.Rect{Left: 0, Top: 100, Right: 200, Bottom: 200}},
	}

	rec := &recorder{}
	DrawOverlay(rec, dets, cands, 0)

	if len(rec.rects) != 3 {
		t.Fatalf("got %d rects, want 3", len(rec.rects))
	}
	if rec.rects[0].color != DetectionColor || rec.rects[0].rect != dets[0].Box {
		t.Errorf("first outline should be the detection: %+v", rec.rects[0])
	}
	if rec.rects[1].color != CandidateColor || rec.rects[1].rect != cands[1].Rect {
		t.Errorf("second outline should be the unchosen candidate: %+v", rec.rects[1])
	}
	if last := rec.rects[2]; last.color != ChosenColor || last.rect != cands[0].Rect {
		t.Errorf("chosen candidate should be drawn last: %+v", last)
	}
}

func TestDrawOverlay_NoneChosen(t *testing.T) {
	cands := []placement.Candidate{{Rect: geom.Rect{Right: 10, Bottom: 10}}}

	rec := &recorder{}
	DrawOverlay(rec, nil, cands, -1)

	if len(rec.rects) != 1 || rec.rects[0].color != CandidateColor {
		t.Errorf("unexpected outlines: %+v", rec.rects)
	}
}
