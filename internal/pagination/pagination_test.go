package pagination

import "testing"

// 23 items at 10 per page: three pages, page 1 covers items 0-9, and a jump
// to page 4 is rejected.
func TestTwentyThreeItems(t *testing.T) {
	p := New(10)
	p.Recompute(23)

	if p.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", p.PageCount())
	}

	start, end := p.Bounds()
	if start != 0 || end != 10 {
		t.Errorf("page 1 bounds = [%d,%d), want [0,10)", start, end)
	}

	if p.GoToPage(4) {
		t.Error("GoToPage(4) should be rejected")
	}
	if p.Page() != 1 {
		t.Errorf("rejected jump moved the page to %d", p.Page())
	}

	if !p.GoToPage(3) {
		t.Fatal("GoToPage(3) should succeed")
	}
	start, end = p.Bounds()
	if start != 20 || end != 23 {
		t.Errorf("page 3 bounds = [%d,%d), want [20,23)", start, end)
	}
}

func TestRecomputeClampsStalePage(t *testing.T) {
	p := New(10)
	p.Recompute(50)
	p.GoToPage(5)

	// The visible set shrinks under the current page
	p.Recompute(12)
	if p.Page() != 2 {
		t.Errorf("page = %d after shrink, want clamp to 2", p.Page())
	}

	p.Recompute(0)
	if p.Page() != 1 || p.PageCount() != 1 {
		t.Errorf("empty set should clamp to page 1 of 1, got page %d of %d", p.Page(), p.PageCount())
	}
}

func TestPageInvariantAcrossMutations(t *testing.T) {
	p := New(10)
	for _, total := range []int{0, 1, 9, 10, 11, 23, 100, 7, 0} {
		p.Recompute(total)
		if p.Page() < 1 || p.Page() > p.PageCount() {
			t.Errorf("total %d: page %d outside [1,%d]", total, p.Page(), p.PageCount())
		}
		want := (total + 9) / 10
		if want < 1 {
			want = 1
		}
		if p.PageCount() != want {
			t.Errorf("total %d: PageCount() = %d, want %d", total, p.PageCount(), want)
		}
	}
}

func TestNextPrev(t *testing.T) {
	p := New(5)
	p.Recompute(12)

	if p.Prev() {
		t.Error("Prev() on page 1 should be rejected")
	}
	if !p.Next() || p.Page() != 2 {
		t.Errorf("Next() should land on page 2, got %d", p.Page())
	}
	p.Next()
	if p.Next() {
		t.Error("Next() past the last page should be rejected")
	}
}

func TestPageFor(t *testing.T) {
	p := New(10)
	p.Recompute(35)

	tests := []struct{ index, want int }{
		{0, 1}, {9, 1}, {10, 2}, {22, 3}, {34, 4}, {-1, 1},
	}
	for _, tt := range tests {
		if got := p.PageFor(tt.index); got != tt.want {
			t.Errorf("PageFor(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestWindowNoEllipsisWhenFewPages(t *testing.T) {
	p := New(10)
	p.Recompute(30)

	buttons := p.Window(5)
	if len(buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(buttons))
	}
	for i, b := range buttons {
		if b.Ellipsis || b.Page != i+1 {
			t.Errorf("button %d = %+v, want plain page %d", i, b, i+1)
		}
	}
	if !buttons[0].Current {
		t.Error("page 1 should be marked current")
	}
}

func TestWindowEllipsisBothSides(t *testing.T) {
	p := New(10)
	p.Recompute(200) // 20 pages
	p.GoToPage(10)

	buttons := p.Window(5)
	// 1 … 8 9 10 11 12 … 20
	want := []Button{
		{Page: 1}, {Ellipsis: true},
		{Page: 8}, {Page: 9}, {Page: 10, Current: true}, {Page: 11}, {Page: 12},
		{Ellipsis: true}, {Page: 20},
	}
	if len(buttons) != len(want) {
		t.Fatalf("got %d buttons, want %d: %+v", len(buttons), len(want), buttons)
	}
	for i := range want {
		if buttons[i] != want[i] {
			t.Errorf("button %d = %+v, want %+v", i, buttons[i], want[i])
		}
	}
}

func TestWindowAtEdges(t *testing.T) {
	p := New(10)
	p.Recompute(200)

	// At page 1 the window hugs the left edge: no leading ellipsis
	buttons := p.Window(5)
	if buttons[0].Ellipsis || buttons[0].Page != 1 {
		t.Errorf("leading button = %+v, want page 1", buttons[0])
	}
	last := buttons[len(buttons)-1]
	if last.Page != 20 {
		t.Errorf("trailing button = %+v, want page 20", last)
	}

	p.GoToPage(20)
	buttons = p.Window(5)
	if buttons[len(buttons)-1].Page != 20 || !buttons[len(buttons)-1].Current {
		t.Errorf("at last page, trailing button = %+v", buttons[len(buttons)-1])
	}
	if buttons[0].Page != 1 {
		t.Errorf("first page should stay pinned, got %+v", buttons[0])
	}
}
