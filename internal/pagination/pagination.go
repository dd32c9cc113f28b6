// Package pagination slices the filtered card list into pages. The pager is a
// derived view: every filter mutation recomputes it from the visible set, so
// its state can never disagree with what the list is showing.
package pagination

// Pager tracks the current page over a visible set of known size
type Pager struct {
	page    int
	perPage int
	total   int
}

// New returns a pager on page 1 with the given page size
func New(perPage int) Pager {
	if perPage < 1 {
		perPage = 1
	}
	return Pager{page: 1, perPage: perPage}
}

// Recompute updates the total and clamps the current page into
// [1, max(1, pageCount)]. Called after every filter mutation, before any
// rendering, so a stale page index never survives a shrinking result set.
func (p *Pager) Recompute(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if max := p.PageCount(); p.page > max {
		p.page = max
	}
	if p.page < 1 {
		p.page = 1
	}
}

// Reset returns to page 1
func (p *Pager) Reset() {
	p.page = 1
}

// Page is the current 1-based page number
func (p Pager) Page() int { return p.page }

// PerPage is the fixed page size
func (p Pager) PerPage() int { return p.perPage }

// Total is the size of the visible set at last recompute
func (p Pager) Total() int { return p.total }

// PageCount is ceil(total/perPage), never less than 1
func (p Pager) PageCount() int {
	n := (p.total + p.perPage - 1) / p.perPage
	if n < 1 {
		n = 1
	}
	return n
}

// GoToPage moves to page n. Out-of-range targets are rejected and the current
// page is kept; reports whether the move happened.
func (p *Pager) GoToPage(n int) bool {
	if n < 1 || n > p.PageCount() {
		return false
	}
	p.page = n
	return true
}

// Next advances one page if possible
func (p *Pager) Next() bool { return p.GoToPage(p.page + 1) }

// Prev steps back one page if possible
func (p *Pager) Prev() bool { return p.GoToPage(p.page - 1) }

// Bounds returns the half-open slice [start, end) of the visible set that the
// current page covers
func (p Pager) Bounds() (start, end int) {
	start = (p.page - 1) * p.perPage
	if start > p.total {
		start = p.total
	}
	end = start + p.perPage
	if end > p.total {
		end = p.total
	}
	return start, end
}

// PageFor returns the page on which the item at the given visible-set index
// falls. Used to switch pages before scrolling a card into view.
func (p Pager) PageFor(index int) int {
	if index < 0 {
		return 1
	}
	return index/p.perPage + 1
}

// Button is one element of the rendered page control: either a numbered page
// (possibly the current one) or an ellipsis gap.
type Button struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// Window produces the page buttons: a sliding window of the given width
// centered on the current page, with the first and last pages pinned and
// ellipsis buttons marking any gap.
func (p Pager) Window(width int) []Button {
	count := p.PageCount()
	if width < 1 {
		width = 1
	}
	if count <= width {
		return p.run(1, count)
	}

	start := p.page - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > count {
		start = count - width + 1
	}
	end := start + width - 1

	var buttons []Button
	if start > 1 {
		buttons = append(buttons, Button{Page: 1, Current: p.page == 1})
		if start > 2 {
			buttons = append(buttons, Button{Ellipsis: true})
		}
	}
	buttons = append(buttons, p.run(start, end)...)
	if end < count {
		if end < count-1 {
			buttons = append(buttons, Button{Ellipsis: true})
		}
		buttons = append(buttons, Button{Page: count, Current: p.page == count})
	}
	return buttons
}

func (p Pager) run(from, to int) []Button {
	buttons := make([]Button, 0, to-from+1)
	for n := from; n <= to; n++ {
		buttons = append(buttons, Button{Page: n, Current: n == p.page})
	}
	return buttons
}
