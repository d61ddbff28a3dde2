package listing

import "strconv"

// Labels of the non-numeric pagination entries.
const (
	LabelPrevious = "&laquo; Previous"
	LabelNext     = "Next &raquo;"
	LabelGap      = "..."
)

// gap marks an elided run of pages inside a window.
const gap = 0

// Links builds the pagination entries for current out of lastPage. Every URL
// carries the full params mapping with only the page replaced.
func (x *Executor) Links(path string, params QueryParams, current, lastPage int) []PageLink {
	base := params.Without(ParamPage)
	pageURL := func(page int) *string {
		target := base.WithPage(page).URL(path)
		return &target
	}

	pages := Window(current, lastPage, x.onEachSide)
	links := make([]PageLink, 0, len(pages)+2)

	prev := PageLink{Label: LabelPrevious}
	if current > 1 {
		prev.URL = pageURL(current - 1)
	}
	links = append(links, prev)

	for _, page := range pages {
		if page == gap {
			links = append(links, PageLink{Label: LabelGap})
			continue
		}
		links = append(links, PageLink{
			URL:    pageURL(page),
			Label:  strconv.Itoa(page),
			Active: page == current,
		})
	}

	next := PageLink{Label: LabelNext}
	if current < lastPage {
		next.URL = pageURL(current + 1)
	}
	return append(links, next)
}

// Window lists the page numbers to show, with 0 marking a gap. Short ranges
// are shown in full; longer ones keep the first two and last two pages plus
// onEachSide pages around current.
func Window(current, lastPage, onEachSide int) []int {
	if lastPage < 1 {
		lastPage = 1
	}
	if lastPage < onEachSide*2+8 {
		return pageRange(1, lastPage)
	}

	window := onEachSide + 4
	start := pageRange(1, 2)
	finish := pageRange(lastPage-1, lastPage)

	switch {
	case current <= window:
		out := pageRange(1, window+onEachSide)
		out = append(out, gap)
		return append(out, finish...)
	case current > lastPage-window:
		out := append(start, gap)
		return append(out, pageRange(lastPage-(window+onEachSide-1), lastPage)...)
	default:
		out := append(start, gap)
		out = append(out, pageRange(current-onEachSide, current+onEachSide)...)
		out = append(out, gap)
		return append(out, finish...)
	}
}

func pageRange(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for page := from; page <= to; page++ {
		out = append(out, page)
	}
	return out
}
