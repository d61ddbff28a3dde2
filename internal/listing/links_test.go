package listing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWindow(t *testing.T) {
	cases := []struct {
		name       string
		current    int
		last       int
		onEachSide int
		want       []int
	}{
		{name: "single page", current: 1, last: 1, onEachSide: 1, want: []int{1}},
		{name: "short range shown in full", current: 4, last: 9, onEachSide: 1, want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "near beginning", current: 2, last: 20, onEachSide: 1, want: []int{1, 2, 3, 4, 5, 6, 0, 19, 20}},
		{name: "middle", current: 10, last: 20, onEachSide: 1, want: []int{1, 2, 0, 9, 10, 11, 0, 19, 20}},
		{name: "near end", current: 18, last: 20, onEachSide: 1, want: []int{1, 2, 0, 15, 16, 17, 18, 19, 20}},
		{name: "wider radius", current: 15, last: 30, onEachSide: 2, want: []int{1, 2, 0, 13, 14, 15, 16, 17, 0, 29, 30}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Window(tc.current, tc.last, tc.onEachSide)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("window mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinks_FirstPage(t *testing.T) {
	x := NewExecutor()
	links := x.Links("/tasks", QueryParams{"status": "pending"}, 1, 3)

	str := func(s string) *string { return &s }
	want := []PageLink{
		{Label: LabelPrevious},
		{URL: str("/tasks?page=1&status=pending"), Label: "1", Active: true},
		{URL: str("/tasks?page=2&status=pending"), Label: "2"},
		{URL: str("/tasks?page=3&status=pending"), Label: "3"},
		{URL: str("/tasks?page=2&status=pending"), Label: LabelNext},
	}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestLinks_LastPageDisablesNext(t *testing.T) {
	links := NewExecutor().Links("/tasks", QueryParams{"page": "3"}, 3, 3)

	last := links[len(links)-1]
	if last.Label != LabelNext || last.URL != nil {
		t.Fatalf("expected inert next link, got %+v", last)
	}
	if links[0].URL == nil || *links[0].URL != "/tasks?page=2" {
		t.Fatalf("unexpected previous link %+v", links[0])
	}
}

func TestLinks_GapsAreInert(t *testing.T) {
	links := NewExecutor().Links("/projects", nil, 10, 20)

	gaps := 0
	for _, link := range links {
		if link.Label == LabelGap {
			gaps++
			if link.URL != nil || link.Active {
				t.Fatalf("gap must be inert: %+v", link)
			}
		}
	}
	if gaps != 2 {
		t.Fatalf("expected two gaps, got %d", gaps)
	}
}
