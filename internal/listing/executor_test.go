package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

type record struct {
	ID        uuid.UUID
	Name      string
	Status    string
	DueDate   *time.Time
	CreatedAt time.Time
}

func recordField(r record, column string) any {
	switch column {
	case ColumnID:
		return r.ID
	case ColumnName:
		return r.Name
	case ColumnStatus:
		return r.Status
	case ColumnDueDate:
		if r.DueDate == nil {
			return nil
		}
		return *r.DueDate
	case ColumnCreatedAt:
		return r.CreatedAt
	}
	return nil
}

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func recordID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

// seedRecords creates n pending records created one hour apart.
func seedRecords(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{
			ID:        recordID(i + 1),
			Name:      fmt.Sprintf("Project %02d", i+1),
			Status:    "pending",
			CreatedAt: epoch.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func day(n int) *time.Time {
	t := epoch.AddDate(0, 0, n)
	return &t
}

func run(t *testing.T, x *Executor, records []record, params QueryParams) Page[record] {
	t.Helper()
	page, err := Execute[record](context.Background(), x, Request{
		Resource: Projects,
		Path:     "/projects",
		Params:   params,
	}, NewSliceSource(records, recordField))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	return page
}

func names(page Page[record]) []string {
	out := make([]string, len(page.Data))
	for i, r := range page.Data {
		out[i] = r.Name
	}
	return out
}

func TestExecute_CompletedSortedByDueDate(t *testing.T) {
	records := seedRecords(25)
	records[4].Status, records[4].DueDate = "completed", day(9)
	records[11].Status, records[11].DueDate = "completed", day(2)
	records[19].Status, records[19].DueDate = "completed", day(5)

	page := run(t, NewExecutor(), records, QueryParams{
		"status":         "completed",
		"sort_field":     "due_date",
		"sort_direction": "asc",
	})

	want := []string{"Project 12", "Project 20", "Project 05"}
	if diff := cmp.Diff(want, names(page)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if page.Meta.Total != 3 || page.Meta.LastPage != 1 || page.Meta.CurrentPage != 1 {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
}

func TestExecute_NameFilterIsCaseInsensitive(t *testing.T) {
	records := seedRecords(5)
	records[2].Name = "Alpha Project"

	for _, term := range []string{"Alpha", "alpha", "ALPHA", "pha pro"} {
		page := run(t, NewExecutor(), records, QueryParams{"name": term})
		if diff := cmp.Diff([]string{"Alpha Project"}, names(page)); diff != "" {
			t.Fatalf("term %q (-want +got):\n%s", term, diff)
		}
	}
}

func TestExecute_DefaultOrderingIsNewestFirstWithIDTieBreak(t *testing.T) {
	records := seedRecords(4)
	// Records 3 and 4 share a creation time; the lower id must come first.
	records[3].CreatedAt = records[2].CreatedAt

	page := run(t, NewExecutor(), records, QueryParams{})

	want := []string{"Project 03", "Project 04", "Project 02", "Project 01"}
	if diff := cmp.Diff(want, names(page)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestExecute_SortTieBreakByID(t *testing.T) {
	records := seedRecords(6)
	page := run(t, NewExecutor(), records, QueryParams{"sort_field": "status", "sort_direction": "desc"})

	// All statuses are equal, so ids decide regardless of direction.
	want := []string{"Project 01", "Project 02", "Project 03", "Project 04", "Project 05", "Project 06"}
	if diff := cmp.Diff(want, names(page)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestExecute_NullDueDatesSortLast(t *testing.T) {
	records := seedRecords(3)
	records[1].DueDate = day(1)
	records[2].DueDate = day(3)

	for _, direction := range []string{"asc", "desc"} {
		page := run(t, NewExecutor(), records, QueryParams{"sort_field": "due_date", "sort_direction": direction})
		if got := page.Data[len(page.Data)-1].Name; got != "Project 01" {
			t.Fatalf("%s: expected null due date last, got %s", direction, got)
		}
	}
}

func TestExecute_ClampsRequestedPage(t *testing.T) {
	records := seedRecords(25)
	x := NewExecutor()

	cases := []struct {
		page string
		want int
	}{
		{page: "0", want: 1},
		{page: "-4", want: 1},
		{page: "abc", want: 1},
		{page: "", want: 1},
		{page: "2", want: 2},
		{page: "8", want: 3},
	}
	for _, tc := range cases {
		page := run(t, x, records, QueryParams{"page": tc.page})
		if page.Meta.CurrentPage != tc.want {
			t.Fatalf("page %q: expected %d, got %d", tc.page, tc.want, page.Meta.CurrentPage)
		}
		if page.Meta.LastPage != 3 {
			t.Fatalf("expected last page 3, got %d", page.Meta.LastPage)
		}
	}

	last := run(t, x, records, QueryParams{"page": "8"})
	if len(last.Data) != 5 || last.Meta.From != 21 || last.Meta.To != 25 {
		t.Fatalf("unexpected last page slice: %d rows, from %d to %d", len(last.Data), last.Meta.From, last.Meta.To)
	}
}

func TestExecute_EmptyResultIsNotAnError(t *testing.T) {
	page := run(t, NewExecutor(), seedRecords(5), QueryParams{"status": "archived", "page": "3"})

	if len(page.Data) != 0 || page.Data == nil {
		t.Fatalf("expected empty non-nil data, got %#v", page.Data)
	}
	if page.Meta.Total != 0 || page.Meta.LastPage != 1 || page.Meta.CurrentPage != 1 {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
	if page.Meta.From != 0 || page.Meta.To != 0 {
		t.Fatalf("expected zero from/to, got %d/%d", page.Meta.From, page.Meta.To)
	}
}

func TestExecute_IgnoresUnknownKeysAndSortFields(t *testing.T) {
	records := seedRecords(3)
	want := names(run(t, NewExecutor(), records, QueryParams{}))

	got := names(run(t, NewExecutor(), records, QueryParams{
		"colour":         "blue",
		"sort_field":     "password",
		"sort_direction": "sideways",
	}))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unknown keys changed the result (-want +got):\n%s", diff)
	}
}

func TestExecute_IsIdempotent(t *testing.T) {
	records := seedRecords(25)
	records[7].DueDate = day(4)
	params := QueryParams{"name": "project", "sort_field": "due_date", "sort_direction": "desc", "page": "2"}

	first, err := json.Marshal(run(t, NewExecutor(), records, params))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(run(t, NewExecutor(), records, params))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("expected identical pages:\n%s\n%s", first, second)
	}
}

func TestExecute_LinksPreserveFiltersAndSort(t *testing.T) {
	records := seedRecords(40)
	params := QueryParams{
		"name":           "project",
		"status":         "pending",
		"sort_field":     "name",
		"sort_direction": "desc",
		"extra":          "kept",
		"page":           "3",
	}
	page := run(t, NewExecutor(WithPerPage(3)), records, params)
	want := params.Without(ParamPage)

	linked := 0
	for _, link := range page.Meta.Links {
		if link.URL == nil {
			continue
		}
		linked++
		target, err := url.Parse(*link.URL)
		if err != nil {
			t.Fatalf("parse %q: %v", *link.URL, err)
		}
		if target.Path != "/projects" {
			t.Fatalf("unexpected path %q", target.Path)
		}
		got := ParseQueryParams(target.Query())
		if _, ok := got.Get(ParamPage); !ok {
			t.Fatalf("link %q lacks a page", *link.URL)
		}
		if !got.Without(ParamPage).Equal(want) {
			t.Fatalf("link %q dropped params: %v", *link.URL, got)
		}
	}
	if linked == 0 {
		t.Fatalf("expected navigable links")
	}
}

func TestExecute_PropagatesSourceErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := Execute[record](context.Background(), NewExecutor(), Request{Resource: Projects, Path: "/projects"}, failingSource{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestExecute_ScopeNarrowsWithoutLeakingIntoLinks(t *testing.T) {
	records := seedRecords(30)
	for i := range records {
		if i%2 == 0 {
			records[i].Status = "completed"
		}
	}
	page, err := Execute[record](context.Background(), NewExecutor(), Request{
		Resource: Projects,
		Path:     "/projects/abc",
		Params:   QueryParams{"sort_field": "name"},
		Scope:    []Filter{{Column: ColumnStatus, Match: MatchExact, Value: "completed"}},
	}, NewSliceSource(records, recordField))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if page.Meta.Total != 15 {
		t.Fatalf("expected 15 scoped rows, got %d", page.Meta.Total)
	}
	for _, link := range page.Meta.Links {
		if link.URL != nil && ParseQuery(mustQuery(t, *link.URL)).Equal(QueryParams{}) {
			t.Fatalf("link lost its params: %s", *link.URL)
		}
		if link.URL != nil {
			if _, ok := ParseQuery(mustQuery(t, *link.URL)).Get("status"); ok {
				t.Fatalf("scope leaked into link %s", *link.URL)
			}
		}
	}
}

func mustQuery(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u.RawQuery
}

type failingSource struct{ err error }

func (f failingSource) Count(context.Context, Criteria) (int, error) { return 0, f.err }

func (f failingSource) Find(context.Context, Criteria, int, int) ([]record, error) {
	return nil, f.err
}

// growingSource gains a row after every Count, the way a store does when a
// create lands between the two reads of a request.
type growingSource struct {
	rows   []record
	pinned int
}

func (g *growingSource) Count(ctx context.Context, criteria Criteria) (int, error) {
	n, err := NewSliceSource(g.rows, recordField).Count(ctx, criteria)
	g.rows = append(g.rows, seedRecords(1)...)
	return n, err
}

func (g *growingSource) Find(ctx context.Context, criteria Criteria, limit, offset int) ([]record, error) {
	return NewSliceSource(g.rows, recordField).Find(ctx, criteria, limit, offset)
}

func (g *growingSource) Snapshot(context.Context) (Source[record], error) {
	g.pinned++
	rows := append([]record(nil), g.rows...)
	return NewSliceSource(rows, recordField), nil
}

func TestExecute_ReadsThroughOneSnapshot(t *testing.T) {
	src := &growingSource{rows: seedRecords(10)}

	page, err := Execute[record](context.Background(), NewExecutor(), Request{Resource: Projects, Path: "/projects"}, src)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if src.pinned != 1 {
		t.Fatalf("expected one snapshot, got %d", src.pinned)
	}
	if page.Meta.Total != 10 || page.Meta.LastPage != 1 || len(page.Data) != 10 {
		t.Fatalf("count and rows disagree: total=%d last=%d rows=%d", page.Meta.Total, page.Meta.LastPage, len(page.Data))
	}
}
