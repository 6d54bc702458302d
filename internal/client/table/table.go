package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownColumn = errors.New("unknown column")

type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

func (d SortDir) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// next cycles none -> asc -> desc -> none.
func (d SortDir) next() SortDir {
	return (d + 1) % 3
}

// Column describes one sortable, renderable field of T.
type Column[T any] struct {
	ID      string
	Header  string
	Compare func(a, b T) int
	Cell    func(T) string
}

type Table[T any] struct {
	columns   []Column[T]
	rows      []T
	sorted    []T
	sortCol   string
	sortDir   SortDir
	pageSize  int
	pageIndex int
}

func New[T any](columns []Column[T], pageSize int) *Table[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Table[T]{columns: columns, pageSize: pageSize}
}

func (t *Table[T]) Columns() []Column[T] { return t.columns }
func (t *Table[T]) PageSize() int        { return t.pageSize }
func (t *Table[T]) PageIndex() int       { return t.pageIndex }
func (t *Table[T]) RowCount() int        { return len(t.rows) }

// SetRows replaces the data. The page index is left as is.
func (t *Table[T]) SetRows(rows []T) {
	t.rows = rows
	t.resort()
}

// Sorting returns the sorted column ID and direction.
func (t *Table[T]) Sorting() (string, SortDir) {
	return t.sortCol, t.sortDir
}

// ToggleSort advances the sort state of column id. A column other than the
// currently sorted one starts at ascending.
func (t *Table[T]) ToggleSort(id string) error {
	col, ok := t.column(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	if col.ID != t.sortCol {
		t.sortCol, t.sortDir = col.ID, SortAsc
	} else {
		t.sortDir = t.sortDir.next()
		if t.sortDir == SortNone {
			t.sortCol = ""
		}
	}
	t.resort()
	return nil
}

func (t *Table[T]) column(id string) (Column[T], bool) {
	for _, c := range t.columns {
		if strings.EqualFold(c.ID, id) {
			return c, true
		}
	}
	return Column[T]{}, false
}

func (t *Table[T]) resort() {
	col, ok := t.column(t.sortCol)
	if !ok || t.sortDir == SortNone || col.Compare == nil {
		t.sorted = t.rows
		return
	}
	t.sorted = slices.Clone(t.rows)
	cmp := col.Compare
	if t.sortDir == SortDesc {
		cmp = func(a, b T) int { return col.Compare(b, a) }
	}
	slices.SortStableFunc(t.sorted, cmp)
}

// Rows returns every row in display order.
func (t *Table[T]) Rows() []T { return t.sorted }

func (t *Table[T]) PageCount() int {
	return (len(t.rows) + t.pageSize - 1) / t.pageSize
}

// Page returns the rows of the current page. An index past the last page
// yields an empty page.
func (t *Table[T]) Page() []T {
	start := t.pageIndex * t.pageSize
	if start >= len(t.sorted) {
		return nil
	}
	end := min(start+t.pageSize, len(t.sorted))
	return t.sorted[start:end]
}

// Window returns the 1-based bounds of the current page and the row count,
// as in "Showing 11 to 20 of 23 results".
func (t *Table[T]) Window() (from, to, total int) {
	total = len(t.rows)
	page := t.Page()
	if len(page) == 0 {
		return 0, 0, total
	}
	from = t.pageIndex*t.pageSize + 1
	return from, from + len(page) - 1, total
}

// SetPageIndex moves to page i, clamped to the existing pages.
func (t *Table[T]) SetPageIndex(i int) {
	last := max(t.PageCount()-1, 0)
	t.pageIndex = min(max(i, 0), last)
}

func (t *Table[T]) CanPrev() bool { return t.pageIndex > 0 }
func (t *Table[T]) CanNext() bool { return t.pageIndex < t.PageCount()-1 }

func (t *Table[T]) FirstPage() { t.SetPageIndex(0) }
func (t *Table[T]) LastPage()  { t.SetPageIndex(t.PageCount() - 1) }

func (t *Table[T]) NextPage() {
	if t.CanNext() {
		t.pageIndex++
	}
}

func (t *Table[T]) PrevPage() {
	if t.CanPrev() {
		t.pageIndex--
	}
}

// Header returns the column headers with a sort marker on the sorted one.
func (t *Table[T]) Header() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Header
		if c.ID == t.sortCol {
			switch t.sortDir {
			case SortAsc:
				out[i] += " ^"
			case SortDesc:
				out[i] += " v"
			}
		}
	}
	return out
}

// Cells renders row as one string per column.
func (t *Table[T]) Cells(row T) []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		if c.Cell != nil {
			out[i] = c.Cell(row)
		}
	}
	return out
}
