// Package table is an in-memory sort and paginate engine for list views.
//
// A Table holds rows, a single-column tri-state sort (none, ascending,
// descending) and a page window of fixed size. Changing the sort keeps the
// page index. UsersView puts the admin users filter in front of a Table.
package table
