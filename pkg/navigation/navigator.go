package navigation

// Navigator resolves navigation requests against a Table and records
// successful ones in a History. Unknown locations leave the history untouched.
type Navigator[V any] struct {
	table   *Table[V]
	history History
}

// NewNavigator binds a table to a history.
func NewNavigator[V any](table *Table[V], history History) *Navigator[V] {
	return &Navigator[V]{table: table, history: history}
}

// Push navigates to path.
func (n *Navigator[V]) Push(path string) (Match[V], error) {
	m, err := n.table.Match(path)
	if err != nil {
		return Match[V]{}, err
	}
	n.history.Push(normalizePath(stripQuery(path)))
	return m, nil
}

// PushNamed navigates to the named route.
func (n *Navigator[V]) PushNamed(name string, params map[string]string) (Match[V], error) {
	path, err := n.table.ResolveByName(name, params)
	if err != nil {
		return Match[V]{}, err
	}
	return n.Push(path)
}

// Replace navigates to path without adding a history entry.
func (n *Navigator[V]) Replace(path string) (Match[V], error) {
	m, err := n.table.Match(path)
	if err != nil {
		return Match[V]{}, err
	}
	n.history.Replace(normalizePath(stripQuery(path)))
	return m, nil
}

// ReplaceNamed navigates to the named route without adding a history entry.
func (n *Navigator[V]) ReplaceNamed(name string, params map[string]string) (Match[V], error) {
	path, err := n.table.ResolveByName(name, params)
	if err != nil {
		return Match[V]{}, err
	}
	return n.Replace(path)
}

// Current resolves the history's current location.
func (n *Navigator[V]) Current() (Match[V], error) {
	return n.table.Match(n.history.Location())
}
