package chrome

// Entry is one bookmark: a display label and its destination.
type Entry struct {
	Label string
	URL   string
}

// Folder is an ordered group of entries as loaded from configuration.
type Folder []Entry

// MenuNode is one selectable item in the materialized bookmark menu. A
// node with nil Items is a leaf; activating it must enqueue a
// KindNavigateTo event rather than navigating directly, so all
// navigation keeps flowing through the single dispatch point.
type MenuNode struct {
	Title string
	URL   string
	Items []MenuNode
}

// IsLeaf reports whether the node is directly navigable.
func (n MenuNode) IsLeaf() bool {
	return n.Items == nil
}

// Materialize flattens the configured folders into menu nodes, keeping
// configuration order. An empty folder contributes nothing. A folder with
// a single entry becomes one top-level leaf. A folder with two or more
// entries becomes a group whose title is the FIRST entry's label; that
// entry's URL is dropped and only entries 1.. become selectable children.
// Consuming the first entry as the title is a long-standing quirk of the
// bookmark format and is kept as-is: existing configurations depend on
// the first row naming the group.
func Materialize(folders []Folder) []MenuNode {
	var nodes []MenuNode
	for _, folder := range folders {
		switch {
		case len(folder) == 0:
			// Defined, valid input: contributes nothing.
		case len(folder) == 1:
			nodes = append(nodes, MenuNode{Title: folder[0].Label, URL: folder[0].URL})
		default:
			group := MenuNode{Title: folder[0].Label, Items: []MenuNode{}}
			for _, e := range folder[1:] {
				group.Items = append(group.Items, MenuNode{Title: e.Label, URL: e.URL})
			}
			nodes = append(nodes, group)
		}
	}
	return nodes
}
