// Package trees reconstructs a folder hierarchy from a flat record collection
// for display.
package trees

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"
)

// NoParent marks the root node.
const NoParent = -1

// FolderNode is one path segment. Leaves are files; everything else is a folder.
type FolderNode struct {
	Name     string
	Parent   int
	Children []int
}

// IsLeaf reports whether the node has no children.
func (n *FolderNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// FolderTree stores nodes in an arena; index 0 is the unnamed root.
type FolderTree struct {
	nodes []FolderNode
}

// Build creates the hierarchy in one pass over records.
//
// records must already be sorted by path; this is not checked. The builder
// keeps a cursor on the previous record's branch and climbs only to the
// shared prefix, which keeps the pass linear in the number of segments.
// Unsorted input still lands in the right folders, but children are then
// ordered by first appearance instead of by name.
func Build(records []types.FileRecord) *FolderTree {
	pathUtils := common.NewPathUtils()
	tree := &FolderTree{nodes: []FolderNode{{Parent: NoParent}}}

	cursor := []int{0}
	var cursorNames []string

	for _, r := range records {
		segments := pathUtils.Segments(r.Path)

		shared := 0
		for shared < len(segments) && shared < len(cursorNames) && segments[shared] == cursorNames[shared] {
			shared++
		}
		cursor = cursor[:shared+1]
		cursorNames = cursorNames[:shared]

		for _, name := range segments[shared:] {
			parent := cursor[len(cursor)-1]
			cursor = append(cursor, tree.child(parent, name))
			cursorNames = append(cursorNames, name)
		}
	}

	return tree
}

// child returns the index of parent's child called name, creating it if needed.
func (t *FolderTree) child(parent int, name string) int {
	for _, c := range t.nodes[parent].Children {
		if t.nodes[c].Name == name {
			return c
		}
	}
	t.nodes = append(t.nodes, FolderNode{Name: name, Parent: parent})
	idx := len(t.nodes) - 1
	t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
	return idx
}

// Len returns the number of nodes including the root.
func (t *FolderTree) Len() int {
	return len(t.nodes)
}

// Root returns the root node.
func (t *FolderTree) Root() *FolderNode {
	return &t.nodes[0]
}

// Node returns the node at index i.
func (t *FolderTree) Node(i int) *FolderNode {
	return &t.nodes[i]
}

// Find resolves path segment by segment from the root.
func (t *FolderTree) Find(path string) (*FolderNode, bool) {
	at := 0
	for _, name := range common.NewPathUtils().Segments(path) {
		next := NoParent
		for _, c := range t.nodes[at].Children {
			if t.nodes[c].Name == name {
				next = c
				break
			}
		}
		if next == NoParent {
			return nil, false
		}
		at = next
	}
	return &t.nodes[at], true
}

// Render writes one line per node below the root. First-level folders are
// flush left; deeper entries hang off box-drawing connectors.
func (t *FolderTree) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, c := range t.nodes[0].Children {
		t.renderNode(bw, c, "", "", true)
	}
	return bw.Flush()
}

func (t *FolderTree) renderNode(w *bufio.Writer, idx int, prefix, connector string, top bool) {
	node := &t.nodes[idx]

	w.WriteString(prefix)
	w.WriteString(connector)
	w.WriteString(node.Name)
	switch n := len(node.Children); {
	case n == 1:
		w.WriteString(" (1 child)")
	case n > 1:
		fmt.Fprintf(w, " (%d children)", n)
	}
	w.WriteByte('\n')

	childPrefix := prefix
	if !top {
		if connector == lastBranch {
			childPrefix += blankColumn
		} else {
			childPrefix += pipeColumn
		}
	}

	for i, c := range node.Children {
		conn := midBranch
		if i == len(node.Children)-1 {
			conn = lastBranch
		}
		t.renderNode(w, c, childPrefix, conn, false)
	}
}

const (
	midBranch   = " ├── "
	lastBranch  = " └── "
	pipeColumn  = " │   "
	blankColumn = "     "
)

// String renders the tree into a string.
func (t *FolderTree) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}
