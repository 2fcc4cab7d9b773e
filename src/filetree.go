package src

import (
	"sort"
	"strings"
)

// FileNode is one node of the derived project tree. A directory keeps its
// children keyed by path segment; a leaf wraps the plan entry for one file.
type FileNode struct {
	File     *FileDescriptor
	Children map[string]*FileNode
}

func (n *FileNode) IsDir() bool { return n.File == nil }

// BuildFileTree folds a flat descriptor list into a nested tree. Paths use
// "/" separators. Later entries win on duplicate paths. When a name is
// claimed as both a file and a directory, the directory wins no matter
// which arrived first.
func BuildFileTree(files []FileDescriptor) *FileNode {
	root := &FileNode{Children: map[string]*FileNode{}}
	for _, fd := range files {
		segments := strings.Split(strings.Trim(fd.Path, "/"), "/")
		if len(segments) == 1 && segments[0] == "" {
			continue
		}
		node := root
		for _, seg := range segments[:len(segments)-1] {
			if seg == "" {
				continue
			}
			child, ok := node.Children[seg]
			if !ok || !child.IsDir() {
				child = &FileNode{Children: map[string]*FileNode{}}
				node.Children[seg] = child
			}
			node = child
		}
		last := segments[len(segments)-1]
		if child, ok := node.Children[last]; ok && child.IsDir() {
			// The directory interpretation wins in both directions, so the
			// tree does not depend on insertion order.
			continue
		}
		leaf := fd
		node.Children[last] = &FileNode{File: &leaf}
	}
	return root
}

// OrderedNames returns the node's child names in display order: directories
// first, then files, each group ascending by name. The order is computed
// here, never stored, so the tree itself stays insertion-order agnostic.
func (n *FileNode) OrderedNames() []string {
	var dirs, leaves []string
	for name, child := range n.Children {
		if child.IsDir() {
			dirs = append(dirs, name)
		} else {
			leaves = append(leaves, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(leaves)
	return append(dirs, leaves...)
}

// TreeRow is one line of a flattened tree walk, ready for list rendering.
type TreeRow struct {
	Depth int
	Name  string
	Path  string
	Dir   bool
}

// FlattenFileTree walks the tree in display order and returns one row per
// node. Row.Path is the full slash-joined path, usable as a file-map key.
func FlattenFileTree(root *FileNode) []TreeRow {
	var rows []TreeRow
	var walk func(n *FileNode, prefix string, depth int)
	walk = func(n *FileNode, prefix string, depth int) {
		for _, name := range n.OrderedNames() {
			child := n.Children[name]
			full := name
			if prefix != "" {
				full = prefix + "/" + name
			}
			rows = append(rows, TreeRow{Depth: depth, Name: name, Path: full, Dir: child.IsDir()})
			if child.IsDir() {
				walk(child, full, depth+1)
			}
		}
	}
	walk(root, "", 0)
	return rows
}

// RenderFileTree renders the tree as indented ASCII, directories suffixed
// with "/".
func RenderFileTree(root *FileNode) string {
	var b strings.Builder
	for _, row := range FlattenFileTree(root) {
		b.WriteString(strings.Repeat("  ", row.Depth))
		b.WriteString("└─ ")
		b.WriteString(row.Name)
		if row.Dir {
			b.WriteString("/")
		}
		b.WriteString("\n")
	}
	return b.String()
}
