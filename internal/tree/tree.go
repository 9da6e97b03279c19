// Package tree implements a generic ordered tree addressed by paths of
// child indices. Nodes live in an arena and refer to their children by
// integer handle, so there are no parent pointers to keep consistent.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// ErrTree is wrapped by every error this package returns.
var ErrTree = errors.New("tree")

// Path addresses a node by the child index taken at each level, starting
// at the root. The empty path is the root itself.
type Path []int

// Child returns a new path one level below p. p is not modified.
func (p Path) Child(index int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = index
	return out
}

// Parent returns the path of p's parent and p's index within it.
// The root has no parent; ok is false for it.
func (p Path) Parent() (parent Path, index int, ok bool) {
	if len(p) == 0 {
		return nil, 0, false
	}
	return slices.Clone(p[:len(p)-1]), p[len(p)-1], true
}

// Equal reports whether p and q address the same node.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

type handle int

type node[T any] struct {
	value    T
	children []handle
	live     bool
}

// Tree is an ordered tree of values of type T. The zero value is not
// usable; create trees with New.
type Tree[T any] struct {
	nodes []node[T]
	free  []handle
	root  handle
}

// New creates a tree whose root holds value.
func New[T any](value T) *Tree[T] {
	t := &Tree[T]{}
	t.root = t.alloc(value)
	return t
}

func (t *Tree[T]) alloc(value T) handle {
	if n := len(t.free); n > 0 {
		h := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[h] = node[T]{value: value, live: true}
		return h
	}
	t.nodes = append(t.nodes, node[T]{value: value, live: true})
	return handle(len(t.nodes) - 1)
}

func (t *Tree[T]) release(h handle) {
	for _, c := range t.nodes[h].children {
		t.release(c)
	}
	t.nodes[h] = node[T]{}
	t.free = append(t.free, h)
}

func (t *Tree[T]) resolve(path Path) (handle, error) {
	h := t.root
	for _, index := range path {
		children := t.nodes[h].children
		if index < 0 || index >= len(children) {
			return 0, fmt.Errorf("%w: node at path %s does not exist", ErrTree, path)
		}
		h = children[index]
	}
	return h, nil
}

// Insert adds value as a child of the node at path. With at == -1 the
// child is appended, otherwise it is inserted before index at (at may
// equal the current child count). The returned path addresses the new
// child.
func (t *Tree[T]) Insert(path Path, value T, at int) (Path, error) {
	h, err := t.resolve(path)
	if err != nil {
		return nil, err
	}
	children := t.nodes[h].children
	if at == -1 {
		at = len(children)
	} else if at < 0 || at > len(children) {
		return nil, fmt.Errorf("%w: node at path %s cannot insert at index %d", ErrTree, path, at)
	}

	child := t.alloc(value)
	t.nodes[h].children = slices.Insert(t.nodes[h].children, at, child)
	return path.Child(at), nil
}

// Remove deletes the node at path. A node with children is only removed
// when prune is set, in which case its whole subtree goes with it.
func (t *Tree[T]) Remove(path Path, prune bool) error {
	parentPath, index, ok := path.Parent()
	if !ok {
		return fmt.Errorf("%w: the root cannot be removed", ErrTree)
	}
	parent, err := t.resolve(parentPath)
	if err != nil {
		return fmt.Errorf("%w: node at path %s does not exist", ErrTree, path)
	}
	children := t.nodes[parent].children
	if index < 0 || index >= len(children) {
		return fmt.Errorf("%w: node at path %s does not exist", ErrTree, path)
	}

	target := children[index]
	if !prune && len(t.nodes[target].children) > 0 {
		return fmt.Errorf("%w: node at path %s is not a leaf", ErrTree, path)
	}
	t.nodes[parent].children = slices.Delete(children, index, index+1)
	t.release(target)
	return nil
}

// Get returns the value stored at path.
func (t *Tree[T]) Get(path Path) (T, error) {
	h, err := t.resolve(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.nodes[h].value, nil
}

// Set replaces the value stored at path.
func (t *Tree[T]) Set(path Path, value T) error {
	h, err := t.resolve(path)
	if err != nil {
		return err
	}
	t.nodes[h].value = value
	return nil
}

// Node is a snapshot of one node: its value and the paths of its
// children in order.
type Node[T any] struct {
	Path     Path
	Value    T
	Children []Path
}

// Leaf reports whether the node had no children when the snapshot was taken.
func (n Node[T]) Leaf() bool {
	return len(n.Children) == 0
}

// Node returns a snapshot of the node at path.
func (t *Tree[T]) Node(path Path) (Node[T], error) {
	h, err := t.resolve(path)
	if err != nil {
		return Node[T]{}, err
	}
	n := Node[T]{
		Path:     slices.Clone(path),
		Value:    t.nodes[h].value,
		Children: make([]Path, len(t.nodes[h].children)),
	}
	for i := range t.nodes[h].children {
		n.Children[i] = path.Child(i)
	}
	return n, nil
}

// Len returns the number of nodes in the tree, root included.
func (t *Tree[T]) Len() int {
	return len(t.nodes) - len(t.free)
}

// Entry is one step of a traversal.
type Entry[T any] struct {
	Path  Path
	Leaf  bool
	Value T
}

// All returns a depth-first, pre-order traversal of the tree. Each call
// starts from the root again. The tree must not be modified while the
// sequence is being consumed.
func (t *Tree[T]) All() iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		t.walk(t.root, Path{}, yield)
	}
}

func (t *Tree[T]) walk(h handle, path Path, yield func(Entry[T]) bool) bool {
	n := &t.nodes[h]
	if !yield(Entry[T]{Path: path, Leaf: len(n.children) == 0, Value: n.value}) {
		return false
	}
	for i, c := range n.children {
		if !t.walk(c, path.Child(i), yield) {
			return false
		}
	}
	return true
}
