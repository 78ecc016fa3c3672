package index

import (
	"sort"
	"strings"
)

type trieNode struct {
	children map[rune]*trieNode
	end      bool
	ids      IDSet
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[rune]*trieNode),
		ids:      make(IDSet),
	}
}

// PrefixIndex maps lowercase title prefixes to the ids of records whose title
// starts with that prefix. Every node carries the ids of all titles passing
// through it, so a lookup costs one step per rune of the prefix.
type PrefixIndex struct {
	root *trieNode
}

func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{root: newTrieNode()}
}

// Insert adds every prefix of the lowercased title, recording id on each
// traversed node. The root collects every inserted id, which makes an empty
// prefix match all records.
func (p *PrefixIndex) Insert(title string, id int) {
	node := p.root
	node.ids.Add(id)
	for _, r := range strings.ToLower(title) {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		child.ids.Add(id)
		node = child
	}
	node.end = true
}

// Search returns the ids of records whose title starts with prefix, ignoring
// case. A prefix that leaves the trie yields an empty set. The returned set is
// a copy.
func (p *PrefixIndex) Search(prefix string) IDSet {
	node := p.walk(prefix)
	if node == nil {
		return make(IDSet)
	}
	return node.ids.Clone()
}

// Complete returns the distinct lowercase titles stored under prefix, sorted.
func (p *PrefixIndex) Complete(prefix string) []string {
	lower := strings.ToLower(prefix)
	node := p.walk(lower)
	if node == nil {
		return []string{}
	}
	out := make([]string, 0)
	collect(node, []rune(lower), &out)
	sort.Strings(out)
	return out
}

func (p *PrefixIndex) walk(prefix string) *trieNode {
	node := p.root
	for _, r := range strings.ToLower(prefix) {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

func collect(node *trieNode, word []rune, out *[]string) {
	if node.end {
		*out = append(*out, string(word))
	}
	keys := make([]rune, 0, len(node.children))
	for r := range node.children {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, r := range keys {
		collect(node.children[r], append(word, r), out)
	}
}
