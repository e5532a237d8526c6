package dictionary

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// node is one character of a spelling. A terminal node carries the symbol
// sequence of the spelling ending there; interior nodes carry nil.
type node struct {
	children map[rune]*node
	symbols  []string
}

// Dictionary is a trie over lyric spellings. It is built exactly once; until
// the build commits, every lookup returns nil rather than blocking. After the
// commit the structure is immutable, so reads only take the lock long enough
// to fetch the root.
type Dictionary struct {
	mtx      sync.Mutex
	root     *node
	building bool
}

func New() *Dictionary {
	return &Dictionary{}
}

// Load builds the index from r on the calling goroutine. A second call, or a
// call racing a LoadAsync, is a no-op.
func (d *Dictionary) Load(r io.Reader) {
	if !d.begin() {
		return
	}
	d.build(r)
}

// LoadAsync builds the index in the background. open runs on the build
// goroutine so file access stays off the caller's path. A failed open leaves
// the dictionary permanently not ready; lookups then degrade to misses.
func (d *Dictionary) LoadAsync(open func() (io.ReadCloser, error)) {
	if !d.begin() {
		return
	}
	go func() {
		src, err := open()
		if err != nil {
			logrus.WithError(err).Error("dictionary: build failed, all lookups will miss")
			return
		}
		defer src.Close()
		d.build(src)
	}()
}

func (d *Dictionary) begin() bool {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.root != nil || d.building {
		return false
	}
	d.building = true
	return true
}

func (d *Dictionary) build(r io.Reader) {
	root, count := parse(r)
	d.mtx.Lock()
	d.root = root
	d.mtx.Unlock()
	logrus.WithField("spellings", count).Info("dictionary: index built")
}

// Ready reports whether the index has been committed.
func (d *Dictionary) Ready() bool {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.root != nil
}

// Lookup walks the trie one character at a time. It returns nil when the
// spelling is missing or the index is not built yet; a hit is never empty.
func (d *Dictionary) Lookup(spelling string) []string {
	d.mtx.Lock()
	root := d.root
	d.mtx.Unlock()
	if root == nil {
		return nil
	}
	cur := root
	for _, r := range strings.ToLower(spelling) {
		next, ok := cur.children[r]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur.symbols
}

func parse(r io.Reader) (*node, int) {
	root := &node{children: map[rune]*node{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		symbols := make([]string, 0, len(fields)-1)
		for _, sym := range fields[1:] {
			symbols = append(symbols, strings.ToLower(strings.TrimRight(sym, "0123456789")))
		}
		insert(root, strings.ToLower(fields[0]), symbols)
		count++
	}
	if err := scanner.Err(); err != nil {
		logrus.WithError(err).Error("dictionary: read failed, index truncated")
	}
	return root, count
}

// insert is an iterative walk; spellings can be arbitrarily long and must not
// recurse.
func insert(root *node, spelling string, symbols []string) {
	cur := root
	for _, r := range spelling {
		next, ok := cur.children[r]
		if !ok {
			next = &node{children: map[rune]*node{}}
			cur.children[r] = next
		}
		cur = next
	}
	cur.symbols = symbols
}
