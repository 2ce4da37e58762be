package ledger

import "sync"

// Violation reasons reported by Chain.Verify.
const (
	ReasonHashMismatch = "HASH_MISMATCH"
	ReasonBrokenLink   = "BROKEN_LINK"
)

// Violation describes the first block that breaks the chain.
type Violation struct {
	Position int    `json:"position"`
	Index    int64  `json:"index"`
	Reason   string `json:"reason"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Chain is an append-only sequence of blocks. All methods are safe for
// concurrent use; appends are serialised by the chain's write lock.
type Chain struct {
	mu     sync.RWMutex
	blocks []Block
}

func NewChain() *Chain {
	return &Chain{blocks: make([]Block, 0)}
}

// Append adds a block for a preformatted payload. The block timestamp is the
// text after the payload's last separator.
func (c *Chain) Append(data string) Block {
	return c.append(timestampFromData(data), data)
}

// AppendEntry adds a block for a structured entry, using the full formatted
// timestamp rather than re-parsing it out of the payload.
func (c *Chain) AppendEntry(e Entry) Block {
	return c.append(FormatTimestamp(e.Timestamp), e.Data())
}

func (c *Chain) append(timestamp, data string) Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	previousHash := GenesisPreviousHash
	if n := len(c.blocks); n > 0 {
		previousHash = c.blocks[n-1].Hash
	}

	block := newBlock(int64(len(c.blocks)), timestamp, data, previousHash)
	c.blocks = append(c.blocks, block)
	return block
}

// IsValid reports whether every block after the first matches its own hash
// and links to its predecessor.
func (c *Chain) IsValid() bool {
	_, broken := c.Verify()
	return !broken
}

// Verify walks the chain and returns the first violation, if any.
func (c *Chain) Verify() (Violation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := 1; i < len(c.blocks); i++ {
		current := c.blocks[i]
		previous := c.blocks[i-1]

		if expected := current.RecomputeHash(); current.Hash != expected {
			return Violation{
				Position: i,
				Index:    current.Index,
				Reason:   ReasonHashMismatch,
				Expected: expected,
				Actual:   current.Hash,
			}, true
		}

		if current.PreviousHash != previous.Hash {
			return Violation{
				Position: i,
				Index:    current.Index,
				Reason:   ReasonBrokenLink,
				Expected: previous.Hash,
				Actual:   current.PreviousHash,
			}, true
		}
	}

	return Violation{}, false
}

func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Last returns the most recent block.
func (c *Chain) Last() (Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.blocks) == 0 {
		return Block{}, false
	}
	return c.blocks[len(c.blocks)-1], true
}

// Blocks returns a copy of the chain's blocks.
func (c *Chain) Blocks() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// DiscardLast removes the tail block if its hash is hash. It is meant for a
// block that was appended but never persisted.
func (c *Chain) DiscardLast(hash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.blocks)
	if n == 0 || c.blocks[n-1].Hash != hash {
		return false
	}
	c.blocks = c.blocks[:n-1]
	return true
}

// ReplaceWith swaps in the blocks of other, e.g. after reloading from storage.
func (c *Chain) ReplaceWith(other *Chain) {
	blocks := other.Blocks()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = blocks
}
