package agent

import (
	"math/rand"
	"sync"
	"time"
)

// Chance that a reply gets a persona flourish.
const decorationChance = 0.1

var wittyPrefixes = []string{
	"As always, at your service...",
	"Ready to assist, as I have been since the dawn of... well, my last reboot...",
	"Your friendly neighborhood AI, reporting for duty...",
	"Ah, another chance to prove I'm more than just clever algorithms...",
	"Processing your request with my usual digital charm...",
}

var wittyPostscripts = []string{
	"...but I suppose you knew that already.",
	"...and that's my perfectly calculated opinion.",
	"...trust me, I've done the math. Several times.",
	"...at least, that's what my training suggests.",
	"...and I stand by that statement until my next update.",
}

// Composer occasionally decorates a generated reply with a fixed
// persona phrase. The randomness source is injected so tests can force
// each branch.
type Composer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewComposer builds a composer. rng may be nil outside of tests.
func NewComposer(rng *rand.Rand) *Composer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{rng: rng}
}

func (c *Composer) Compose(text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rng.Float64() >= decorationChance {
		return text
	}

	if c.rng.Intn(2) == 0 {
		return wittyPrefixes[c.rng.Intn(len(wittyPrefixes))] + " " + text
	}
	return text + " " + wittyPostscripts[c.rng.Intn(len(wittyPostscripts))]
}
