package combat

import (
	"slices"

	"github.com/udisondev/autobattle/internal/economy"
	"github.com/udisondev/autobattle/internal/game/skill"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/rng"
)

// Wallets are the currency collaborators of both sides. Nil means no purse.
type Wallets struct {
	Player   economy.Wallet
	Opponent economy.Wallet
}

// Context is the state of one battle: both rosters in formation order,
// the current round and the terminal outcome.
//
// Owned by a single battle; not safe for concurrent use.
type Context struct {
	Player   []*model.Unit
	Opponent []*model.Unit
	Round    int
	Outcome  model.Outcome

	book    *skill.Book
	kits    map[int]skill.Skill
	wallets [2]economy.Wallet
	rand    rng.Source
	nextID  int
	revived map[int]bool
}

// NewContext binds every unit to its skill once and returns a fresh context.
// Rosters are copied; the units themselves are owned by the context from now on.
func NewContext(player, opponent []*model.Unit, book *skill.Book, src rng.Source, wallets Wallets) *Context {
	c := &Context{
		Player:   slices.Clone(player),
		Opponent: slices.Clone(opponent),
		book:     book,
		kits:     make(map[int]skill.Skill, len(player)+len(opponent)),
		rand:     src,
		revived:  make(map[int]bool),
	}
	c.wallets[model.SidePlayer] = orNop(wallets.Player)
	c.wallets[model.SideOpponent] = orNop(wallets.Opponent)

	for _, u := range c.all() {
		c.bind(u)
		c.nextID = max(c.nextID, u.ID()+1)
	}
	return c
}

func orNop(w economy.Wallet) economy.Wallet {
	if w == nil {
		return economy.Nop{}
	}
	return w
}

func (c *Context) bind(u *model.Unit) {
	if c.book == nil {
		return
	}
	if s := c.book.Bind(u); s != nil {
		c.kits[u.ID()] = s
	}
}

// Kit returns the skill bound to u, or nil.
func (c *Context) Kit(u *model.Unit) skill.Skill {
	return c.kits[u.ID()]
}

// Roster returns the live roster slice of side.
func (c *Context) Roster(side model.Side) []*model.Unit {
	if side == model.SidePlayer {
		return c.Player
	}
	return c.Opponent
}

// Front returns the first living unit of side, or nil.
func (c *Context) Front(side model.Side) *model.Unit {
	for _, u := range c.Roster(side) {
		if u.IsAlive() {
			return u
		}
	}
	return nil
}

// Wiped reports whether side has no living unit.
func (c *Context) Wiped(side model.Side) bool {
	return c.Front(side) == nil
}

// Decide evaluates the wipe conditions. Returns OutcomeNone while both
// sides still stand.
func (c *Context) Decide() model.Outcome {
	playerDown, opponentDown := c.Wiped(model.SidePlayer), c.Wiped(model.SideOpponent)
	switch {
	case playerDown && opponentDown:
		return model.OutcomeDraw
	case opponentDown:
		return model.OutcomeVictory
	case playerDown:
		return model.OutcomeDefeat
	default:
		return model.OutcomeNone
	}
}

// Rand returns the battle's random source.
func (c *Context) Rand() rng.Source { return c.rand }

// Wallet returns the wallet of side.
func (c *Context) Wallet(side model.Side) economy.Wallet {
	return c.wallets[side]
}

// Units returns every unit of both rosters, player first.
func (c *Context) Units() []*model.Unit {
	return c.all()
}

func (c *Context) all() []*model.Unit {
	out := make([]*model.Unit, 0, len(c.Player)+len(c.Opponent))
	out = append(out, c.Player...)
	return append(out, c.Opponent...)
}

// add appends u to its side's roster and binds its skill.
func (c *Context) add(u *model.Unit) {
	if u.Side() == model.SidePlayer {
		c.Player = append(c.Player, u)
	} else {
		c.Opponent = append(c.Opponent, u)
	}
	c.bind(u)
}

func (c *Context) allocID() int {
	id := c.nextID
	c.nextID++
	return id
}
