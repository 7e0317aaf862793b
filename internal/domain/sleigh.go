package domain

import (
	"fmt"
	"math"
	"sort"
)

// capacityEpsilon absorbs floating point drift when summing decimal weights.
const capacityEpsilon = 1e-9

type hold struct {
	article Article
	pieces  int
}

// Sleigh aggregate tracking onboard cargo against the specification limits.
// Weight and volume are kept as running totals; no operation may leave them
// above the specification maxima.
type Sleigh struct {
	spec   Specification
	cargo  map[int]*hold
	weight float64
	volume float64
}

func NewSleigh(spec Specification) *Sleigh {
	return &Sleigh{
		spec:  spec,
		cargo: make(map[int]*hold),
	}
}

// Room returns how many more pieces of the article fit on board.
// An article with neither weight nor volume is unbounded.
func (s *Sleigh) Room(a Article) int {
	byWeight := piecesFitting(s.spec.MaxWeight-s.weight, a.Weight)
	byVolume := piecesFitting(s.spec.MaxVolume-s.volume, a.Volume)
	return max(0, min(byWeight, byVolume))
}

// piecesFitting clamps to math.MaxInt; a tiny per-piece size would
// otherwise overflow the conversion.
func piecesFitting(free, per float64) int {
	if per <= 0 {
		return math.MaxInt
	}
	q := math.Floor((free + capacityEpsilon) / per)
	if q >= math.MaxInt {
		return math.MaxInt
	}
	return int(q)
}

// Load puts pieces of an article on board.
func (s *Sleigh) Load(a Article, pieces int) error {
	if pieces < 0 {
		return fmt.Errorf("load sleigh: article %d: pieces must not be negative, got %d", a.ArticleID, pieces)
	}
	if pieces == 0 {
		return nil
	}
	if room := s.Room(a); pieces > room {
		return fmt.Errorf(
			"load sleigh: article %d: %w (requested=%d room=%d)",
			a.ArticleID, ErrCapacityExceeded, pieces, room,
		)
	}

	h, ok := s.cargo[a.ArticleID]
	if !ok {
		h = &hold{article: a}
		s.cargo[a.ArticleID] = h
	}
	h.pieces += pieces
	s.weight += float64(pieces) * a.Weight
	s.volume += float64(pieces) * a.Volume
	return nil
}

// Deliver hands over a single piece of the article.
func (s *Sleigh) Deliver(articleID int) error {
	h, ok := s.cargo[articleID]
	if !ok || h.pieces == 0 {
		return fmt.Errorf("deliver: article %d: %w", articleID, ErrNotOnBoard)
	}

	h.pieces--
	s.weight -= h.article.Weight
	s.volume -= h.article.Volume
	if h.pieces == 0 {
		delete(s.cargo, articleID)
	}
	if len(s.cargo) == 0 {
		s.weight, s.volume = 0, 0
	}
	return nil
}

// Has reports whether at least one piece of the article is on board.
func (s *Sleigh) Has(articleID int) bool {
	h, ok := s.cargo[articleID]
	return ok && h.pieces > 0
}

// Pieces returns the onboard count of an article.
func (s *Sleigh) Pieces(articleID int) int {
	if h, ok := s.cargo[articleID]; ok {
		return h.pieces
	}
	return 0
}

// Unload empties the sleigh and returns what was left on board.
func (s *Sleigh) Unload() map[int]int {
	left := make(map[int]int, len(s.cargo))
	for id, h := range s.cargo {
		left[id] = h.pieces
	}
	s.cargo = make(map[int]*hold)
	s.weight, s.volume = 0, 0
	return left
}

func (s *Sleigh) Empty() bool { return len(s.cargo) == 0 }

func (s *Sleigh) Weight() float64 { return s.weight }

func (s *Sleigh) Volume() float64 { return s.volume }

// Manifest lists the onboard article ids in ascending order.
func (s *Sleigh) Manifest() []int {
	ids := make([]int, 0, len(s.cargo))
	for id := range s.cargo {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
