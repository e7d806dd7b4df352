package entity

import (
	"snake-hamiltonian/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

// Snake is the agent walking the cycle. Body[0] is the head, the last
// element the tail.
type Snake struct {
	Body          []types.Point
	Direction     types.Direction
	Cursor        int // cycle step of the head
	Score         int
	Dead          bool
	GameOver      bool
	LastCollision CollisionType
}

// NewSnake places a snake on body (head first) facing direction, with its
// cursor at the head's cycle step.
func NewSnake(body []types.Point, direction types.Direction, cursor int) *Snake {
	b := make([]types.Point, len(body))
	copy(b, body)
	return &Snake{
		Body:      b,
		Direction: direction,
		Cursor:    cursor,
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// SetDirection changes the heading unless dir reverses onto the neck.
// It reports whether the change was accepted.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if dir == types.None || (s.Direction != types.None && dir == s.Direction.Opposite()) {
		return false
	}
	s.Direction = dir
	return true
}

// NextHead is the cell the head would enter with the current heading.
func (s *Snake) NextHead() types.Point {
	return s.GetHead().Add(s.Direction)
}

// Move prepends newHead to the body.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Occupies reports whether p is any body cell.
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the body safe to hand to renderers.
func (s *Snake) Snapshot() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}
