package cpu

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16

// Stack is the bounded call stack of return addresses.
type Stack struct {
	entries [StackDepth]uint16
	size    int
}

func (s *Stack) Push(address uint16) error {
	if s.size == StackDepth {
		return ErrStackOverflow
	}
	s.entries[s.size] = address
	s.size++
	return nil
}

func (s *Stack) Pop() (uint16, error) {
	if s.size == 0 {
		return 0, ErrStackUnderflow
	}
	s.size--
	return s.entries[s.size], nil
}

func (s *Stack) Len() int {
	return s.size
}

func (s *Stack) Reset() {
	*s = Stack{}
}
