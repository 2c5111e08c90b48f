package cpu

// Jump moves the program counter relative to the next instruction.
// Backward jumps go one further, so that a zero distance backward jump
// re-executes itself.
func (st *State) Jump(distance uint8, back bool) {
	if back {
		st.Pc -= int(distance) + 1
	} else {
		st.Pc += int(distance)
	}
}

// Test evaluates a skip-branch predicate.
func (st *State) Test(cond Cond) (ok bool) {
	a, b, c := st.Get(REG_A), st.Get(REG_B), st.Get(REG_C)

	switch cond {
	case COND_ADD_OVERFLOW:
		ok = st.Flags.Get(FLAG_ADD_OVERFLOW)
	case COND_SUB_OVERFLOW:
		ok = st.Flags.Get(FLAG_SUB_OVERFLOW)
	case COND_A_EQ_B:
		ok = a == b
	case COND_B_EQ_C:
		ok = b == c
	case COND_C_EQ_A:
		ok = c == a
	case COND_A_ZERO:
		ok = a == 0
	case COND_B_ZERO:
		ok = b == 0
	case COND_C_ZERO:
		ok = c == 0
	default:
		panic("unknown condition")
	}

	return
}

// Skip steps over the next program byte when the predicate, optionally
// inverted, holds.
func (st *State) Skip(cond Cond, invert bool) {
	if st.Test(cond) != invert {
		st.Pc++
	}
}
