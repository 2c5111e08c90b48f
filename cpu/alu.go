package cpu

// Add sets C to A+B, truncated to 8 bits. If update is set, the add
// overflow flag records whether the sum exceeded 8 bits.
func (st *State) Add(update bool) {
	val := int(st.Get(REG_A)) + int(st.Get(REG_B))
	if update {
		st.Flags.Set(FLAG_ADD_OVERFLOW, val > 0xff)
	}
	st.Set(REG_C, uint8(val&0xff))
}

// Sub sets C to A-B, wrapped modulo 256. If update is set, the subtract
// overflow flag records whether the difference was negative.
func (st *State) Sub(update bool) {
	val := int(st.Get(REG_A)) - int(st.Get(REG_B))
	if update {
		st.Flags.Set(FLAG_SUB_OVERFLOW, val < 0)
	}
	if val < 0 {
		val += 0x100
	}
	st.Set(REG_C, uint8(val))
}

// Xor sets C to A^B.
func (st *State) Xor() {
	st.Set(REG_C, st.Get(REG_A)^st.Get(REG_B))
}

// And sets C to A&B.
func (st *State) And() {
	st.Set(REG_C, st.Get(REG_A)&st.Get(REG_B))
}

// Or sets C to A|B.
func (st *State) Or() {
	st.Set(REG_C, st.Get(REG_A)|st.Get(REG_B))
}

// Not complements a register in place.
func (st *State) Not(reg Register) {
	st.Set(reg, ^st.Get(reg))
}

// Swap exchanges the values of two registers.
func (st *State) Swap(reg1, reg2 Register) {
	tmp := st.Get(reg1)
	st.Set(reg1, st.Get(reg2))
	st.Set(reg2, tmp)
}
