package cpu

// SelectBank selects the memory bank used by all following loads and stores.
func (st *State) SelectBank(bank uint8) {
	st.Bank = bank & (BANK_COUNT - 1)
}

// Address returns the memory address of a nibble offset in the selected bank.
func (st *State) Address(nibble uint8) int {
	return int(st.Bank)*BANK_SIZE + int(nibble&(BANK_SIZE-1))
}

// Load copies a byte of the selected bank into a register.
func (st *State) Load(reg Register, nibble uint8) {
	st.Set(reg, st.Memory[st.Address(nibble)])
}

// Store copies a register into a byte of the selected bank.
func (st *State) Store(reg Register, nibble uint8) {
	st.Memory[st.Address(nibble)] = st.Get(reg)
}
