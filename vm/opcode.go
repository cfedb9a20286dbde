package um

// Opcode identifies one of the machine's fourteen defined operations,
// extracted from the top 4 bits of a platter. Values 14 and 15 are
// structurally decodable but carry no defined semantics.
type Opcode uint8

const (
	OpConditionalMove Opcode = 0
	OpArrayIndex      Opcode = 1
	OpArrayAmendment  Opcode = 2
	OpAddition        Opcode = 3
	OpMultiplication  Opcode = 4
	OpDivision        Opcode = 5
	OpNotAnd          Opcode = 6
	OpHalt            Opcode = 7
	OpAllocation      Opcode = 8
	OpAbandonment     Opcode = 9
	OpOutput          Opcode = 10
	OpInput           Opcode = 11
	OpLoadProgram     Opcode = 12
	OpOrthography     Opcode = 13
)

var opcodeNames = map[Opcode]string{
	OpConditionalMove: "cmov",
	OpArrayIndex:      "aidx",
	OpArrayAmendment:  "aamd",
	OpAddition:        "add",
	OpMultiplication:  "mul",
	OpDivision:        "div",
	OpNotAnd:          "nand",
	OpHalt:            "halt",
	OpAllocation:      "alloc",
	OpAbandonment:     "free",
	OpOutput:          "out",
	OpInput:           "in",
	OpLoadProgram:     "load",
	OpOrthography:     "ortho",
}

// String renders an opcode as its disassembly mnemonic, or "?unknown?"
// for 14/15, matching the teacher's Bytecode.String fallback.
func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "?unknown?"
}

// Valid reports whether op is one of the fourteen defined operations.
func (op Opcode) Valid() bool {
	_, ok := opcodeNames[op]
	return ok
}
