package thicket

// InstructionType identifies the kind of render instruction.
type InstructionType uint8

const (
	// InstructionBatch draws a merged quad batch with one DrawTriangles32.
	InstructionBatch InstructionType = iota
	// InstructionDraw draws a single renderable through its pipe.
	InstructionDraw
	// InstructionBlend records a blend-state switch.
	InstructionBlend
	// InstructionGroup executes a nested render group's instruction set.
	InstructionGroup
)

// Instruction is one entry of an InstructionSet. Exactly one of Batch, View,
// or Group is set depending on Type; Blend is valid for InstructionBlend.
type Instruction struct {
	Type  InstructionType
	Batch *Batch
	View  *Container
	Blend BlendMode
	Group *RenderGroup
}

// InstructionSet is the ordered, append-only list of draw and state
// instructions a render group produces per rebuild. It is only ever mutated
// by the collection traversal; readers iterate it wholesale.
type InstructionSet struct {
	instructions []Instruction
}

// reset empties the set, keeping the underlying storage for reuse.
func (s *InstructionSet) reset() {
	for i := range s.instructions {
		s.instructions[i] = Instruction{}
	}
	s.instructions = s.instructions[:0]
}

func (s *InstructionSet) add(in Instruction) {
	s.instructions = append(s.instructions, in)
}

// Len returns the number of instructions.
func (s *InstructionSet) Len() int { return len(s.instructions) }

// At returns the instruction at index i.
func (s *InstructionSet) At(i int) Instruction { return s.instructions[i] }
